package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestCacheServesCachedResponseUntilWrite(t *testing.T) {
	gin.SetMode(gin.TestMode)

	payload := "v1"
	r := gin.New()
	r.Use(PurgeOnWrite())
	r.GET("/widgets", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		c.String(http.StatusOK, payload)
	})
	r.POST("/widgets", func(c *gin.Context) {
		payload = "v2"
		c.Status(http.StatusCreated)
	})

	require.Equal(t, "v1", doRequest(r, http.MethodGet, "/widgets").Body.String())

	// 无写操作期间命中缓存，后端变化不可见
	payload = "hidden"
	assert.Equal(t, "v1", doRequest(r, http.MethodGet, "/widgets").Body.String())

	// 写操作成功后缓存被清空，读到最新数据
	doRequest(r, http.MethodPost, "/widgets")
	assert.Equal(t, "v2", doRequest(r, http.MethodGet, "/widgets").Body.String())
}

func TestPurgeOnWriteKeepsCacheWhenWriteFails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	payload := "v1"
	r := gin.New()
	r.Use(PurgeOnWrite())
	r.GET("/gadgets", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		c.String(http.StatusOK, payload)
	})
	r.POST("/gadgets", func(c *gin.Context) {
		c.Status(http.StatusBadRequest)
	})

	require.Equal(t, "v1", doRequest(r, http.MethodGet, "/gadgets").Body.String())

	payload = "v2"
	doRequest(r, http.MethodPost, "/gadgets")
	assert.Equal(t, "v1", doRequest(r, http.MethodGet, "/gadgets").Body.String())
}
