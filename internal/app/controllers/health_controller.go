package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"smart-campus-service/internal/domain/services/container"
	"smart-campus-service/internal/error/code"
	"smart-campus-service/internal/error/response"
)

var startTime = time.Now()

// HealthController 处理健康检查相关的请求
type HealthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHealthController 创建一个新的健康检查控制器
func NewHealthController(ctx *gin.Context, container *container.ServiceContainer) *HealthController {
	return &HealthController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleHealthFunc 返回一个处理健康检查请求的Gin处理函数
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthController(ctx, container)

		switch method {
		case "ping":
			controller.Ping()
		case "status":
			controller.Status()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// 1. Ping 存活探针
// @Summary 存活探针
// @Description 返回pong
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /ping [get]
func (c *HealthController) Ping() {
	c.Ctx.JSON(200, gin.H{"message": "pong"})
}

// 2. Status 服务状态
// @Summary 服务状态
// @Description 返回服务运行状态和数据库连通性
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/status [get]
func (c *HealthController) Status() {
	dbStatus := "up"
	sqlDB, err := c.Container.GetDB().DB()
	if err != nil || sqlDB.Ping() != nil {
		dbStatus = "down"
	}

	response.Success(c.Ctx, gin.H{
		"status":   "running",
		"database": dbStatus,
		"uptime":   time.Since(startTime).String(),
		"time":     time.Now().Format(time.RFC3339),
	})
}
