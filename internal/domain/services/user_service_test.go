package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"smart-campus-service/internal/domain/models"
)

func newUserService(t *testing.T) (InterfaceUserService, *gorm.DB) {
	db := newTestDB(t)
	return NewUserService(db, testConfig()), db
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc, db := newUserService(t)

	user := &models.User{Username: "admin", Role: models.UserRoleAdmin}
	require.NoError(t, svc.CreateUser(user, "secret"))

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.NotEqual(t, "secret", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret")))
}

func TestCreateUserUsernameUnique(t *testing.T) {
	svc, _ := newUserService(t)

	require.NoError(t, svc.CreateUser(&models.User{Username: "admin"}, "secret"))

	err := svc.CreateUser(&models.User{Username: "admin"}, "other")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newUserService(t)

	require.NoError(t, svc.CreateUser(&models.User{Username: "admin"}, "secret"))

	user, err := svc.Authenticate("admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	// 密码错误和用户不存在返回同一条消息
	_, badPass := svc.Authenticate("admin", "wrong")
	_, noUser := svc.Authenticate("ghost", "secret")
	require.Error(t, badPass)
	require.Error(t, noUser)
	assert.Equal(t, badPass.Error(), noUser.Error())
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	svc, db := newUserService(t)

	user := &models.User{Username: "admin"}
	require.NoError(t, svc.CreateUser(user, "secret"))

	_, err := svc.UpdateUser(user.ID, map[string]interface{}{"password": "rotated"})
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("rotated")))
}

func TestDeleteUserIdempotent(t *testing.T) {
	svc, _ := newUserService(t)

	user := &models.User{Username: "admin"}
	require.NoError(t, svc.CreateUser(user, "secret"))

	deleted, err := svc.DeleteUser(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	deleted, err = svc.DeleteUser(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, deleted)
}
