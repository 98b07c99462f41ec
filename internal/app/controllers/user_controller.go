package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"smart-campus-service/internal/domain/models"
	"smart-campus-service/internal/domain/services"
	"smart-campus-service/internal/domain/services/container"
	"smart-campus-service/internal/error/code"
	"smart-campus-service/internal/error/response"
)

// InterfaceUserController 定义用户控制器接口
type InterfaceUserController interface {
	Login()
	GetUsers()
	GetUser()
	CreateUser()
	UpdateUser()
	DeleteUser()
}

// UserController 处理用户账号和登录相关的请求
type UserController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUserController 创建一个新的用户控制器
func NewUserController(ctx *gin.Context, container *container.ServiceContainer) *UserController {
	return &UserController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest 表示登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"secret"`
}

// UserRequest 表示用户创建请求
type UserRequest struct {
	Username string          `json:"username" binding:"required" example:"operator"`
	Password string          `json:"password" binding:"required" example:"secret"`
	Email    string          `json:"email" example:"operator@example.com"`
	Phone    string          `json:"phone" example:"13800000000"`
	Role     models.UserRole `json:"role" example:"viewer"`
}

// HandleUserFunc 返回一个处理用户请求的Gin处理函数
func HandleUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUserController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		case "getUsers":
			controller.GetUsers()
		case "getUser":
			controller.GetUser()
		case "createUser":
			controller.CreateUser()
		case "updateUser":
			controller.UpdateUser()
		case "deleteUser":
			controller.DeleteUser()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// 1. Login 用户登录
// @Summary 用户登录
// @Description 校验用户名密码并签发JWT令牌
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "登录凭证"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (c *UserController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.Authenticate(req.Username, req.Password)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUserPasswordIncorrect, err.Error(), nil)
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	token, err := jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{
		"token": token,
		"user":  user,
	})
}

// 2. GetUsers 获取所有用户列表
// @Summary 获取所有用户
// @Description 获取系统中所有用户账号
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} response.Response
// @Router /users [get]
func (c *UserController) GetUsers() {
	userService := c.Container.GetService("user").(services.InterfaceUserService)
	users, err := userService.GetAllUsers()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to list users: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, users)
}

// 3. GetUser 获取单个用户详情
// @Summary 获取用户详情
// @Description 根据ID获取用户账号信息
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (c *UserController) GetUser() {
	id, err := parseIDParam(c.Ctx)
	if err != nil {
		response.ParamError(c.Ctx, "invalid user id")
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.GetUserByID(id)
	if err != nil {
		response.Fail(c.Ctx, code.ErrUserNotFound, nil)
		return
	}

	response.Success(c.Ctx, user)
}

// 4. CreateUser 创建新用户
// @Summary 创建用户
// @Description 创建用户账号，用户名全局唯一，密码以bcrypt存储
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body UserRequest true "用户信息"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /users [post]
func (c *UserController) CreateUser() {
	var req UserRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     req.Role,
	}
	if user.Role == "" {
		user.Role = models.UserRoleViewer
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.CreateUser(user, req.Password); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			response.FailWithMessage(c.Ctx, code.ErrUserAlreadyExist, err.Error(), nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to create user: "+err.Error(), nil)
		return
	}

	response.Created(c.Ctx, user)
}

// 5. UpdateUser 更新用户信息
// @Summary 更新用户
// @Description 更新用户账号信息，提供password字段时重新哈希
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Param user body map[string]interface{} true "更新字段"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [put]
func (c *UserController) UpdateUser() {
	id, err := parseIDParam(c.Ctx)
	if err != nil {
		response.ParamError(c.Ctx, "invalid user id")
		return
	}

	var updates map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&updates); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.UpdateUser(id, updates)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "already exists"):
			response.FailWithMessage(c.Ctx, code.ErrUserAlreadyExist, err.Error(), nil)
		case strings.Contains(err.Error(), "not found"):
			response.Fail(c.Ctx, code.ErrUserNotFound, nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to update user: "+err.Error(), nil)
		}
		return
	}

	response.Success(c.Ctx, user)
}

// 6. DeleteUser 删除用户
// @Summary 删除用户
// @Description 删除用户账号，id不存在时为幂等空操作
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser() {
	id, err := parseIDParam(c.Ctx)
	if err != nil {
		response.ParamError(c.Ctx, "invalid user id")
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	deleted, err := userService.DeleteUser(id)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to delete user: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"deleted": deleted})
}
