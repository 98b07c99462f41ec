package controllers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"smart-campus-service/internal/domain/models"
	"smart-campus-service/internal/domain/services"
	"smart-campus-service/internal/domain/services/container"
	"smart-campus-service/internal/error/code"
	"smart-campus-service/internal/error/response"
)

// InterfaceWateringScheduleController 定义浇水记录控制器接口
type InterfaceWateringScheduleController interface {
	GetWateringSchedules()
	CreateWateringSchedule()
}

// WateringScheduleController 处理浇水历史记录相关的请求
type WateringScheduleController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewWateringScheduleController 创建一个新的浇水记录控制器
func NewWateringScheduleController(ctx *gin.Context, container *container.ServiceContainer) *WateringScheduleController {
	return &WateringScheduleController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleWateringScheduleFunc 返回一个处理浇水记录请求的Gin处理函数
func HandleWateringScheduleFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewWateringScheduleController(ctx, container)

		switch method {
		case "getWateringSchedules":
			controller.GetWateringSchedules()
		case "createWateringSchedule":
			controller.CreateWateringSchedule()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// 1. GetWateringSchedules 查询浇水记录
// @Summary 查询浇水记录
// @Description 查询浇水历史记录，支持sort（-col降序/col升序）和limit
// @Tags WateringSchedule
// @Accept json
// @Produce json
// @Param sort query string false "排序列，默认-created_date"
// @Param limit query int false "返回条数，默认100"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /watering-schedules [get]
func (c *WateringScheduleController) GetWateringSchedules() {
	q := services.ScheduleQuery{
		Sort: c.Ctx.DefaultQuery("sort", "-created_date"),
	}
	if raw := c.Ctx.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			response.ParamError(c.Ctx, fmt.Sprintf("invalid limit %q", raw))
			return
		}
		q.Limit = limit
	}

	scheduleService := c.Container.GetService("watering_schedule").(services.InterfaceWateringScheduleService)
	schedules, err := scheduleService.GetWateringSchedules(q)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to list watering schedules: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, schedules)
}

// 2. CreateWateringSchedule 记录一次浇水
// @Summary 创建浇水记录
// @Description 为植物追加一条浇水记录，触发方式缺省为手动
// @Tags WateringSchedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param schedule body models.WateringSchedule true "浇水记录"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /watering-schedules [post]
func (c *WateringScheduleController) CreateWateringSchedule() {
	var ws models.WateringSchedule
	if err := c.Ctx.ShouldBindJSON(&ws); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	scheduleService := c.Container.GetService("watering_schedule").(services.InterfaceWateringScheduleService)
	if err := scheduleService.CreateWateringSchedule(&ws); err != nil {
		if strings.Contains(err.Error(), "not found") {
			response.FailWithMessage(c.Ctx, code.ErrPlantNotFound, err.Error(), nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to create watering schedule: "+err.Error(), nil)
		return
	}

	response.Created(c.Ctx, ws)
}
