package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"smart-campus-service/internal/domain/models"
	"smart-campus-service/internal/domain/services"
	"smart-campus-service/internal/domain/services/container"
	"smart-campus-service/internal/error/code"
	"smart-campus-service/internal/error/response"
)

// InterfaceFloorController 定义楼层控制器接口
type InterfaceFloorController interface {
	GetFloors()
	GetFloor()
	CreateFloor()
	UpdateFloor()
	DeleteFloor()
}

// FloorController 处理楼层相关的请求
type FloorController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewFloorController 创建一个新的楼层控制器
func NewFloorController(ctx *gin.Context, container *container.ServiceContainer) *FloorController {
	return &FloorController{
		Ctx:       ctx,
		Container: container,
	}
}

// FloorRequest 表示楼层请求
type FloorRequest struct {
	BuildingID uint   `json:"building_id" binding:"required" example:"1"`
	Level      int    `json:"level" example:"2"`
	Name       string `json:"name" example:"Second Floor"`
}

// HandleFloorFunc 返回一个处理楼层请求的Gin处理函数
func HandleFloorFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewFloorController(ctx, container)

		switch method {
		case "getFloors":
			controller.GetFloors()
		case "getFloor":
			controller.GetFloor()
		case "createFloor":
			controller.CreateFloor()
		case "updateFloor":
			controller.UpdateFloor()
		case "deleteFloor":
			controller.DeleteFloor()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// 1. GetFloors 获取所有楼层列表
// @Summary 获取所有楼层
// @Description 获取系统中所有楼层的列表
// @Tags Floor
// @Accept json
// @Produce json
// @Param page query int false "页码，默认为1"
// @Param page_size query int false "每页条数，默认为10"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} response.Response
// @Router /floors [get]
func (c *FloorController) GetFloors() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	floorService := c.Container.GetService("floor").(services.InterfaceFloorService)
	floors, total, err := floorService.GetAllFloors(page, pageSize)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to list floors: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":     total,
		"page":      page,
		"page_size": pageSize,
		"data":      floors,
	})
}

// 2. GetFloor 获取单个楼层详情
// @Summary 获取楼层详情
// @Description 根据ID获取楼层详细信息
// @Tags Floor
// @Accept json
// @Produce json
// @Param id path int true "楼层ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.Response
// @Router /floors/{id} [get]
func (c *FloorController) GetFloor() {
	id, err := parseIDParam(c.Ctx)
	if err != nil {
		response.ParamError(c.Ctx, "invalid floor id")
		return
	}

	floorService := c.Container.GetService("floor").(services.InterfaceFloorService)
	floor, err := floorService.GetFloorByID(id)
	if err != nil {
		response.Fail(c.Ctx, code.ErrFloorNotFound, nil)
		return
	}

	response.Success(c.Ctx, floor)
}

// 3. CreateFloor 创建新楼层
// @Summary 创建楼层
// @Description 创建一个新的楼层，同一楼宇内楼层级别必须唯一
// @Tags Floor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param floor body FloorRequest true "楼层信息"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /floors [post]
func (c *FloorController) CreateFloor() {
	var req FloorRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	floor := &models.Floor{
		BuildingID: req.BuildingID,
		Level:      req.Level,
		Name:       req.Name,
	}

	floorService := c.Container.GetService("floor").(services.InterfaceFloorService)
	if err := floorService.CreateFloor(floor); err != nil {
		switch {
		case strings.Contains(err.Error(), "already exists"):
			response.FailWithMessage(c.Ctx, code.ErrFloorAlreadyExist, err.Error(), nil)
		case strings.Contains(err.Error(), "not found"):
			response.FailWithMessage(c.Ctx, code.ErrBuildingNotFound, err.Error(), nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to create floor: "+err.Error(), nil)
		}
		return
	}

	response.Created(c.Ctx, floor)
}

// 4. UpdateFloor 更新楼层信息
// @Summary 更新楼层
// @Description 更新楼层信息，级别或所属楼宇变更时重新校验唯一性
// @Tags Floor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "楼层ID"
// @Param floor body FloorRequest true "楼层信息"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /floors/{id} [put]
func (c *FloorController) UpdateFloor() {
	id, err := parseIDParam(c.Ctx)
	if err != nil {
		response.ParamError(c.Ctx, "invalid floor id")
		return
	}

	var updates map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&updates); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	floorService := c.Container.GetService("floor").(services.InterfaceFloorService)
	floor, err := floorService.UpdateFloor(id, updates)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "already exists"):
			response.FailWithMessage(c.Ctx, code.ErrFloorAlreadyExist, err.Error(), nil)
		case strings.Contains(err.Error(), "not found"):
			response.Fail(c.Ctx, code.ErrFloorNotFound, nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to update floor: "+err.Error(), nil)
		}
		return
	}

	response.Success(c.Ctx, floor)
}

// 5. DeleteFloor 级联删除楼层
// @Summary 删除楼层
// @Description 级联删除楼层及其地图、传感器、植物和全部历史记录，返回分类计数
// @Tags Floor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "楼层ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /floors/{id} [delete]
func (c *FloorController) DeleteFloor() {
	id, err := parseIDParam(c.Ctx)
	if err != nil {
		response.ParamError(c.Ctx, "invalid floor id")
		return
	}

	floorService := c.Container.GetService("floor").(services.InterfaceFloorService)
	summary, err := floorService.DeleteFloor(id)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrCascadeFailed, "failed to delete floor: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, summary)
}
