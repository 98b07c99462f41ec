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

// InterfaceBuildingController 定义楼宇控制器接口
type InterfaceBuildingController interface {
	GetBuildings()
	GetBuilding()
	CreateBuilding()
	UpdateBuilding()
	DeleteBuilding()
	GetBuildingFloors()
}

// BuildingController 处理楼宇相关的请求
type BuildingController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewBuildingController 创建一个新的楼宇控制器
func NewBuildingController(ctx *gin.Context, container *container.ServiceContainer) *BuildingController {
	return &BuildingController{
		Ctx:       ctx,
		Container: container,
	}
}

// BuildingRequest 表示楼宇请求
type BuildingRequest struct {
	Name        string `json:"name" binding:"required" example:"Lab A"`
	Address     string `json:"address" example:"North Campus"`
	Description string `json:"description" example:"Biology research building"`
}

// HandleBuildingFunc 返回一个处理楼宇请求的Gin处理函数
func HandleBuildingFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewBuildingController(ctx, container)

		switch method {
		case "getBuildings":
			controller.GetBuildings()
		case "getBuilding":
			controller.GetBuilding()
		case "createBuilding":
			controller.CreateBuilding()
		case "updateBuilding":
			controller.UpdateBuilding()
		case "deleteBuilding":
			controller.DeleteBuilding()
		case "getBuildingFloors":
			controller.GetBuildingFloors()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// 1. GetBuildings 获取所有楼宇列表
// @Summary 获取所有楼宇
// @Description 获取系统中所有楼宇的列表
// @Tags Building
// @Accept json
// @Produce json
// @Param page query int false "页码，默认为1"
// @Param page_size query int false "每页条数，默认为10"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} response.Response
// @Router /buildings [get]
func (c *BuildingController) GetBuildings() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)
	buildings, total, err := buildingService.GetAllBuildings(page, pageSize)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to list buildings: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        buildings,
	})
}

// 2. GetBuilding 获取单个楼宇详情
// @Summary 获取楼宇详情
// @Description 根据ID获取楼宇详细信息
// @Tags Building
// @Accept json
// @Produce json
// @Param id path int true "楼宇ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /buildings/{id} [get]
func (c *BuildingController) GetBuilding() {
	id, err := parseIDParam(c.Ctx)
	if err != nil {
		response.ParamError(c.Ctx, "invalid building id")
		return
	}

	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)
	building, err := buildingService.GetBuildingByID(id)
	if err != nil {
		response.Fail(c.Ctx, code.ErrBuildingNotFound, nil)
		return
	}

	response.Success(c.Ctx, building)
}

// 3. CreateBuilding 创建新楼宇
// @Summary 创建楼宇
// @Description 创建一个新的楼宇，名称派生的slug必须全局唯一
// @Tags Building
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param building body BuildingRequest true "楼宇信息"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /buildings [post]
func (c *BuildingController) CreateBuilding() {
	var req BuildingRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	building := &models.Building{
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
	}

	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)
	if err := buildingService.CreateBuilding(building); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			response.FailWithMessage(c.Ctx, code.ErrBuildingAlreadyExist, err.Error(), nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to create building: "+err.Error(), nil)
		return
	}

	response.Created(c.Ctx, building)
}

// 4. UpdateBuilding 更新楼宇信息
// @Summary 更新楼宇
// @Description 更新楼宇信息，名称变更时重新校验slug唯一性
// @Tags Building
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "楼宇ID"
// @Param building body BuildingRequest true "楼宇信息"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /buildings/{id} [put]
func (c *BuildingController) UpdateBuilding() {
	id, err := parseIDParam(c.Ctx)
	if err != nil {
		response.ParamError(c.Ctx, "invalid building id")
		return
	}

	var updates map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&updates); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)
	building, err := buildingService.UpdateBuilding(id, updates)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "already exists"):
			response.FailWithMessage(c.Ctx, code.ErrBuildingAlreadyExist, err.Error(), nil)
		case strings.Contains(err.Error(), "not found"):
			response.Fail(c.Ctx, code.ErrBuildingNotFound, nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to update building: "+err.Error(), nil)
		}
		return
	}

	response.Success(c.Ctx, building)
}

// 5. DeleteBuilding 级联删除楼宇
// @Summary 删除楼宇
// @Description 级联删除楼宇及其楼层、地图、传感器、植物和全部历史记录，返回分类计数
// @Tags Building
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "楼宇ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /buildings/{id} [delete]
func (c *BuildingController) DeleteBuilding() {
	id, err := parseIDParam(c.Ctx)
	if err != nil {
		response.ParamError(c.Ctx, "invalid building id")
		return
	}

	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)
	summary, err := buildingService.DeleteBuilding(id)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrCascadeFailed, "failed to delete building: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, summary)
}

// 6. GetBuildingFloors 获取楼宇下的楼层
// @Summary 获取楼宇楼层
// @Description 获取楼宇下的楼层列表，按楼层级别排序
// @Tags Building
// @Accept json
// @Produce json
// @Param id path int true "楼宇ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.Response
// @Router /buildings/{id}/floors [get]
func (c *BuildingController) GetBuildingFloors() {
	id, err := parseIDParam(c.Ctx)
	if err != nil {
		response.ParamError(c.Ctx, "invalid building id")
		return
	}

	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)
	floors, err := buildingService.GetBuildingFloors(id)
	if err != nil {
		response.Fail(c.Ctx, code.ErrBuildingNotFound, nil)
		return
	}

	response.Success(c.Ctx, floors)
}
