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

// InterfacePlantController 定义植物控制器接口
type InterfacePlantController interface {
	GetPlants()
	GetPlant()
	CreatePlant()
	UpdatePlant()
}

// PlantController 处理植物相关的请求
type PlantController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPlantController 创建一个新的植物控制器
func NewPlantController(ctx *gin.Context, container *container.ServiceContainer) *PlantController {
	return &PlantController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandlePlantFunc 返回一个处理植物请求的Gin处理函数
func HandlePlantFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPlantController(ctx, container)

		switch method {
		case "getPlants":
			controller.GetPlants()
		case "getPlant":
			controller.GetPlant()
		case "createPlant":
			controller.CreatePlant()
		case "updatePlant":
			controller.UpdatePlant()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// 1. GetPlants 获取所有植物列表
// @Summary 获取所有植物
// @Description 获取系统中所有植物的列表
// @Tags Plant
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} response.Response
// @Router /plants [get]
func (c *PlantController) GetPlants() {
	plantService := c.Container.GetService("plant").(services.InterfacePlantService)
	plants, err := plantService.GetAllPlants()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to list plants: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, plants)
}

// 2. GetPlant 获取单个植物详情
// @Summary 获取植物详情
// @Description 根据ID获取植物详细信息
// @Tags Plant
// @Accept json
// @Produce json
// @Param id path int true "植物ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.Response
// @Router /plants/{id} [get]
func (c *PlantController) GetPlant() {
	id, err := parseIDParam(c.Ctx)
	if err != nil {
		response.ParamError(c.Ctx, "invalid plant id")
		return
	}

	plantService := c.Container.GetService("plant").(services.InterfacePlantService)
	plant, err := plantService.GetPlantByID(id)
	if err != nil {
		response.Fail(c.Ctx, code.ErrPlantNotFound, nil)
		return
	}

	response.Success(c.Ctx, plant)
}

// 3. CreatePlant 创建新植物
// @Summary 创建植物
// @Description 创建植物，可关联传感器并设置浇水阈值
// @Tags Plant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plant body models.Plant true "植物信息"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /plants [post]
func (c *PlantController) CreatePlant() {
	var plant models.Plant
	if err := c.Ctx.ShouldBindJSON(&plant); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	plantService := c.Container.GetService("plant").(services.InterfacePlantService)
	if err := plantService.CreatePlant(&plant); err != nil {
		if strings.Contains(err.Error(), "not found") {
			response.FailWithMessage(c.Ctx, code.ErrSensorNotFound, err.Error(), nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to create plant: "+err.Error(), nil)
		return
	}

	response.Created(c.Ctx, plant)
}

// 4. UpdatePlant 更新植物信息
// @Summary 更新植物
// @Description 更新植物信息，仅允许白名单内的字段
// @Tags Plant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "植物ID"
// @Param plant body map[string]interface{} true "更新字段"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /plants/{id} [put]
func (c *PlantController) UpdatePlant() {
	id, err := parseIDParam(c.Ctx)
	if err != nil {
		response.ParamError(c.Ctx, "invalid plant id")
		return
	}

	var updates map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&updates); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	plantService := c.Container.GetService("plant").(services.InterfacePlantService)
	plant, err := plantService.UpdatePlant(id, updates)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			response.Fail(c.Ctx, code.ErrPlantNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to update plant: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, plant)
}
