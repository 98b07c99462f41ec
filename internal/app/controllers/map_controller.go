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

// InterfaceMapController 定义地图控制器接口
type InterfaceMapController interface {
	GetMaps()
	GetMap()
	CreateMap()
	DeleteMap()
}

// MapController 处理楼层地图相关的请求
type MapController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewMapController 创建一个新的地图控制器
func NewMapController(ctx *gin.Context, container *container.ServiceContainer) *MapController {
	return &MapController{
		Ctx:       ctx,
		Container: container,
	}
}

// MapRequest 表示地图请求，楼宇和楼层归属相互独立、均可为空
type MapRequest struct {
	Name        string `json:"name" binding:"required" example:"Lab A Level 1"`
	BuildingID  *uint  `json:"building_id" example:"1"`
	FloorID     *uint  `json:"floor_id" example:"1"`
	ImageBase64 string `json:"image_base64"`
}

// HandleMapFunc 返回一个处理地图请求的Gin处理函数
func HandleMapFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewMapController(ctx, container)

		switch method {
		case "getMaps":
			controller.GetMaps()
		case "getMap":
			controller.GetMap()
		case "createMap":
			controller.CreateMap()
		case "deleteMap":
			controller.DeleteMap()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// 1. GetMaps 获取所有地图列表
// @Summary 获取所有地图
// @Description 获取地图列表，图片以data URI形式返回
// @Tags Map
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} response.Response
// @Router /maps [get]
func (c *MapController) GetMaps() {
	mapService := c.Container.GetService("map").(services.InterfaceMapService)
	maps, err := mapService.GetAllMaps()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to list maps: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, maps)
}

// 2. GetMap 获取单个地图详情
// @Summary 获取地图详情
// @Description 根据ID获取地图详细信息，包含图片data URI
// @Tags Map
// @Accept json
// @Produce json
// @Param id path int true "地图ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.Response
// @Router /maps/{id} [get]
func (c *MapController) GetMap() {
	id, err := parseIDParam(c.Ctx)
	if err != nil {
		response.ParamError(c.Ctx, "invalid map id")
		return
	}

	mapService := c.Container.GetService("map").(services.InterfaceMapService)
	m, err := mapService.GetMapByID(id)
	if err != nil {
		response.Fail(c.Ctx, code.ErrMapNotFound, nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"id":          m.ID,
		"name":        m.Name,
		"building_id": m.BuildingID,
		"floor_id":    m.FloorID,
		"image_url":   m.ImageURL(),
		"created_at":  m.CreatedAt,
		"updated_at":  m.UpdatedAt,
	})
}

// 3. CreateMap 创建新地图
// @Summary 创建地图
// @Description 创建地图，楼宇和楼层归属均可选；仅给楼层时楼宇由楼层回填
// @Tags Map
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param map body MapRequest true "地图信息"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /maps [post]
func (c *MapController) CreateMap() {
	var req MapRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	m := &models.Map{
		Name:        req.Name,
		BuildingID:  req.BuildingID,
		FloorID:     req.FloorID,
		ImageBase64: req.ImageBase64,
	}

	mapService := c.Container.GetService("map").(services.InterfaceMapService)
	if err := mapService.CreateMap(m); err != nil {
		switch {
		case strings.Contains(err.Error(), "floor not found"):
			response.FailWithMessage(c.Ctx, code.ErrFloorNotFound, err.Error(), nil)
		case strings.Contains(err.Error(), "building not found"):
			response.FailWithMessage(c.Ctx, code.ErrBuildingNotFound, err.Error(), nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to create map: "+err.Error(), nil)
		}
		return
	}

	response.Created(c.Ctx, gin.H{
		"id":          m.ID,
		"name":        m.Name,
		"building_id": m.BuildingID,
		"floor_id":    m.FloorID,
	})
}

// 4. DeleteMap 级联删除地图
// @Summary 删除地图
// @Description 级联删除地图及其上放置的传感器、植物和全部历史记录，返回分类计数
// @Tags Map
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "地图ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /maps/{id} [delete]
func (c *MapController) DeleteMap() {
	id, err := parseIDParam(c.Ctx)
	if err != nil {
		response.ParamError(c.Ctx, "invalid map id")
		return
	}

	mapService := c.Container.GetService("map").(services.InterfaceMapService)
	summary, err := mapService.DeleteMap(id)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrCascadeFailed, "failed to delete map: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, summary)
}
