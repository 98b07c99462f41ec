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

// InterfaceSensorController 定义传感器控制器接口
type InterfaceSensorController interface {
	GetSensors()
	GetSensor()
	CreateSensor()
	UpdateSensor()
	DeleteSensor()
	GetLatestMeasurement()
}

// SensorController 处理传感器相关的请求
type SensorController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewSensorController 创建一个新的传感器控制器
func NewSensorController(ctx *gin.Context, container *container.ServiceContainer) *SensorController {
	return &SensorController{
		Ctx:       ctx,
		Container: container,
	}
}

// SensorView 传感器响应视图，附带解析后的位置信息
type SensorView struct {
	models.Sensor
	Location  string   `json:"location"`
	LocationX *float64 `json:"location_x"`
	LocationY *float64 `json:"location_y"`
}

// HandleSensorFunc 返回一个处理传感器请求的Gin处理函数
func HandleSensorFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewSensorController(ctx, container)

		switch method {
		case "getSensors":
			controller.GetSensors()
		case "getSensor":
			controller.GetSensor()
		case "createSensor":
			controller.CreateSensor()
		case "updateSensor":
			controller.UpdateSensor()
		case "deleteSensor":
			controller.DeleteSensor()
		case "getLatestMeasurement":
			controller.GetLatestMeasurement()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// 将传感器转换为带位置信息的响应视图
func (c *SensorController) buildView(sensor models.Sensor, index *services.LocationIndex) SensorView {
	locationService := c.Container.GetService("location").(services.InterfaceLocationService)
	loc := locationService.Resolve(&sensor, index)
	return SensorView{
		Sensor:    sensor,
		Location:  loc.Breadcrumb,
		LocationX: sensor.LocationX(),
		LocationY: sensor.LocationY(),
	}
}

// 1. GetSensors 获取传感器列表
// @Summary 获取传感器列表
// @Description 获取传感器列表，可按地图过滤，响应附带解析后的位置面包屑和坐标
// @Tags Sensor
// @Accept json
// @Produce json
// @Param map_id query int false "按地图ID过滤"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} response.Response
// @Router /sensors [get]
func (c *SensorController) GetSensors() {
	var mapID *uint
	if raw := c.Ctx.Query("map_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.ParamError(c.Ctx, "invalid map_id")
			return
		}
		v := uint(parsed)
		mapID = &v
	}

	sensorService := c.Container.GetService("sensor").(services.InterfaceSensorService)
	sensors, err := sensorService.GetAllSensors(mapID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to list sensors: "+err.Error(), nil)
		return
	}

	locationService := c.Container.GetService("location").(services.InterfaceLocationService)
	index, err := locationService.BuildIndex()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to resolve sensor locations: "+err.Error(), nil)
		return
	}

	views := make([]SensorView, 0, len(sensors))
	for _, sensor := range sensors {
		views = append(views, c.buildView(sensor, index))
	}

	response.Success(c.Ctx, views)
}

// 2. GetSensor 获取单个传感器详情
// @Summary 获取传感器详情
// @Description 根据ID获取传感器详细信息，附带解析后的位置
// @Tags Sensor
// @Accept json
// @Produce json
// @Param id path int true "传感器ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.Response
// @Router /sensors/{id} [get]
func (c *SensorController) GetSensor() {
	id, err := parseIDParam(c.Ctx)
	if err != nil {
		response.ParamError(c.Ctx, "invalid sensor id")
		return
	}

	sensorService := c.Container.GetService("sensor").(services.InterfaceSensorService)
	sensor, err := sensorService.GetSensorByID(id)
	if err != nil {
		response.Fail(c.Ctx, code.ErrSensorNotFound, nil)
		return
	}

	locationService := c.Container.GetService("location").(services.InterfaceLocationService)
	index, err := locationService.BuildIndex()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to resolve sensor location: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, c.buildView(*sensor, index))
}

// 3. CreateSensor 创建新传感器
// @Summary 创建传感器
// @Description 创建传感器，名称全局唯一；给定map_id时按百分比坐标放置
// @Tags Sensor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sensor body models.Sensor true "传感器信息"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /sensors [post]
func (c *SensorController) CreateSensor() {
	var sensor models.Sensor
	if err := c.Ctx.ShouldBindJSON(&sensor); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	sensorService := c.Container.GetService("sensor").(services.InterfaceSensorService)
	if err := sensorService.CreateSensor(&sensor); err != nil {
		switch {
		case strings.Contains(err.Error(), "already exists"):
			response.FailWithMessage(c.Ctx, code.ErrSensorAlreadyExist, err.Error(), nil)
		case strings.Contains(err.Error(), "not found"):
			response.FailWithMessage(c.Ctx, code.ErrMapNotFound, err.Error(), nil)
		case strings.Contains(err.Error(), "out of range"):
			response.FailWithMessage(c.Ctx, code.ErrSensorPlacement, err.Error(), nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to create sensor: "+err.Error(), nil)
		}
		return
	}

	response.Created(c.Ctx, sensor)
}

// 4. UpdateSensor 更新传感器
// @Summary 更新传感器
// @Description 更新传感器；提供map_id时在新地图上放置（无坐标时居中），提供building_id时
// @Description 直接挂到楼宇并清除地图放置，两种位置意图互斥
// @Tags Sensor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "传感器ID"
// @Param sensor body services.SensorUpdate true "更新字段"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /sensors/{id} [put]
func (c *SensorController) UpdateSensor() {
	id, err := parseIDParam(c.Ctx)
	if err != nil {
		response.ParamError(c.Ctx, "invalid sensor id")
		return
	}

	var update services.SensorUpdate
	if err := c.Ctx.ShouldBindJSON(&update); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	sensorService := c.Container.GetService("sensor").(services.InterfaceSensorService)
	sensor, err := sensorService.UpdateSensor(id, &update)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "already exists"):
			response.FailWithMessage(c.Ctx, code.ErrSensorAlreadyExist, err.Error(), nil)
		case strings.Contains(err.Error(), "sensor not found"):
			response.Fail(c.Ctx, code.ErrSensorNotFound, nil)
		case strings.Contains(err.Error(), "not found"):
			response.FailWithMessage(c.Ctx, code.ErrMapNotFound, err.Error(), nil)
		case strings.Contains(err.Error(), "out of range"), strings.Contains(err.Error(), "no map"):
			response.FailWithMessage(c.Ctx, code.ErrSensorPlacement, err.Error(), nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to update sensor: "+err.Error(), nil)
		}
		return
	}

	response.Success(c.Ctx, sensor)
}

// 5. DeleteSensor 级联删除传感器
// @Summary 删除传感器
// @Description 级联删除传感器及其植物、测量和浇水记录，返回分类计数
// @Tags Sensor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "传感器ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /sensors/{id} [delete]
func (c *SensorController) DeleteSensor() {
	id, err := parseIDParam(c.Ctx)
	if err != nil {
		response.ParamError(c.Ctx, "invalid sensor id")
		return
	}

	sensorService := c.Container.GetService("sensor").(services.InterfaceSensorService)
	summary, err := sensorService.DeleteSensor(id)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrCascadeFailed, "failed to delete sensor: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, summary)
}

// 6. GetLatestMeasurement 获取传感器最新读数
// @Summary 获取传感器最新读数
// @Description 获取传感器最新一条测量记录，优先走缓存
// @Tags Sensor
// @Accept json
// @Produce json
// @Param id path int true "传感器ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.Response
// @Router /sensors/{id}/latest-measurement [get]
func (c *SensorController) GetLatestMeasurement() {
	id, err := parseIDParam(c.Ctx)
	if err != nil {
		response.ParamError(c.Ctx, "invalid sensor id")
		return
	}

	sensorService := c.Container.GetService("sensor").(services.InterfaceSensorService)
	if _, err := sensorService.GetSensorByID(id); err != nil {
		response.Fail(c.Ctx, code.ErrSensorNotFound, nil)
		return
	}

	measurementService := c.Container.GetService("measurement").(services.InterfaceMeasurementService)
	m, err := measurementService.LatestMeasurement(id)
	if err != nil {
		if strings.Contains(err.Error(), "no measurements") {
			response.FailWithMessage(c.Ctx, code.ErrMeasurementNotFound, err.Error(), nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to get latest measurement: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, m)
}
