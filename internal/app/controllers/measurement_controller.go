package controllers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"smart-campus-service/internal/domain/models"
	"smart-campus-service/internal/domain/services"
	"smart-campus-service/internal/domain/services/container"
	"smart-campus-service/internal/error/code"
	"smart-campus-service/internal/error/response"
)

// InterfaceMeasurementController 定义测量记录控制器接口
type InterfaceMeasurementController interface {
	GetMeasurements()
	CreateMeasurement()
	DeleteMeasurement()
	ExportMeasurements()
}

// MeasurementController 处理测量记录相关的请求
type MeasurementController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewMeasurementController 创建一个新的测量记录控制器
func NewMeasurementController(ctx *gin.Context, container *container.ServiceContainer) *MeasurementController {
	return &MeasurementController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleMeasurementFunc 返回一个处理测量记录请求的Gin处理函数
func HandleMeasurementFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewMeasurementController(ctx, container)

		switch method {
		case "getMeasurements":
			controller.GetMeasurements()
		case "createMeasurement":
			controller.CreateMeasurement()
		case "deleteMeasurement":
			controller.DeleteMeasurement()
		case "exportMeasurements":
			controller.ExportMeasurements()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// 从查询串解析测量记录查询参数
func (c *MeasurementController) bindQuery() (services.MeasurementQuery, error) {
	q := services.MeasurementQuery{
		Sort: c.Ctx.DefaultQuery("sort", "-timestamp"),
	}

	if raw := c.Ctx.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return q, fmt.Errorf("invalid limit %q", raw)
		}
		q.Limit = limit
	}

	if raw := c.Ctx.Query("sensor_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return q, fmt.Errorf("invalid sensor_id %q", raw)
		}
		v := uint(parsed)
		q.SensorID = &v
	}

	return q, nil
}

// 1. GetMeasurements 查询测量记录
// @Summary 查询测量记录
// @Description 查询测量记录，支持sort（-col降序/col升序）、limit和sensor_id过滤
// @Tags Measurement
// @Accept json
// @Produce json
// @Param sort query string false "排序列，默认-timestamp"
// @Param limit query int false "返回条数，默认100"
// @Param sensor_id query int false "按传感器过滤"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /measurements [get]
func (c *MeasurementController) GetMeasurements() {
	q, err := c.bindQuery()
	if err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	measurementService := c.Container.GetService("measurement").(services.InterfaceMeasurementService)
	measurements, err := measurementService.GetMeasurements(q)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to list measurements: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, measurements)
}

// 2. CreateMeasurement 追加测量记录
// @Summary 创建测量记录
// @Description 为传感器追加一条测量记录，单位缺省为百分比
// @Tags Measurement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param measurement body models.Measurement true "测量记录"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /measurements [post]
func (c *MeasurementController) CreateMeasurement() {
	var m models.Measurement
	if err := c.Ctx.ShouldBindJSON(&m); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	measurementService := c.Container.GetService("measurement").(services.InterfaceMeasurementService)
	if err := measurementService.CreateMeasurement(&m); err != nil {
		if strings.Contains(err.Error(), "not found") {
			response.FailWithMessage(c.Ctx, code.ErrSensorNotFound, err.Error(), nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to create measurement: "+err.Error(), nil)
		return
	}

	response.Created(c.Ctx, m)
}

// 3. DeleteMeasurement 删除测量记录
// @Summary 删除测量记录
// @Description 删除单条测量记录，id不存在时为幂等空操作
// @Tags Measurement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "测量记录ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /measurements/{id} [delete]
func (c *MeasurementController) DeleteMeasurement() {
	id, err := parseIDParam(c.Ctx)
	if err != nil {
		response.ParamError(c.Ctx, "invalid measurement id")
		return
	}

	measurementService := c.Container.GetService("measurement").(services.InterfaceMeasurementService)
	deleted, err := measurementService.DeleteMeasurement(id)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to delete measurement: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"deleted": deleted})
}

// 4. ExportMeasurements 导出测量记录
// @Summary 导出测量记录
// @Description 按当前查询条件将测量记录导出为xlsx文件
// @Tags Measurement
// @Accept json
// @Produce application/octet-stream
// @Security BearerAuth
// @Param sort query string false "排序列，默认-timestamp"
// @Param limit query int false "导出条数，默认100"
// @Param sensor_id query int false "按传感器过滤"
// @Success 200 {file} binary
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /measurements/export [get]
func (c *MeasurementController) ExportMeasurements() {
	q, err := c.bindQuery()
	if err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	measurementService := c.Container.GetService("measurement").(services.InterfaceMeasurementService)
	data, err := measurementService.ExportMeasurements(q)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to export measurements: "+err.Error(), nil)
		return
	}

	filename := fmt.Sprintf("measurements_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Ctx.Header("Content-Disposition", "attachment; filename="+filename)
	c.Ctx.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
