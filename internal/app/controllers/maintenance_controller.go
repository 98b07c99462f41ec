package controllers

import (
	"github.com/gin-gonic/gin"

	"smart-campus-service/internal/domain/services"
	"smart-campus-service/internal/domain/services/container"
	"smart-campus-service/internal/error/code"
	"smart-campus-service/internal/error/response"
	"smart-campus-service/pkg/logger"
)

// MaintenanceController 处理数据维护相关的请求
type MaintenanceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewMaintenanceController 创建一个新的数据维护控制器
func NewMaintenanceController(ctx *gin.Context, container *container.ServiceContainer) *MaintenanceController {
	return &MaintenanceController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleMaintenanceFunc 返回一个处理数据维护请求的Gin处理函数
func HandleMaintenanceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewMaintenanceController(ctx, container)

		switch method {
		case "cleanupOrphanedData":
			controller.CleanupOrphanedData()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// 1. CleanupOrphanedData 清理孤儿数据
// @Summary 清理孤儿数据
// @Description 在单个事务内清理悬挂的测量记录、浇水记录、地图和传感器，
// @Description 解除植物对已删除传感器的引用；幂等，重复调用第二次计数为零
// @Tags Maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} response.Response
// @Router /cleanup-orphaned-data [post]
func (c *MaintenanceController) CleanupOrphanedData() {
	cascadeService := c.Container.GetService("cascade").(services.InterfaceCascadeService)
	summary, err := cascadeService.CleanupOrphanedData()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "failed to cleanup orphaned data: "+err.Error(), nil)
		return
	}

	logger.Info("orphan cleanup: measurements=%d schedules=%d plants_detached=%d maps=%d sensors=%d",
		summary.OrphanedMeasurements, summary.OrphanedSchedules, summary.DetachedPlants,
		summary.OrphanedMaps, summary.OrphanedSensors)

	response.Success(c.Ctx, summary)
}
