package services

import (
	"fmt"

	"gorm.io/gorm"

	"smart-campus-service/internal/domain/models"
	"smart-campus-service/internal/infrastructure/config"
)

// ScheduleQuery 浇水记录查询参数
type ScheduleQuery struct {
	Sort  string
	Limit int
}

// 可用于排序的列白名单
var scheduleSortColumns = map[string]bool{
	"created_date":     true,
	"duration_minutes": true,
	"id":               true,
}

// InterfaceWateringScheduleService 定义浇水记录服务接口
type InterfaceWateringScheduleService interface {
	GetWateringSchedules(q ScheduleQuery) ([]models.WateringSchedule, error)
	CreateWateringSchedule(ws *models.WateringSchedule) error
}

// WateringScheduleService 提供浇水历史记录服务，记录为只追加日志
type WateringScheduleService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewWateringScheduleService 创建一个新的浇水记录服务
func NewWateringScheduleService(db *gorm.DB, cfg *config.Config) InterfaceWateringScheduleService {
	return &WateringScheduleService{
		DB:     db,
		Config: cfg,
	}
}

// 1. GetWateringSchedules 查询浇水记录，支持排序和条数限制
func (s *WateringScheduleService) GetWateringSchedules(q ScheduleQuery) ([]models.WateringSchedule, error) {
	col, order := parseSortParam(q.Sort, "created_date")
	if !scheduleSortColumns[col] {
		col = "created_date"
	}

	limit := q.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	var schedules []models.WateringSchedule
	if err := s.DB.Order(col + " " + order).Limit(limit).Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

// 2. CreateWateringSchedule 追加一条浇水记录，所属植物须存在
func (s *WateringScheduleService) CreateWateringSchedule(ws *models.WateringSchedule) error {
	var count int64
	if err := s.DB.Model(&models.Plant{}).Where("id = ?", ws.PlantID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("plant %d not found", ws.PlantID)
	}

	if ws.TriggerType == "" {
		ws.TriggerType = models.TriggerTypeManual
	}
	if ws.TriggeredBy == "" {
		ws.TriggeredBy = "user"
	}
	if ws.DurationMinutes == 0 {
		ws.DurationMinutes = 5
	}

	return s.DB.Create(ws).Error
}
