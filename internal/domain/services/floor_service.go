package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"smart-campus-service/internal/domain/models"
	"smart-campus-service/internal/infrastructure/config"
)

// InterfaceFloorService 定义楼层服务接口
type InterfaceFloorService interface {
	GetAllFloors(page, pageSize int) ([]models.Floor, int64, error)
	GetFloorByID(id uint) (*models.Floor, error)
	CreateFloor(floor *models.Floor) error
	UpdateFloor(id uint, updates map[string]interface{}) (*models.Floor, error)
	DeleteFloor(id uint) (*CascadeSummary, error)
}

// FloorService 提供楼层相关的服务
type FloorService struct {
	DB      *gorm.DB
	Config  *config.Config
	Cascade InterfaceCascadeService
}

// 可通过更新接口修改的字段白名单
var floorUpdatableFields = map[string]bool{
	"building_id": true,
	"level":       true,
	"name":        true,
}

// NewFloorService 创建一个新的楼层服务
func NewFloorService(db *gorm.DB, cfg *config.Config, cascade InterfaceCascadeService) InterfaceFloorService {
	return &FloorService{
		DB:      db,
		Config:  cfg,
		Cascade: cascade,
	}
}

// 1. GetAllFloors 获取所有楼层列表，支持分页
func (s *FloorService) GetAllFloors(page, pageSize int) ([]models.Floor, int64, error) {
	var floors []models.Floor
	var total int64

	if err := s.DB.Model(&models.Floor{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := s.DB.Limit(pageSize).Offset(offset).Find(&floors).Error; err != nil {
		return nil, 0, err
	}

	return floors, total, nil
}

// 2. GetFloorByID 根据ID获取楼层
func (s *FloorService) GetFloorByID(id uint) (*models.Floor, error) {
	var floor models.Floor
	if err := s.DB.First(&floor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("floor not found")
		}
		return nil, err
	}
	return &floor, nil
}

// 3. CreateFloor 创建新楼层，(building_id, level)组合唯一
func (s *FloorService) CreateFloor(floor *models.Floor) error {
	// 检查所属楼宇存在
	var buildingCount int64
	if err := s.DB.Model(&models.Building{}).Where("id = ?", floor.BuildingID).Count(&buildingCount).Error; err != nil {
		return err
	}
	if buildingCount == 0 {
		return errors.New("building not found")
	}

	var count int64
	if err := s.DB.Model(&models.Floor{}).
		Where("building_id = ? AND level = ?", floor.BuildingID, floor.Level).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("floor with level %d already exists in this building", floor.Level)
	}

	return s.DB.Create(floor).Error
}

// 4. UpdateFloor 更新楼层信息，仅白名单字段生效，级别变更时重新检查唯一性
func (s *FloorService) UpdateFloor(id uint, updates map[string]interface{}) (*models.Floor, error) {
	floor, err := s.GetFloorByID(id)
	if err != nil {
		return nil, err
	}

	filtered := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		if floorUpdatableFields[k] {
			filtered[k] = v
		}
	}

	// 计算更新后的 (building_id, level) 组合
	buildingID := floor.BuildingID
	if v, ok := filtered["building_id"]; ok {
		switch id := v.(type) {
		case uint:
			buildingID = id
		case float64:
			buildingID = uint(id)
		}
	}
	level := floor.Level
	if v, ok := filtered["level"]; ok {
		switch l := v.(type) {
		case int:
			level = l
		case float64:
			level = int(l)
		}
	}

	if buildingID != floor.BuildingID || level != floor.Level {
		var count int64
		if err := s.DB.Model(&models.Floor{}).
			Where("building_id = ? AND level = ? AND id != ?", buildingID, level, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, fmt.Errorf("floor with level %d already exists in this building", level)
		}
	}

	if len(filtered) == 0 {
		return floor, nil
	}

	if err := s.DB.Model(floor).Updates(filtered).Error; err != nil {
		return nil, err
	}

	return s.GetFloorByID(id)
}

// 5. DeleteFloor 级联删除楼层及其全部下属实体
func (s *FloorService) DeleteFloor(id uint) (*CascadeSummary, error) {
	return s.Cascade.DeleteCascade(CascadeRootFloor, id)
}
