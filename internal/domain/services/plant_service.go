package services

import (
	"errors"

	"gorm.io/gorm"

	"smart-campus-service/internal/domain/models"
	"smart-campus-service/internal/infrastructure/config"
)

// InterfacePlantService 定义植物服务接口
type InterfacePlantService interface {
	GetAllPlants() ([]models.Plant, error)
	GetPlantByID(id uint) (*models.Plant, error)
	CreatePlant(plant *models.Plant) error
	UpdatePlant(id uint, updates map[string]interface{}) (*models.Plant, error)
}

// PlantService 提供植物相关的服务
type PlantService struct {
	DB     *gorm.DB
	Config *config.Config
}

// 可通过更新接口修改的字段白名单
var plantUpdatableFields = map[string]bool{
	"species":              true,
	"sensor_id":            true,
	"watering_threshold":   true,
	"last_watered":         true,
	"location_description": true,
	"notes":                true,
}

// NewPlantService 创建一个新的植物服务
func NewPlantService(db *gorm.DB, cfg *config.Config) InterfacePlantService {
	return &PlantService{
		DB:     db,
		Config: cfg,
	}
}

// 1. GetAllPlants 获取所有植物列表
func (s *PlantService) GetAllPlants() ([]models.Plant, error) {
	var plants []models.Plant
	if err := s.DB.Find(&plants).Error; err != nil {
		return nil, err
	}
	return plants, nil
}

// 2. GetPlantByID 根据ID获取植物
func (s *PlantService) GetPlantByID(id uint) (*models.Plant, error) {
	var plant models.Plant
	if err := s.DB.First(&plant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("plant not found")
		}
		return nil, err
	}
	return &plant, nil
}

// 3. CreatePlant 创建新植物，关联的传感器须存在
func (s *PlantService) CreatePlant(plant *models.Plant) error {
	if plant.SensorID != nil {
		var count int64
		if err := s.DB.Model(&models.Sensor{}).Where("id = ?", *plant.SensorID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errors.New("sensor not found")
		}
	}

	if plant.WateringThreshold == 0 {
		plant.WateringThreshold = 30
	}

	return s.DB.Create(plant).Error
}

// 4. UpdatePlant 更新植物信息，仅白名单字段生效
func (s *PlantService) UpdatePlant(id uint, updates map[string]interface{}) (*models.Plant, error) {
	plant, err := s.GetPlantByID(id)
	if err != nil {
		return nil, err
	}

	filtered := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		if plantUpdatableFields[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return plant, nil
	}

	if err := s.DB.Model(plant).Updates(filtered).Error; err != nil {
		return nil, err
	}

	return s.GetPlantByID(id)
}
