package services

import (
	"errors"

	"gorm.io/gorm"

	"smart-campus-service/internal/domain/models"
	"smart-campus-service/internal/infrastructure/config"
)

// InterfaceBuildingService 定义楼宇服务接口
type InterfaceBuildingService interface {
	GetAllBuildings(page, pageSize int) ([]models.Building, int64, error)
	GetBuildingByID(id uint) (*models.Building, error)
	CreateBuilding(building *models.Building) error
	UpdateBuilding(id uint, updates map[string]interface{}) (*models.Building, error)
	DeleteBuilding(id uint) (*CascadeSummary, error)
	GetBuildingFloors(buildingID uint) ([]models.Floor, error)
}

// BuildingService 提供楼宇相关的服务
type BuildingService struct {
	DB      *gorm.DB
	Config  *config.Config
	Cascade InterfaceCascadeService
}

// 可通过更新接口修改的字段白名单，slug只能由名称派生
var buildingUpdatableFields = map[string]bool{
	"name":        true,
	"address":     true,
	"description": true,
}

// NewBuildingService 创建一个新的楼宇服务
func NewBuildingService(db *gorm.DB, cfg *config.Config, cascade InterfaceCascadeService) InterfaceBuildingService {
	return &BuildingService{
		DB:      db,
		Config:  cfg,
		Cascade: cascade,
	}
}

// 1. GetAllBuildings 获取所有楼宇列表，支持分页
func (s *BuildingService) GetAllBuildings(page, pageSize int) ([]models.Building, int64, error) {
	var buildings []models.Building
	var total int64

	// 获取总数
	if err := s.DB.Model(&models.Building{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询
	offset := (page - 1) * pageSize
	if err := s.DB.Limit(pageSize).Offset(offset).Find(&buildings).Error; err != nil {
		return nil, 0, err
	}

	return buildings, total, nil
}

// 2. GetBuildingByID 根据ID获取楼宇
func (s *BuildingService) GetBuildingByID(id uint) (*models.Building, error) {
	var building models.Building
	if err := s.DB.First(&building, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("building not found")
		}
		return nil, err
	}
	return &building, nil
}

// 3. CreateBuilding 创建新楼宇，slug唯一性在写入前检查
func (s *BuildingService) CreateBuilding(building *models.Building) error {
	building.Slug = models.MakeSlug(building.Name)

	var count int64
	if err := s.DB.Model(&models.Building{}).Where("slug = ?", building.Slug).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("building with name \"" + building.Name + "\" already exists")
	}

	return s.DB.Create(building).Error
}

// 4. UpdateBuilding 更新楼宇信息，仅白名单字段生效
func (s *BuildingService) UpdateBuilding(id uint, updates map[string]interface{}) (*models.Building, error) {
	building, err := s.GetBuildingByID(id)
	if err != nil {
		return nil, err
	}

	filtered := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		if buildingUpdatableFields[k] {
			filtered[k] = v
		}
	}

	// 更新名称时重新派生slug并检查唯一性
	if name, ok := filtered["name"].(string); ok {
		slug := models.MakeSlug(name)
		if slug != building.Slug {
			var count int64
			if err := s.DB.Model(&models.Building{}).Where("slug = ? AND id != ?", slug, id).Count(&count).Error; err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, errors.New("building with name \"" + name + "\" already exists")
			}
		}
		filtered["slug"] = slug
	}

	if len(filtered) == 0 {
		return building, nil
	}

	if err := s.DB.Model(building).Updates(filtered).Error; err != nil {
		return nil, err
	}

	// 重新获取更新后的楼宇信息
	return s.GetBuildingByID(id)
}

// 5. DeleteBuilding 级联删除楼宇及其全部下属实体
func (s *BuildingService) DeleteBuilding(id uint) (*CascadeSummary, error) {
	return s.Cascade.DeleteCascade(CascadeRootBuilding, id)
}

// 6. GetBuildingFloors 获取楼宇下的楼层
func (s *BuildingService) GetBuildingFloors(buildingID uint) ([]models.Floor, error) {
	// 检查楼宇是否存在
	if _, err := s.GetBuildingByID(buildingID); err != nil {
		return nil, err
	}

	var floors []models.Floor
	if err := s.DB.Where("building_id = ?", buildingID).Order("level").Find(&floors).Error; err != nil {
		return nil, err
	}

	return floors, nil
}
