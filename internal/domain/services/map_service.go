package services

import (
	"errors"

	"gorm.io/gorm"

	"smart-campus-service/internal/domain/models"
	"smart-campus-service/internal/infrastructure/config"
)

// MapView 地图的对外展示形式，图片以可直接渲染的data URI暴露
type MapView struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	ImageURL   string `json:"image_url,omitempty"`
	BuildingID *uint  `json:"building_id,omitempty"`
	FloorID    *uint  `json:"floor_id,omitempty"`
}

// InterfaceMapService 定义地图服务接口
type InterfaceMapService interface {
	GetAllMaps() ([]MapView, error)
	GetMapByID(id uint) (*models.Map, error)
	CreateMap(m *models.Map) error
	DeleteMap(id uint) (*CascadeSummary, error)
}

// MapService 提供楼层平面图相关的服务
type MapService struct {
	DB      *gorm.DB
	Config  *config.Config
	Cascade InterfaceCascadeService
}

// NewMapService 创建一个新的地图服务
func NewMapService(db *gorm.DB, cfg *config.Config, cascade InterfaceCascadeService) InterfaceMapService {
	return &MapService{
		DB:      db,
		Config:  cfg,
		Cascade: cascade,
	}
}

// 1. GetAllMaps 获取所有地图列表
func (s *MapService) GetAllMaps() ([]MapView, error) {
	var maps []models.Map
	if err := s.DB.Find(&maps).Error; err != nil {
		return nil, err
	}

	views := make([]MapView, 0, len(maps))
	for _, m := range maps {
		views = append(views, MapView{
			ID:         m.ID,
			Name:       m.Name,
			ImageURL:   m.ImageURL(),
			BuildingID: m.BuildingID,
			FloorID:    m.FloorID,
		})
	}
	return views, nil
}

// 2. GetMapByID 根据ID获取地图
func (s *MapService) GetMapByID(id uint) (*models.Map, error) {
	var m models.Map
	if err := s.DB.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("map not found")
		}
		return nil, err
	}
	return &m, nil
}

// 3. CreateMap 创建新地图。楼宇和楼层归属相互独立、均可为空。
// floor_id 提供时校验楼层存在，并在未显式指定时从楼层补全 building_id。
func (s *MapService) CreateMap(m *models.Map) error {
	if m.BuildingID != nil {
		var count int64
		if err := s.DB.Model(&models.Building{}).Where("id = ?", *m.BuildingID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errors.New("building not found")
		}
	}

	if m.FloorID != nil {
		var floor models.Floor
		if err := s.DB.Select("id", "building_id").First(&floor, *m.FloorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("floor not found")
			}
			return err
		}
		if m.BuildingID == nil {
			buildingID := floor.BuildingID
			m.BuildingID = &buildingID
		}
	}

	return s.DB.Create(m).Error
}

// 4. DeleteMap 级联删除地图及其上放置的传感器子树
func (s *MapService) DeleteMap(id uint) (*CascadeSummary, error) {
	return s.Cascade.DeleteCascade(CascadeRootMap, id)
}
