package services

import (
	"strings"

	"gorm.io/gorm"

	"smart-campus-service/internal/domain/models"
	"smart-campus-service/internal/infrastructure/config"
)

// BreadcrumbSeparator 位置面包屑的分隔符
const BreadcrumbSeparator = " › "

// LocationUnassigned 无法解析位置时的哨兵值
const LocationUnassigned = "Unassigned"

// LocationSource tells which path a sensor's location was resolved through
type LocationSource string

const (
	LocationSourceDirect     LocationSource = "direct"
	LocationSourceViaMap     LocationSource = "via_map"
	LocationSourceUnassigned LocationSource = "unassigned"
)

// SensorLocation 传感器的规范位置：用于展示的面包屑和用于过滤/级联的规范ID
type SensorLocation struct {
	Breadcrumb string         `json:"location"`
	BuildingID *uint          `json:"building_id,omitempty"`
	FloorID    *uint          `json:"floor_id,omitempty"`
	Source     LocationSource `json:"location_source"`
}

// LocationIndex 按ID索引的楼宇/楼层/地图快照，使解析为O(1)查找。
// 所有ID统一为uint，避免字符串与数字ID混用造成的查找失败。
type LocationIndex struct {
	Buildings map[uint]models.Building
	Floors    map[uint]models.Floor
	Maps      map[uint]models.Map
}

// InterfaceLocationService 定义位置解析服务接口
type InterfaceLocationService interface {
	BuildIndex() (*LocationIndex, error)
	Resolve(sensor *models.Sensor, index *LocationIndex) SensorLocation
}

// LocationService 提供传感器位置解析服务
type LocationService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewLocationService 创建一个新的位置解析服务
func NewLocationService(db *gorm.DB, cfg *config.Config) InterfaceLocationService {
	return &LocationService{
		DB:     db,
		Config: cfg,
	}
}

// 1. BuildIndex 加载当前全部楼宇/楼层/地图并建立ID索引
func (s *LocationService) BuildIndex() (*LocationIndex, error) {
	index := &LocationIndex{
		Buildings: make(map[uint]models.Building),
		Floors:    make(map[uint]models.Floor),
		Maps:      make(map[uint]models.Map),
	}

	var buildings []models.Building
	if err := s.DB.Find(&buildings).Error; err != nil {
		return nil, err
	}
	for _, b := range buildings {
		index.Buildings[b.ID] = b
	}

	var floors []models.Floor
	if err := s.DB.Find(&floors).Error; err != nil {
		return nil, err
	}
	for _, f := range floors {
		index.Floors[f.ID] = f
	}

	var maps []models.Map
	if err := s.DB.Select("id", "name", "building_id", "floor_id").Find(&maps).Error; err != nil {
		return nil, err
	}
	for _, m := range maps {
		index.Maps[m.ID] = m
	}

	return index, nil
}

// 2. Resolve 解析传感器的有效位置。纯函数，无副作用。
// 优先使用直接指定的 building_id/floor_id；否则沿
// map_id → map.floor_id → floor.building_id 链解析；都没有则返回哨兵值。
func (s *LocationService) Resolve(sensor *models.Sensor, index *LocationIndex) SensorLocation {
	// 直接指定路径
	if sensor.BuildingID != nil {
		loc := SensorLocation{Source: LocationSourceDirect}
		var parts []string

		if b, ok := index.Buildings[*sensor.BuildingID]; ok {
			id := b.ID
			loc.BuildingID = &id
			parts = append(parts, b.Name)
		}
		if sensor.FloorID != nil {
			if f, ok := index.Floors[*sensor.FloorID]; ok {
				id := f.ID
				loc.FloorID = &id
				parts = append(parts, f.Name)
			}
		}
		if sensor.RoomID != "" {
			parts = append(parts, sensor.RoomID)
		}

		loc.Breadcrumb = joinBreadcrumb(parts)
		return loc
	}

	// 地图派生路径
	if sensor.MapID != nil {
		if m, ok := index.Maps[*sensor.MapID]; ok && m.FloorID != nil {
			if f, ok := index.Floors[*m.FloorID]; ok {
				loc := SensorLocation{Source: LocationSourceViaMap}
				var parts []string

				if b, ok := index.Buildings[f.BuildingID]; ok {
					id := b.ID
					loc.BuildingID = &id
					parts = append(parts, b.Name)
				}
				floorID := f.ID
				loc.FloorID = &floorID
				parts = append(parts, f.Name)
				if sensor.RoomID != "" {
					parts = append(parts, sensor.RoomID)
				}

				loc.Breadcrumb = joinBreadcrumb(parts)
				return loc
			}
		}
	}

	return SensorLocation{
		Breadcrumb: LocationUnassigned,
		Source:     LocationSourceUnassigned,
	}
}

// joinBreadcrumb 拼接面包屑，跳过空段
func joinBreadcrumb(parts []string) string {
	nonEmpty := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	if len(nonEmpty) == 0 {
		return LocationUnassigned
	}
	return strings.Join(nonEmpty, BreadcrumbSeparator)
}
