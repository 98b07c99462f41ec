package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"smart-campus-service/internal/domain/models"
	"smart-campus-service/internal/infrastructure/config"
)

// DefaultPlacementPercent 地图变更但未提供新坐标时的缺省位置（地图中心）
const DefaultPlacementPercent = 50.0

// SensorUpdate 传感器更新载荷，nil字段表示不修改。
// 地图放置相关字段成组处理，见 UpdateSensor。
type SensorUpdate struct {
	SerialNumber *string              `json:"serial_number"`
	Model        *string              `json:"model"`
	Manufacturer *string              `json:"manufacturer"`
	Type         *models.SensorType   `json:"type"`
	Name         *string              `json:"name"`
	Unit         *string              `json:"unit"`
	Status       *models.SensorStatus `json:"status"`
	BuildingID   *uint                `json:"building_id"`
	FloorID      *uint                `json:"floor_id"`
	RoomID       *string              `json:"room_id"`
	MapID        *uint                `json:"map_id"`
	XPercent     *float64             `json:"x_percent"`
	YPercent     *float64             `json:"y_percent"`
}

// InterfaceSensorService 定义传感器服务接口
type InterfaceSensorService interface {
	GetAllSensors(mapID *uint) ([]models.Sensor, error)
	GetSensorByID(id uint) (*models.Sensor, error)
	CreateSensor(sensor *models.Sensor) error
	UpdateSensor(id uint, update *SensorUpdate) (*models.Sensor, error)
	DeleteSensor(id uint) (*CascadeSummary, error)
}

// SensorService 提供传感器相关的服务
type SensorService struct {
	DB      *gorm.DB
	Config  *config.Config
	Cascade InterfaceCascadeService
}

// NewSensorService 创建一个新的传感器服务
func NewSensorService(db *gorm.DB, cfg *config.Config, cascade InterfaceCascadeService) InterfaceSensorService {
	return &SensorService{
		DB:      db,
		Config:  cfg,
		Cascade: cascade,
	}
}

// 1. GetAllSensors 获取传感器列表，可按地图过滤
func (s *SensorService) GetAllSensors(mapID *uint) ([]models.Sensor, error) {
	var sensors []models.Sensor
	query := s.DB
	if mapID != nil {
		query = query.Where("map_id = ?", *mapID)
	}
	if err := query.Find(&sensors).Error; err != nil {
		return nil, err
	}
	return sensors, nil
}

// 2. GetSensorByID 根据ID获取传感器
func (s *SensorService) GetSensorByID(id uint) (*models.Sensor, error) {
	var sensor models.Sensor
	if err := s.DB.First(&sensor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("sensor not found")
		}
		return nil, err
	}
	return &sensor, nil
}

// 3. CreateSensor 创建新传感器。
// 两种互斥的位置意图：直接指定 building/floor/room，或放置到地图上。
// 地图放置时 building_id/floor_id 在写入时从地图所属楼层复制而来
// （而非引用），这样地图日后改挂到别的楼层也不影响已放置的传感器。
func (s *SensorService) CreateSensor(sensor *models.Sensor) error {
	if sensor.Name != "" {
		if err := s.checkNameUnique(sensor.Name, 0); err != nil {
			return err
		}
	}

	// 旧像素坐标字段已废弃，只读
	sensor.XCoord = nil
	sensor.YCoord = nil

	if sensor.MapID != nil {
		if err := s.applyMapPlacement(sensor, *sensor.MapID, sensor.XPercent, sensor.YPercent); err != nil {
			return err
		}
	} else {
		sensor.XPercent = nil
		sensor.YPercent = nil
	}

	if sensor.Status == "" {
		sensor.Status = models.SensorStatusActive
	}

	return s.DB.Create(sensor).Error
}

// 4. UpdateSensor 更新传感器。
// 更换地图（移动）需要重新从新地图派生 building/floor 并重新取坐标；
// 只换地图没给坐标时落回地图中心 (50, 50)。
func (s *SensorService) UpdateSensor(id uint, update *SensorUpdate) (*models.Sensor, error) {
	sensor, err := s.GetSensorByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil && *update.Name != sensor.Name {
		if err := s.checkNameUnique(*update.Name, id); err != nil {
			return nil, err
		}
		sensor.Name = *update.Name
	}
	if update.SerialNumber != nil {
		sensor.SerialNumber = *update.SerialNumber
	}
	if update.Model != nil {
		sensor.Model = *update.Model
	}
	if update.Manufacturer != nil {
		sensor.Manufacturer = *update.Manufacturer
	}
	if update.Type != nil {
		sensor.Type = *update.Type
	}
	if update.Unit != nil {
		sensor.Unit = *update.Unit
	}
	if update.Status != nil {
		sensor.Status = *update.Status
	}
	if update.RoomID != nil {
		sensor.RoomID = *update.RoomID
	}

	switch {
	case update.MapID != nil:
		// 地图放置（或移动）：坐标未提供时使用地图中心
		if err := s.applyMapPlacement(sensor, *update.MapID, update.XPercent, update.YPercent); err != nil {
			return nil, err
		}
	case update.XPercent != nil || update.YPercent != nil:
		// 在当前地图上重新放置
		if sensor.MapID == nil {
			return nil, errors.New("sensor has no map to place coordinates on")
		}
		if err := s.applyMapPlacement(sensor, *sensor.MapID, update.XPercent, update.YPercent); err != nil {
			return nil, err
		}
	case update.BuildingID != nil:
		// 直接指定位置：清除地图放置
		sensor.BuildingID = update.BuildingID
		sensor.FloorID = update.FloorID
		sensor.MapID = nil
		sensor.XPercent = nil
		sensor.YPercent = nil
	}

	if err := s.DB.Save(sensor).Error; err != nil {
		return nil, err
	}
	return sensor, nil
}

// 5. DeleteSensor 级联删除传感器及其测量、植物和浇水记录
func (s *SensorService) DeleteSensor(id uint) (*CascadeSummary, error) {
	return s.Cascade.DeleteCascade(CascadeRootSensor, id)
}

// applyMapPlacement 执行地图放置：校验坐标范围，复制地图楼层的
// building/floor 到传感器，缺省坐标为地图中心。
func (s *SensorService) applyMapPlacement(sensor *models.Sensor, mapID uint, x, y *float64) error {
	var m models.Map
	if err := s.DB.Select("id", "building_id", "floor_id").First(&m, mapID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("map not found")
		}
		return err
	}

	if x == nil {
		v := DefaultPlacementPercent
		x = &v
	}
	if y == nil {
		v := DefaultPlacementPercent
		y = &v
	}
	if *x < 0 || *x > 100 || *y < 0 || *y > 100 {
		return fmt.Errorf("coordinates (%.2f, %.2f) out of range: percentages must be between 0 and 100", *x, *y)
	}

	sensor.MapID = &m.ID
	sensor.XPercent = x
	sensor.YPercent = y

	// 从地图的楼层继承位置（复制值）
	if m.FloorID != nil {
		var floor models.Floor
		if err := s.DB.Select("id", "building_id").First(&floor, *m.FloorID).Error; err == nil {
			floorID := floor.ID
			buildingID := floor.BuildingID
			sensor.FloorID = &floorID
			sensor.BuildingID = &buildingID
		}
	} else if m.BuildingID != nil {
		sensor.BuildingID = m.BuildingID
		sensor.FloorID = nil
	}

	return nil
}

// checkNameUnique 传感器名称全局唯一
func (s *SensorService) checkNameUnique(name string, excludeID uint) error {
	var count int64
	query := s.DB.Model(&models.Sensor{}).Where("name = ?", name)
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("sensor with name %q already exists", name)
	}
	return nil
}
