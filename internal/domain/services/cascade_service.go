package services

import (
	"fmt"

	"gorm.io/gorm"

	"smart-campus-service/internal/domain/models"
	"smart-campus-service/internal/infrastructure/config"
)

// CascadeRoot 级联删除的根实体类型
type CascadeRoot string

const (
	CascadeRootBuilding CascadeRoot = "building"
	CascadeRootFloor    CascadeRoot = "floor"
	CascadeRootMap      CascadeRoot = "map"
	CascadeRootSensor   CascadeRoot = "sensor"
)

// CascadeSummary 级联删除的分类计数结果
type CascadeSummary struct {
	Buildings         int64 `json:"buildings"`
	Floors            int64 `json:"floors"`
	Maps              int64 `json:"maps"`
	Sensors           int64 `json:"sensors"`
	Plants            int64 `json:"plants"`
	Measurements      int64 `json:"measurements"`
	WateringSchedules int64 `json:"watering_schedules"`
}

// CleanupSummary 孤儿数据清理的分类计数结果
type CleanupSummary struct {
	OrphanedMeasurements int64 `json:"orphaned_measurements"`
	OrphanedSchedules    int64 `json:"orphaned_watering_schedules"`
	DetachedPlants       int64 `json:"detached_plants"`
	OrphanedMaps         int64 `json:"orphaned_maps"`
	OrphanedSensors      int64 `json:"orphaned_sensors"`
}

// InterfaceCascadeService 定义级联删除服务接口
type InterfaceCascadeService interface {
	DeleteCascade(root CascadeRoot, id uint) (*CascadeSummary, error)
	CleanupOrphanedData() (*CleanupSummary, error)
}

// CascadeService 按所有权图 Building→Floor→Map→Sensor→Plant→{Measurement,
// WateringSchedule} 计算删除闭包并在单个事务内按依赖顺序删除。
// 四种根类型共用同一段闭包计算，避免各实体删除路径各写一份而产生漂移。
type CascadeService struct {
	DB     *gorm.DB
	Config *config.Config

	// 每个删除阶段后调用，仅测试用来注入失败
	afterStage func(tx *gorm.DB, stage string) error
}

// NewCascadeService 创建一个新的级联删除服务
func NewCascadeService(db *gorm.DB, cfg *config.Config) InterfaceCascadeService {
	return &CascadeService{
		DB:     db,
		Config: cfg,
	}
}

// cascadeClosure 一次级联删除涉及的全部实体ID集合
type cascadeClosure struct {
	buildingID uint
	hasRoot    bool
	floorIDs   []uint
	mapIDs     []uint
	sensorIDs  []uint
	plantIDs   []uint
}

// 1. DeleteCascade 删除根实体及所有将成为孤儿的下属行，返回分类计数。
// 删除不存在的ID是合法的幂等空操作，返回全零计数。
func (s *CascadeService) DeleteCascade(root CascadeRoot, id uint) (*CascadeSummary, error) {
	summary := &CascadeSummary{}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		closure, err := s.collectClosure(tx, root, id)
		if err != nil {
			return err
		}

		// 子先于父，事实行先于其结构所有者
		if len(closure.sensorIDs) > 0 {
			res := tx.Where("sensor_id IN ?", closure.sensorIDs).Delete(&models.Measurement{})
			if res.Error != nil {
				return res.Error
			}
			summary.Measurements = res.RowsAffected
		}
		if err := s.stageDone(tx, "measurements"); err != nil {
			return err
		}

		if len(closure.plantIDs) > 0 {
			res := tx.Where("plant_id IN ?", closure.plantIDs).Delete(&models.WateringSchedule{})
			if res.Error != nil {
				return res.Error
			}
			summary.WateringSchedules = res.RowsAffected

			res = tx.Where("id IN ?", closure.plantIDs).Delete(&models.Plant{})
			if res.Error != nil {
				return res.Error
			}
			summary.Plants = res.RowsAffected
		}
		if err := s.stageDone(tx, "plants"); err != nil {
			return err
		}

		if len(closure.sensorIDs) > 0 {
			res := tx.Where("id IN ?", closure.sensorIDs).Delete(&models.Sensor{})
			if res.Error != nil {
				return res.Error
			}
			summary.Sensors = res.RowsAffected
		}
		if err := s.stageDone(tx, "sensors"); err != nil {
			return err
		}

		if len(closure.mapIDs) > 0 {
			res := tx.Where("id IN ?", closure.mapIDs).Delete(&models.Map{})
			if res.Error != nil {
				return res.Error
			}
			summary.Maps = res.RowsAffected
		}

		if len(closure.floorIDs) > 0 {
			res := tx.Where("id IN ?", closure.floorIDs).Delete(&models.Floor{})
			if res.Error != nil {
				return res.Error
			}
			summary.Floors = res.RowsAffected
		}

		if closure.hasRoot && root == CascadeRootBuilding {
			res := tx.Delete(&models.Building{}, closure.buildingID)
			if res.Error != nil {
				return res.Error
			}
			summary.Buildings = res.RowsAffected
		}

		return s.stageDone(tx, "root")
	})
	if err != nil {
		return nil, err
	}

	return summary, nil
}

// collectClosure 计算根实体的删除闭包
func (s *CascadeService) collectClosure(tx *gorm.DB, root CascadeRoot, id uint) (*cascadeClosure, error) {
	closure := &cascadeClosure{}

	switch root {
	case CascadeRootBuilding:
		var count int64
		if err := tx.Model(&models.Building{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, err
		}
		closure.buildingID = id
		closure.hasRoot = count > 0

		if err := tx.Model(&models.Floor{}).Where("building_id = ?", id).Pluck("id", &closure.floorIDs).Error; err != nil {
			return nil, err
		}
		if len(closure.floorIDs) > 0 {
			if err := tx.Model(&models.Map{}).Where("floor_id IN ?", closure.floorIDs).Pluck("id", &closure.mapIDs).Error; err != nil {
				return nil, err
			}
		}

		// 直接挂在楼宇上的传感器与通过地图挂载的传感器取并集
		var direct []uint
		if err := tx.Model(&models.Sensor{}).Where("building_id = ?", id).Pluck("id", &direct).Error; err != nil {
			return nil, err
		}
		closure.sensorIDs = direct
		if len(closure.mapIDs) > 0 {
			var viaMap []uint
			if err := tx.Model(&models.Sensor{}).Where("map_id IN ?", closure.mapIDs).Pluck("id", &viaMap).Error; err != nil {
				return nil, err
			}
			closure.sensorIDs = dedupeIDs(append(closure.sensorIDs, viaMap...))
		}

	case CascadeRootFloor:
		var count int64
		if err := tx.Model(&models.Floor{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			closure.floorIDs = []uint{id}
		}

		if err := tx.Model(&models.Map{}).Where("floor_id = ?", id).Pluck("id", &closure.mapIDs).Error; err != nil {
			return nil, err
		}

		var direct []uint
		if err := tx.Model(&models.Sensor{}).Where("floor_id = ?", id).Pluck("id", &direct).Error; err != nil {
			return nil, err
		}
		closure.sensorIDs = direct
		if len(closure.mapIDs) > 0 {
			var viaMap []uint
			if err := tx.Model(&models.Sensor{}).Where("map_id IN ?", closure.mapIDs).Pluck("id", &viaMap).Error; err != nil {
				return nil, err
			}
			closure.sensorIDs = dedupeIDs(append(closure.sensorIDs, viaMap...))
		}

	case CascadeRootMap:
		var count int64
		if err := tx.Model(&models.Map{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			closure.mapIDs = []uint{id}
		}
		if err := tx.Model(&models.Sensor{}).Where("map_id = ?", id).Pluck("id", &closure.sensorIDs).Error; err != nil {
			return nil, err
		}

	case CascadeRootSensor:
		var count int64
		if err := tx.Model(&models.Sensor{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			closure.sensorIDs = []uint{id}
		}

	default:
		return nil, fmt.Errorf("unknown cascade root type: %s", root)
	}

	if len(closure.sensorIDs) > 0 {
		if err := tx.Model(&models.Plant{}).Where("sensor_id IN ?", closure.sensorIDs).Pluck("id", &closure.plantIDs).Error; err != nil {
			return nil, err
		}
	}

	return closure, nil
}

// 2. CleanupOrphanedData 清理历史数据漂移产生的孤儿行，可重复安全执行。
// 孤儿地图（楼层已删）和孤儿传感器（地图已删）连同其下属行一起删除，
// 否则第一次清理会制造出第二次才发现的新孤儿；指向已删传感器的植物
// 仅解除关联，植物本身保留。
func (s *CascadeService) CleanupOrphanedData() (*CleanupSummary, error) {
	summary := &CleanupSummary{}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// 地图的楼层已不存在：删除地图及其挂载的传感器子树
		var orphanMapIDs []uint
		if err := tx.Model(&models.Map{}).
			Where("floor_id IS NOT NULL AND floor_id NOT IN (?)", tx.Model(&models.Floor{}).Select("id")).
			Pluck("id", &orphanMapIDs).Error; err != nil {
			return err
		}
		if len(orphanMapIDs) > 0 {
			var sensorIDs []uint
			if err := tx.Model(&models.Sensor{}).Where("map_id IN ?", orphanMapIDs).Pluck("id", &sensorIDs).Error; err != nil {
				return err
			}
			n, err := s.deleteSensorSubtree(tx, sensorIDs)
			if err != nil {
				return err
			}
			summary.OrphanedSensors += n

			res := tx.Where("id IN ?", orphanMapIDs).Delete(&models.Map{})
			if res.Error != nil {
				return res.Error
			}
			summary.OrphanedMaps = res.RowsAffected
		}

		// 传感器的地图已不存在：删除传感器子树
		var orphanSensorIDs []uint
		if err := tx.Model(&models.Sensor{}).
			Where("map_id IS NOT NULL AND map_id NOT IN (?)", tx.Model(&models.Map{}).Select("id")).
			Pluck("id", &orphanSensorIDs).Error; err != nil {
			return err
		}
		n, err := s.deleteSensorSubtree(tx, orphanSensorIDs)
		if err != nil {
			return err
		}
		summary.OrphanedSensors += n

		// 残留的孤儿事实行
		res := tx.Where("sensor_id NOT IN (?)", tx.Model(&models.Sensor{}).Select("id")).
			Delete(&models.Measurement{})
		if res.Error != nil {
			return res.Error
		}
		summary.OrphanedMeasurements = res.RowsAffected

		res = tx.Where("plant_id NOT IN (?)", tx.Model(&models.Plant{}).Select("id")).
			Delete(&models.WateringSchedule{})
		if res.Error != nil {
			return res.Error
		}
		summary.OrphanedSchedules = res.RowsAffected

		res = tx.Model(&models.Plant{}).
			Where("sensor_id IS NOT NULL AND sensor_id NOT IN (?)", tx.Model(&models.Sensor{}).Select("id")).
			Update("sensor_id", nil)
		if res.Error != nil {
			return res.Error
		}
		summary.DetachedPlants = res.RowsAffected

		return nil
	})
	if err != nil {
		return nil, err
	}

	return summary, nil
}

// deleteSensorSubtree 删除一组传感器及其测量、植物和浇水记录，返回删除的传感器数
func (s *CascadeService) deleteSensorSubtree(tx *gorm.DB, sensorIDs []uint) (int64, error) {
	if len(sensorIDs) == 0 {
		return 0, nil
	}

	if err := tx.Where("sensor_id IN ?", sensorIDs).Delete(&models.Measurement{}).Error; err != nil {
		return 0, err
	}

	var plantIDs []uint
	if err := tx.Model(&models.Plant{}).Where("sensor_id IN ?", sensorIDs).Pluck("id", &plantIDs).Error; err != nil {
		return 0, err
	}
	if len(plantIDs) > 0 {
		if err := tx.Where("plant_id IN ?", plantIDs).Delete(&models.WateringSchedule{}).Error; err != nil {
			return 0, err
		}
		if err := tx.Where("id IN ?", plantIDs).Delete(&models.Plant{}).Error; err != nil {
			return 0, err
		}
	}

	res := tx.Where("id IN ?", sensorIDs).Delete(&models.Sensor{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// stageDone 阶段钩子，正常运行为空操作
func (s *CascadeService) stageDone(tx *gorm.DB, stage string) error {
	if s.afterStage == nil {
		return nil
	}
	return s.afterStage(tx, stage)
}

// dedupeIDs 去重并保持首次出现顺序
func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
