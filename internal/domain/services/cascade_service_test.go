package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"smart-campus-service/internal/domain/models"
)

func TestDeleteCascadeBuilding(t *testing.T) {
	db := newTestDB(t)
	svc := NewCascadeService(db, testConfig())

	labA := seedCampus(t, db, "Lab A")
	seedCampus(t, db, "Lab B")

	summary, err := svc.DeleteCascade(CascadeRootBuilding, labA.Building.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 1, summary.Buildings)
	assert.EqualValues(t, 1, summary.Floors)
	assert.EqualValues(t, 1, summary.Maps)
	assert.EqualValues(t, 1, summary.Sensors)
	assert.EqualValues(t, 1, summary.Plants)
	assert.EqualValues(t, 1, summary.Measurements)
	assert.EqualValues(t, 1, summary.WateringSchedules)

	// 相邻楼宇完全不受影响
	assert.EqualValues(t, 1, countRows(t, db, &models.Building{}))
	assert.EqualValues(t, 1, countRows(t, db, &models.Floor{}))
	assert.EqualValues(t, 1, countRows(t, db, &models.Map{}))
	assert.EqualValues(t, 1, countRows(t, db, &models.Sensor{}))
	assert.EqualValues(t, 1, countRows(t, db, &models.Plant{}))
	assert.EqualValues(t, 1, countRows(t, db, &models.Measurement{}))
	assert.EqualValues(t, 1, countRows(t, db, &models.WateringSchedule{}))
}

func TestDeleteCascadeSensorUnionDeduplicated(t *testing.T) {
	db := newTestDB(t)
	svc := NewCascadeService(db, testConfig())

	// 传感器既直接挂在楼宇上又放置在该楼宇的地图上，只应计数一次
	c := seedCampus(t, db, "Lab A")

	summary, err := svc.DeleteCascade(CascadeRootBuilding, c.Building.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, summary.Sensors)
}

func TestDeleteCascadeFloorLeavesBuilding(t *testing.T) {
	db := newTestDB(t)
	svc := NewCascadeService(db, testConfig())

	c := seedCampus(t, db, "Lab A")

	summary, err := svc.DeleteCascade(CascadeRootFloor, c.Floor.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 0, summary.Buildings)
	assert.EqualValues(t, 1, summary.Floors)
	assert.EqualValues(t, 1, summary.Maps)
	assert.EqualValues(t, 1, summary.Sensors)
	assert.EqualValues(t, 1, countRows(t, db, &models.Building{}))
	assert.EqualValues(t, 0, countRows(t, db, &models.Floor{}))
}

func TestDeleteCascadeMapTakesPlacedSensors(t *testing.T) {
	db := newTestDB(t)
	svc := NewCascadeService(db, testConfig())

	c := seedCampus(t, db, "Lab A")

	// 同楼层但未放置在地图上的传感器必须幸存
	floorID := c.Floor.ID
	survivor := models.Sensor{Name: "off-map sensor", FloorID: &floorID}
	require.NoError(t, db.Create(&survivor).Error)

	summary, err := svc.DeleteCascade(CascadeRootMap, c.Map.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 1, summary.Maps)
	assert.EqualValues(t, 1, summary.Sensors)
	assert.EqualValues(t, 1, summary.Plants)
	assert.EqualValues(t, 1, summary.Measurements)

	var remaining models.Sensor
	require.NoError(t, db.First(&remaining).Error)
	assert.Equal(t, survivor.ID, remaining.ID)
}

func TestDeleteCascadeSensorRoot(t *testing.T) {
	db := newTestDB(t)
	svc := NewCascadeService(db, testConfig())

	c := seedCampus(t, db, "Lab A")

	summary, err := svc.DeleteCascade(CascadeRootSensor, c.Sensor.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 1, summary.Sensors)
	assert.EqualValues(t, 1, summary.Plants)
	assert.EqualValues(t, 1, summary.Measurements)
	assert.EqualValues(t, 1, summary.WateringSchedules)

	// 结构实体保留
	assert.EqualValues(t, 1, countRows(t, db, &models.Building{}))
	assert.EqualValues(t, 1, countRows(t, db, &models.Floor{}))
	assert.EqualValues(t, 1, countRows(t, db, &models.Map{}))
}

func TestDeleteCascadeMissingIDIsNoop(t *testing.T) {
	db := newTestDB(t)
	svc := NewCascadeService(db, testConfig())

	seedCampus(t, db, "Lab A")

	for _, root := range []CascadeRoot{CascadeRootBuilding, CascadeRootFloor, CascadeRootMap, CascadeRootSensor} {
		summary, err := svc.DeleteCascade(root, 9999)
		require.NoError(t, err)
		assert.Equal(t, &CascadeSummary{}, summary, "root %s", root)
	}

	assert.EqualValues(t, 1, countRows(t, db, &models.Sensor{}))
}

func TestDeleteCascadeRollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	svc := &CascadeService{DB: db, Config: testConfig()}
	svc.afterStage = func(tx *gorm.DB, stage string) error {
		if stage == "sensors" {
			return errors.New("injected failure")
		}
		return nil
	}

	c := seedCampus(t, db, "Lab A")

	_, err := svc.DeleteCascade(CascadeRootBuilding, c.Building.ID)
	require.Error(t, err)

	// 测量和植物阶段已执行过，回滚后必须全部恢复
	assert.EqualValues(t, 1, countRows(t, db, &models.Building{}))
	assert.EqualValues(t, 1, countRows(t, db, &models.Floor{}))
	assert.EqualValues(t, 1, countRows(t, db, &models.Map{}))
	assert.EqualValues(t, 1, countRows(t, db, &models.Sensor{}))
	assert.EqualValues(t, 1, countRows(t, db, &models.Plant{}))
	assert.EqualValues(t, 1, countRows(t, db, &models.Measurement{}))
	assert.EqualValues(t, 1, countRows(t, db, &models.WateringSchedule{}))
}

func TestCleanupOrphanedData(t *testing.T) {
	db := newTestDB(t)
	svc := NewCascadeService(db, testConfig())

	c := seedCampus(t, db, "Lab A")

	// 绕过级联直接删除楼层，制造孤儿地图和它的传感器子树
	require.NoError(t, db.Delete(&models.Floor{}, c.Floor.ID).Error)

	// 悬挂事实行：传感器已不存在
	require.NoError(t, db.Create(&models.Measurement{SensorID: 9999, Value: 1}).Error)
	require.NoError(t, db.Create(&models.WateringSchedule{PlantID: 9999, TriggerType: models.TriggerTypeManual}).Error)

	// 指向已删传感器的植物只解除关联
	missingSensor := uint(8888)
	detached := models.Plant{Species: "Cactus", SensorID: &missingSensor}
	require.NoError(t, db.Create(&detached).Error)

	summary, err := svc.CleanupOrphanedData()
	require.NoError(t, err)

	assert.EqualValues(t, 1, summary.OrphanedMaps)
	assert.EqualValues(t, 1, summary.OrphanedSensors)
	assert.EqualValues(t, 1, summary.OrphanedMeasurements)
	assert.EqualValues(t, 1, summary.OrphanedSchedules)
	assert.EqualValues(t, 1, summary.DetachedPlants)

	// 植物保留但不再引用传感器
	var plant models.Plant
	require.NoError(t, db.First(&plant, detached.ID).Error)
	assert.Nil(t, plant.SensorID)
}

func TestCleanupOrphanedDataIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewCascadeService(db, testConfig())

	c := seedCampus(t, db, "Lab A")
	require.NoError(t, db.Delete(&models.Floor{}, c.Floor.ID).Error)

	_, err := svc.CleanupOrphanedData()
	require.NoError(t, err)

	// 第二次必须是空操作
	summary, err := svc.CleanupOrphanedData()
	require.NoError(t, err)
	assert.Equal(t, &CleanupSummary{}, summary)
}
