package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"smart-campus-service/internal/domain/models"
	"smart-campus-service/internal/infrastructure/config"
)

// newTestDB 为每个测试创建独立的内存数据库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Building{},
		&models.Floor{},
		&models.Map{},
		&models.Sensor{},
		&models.Plant{},
		&models.Measurement{},
		&models.WateringSchedule{},
		&models.User{},
	))

	return db
}

func testConfig() *config.Config {
	return &config.Config{}
}

// campus 一套完整的测试数据：楼宇→楼层→地图→传感器→植物→测量/浇水记录
type campus struct {
	Building models.Building
	Floor    models.Floor
	Map      models.Map
	Sensor   models.Sensor
	Plant    models.Plant
}

// seedCampus 建立一条完整的所有权链
func seedCampus(t *testing.T, db *gorm.DB, name string) *campus {
	t.Helper()

	c := &campus{}

	c.Building = models.Building{Name: name, Slug: models.MakeSlug(name)}
	require.NoError(t, db.Create(&c.Building).Error)

	c.Floor = models.Floor{Name: "Ground Floor", BuildingID: c.Building.ID, Level: 0}
	require.NoError(t, db.Create(&c.Floor).Error)

	floorID := c.Floor.ID
	buildingID := c.Building.ID
	c.Map = models.Map{Name: name + " plan", BuildingID: &buildingID, FloorID: &floorID}
	require.NoError(t, db.Create(&c.Map).Error)

	mapID := c.Map.ID
	x, y := 25.0, 75.0
	c.Sensor = models.Sensor{
		Name:       name + " sensor",
		Type:       models.SensorTypeMoisture,
		BuildingID: &buildingID,
		FloorID:    &floorID,
		MapID:      &mapID,
		XPercent:   &x,
		YPercent:   &y,
	}
	require.NoError(t, db.Create(&c.Sensor).Error)

	sensorID := c.Sensor.ID
	c.Plant = models.Plant{Species: "Ficus", SensorID: &sensorID}
	require.NoError(t, db.Create(&c.Plant).Error)

	require.NoError(t, db.Create(&models.Measurement{SensorID: sensorID, Value: 42.5, Unit: "%"}).Error)
	require.NoError(t, db.Create(&models.WateringSchedule{
		PlantID:     c.Plant.ID,
		TriggerType: models.TriggerTypeAutomatic,
	}).Error)

	return c
}

// countRows 返回某个模型的总行数
func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
