package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"smart-campus-service/internal/domain/models"
)

func newSensorService(t *testing.T) (InterfaceSensorService, *gorm.DB) {
	db := newTestDB(t)
	cascade := NewCascadeService(db, testConfig())
	return NewSensorService(db, testConfig(), cascade), db
}

func ptr[T any](v T) *T { return &v }

func TestCreateSensorNameUnique(t *testing.T) {
	svc, _ := newSensorService(t)

	require.NoError(t, svc.CreateSensor(&models.Sensor{Name: "moisture-1"}))

	err := svc.CreateSensor(&models.Sensor{Name: "moisture-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCreateSensorMapPlacement(t *testing.T) {
	svc, db := newSensorService(t)
	c := seedCampus(t, db, "Lab A")

	sensor := &models.Sensor{
		Name:     "moisture-1",
		MapID:    &c.Map.ID,
		XPercent: ptr(12.5),
		YPercent: ptr(87.5),
	}
	require.NoError(t, svc.CreateSensor(sensor))

	// 坐标原样保存，building/floor 从地图的楼层复制
	assert.Equal(t, 12.5, *sensor.XPercent)
	assert.Equal(t, 87.5, *sensor.YPercent)
	require.NotNil(t, sensor.BuildingID)
	require.NotNil(t, sensor.FloorID)
	assert.Equal(t, c.Building.ID, *sensor.BuildingID)
	assert.Equal(t, c.Floor.ID, *sensor.FloorID)
}

func TestCreateSensorRejectsOutOfRangeCoordinates(t *testing.T) {
	svc, db := newSensorService(t)
	c := seedCampus(t, db, "Lab A")

	for _, coords := range [][2]float64{{-1, 50}, {50, -1}, {101, 50}, {50, 100.01}} {
		err := svc.CreateSensor(&models.Sensor{
			Name:     "bad",
			MapID:    &c.Map.ID,
			XPercent: ptr(coords[0]),
			YPercent: ptr(coords[1]),
		})
		require.Error(t, err, "coords %v", coords)
		assert.Contains(t, err.Error(), "out of range")
	}
}

func TestCreateSensorWithoutMapClearsPercentCoordinates(t *testing.T) {
	svc, _ := newSensorService(t)

	sensor := &models.Sensor{Name: "direct", XPercent: ptr(10.0), YPercent: ptr(20.0)}
	require.NoError(t, svc.CreateSensor(sensor))
	assert.Nil(t, sensor.XPercent)
	assert.Nil(t, sensor.YPercent)
}

func TestCreateSensorDropsLegacyPixelCoordinates(t *testing.T) {
	svc, _ := newSensorService(t)

	sensor := &models.Sensor{Name: "legacy", XCoord: ptr(320.0), YCoord: ptr(240.0)}
	require.NoError(t, svc.CreateSensor(sensor))
	assert.Nil(t, sensor.XCoord)
	assert.Nil(t, sensor.YCoord)
}

func TestUpdateSensorMapMoveDefaultsToCenter(t *testing.T) {
	svc, db := newSensorService(t)
	c := seedCampus(t, db, "Lab A")

	other := seedCampus(t, db, "Lab B")

	// 移动到另一张地图且不带坐标：落在地图中心
	updated, err := svc.UpdateSensor(c.Sensor.ID, &SensorUpdate{MapID: &other.Map.ID})
	require.NoError(t, err)

	require.NotNil(t, updated.XPercent)
	require.NotNil(t, updated.YPercent)
	assert.Equal(t, DefaultPlacementPercent, *updated.XPercent)
	assert.Equal(t, DefaultPlacementPercent, *updated.YPercent)
	assert.Equal(t, other.Building.ID, *updated.BuildingID)
	assert.Equal(t, other.Floor.ID, *updated.FloorID)
}

func TestUpdateSensorCoordinatesOnCurrentMap(t *testing.T) {
	svc, db := newSensorService(t)
	c := seedCampus(t, db, "Lab A")

	updated, err := svc.UpdateSensor(c.Sensor.ID, &SensorUpdate{
		XPercent: ptr(1.0),
		YPercent: ptr(99.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, *updated.XPercent)
	assert.Equal(t, 99.0, *updated.YPercent)
	assert.Equal(t, c.Map.ID, *updated.MapID)
}

func TestUpdateSensorCoordinatesWithoutMapFails(t *testing.T) {
	svc, _ := newSensorService(t)

	sensor := &models.Sensor{Name: "floating"}
	require.NoError(t, svc.CreateSensor(sensor))

	_, err := svc.UpdateSensor(sensor.ID, &SensorUpdate{XPercent: ptr(10.0)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no map")
}

func TestUpdateSensorDirectAssignmentClearsPlacement(t *testing.T) {
	svc, db := newSensorService(t)
	c := seedCampus(t, db, "Lab A")

	b := models.Building{Name: "Annex", Slug: "annex"}
	require.NoError(t, db.Create(&b).Error)

	updated, err := svc.UpdateSensor(c.Sensor.ID, &SensorUpdate{BuildingID: &b.ID})
	require.NoError(t, err)

	assert.Equal(t, b.ID, *updated.BuildingID)
	assert.Nil(t, updated.MapID)
	assert.Nil(t, updated.XPercent)
	assert.Nil(t, updated.YPercent)
}

func TestUpdateSensorRenameConflict(t *testing.T) {
	svc, _ := newSensorService(t)

	require.NoError(t, svc.CreateSensor(&models.Sensor{Name: "a"}))
	second := &models.Sensor{Name: "b"}
	require.NoError(t, svc.CreateSensor(second))

	_, err := svc.UpdateSensor(second.ID, &SensorUpdate{Name: ptr("a")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestGetAllSensorsFilteredByMap(t *testing.T) {
	svc, db := newSensorService(t)
	c := seedCampus(t, db, "Lab A")
	seedCampus(t, db, "Lab B")

	all, err := svc.GetAllSensors(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := svc.GetAllSensors(&c.Map.ID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, c.Sensor.ID, filtered[0].ID)
}

func TestSensorLocationPrefersPercentOverLegacy(t *testing.T) {
	s := models.Sensor{
		XPercent: ptr(25.0),
		YPercent: ptr(75.0),
		XCoord:   ptr(320.0),
		YCoord:   ptr(240.0),
	}
	assert.Equal(t, 25.0, *s.LocationX())
	assert.Equal(t, 75.0, *s.LocationY())

	legacy := models.Sensor{XCoord: ptr(320.0), YCoord: ptr(240.0)}
	assert.Equal(t, 320.0, *legacy.LocationX())
	assert.Equal(t, 240.0, *legacy.LocationY())
}
