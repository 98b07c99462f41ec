package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-campus-service/internal/domain/models"
)

// 端到端链路：建楼宇→楼层→地图→放置传感器→级联删除楼宇，
// 之后两个列表都必须为空
func TestBuildingLifecycle(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()

	cascade := NewCascadeService(db, cfg)
	buildings := NewBuildingService(db, cfg, cascade)
	floors := NewFloorService(db, cfg, cascade)
	maps := NewMapService(db, cfg, cascade)
	sensors := NewSensorService(db, cfg, cascade)

	labA := &models.Building{Name: "Lab A"}
	require.NoError(t, buildings.CreateBuilding(labA))

	ground := &models.Floor{Name: "Ground", BuildingID: labA.ID, Level: 1}
	require.NoError(t, floors.CreateFloor(ground))

	plan := &models.Map{Name: "plan.png", FloorID: &ground.ID}
	require.NoError(t, maps.CreateMap(plan))

	s1 := &models.Sensor{
		Name:     "S1",
		Type:     models.SensorTypeMoisture,
		MapID:    &plan.ID,
		XPercent: ptr(42.5),
		YPercent: ptr(17.0),
	}
	require.NoError(t, sensors.CreateSensor(s1))

	summary, err := buildings.DeleteBuilding(labA.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, summary.Buildings)
	assert.EqualValues(t, 1, summary.Floors)
	assert.EqualValues(t, 1, summary.Maps)
	assert.EqualValues(t, 1, summary.Sensors)

	remainingSensors, err := sensors.GetAllSensors(nil)
	require.NoError(t, err)
	assert.Empty(t, remainingSensors)

	remainingBuildings, _, err := buildings.GetAllBuildings(1, 10)
	require.NoError(t, err)
	assert.Empty(t, remainingBuildings)
}
