package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-campus-service/internal/domain/models"
)

func TestResolveDirectLocation(t *testing.T) {
	db := newTestDB(t)
	svc := NewLocationService(db, testConfig())
	c := seedCampus(t, db, "Lab A")

	index, err := svc.BuildIndex()
	require.NoError(t, err)

	sensor := models.Sensor{
		BuildingID: &c.Building.ID,
		FloorID:    &c.Floor.ID,
		RoomID:     "101",
	}
	loc := svc.Resolve(&sensor, index)

	assert.Equal(t, LocationSourceDirect, loc.Source)
	assert.Equal(t, "Lab A › Ground Floor › 101", loc.Breadcrumb)
	assert.Equal(t, c.Building.ID, *loc.BuildingID)
	assert.Equal(t, c.Floor.ID, *loc.FloorID)
}

func TestResolveViaMap(t *testing.T) {
	db := newTestDB(t)
	svc := NewLocationService(db, testConfig())
	c := seedCampus(t, db, "Lab A")

	index, err := svc.BuildIndex()
	require.NoError(t, err)

	sensor := models.Sensor{MapID: &c.Map.ID}
	loc := svc.Resolve(&sensor, index)

	assert.Equal(t, LocationSourceViaMap, loc.Source)
	assert.Equal(t, "Lab A › Ground Floor", loc.Breadcrumb)
	assert.Equal(t, c.Building.ID, *loc.BuildingID)
	assert.Equal(t, c.Floor.ID, *loc.FloorID)
}

// 同一楼层，直接指定与经地图解析必须给出相同的规范位置
func TestResolveDirectAndViaMapAgree(t *testing.T) {
	db := newTestDB(t)
	svc := NewLocationService(db, testConfig())
	c := seedCampus(t, db, "Lab A")

	index, err := svc.BuildIndex()
	require.NoError(t, err)

	direct := svc.Resolve(&models.Sensor{
		BuildingID: &c.Building.ID,
		FloorID:    &c.Floor.ID,
	}, index)
	viaMap := svc.Resolve(&models.Sensor{MapID: &c.Map.ID}, index)

	assert.Equal(t, direct.Breadcrumb, viaMap.Breadcrumb)
	assert.Equal(t, *direct.BuildingID, *viaMap.BuildingID)
	assert.Equal(t, *direct.FloorID, *viaMap.FloorID)
}

func TestResolveUnassigned(t *testing.T) {
	db := newTestDB(t)
	svc := NewLocationService(db, testConfig())

	index, err := svc.BuildIndex()
	require.NoError(t, err)

	loc := svc.Resolve(&models.Sensor{}, index)
	assert.Equal(t, LocationUnassigned, loc.Breadcrumb)
	assert.Equal(t, LocationSourceUnassigned, loc.Source)
	assert.Nil(t, loc.BuildingID)
	assert.Nil(t, loc.FloorID)
}

func TestResolveDanglingMapFallsBackToUnassigned(t *testing.T) {
	db := newTestDB(t)
	svc := NewLocationService(db, testConfig())
	seedCampus(t, db, "Lab A")

	index, err := svc.BuildIndex()
	require.NoError(t, err)

	missing := uint(9999)
	loc := svc.Resolve(&models.Sensor{MapID: &missing}, index)
	assert.Equal(t, LocationUnassigned, loc.Breadcrumb)
	assert.Equal(t, LocationSourceUnassigned, loc.Source)
}

// 直接路径引用了已不存在的楼宇：面包屑退回哨兵值，但来源仍是direct
func TestResolveDirectWithMissingBuilding(t *testing.T) {
	db := newTestDB(t)
	svc := NewLocationService(db, testConfig())

	index, err := svc.BuildIndex()
	require.NoError(t, err)

	missing := uint(9999)
	loc := svc.Resolve(&models.Sensor{BuildingID: &missing}, index)
	assert.Equal(t, LocationSourceDirect, loc.Source)
	assert.Equal(t, LocationUnassigned, loc.Breadcrumb)
	assert.Nil(t, loc.BuildingID)
}
