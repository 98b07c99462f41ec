package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"smart-campus-service/internal/domain/models"
)

func newMapService(t *testing.T) (InterfaceMapService, *gorm.DB) {
	db := newTestDB(t)
	cascade := NewCascadeService(db, testConfig())
	return NewMapService(db, testConfig(), cascade), db
}

func TestCreateMapRequiresExistingFloor(t *testing.T) {
	svc, _ := newMapService(t)

	missing := uint(42)
	err := svc.CreateMap(&models.Map{Name: "plan", FloorID: &missing})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCreateMapBackfillsBuildingFromFloor(t *testing.T) {
	svc, db := newMapService(t)

	b := models.Building{Name: "Lab A", Slug: "lab-a"}
	require.NoError(t, db.Create(&b).Error)
	f := models.Floor{Name: "F1", BuildingID: b.ID, Level: 1}
	require.NoError(t, db.Create(&f).Error)

	m := &models.Map{Name: "plan", FloorID: &f.ID}
	require.NoError(t, svc.CreateMap(m))

	require.NotNil(t, m.BuildingID)
	assert.Equal(t, b.ID, *m.BuildingID)
}

func TestCreateMapBuildingOnly(t *testing.T) {
	svc, db := newMapService(t)

	b := models.Building{Name: "Lab A", Slug: "lab-a"}
	require.NoError(t, db.Create(&b).Error)

	// 地图可以只挂楼宇不挂楼层
	m := &models.Map{Name: "site plan", BuildingID: &b.ID}
	require.NoError(t, svc.CreateMap(m))

	var stored models.Map
	require.NoError(t, db.First(&stored, m.ID).Error)
	require.NotNil(t, stored.BuildingID)
	assert.Equal(t, b.ID, *stored.BuildingID)
	assert.Nil(t, stored.FloorID)
}

func TestCreateMapRequiresExistingBuilding(t *testing.T) {
	svc, _ := newMapService(t)

	missing := uint(42)
	err := svc.CreateMap(&models.Map{Name: "plan", BuildingID: &missing})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "building not found")
}

func TestGetAllMapsExposesDataURI(t *testing.T) {
	svc, db := newMapService(t)

	require.NoError(t, db.Create(&models.Map{Name: "with image", ImageBase64: "aGVsbG8="}).Error)
	require.NoError(t, db.Create(&models.Map{Name: "without image"}).Error)

	views, err := svc.GetAllMaps()
	require.NoError(t, err)
	require.Len(t, views, 2)

	byName := map[string]MapView{}
	for _, v := range views {
		byName[v.Name] = v
	}
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", byName["with image"].ImageURL)
	assert.Empty(t, byName["without image"].ImageURL)
}
