package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"smart-campus-service/internal/domain/models"
)

func newPlantService(t *testing.T) (InterfacePlantService, *gorm.DB) {
	db := newTestDB(t)
	return NewPlantService(db, testConfig()), db
}

func TestCreatePlantValidatesSensor(t *testing.T) {
	svc, _ := newPlantService(t)

	missing := uint(42)
	err := svc.CreatePlant(&models.Plant{Species: "Ficus", SensorID: &missing})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCreatePlantDefaultsThreshold(t *testing.T) {
	svc, _ := newPlantService(t)

	plant := &models.Plant{Species: "Ficus"}
	require.NoError(t, svc.CreatePlant(plant))
	assert.Equal(t, 30, plant.WateringThreshold)
}

func TestUpdatePlantWhitelistsFields(t *testing.T) {
	svc, db := newPlantService(t)

	plant := &models.Plant{Species: "Ficus"}
	require.NoError(t, svc.CreatePlant(plant))

	updated, err := svc.UpdatePlant(plant.ID, map[string]interface{}{
		"species":    "Monstera",
		"notes":      "repotted",
		"id":         999,
		"created_at": "2001-01-01",
	})
	require.NoError(t, err)

	assert.Equal(t, "Monstera", updated.Species)
	assert.Equal(t, "repotted", updated.Notes)
	// 白名单外的字段被忽略
	assert.Equal(t, plant.ID, updated.ID)

	var count int64
	require.NoError(t, db.Model(&models.Plant{}).Where("id = ?", plant.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpdatePlantNoWhitelistedFieldsIsNoop(t *testing.T) {
	svc, _ := newPlantService(t)

	plant := &models.Plant{Species: "Ficus"}
	require.NoError(t, svc.CreatePlant(plant))

	updated, err := svc.UpdatePlant(plant.ID, map[string]interface{}{"id": 999})
	require.NoError(t, err)
	assert.Equal(t, "Ficus", updated.Species)
}

func TestUpdatePlantNotFound(t *testing.T) {
	svc, _ := newPlantService(t)

	_, err := svc.UpdatePlant(42, map[string]interface{}{"species": "Monstera"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
