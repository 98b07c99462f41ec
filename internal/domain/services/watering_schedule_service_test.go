package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"smart-campus-service/internal/domain/models"
)

func newScheduleService(t *testing.T) (InterfaceWateringScheduleService, *gorm.DB) {
	db := newTestDB(t)
	return NewWateringScheduleService(db, testConfig()), db
}

func TestCreateWateringScheduleRequiresPlant(t *testing.T) {
	svc, _ := newScheduleService(t)

	err := svc.CreateWateringSchedule(&models.WateringSchedule{PlantID: 42})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCreateWateringScheduleDefaults(t *testing.T) {
	svc, db := newScheduleService(t)

	plant := models.Plant{Species: "Ficus"}
	require.NoError(t, db.Create(&plant).Error)

	ws := &models.WateringSchedule{PlantID: plant.ID}
	require.NoError(t, svc.CreateWateringSchedule(ws))

	assert.Equal(t, models.TriggerTypeManual, ws.TriggerType)
	assert.Equal(t, "user", ws.TriggeredBy)
	assert.Equal(t, 5, ws.DurationMinutes)
}

func TestGetWateringSchedulesSorted(t *testing.T) {
	svc, db := newScheduleService(t)

	plant := models.Plant{Species: "Ficus"}
	require.NoError(t, db.Create(&plant).Error)
	for _, d := range []int{15, 5, 10} {
		require.NoError(t, db.Create(&models.WateringSchedule{
			PlantID:         plant.ID,
			TriggerType:     models.TriggerTypeAutomatic,
			DurationMinutes: d,
		}).Error)
	}

	got, err := svc.GetWateringSchedules(ScheduleQuery{Sort: "duration_minutes"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int{5, 10, 15}, []int{
		got[0].DurationMinutes, got[1].DurationMinutes, got[2].DurationMinutes,
	})

	desc, err := svc.GetWateringSchedules(ScheduleQuery{Sort: "-duration_minutes", Limit: 1})
	require.NoError(t, err)
	require.Len(t, desc, 1)
	assert.Equal(t, 15, desc[0].DurationMinutes)
}
