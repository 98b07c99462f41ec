package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"smart-campus-service/internal/domain/models"
)

func newMeasurementService(t *testing.T) (InterfaceMeasurementService, *gorm.DB) {
	db := newTestDB(t)
	return NewMeasurementService(db, testConfig(), nil), db
}

func seedSensorWithReadings(t *testing.T, db *gorm.DB, name string, values []float64) *models.Sensor {
	t.Helper()
	sensor := &models.Sensor{Name: name, Type: models.SensorTypeMoisture}
	require.NoError(t, db.Create(sensor).Error)
	for _, v := range values {
		require.NoError(t, db.Create(&models.Measurement{SensorID: sensor.ID, Value: v, Unit: "%"}).Error)
	}
	return sensor
}

func TestCreateMeasurementRequiresSensor(t *testing.T) {
	svc, _ := newMeasurementService(t)

	err := svc.CreateMeasurement(&models.Measurement{SensorID: 42, Value: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCreateMeasurementDefaultsUnit(t *testing.T) {
	svc, db := newMeasurementService(t)
	sensor := seedSensorWithReadings(t, db, "m1", nil)

	m := &models.Measurement{SensorID: sensor.ID, Value: 55.5}
	require.NoError(t, svc.CreateMeasurement(m))
	assert.Equal(t, "%", m.Unit)
}

func TestGetMeasurementsSortAndLimit(t *testing.T) {
	svc, db := newMeasurementService(t)
	seedSensorWithReadings(t, db, "m1", []float64{30, 10, 20})

	asc, err := svc.GetMeasurements(MeasurementQuery{Sort: "value"})
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.Equal(t, []float64{10, 20, 30}, []float64{asc[0].Value, asc[1].Value, asc[2].Value})

	desc, err := svc.GetMeasurements(MeasurementQuery{Sort: "-value"})
	require.NoError(t, err)
	assert.Equal(t, 30.0, desc[0].Value)

	limited, err := svc.GetMeasurements(MeasurementQuery{Sort: "value", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestGetMeasurementsUnknownSortFallsBack(t *testing.T) {
	svc, db := newMeasurementService(t)
	seedSensorWithReadings(t, db, "m1", []float64{1, 2})

	// 白名单外的列不报错，回落到默认排序
	got, err := svc.GetMeasurements(MeasurementQuery{Sort: "-password"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestGetMeasurementsFilterBySensor(t *testing.T) {
	svc, db := newMeasurementService(t)
	s1 := seedSensorWithReadings(t, db, "m1", []float64{1, 2})
	seedSensorWithReadings(t, db, "m2", []float64{3})

	got, err := svc.GetMeasurements(MeasurementQuery{SensorID: &s1.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, m := range got {
		assert.Equal(t, s1.ID, m.SensorID)
	}
}

func TestDeleteMeasurementIdempotent(t *testing.T) {
	svc, db := newMeasurementService(t)
	seedSensorWithReadings(t, db, "m1", []float64{1})

	var m models.Measurement
	require.NoError(t, db.First(&m).Error)

	deleted, err := svc.DeleteMeasurement(m.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	// 再删同一ID是空操作
	deleted, err = svc.DeleteMeasurement(m.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, deleted)
}

func TestLatestMeasurementReadsNewestRow(t *testing.T) {
	svc, db := newMeasurementService(t)
	sensor := seedSensorWithReadings(t, db, "m1", nil)

	base := time.Now().Add(-time.Hour)
	for i, v := range []float64{10, 20, 30} {
		require.NoError(t, db.Create(&models.Measurement{
			SensorID:  sensor.ID,
			Value:     v,
			Unit:      "%",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	latest, err := svc.LatestMeasurement(sensor.ID)
	require.NoError(t, err)
	assert.Equal(t, 30.0, latest.Value)
}

func TestLatestMeasurementNoReadings(t *testing.T) {
	svc, db := newMeasurementService(t)
	sensor := seedSensorWithReadings(t, db, "m1", nil)

	_, err := svc.LatestMeasurement(sensor.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no measurements")
}

func TestExportMeasurementsProducesWorkbook(t *testing.T) {
	svc, db := newMeasurementService(t)
	seedSensorWithReadings(t, db, "m1", []float64{11, 22})

	data, err := svc.ExportMeasurements(MeasurementQuery{Sort: "value"})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	// 表头加两行数据
	assert.Len(t, rows, 3)
}
