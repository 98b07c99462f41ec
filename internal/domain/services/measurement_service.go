package services

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"smart-campus-service/internal/domain/models"
	"smart-campus-service/internal/infrastructure/config"
)

// MeasurementQuery 测量记录查询参数。
// sort 形如 "-timestamp"（降序）或 "value"（升序）。
type MeasurementQuery struct {
	Sort     string
	Limit    int
	SensorID *uint
}

// 可用于排序的列白名单，防止排序参数注入
var measurementSortColumns = map[string]bool{
	"timestamp": true,
	"value":     true,
	"id":        true,
}

// InterfaceMeasurementService 定义测量记录服务接口
type InterfaceMeasurementService interface {
	GetMeasurements(q MeasurementQuery) ([]models.Measurement, error)
	CreateMeasurement(m *models.Measurement) error
	DeleteMeasurement(id uint) (int64, error)
	ExportMeasurements(q MeasurementQuery) ([]byte, error)
	LatestMeasurement(sensorID uint) (*models.Measurement, error)
}

// MeasurementService 提供测量记录相关的服务，测量为只追加的事实行
type MeasurementService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  InterfaceRedisService
}

// NewMeasurementService 创建一个新的测量记录服务
func NewMeasurementService(db *gorm.DB, cfg *config.Config, redis InterfaceRedisService) InterfaceMeasurementService {
	return &MeasurementService{
		DB:     db,
		Config: cfg,
		Redis:  redis,
	}
}

// 1. GetMeasurements 查询测量记录，支持排序、条数限制和按传感器过滤
func (s *MeasurementService) GetMeasurements(q MeasurementQuery) ([]models.Measurement, error) {
	col, order := parseSortParam(q.Sort, "timestamp")
	if !measurementSortColumns[col] {
		col = "timestamp"
	}

	limit := q.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	query := s.DB.Order(col + " " + order).Limit(limit)
	if q.SensorID != nil {
		query = query.Where("sensor_id = ?", *q.SensorID)
	}

	var measurements []models.Measurement
	if err := query.Find(&measurements).Error; err != nil {
		return nil, err
	}
	return measurements, nil
}

// 2. CreateMeasurement 追加一条测量记录，所属传感器须存在
func (s *MeasurementService) CreateMeasurement(m *models.Measurement) error {
	var count int64
	if err := s.DB.Model(&models.Sensor{}).Where("id = ?", m.SensorID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("sensor %d not found", m.SensorID)
	}

	if m.Unit == "" {
		m.Unit = "%"
	}

	if err := s.DB.Create(m).Error; err != nil {
		return err
	}

	// 缓存最新读数，失败不影响写入
	if s.Redis != nil {
		if err := s.Redis.CacheLatestMeasurement(m.SensorID, m); err != nil {
			// 缓存不可用时静默降级
			_ = err
		}
	}

	return nil
}

// 3. DeleteMeasurement 删除单条测量记录。
// 删除不存在的ID为幂等空操作，返回受影响行数0。
func (s *MeasurementService) DeleteMeasurement(id uint) (int64, error) {
	res := s.DB.Delete(&models.Measurement{}, id)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// 4. ExportMeasurements 将查询结果导出为Excel文件
func (s *MeasurementService) ExportMeasurements(q MeasurementQuery) ([]byte, error) {
	measurements, err := s.GetMeasurements(q)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Measurements"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Sensor ID", "Value", "Unit", "Timestamp"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, m := range measurements {
		values := []interface{}{
			m.ID,
			m.SensorID,
			m.Value,
			m.Unit,
			m.Timestamp.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// 5. LatestMeasurement 获取传感器最新一条读数，优先读Redis缓存，未命中时回源数据库
func (s *MeasurementService) LatestMeasurement(sensorID uint) (*models.Measurement, error) {
	if s.Redis != nil {
		var cached models.Measurement
		if err := s.Redis.GetLatestMeasurement(sensorID, &cached); err == nil {
			return &cached, nil
		}
	}

	var m models.Measurement
	err := s.DB.Where("sensor_id = ?", sensorID).Order("timestamp DESC").First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no measurements for sensor %d", sensorID)
		}
		return nil, err
	}

	if s.Redis != nil {
		// 回填缓存，失败不影响查询结果
		_ = s.Redis.CacheLatestMeasurement(sensorID, &m)
	}
	return &m, nil
}

// parseSortParam 解析形如 "-col"/"+col"/"col" 的排序参数
func parseSortParam(sort, defaultCol string) (col, order string) {
	if sort == "" {
		return defaultCol, "DESC"
	}
	order = "ASC"
	if strings.HasPrefix(sort, "-") {
		order = "DESC"
	}
	col = strings.TrimLeft(sort, "+-")
	if col == "" {
		col = defaultCol
	}
	return col, order
}
