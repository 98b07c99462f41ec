package models

import "time"

// Measurement is one sensor reading. Rows are append-only facts and are
// never updated after creation.
type Measurement struct {
	BaseModel
	SensorID  uint      `gorm:"not null;index" json:"sensor_id"`
	Value     float64   `gorm:"type:decimal(10,2);not null" json:"value"`
	Unit      string    `gorm:"type:varchar(16);default:'%'" json:"unit"`
	Timestamp time.Time `gorm:"autoCreateTime" json:"timestamp"`
}
