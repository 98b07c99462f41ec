package models

import "time"

// Plant represents a monitored plant, optionally tied to a moisture sensor
type Plant struct {
	BaseModel
	Species             string     `gorm:"type:varchar(255);not null" json:"species"`
	SensorID            *uint      `json:"sensor_id,omitempty"`
	WateringThreshold   int        `gorm:"default:30" json:"watering_threshold"` // 湿度百分比阈值
	LastWatered         *time.Time `json:"last_watered,omitempty"`
	LocationDescription string     `gorm:"type:varchar(255)" json:"location_description,omitempty"`
	Notes               string     `gorm:"type:text" json:"notes,omitempty"`

	// Relations - 关联关系
	Sensor            *Sensor            `gorm:"foreignKey:SensorID" json:"sensor,omitempty"`
	WateringSchedules []WateringSchedule `gorm:"foreignKey:PlantID" json:"watering_schedules,omitempty"`
}
