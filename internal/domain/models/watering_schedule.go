package models

import "time"

// TriggerType tells whether a watering was started by the system or a person
type TriggerType string

const (
	TriggerTypeAutomatic TriggerType = "automatic"
	TriggerTypeManual    TriggerType = "manual"
)

// WateringSchedule is one entry of the watering history log, append-only.
type WateringSchedule struct {
	BaseModel
	PlantID         uint        `gorm:"not null;index" json:"plant_id"`
	TriggerType     TriggerType `gorm:"type:varchar(32);not null" json:"trigger_type"`
	TriggeredBy     string      `gorm:"type:varchar(64)" json:"triggered_by,omitempty"`
	DurationMinutes int         `gorm:"default:5" json:"duration_minutes"`
	Notes           string      `gorm:"type:text" json:"notes,omitempty"`
	CreatedDate     time.Time   `gorm:"autoCreateTime" json:"created_date"`
}
