package models

import "time"

// SensorType represents the kind of measurement a sensor takes
type SensorType string

const (
	SensorTypeMoisture    SensorType = "moisture"
	SensorTypeTemperature SensorType = "temperature"
)

// SensorStatus represents the operational status of a sensor
type SensorStatus string

const (
	SensorStatusActive      SensorStatus = "active"
	SensorStatusInactive    SensorStatus = "inactive"
	SensorStatusMaintenance SensorStatus = "maintenance"
)

// Sensor represents an IoT sensor. Its location can be assigned two ways:
// directly (BuildingID/FloorID/RoomID, no map placement) or via a map
// (MapID plus XPercent/YPercent, with BuildingID/FloorID copied from the
// map's floor at write time). XCoord/YCoord are legacy absolute pixel
// coordinates kept for old rows; they are never written anymore.
type Sensor struct {
	BaseModel
	SerialNumber    string       `gorm:"type:varchar(255)" json:"serial_number,omitempty"`
	Model           string       `gorm:"type:varchar(255)" json:"model,omitempty"`
	Manufacturer    string       `gorm:"type:varchar(255)" json:"manufacturer,omitempty"`
	Type            SensorType   `gorm:"type:varchar(64)" json:"type"`
	Name            string       `gorm:"type:varchar(255);uniqueIndex" json:"name"` // 全局唯一
	Unit            string       `gorm:"type:varchar(32)" json:"unit,omitempty"`
	Status          SensorStatus `gorm:"type:varchar(32);default:'active'" json:"status"`
	InstalledAt     *time.Time   `json:"installed_at,omitempty"`
	LastMaintenance *time.Time   `json:"last_maintenance,omitempty"`

	// Direct location assignment
	BuildingID *uint  `json:"building_id,omitempty"`
	FloorID    *uint  `json:"floor_id,omitempty"`
	RoomID     string `gorm:"type:varchar(255)" json:"room_id,omitempty"`

	// Map-based placement (percentage of the rendered image, 0-100)
	MapID    *uint    `json:"map_id,omitempty"`
	XPercent *float64 `gorm:"type:decimal(5,2)" json:"x_percent,omitempty"`
	YPercent *float64 `gorm:"type:decimal(5,2)" json:"y_percent,omitempty"`

	// Legacy absolute pixel coordinates, read-only
	XCoord *float64 `gorm:"type:decimal(10,2)" json:"x_coord,omitempty"`
	YCoord *float64 `gorm:"type:decimal(10,2)" json:"y_coord,omitempty"`

	// Relations - 关联关系
	Plants       []Plant       `gorm:"foreignKey:SensorID" json:"plants,omitempty"`
	Measurements []Measurement `gorm:"foreignKey:SensorID" json:"measurements,omitempty"`
}

// LocationX returns the canonical x placement, preferring the
// resolution-independent percentage over the legacy pixel value.
func (s *Sensor) LocationX() *float64 {
	if s.XPercent != nil {
		return s.XPercent
	}
	return s.XCoord
}

// LocationY returns the canonical y placement.
func (s *Sensor) LocationY() *float64 {
	if s.YPercent != nil {
		return s.YPercent
	}
	return s.YCoord
}
