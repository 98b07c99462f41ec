package models

// Map represents a floor-plan image that sensors can be placed on.
// BuildingID and FloorID are independently nullable: a map usually belongs
// to exactly one floor but the keys are denormalized on purpose.
type Map struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	ImageBase64 string `gorm:"type:longtext" json:"-"` // 图片以base64文本存储
	BuildingID  *uint  `json:"building_id,omitempty"`
	FloorID     *uint  `json:"floor_id,omitempty"`

	// Relations - 关联关系
	Floor   *Floor   `gorm:"foreignKey:FloorID" json:"floor,omitempty"`
	Sensors []Sensor `gorm:"foreignKey:MapID" json:"sensors,omitempty"` // 放置在该地图上的传感器
}

// ImageURL returns a displayable data URI for the stored image,
// or an empty string when no image was uploaded.
func (m *Map) ImageURL() string {
	if m.ImageBase64 == "" {
		return ""
	}
	return "data:image/png;base64," + m.ImageBase64
}
