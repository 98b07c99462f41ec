package models

// Floor represents one level of a building
type Floor struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	BuildingID  uint   `gorm:"not null;uniqueIndex:idx_floor_building_level" json:"building_id"`
	Level       int    `gorm:"not null;uniqueIndex:idx_floor_building_level" json:"level"` // 同一楼宇内唯一
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relations - 关联关系
	Building *Building `gorm:"foreignKey:BuildingID" json:"building,omitempty"` // 所属楼宇（多对一）
	Maps     []Map     `gorm:"foreignKey:FloorID" json:"maps,omitempty"`        // 楼层平面图（一对多）
}
