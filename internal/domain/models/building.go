package models

import "strings"

// Building represents a campus building
type Building struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Address     string `gorm:"type:varchar(255)" json:"address,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Slug        string `gorm:"type:varchar(255);uniqueIndex" json:"slug"` // 由名称派生，全局唯一

	// Relations - 关联关系
	Floors []Floor `gorm:"foreignKey:BuildingID" json:"floors,omitempty"` // 楼宇下的楼层（一对多）
}

// MakeSlug derives the unique slug for a building name:
// trimmed, lowercased, whitespace runs collapsed to a single hyphen.
func MakeSlug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), "-")
}
