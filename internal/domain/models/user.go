package models

// UserRole represents the role of a user account
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleViewer UserRole = "viewer"
)

// User represents a dashboard user account
type User struct {
	BaseModel
	Username string   `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"`
	Password string   `gorm:"type:varchar(255);not null" json:"-"` // bcrypt哈希
	Email    string   `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone    string   `gorm:"type:varchar(32)" json:"phone,omitempty"`
	Role     UserRole `gorm:"type:varchar(20);default:'viewer'" json:"role"`
}
