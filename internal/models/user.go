package models

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name  string `json:"name"`
	Email string `gorm:"uniqueIndex" json:"email"`

	// Campus profile. NSUID is the 7-digit institutional student id; unique
	// when present, but external-identity users may not have filled it yet.
	NSUID       string `gorm:"column:nsu_id;index" json:"nsu_id,omitempty"`
	PhoneNumber string `gorm:"column:phone_number" json:"phone_number,omitempty"`

	// Exactly one credential path: a bcrypt hash, or a reference into the
	// external identity provider.
	Password    string `json:"-"`
	ExternalUID string `gorm:"column:external_uid;index" json:"-"`

	ProfileComplete bool `gorm:"default:false" json:"profile_complete"`

	Role Role `gorm:"type:text;default:'USER'" json:"role"`
}

func (User) TableName() string {
	return "users"
}
