package models

import "time"

// User mirrors the identity provider's record. The primary key is the
// provider's subject claim, so it is an opaque string rather than a UUID.
type User struct {
	ID        string    `gorm:"column:id;type:text;primaryKey"`
	Email     string    `gorm:"column:email;type:text;not null"`
	Name      string    `gorm:"column:name;type:text;not null"`
	Phone     *string   `gorm:"column:phone;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
