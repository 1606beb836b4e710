package model

import (
	"time"

	"github.com/google/uuid"
)

// PrincipalModel mirrors the account tables. The same shape backs both the
// 'users' and 'admins' tables; the repository selects the table per realm.
type PrincipalModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	Password     string    `gorm:"type:varchar(255);not null"`
	RefreshToken *string   `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
