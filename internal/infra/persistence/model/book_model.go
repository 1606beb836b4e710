package model

import (
	"time"

	"github.com/google/uuid"
)

// BookModel mirrors the 'books' table. File columns store public object storage URLs.
type BookModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Title         string    `gorm:"type:varchar(255);not null"`
	Author        string    `gorm:"type:varchar(255);not null"`
	PublishedYear int       `gorm:"not null"`
	Genre         string    `gorm:"type:varchar(100)"`
	PDFURL        string    `gorm:"column:pdf_url;type:text;not null"`
	ThumbnailURL  string    `gorm:"column:thumbnail_url;type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (BookModel) TableName() string {
	return "books"
}
