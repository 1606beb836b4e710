package entity

import (
	"time"

	"github.com/google/uuid"
)

// Book is a catalog entry. The PDF and thumbnail live in object storage;
// the record only keeps their public URLs ("" when absent).
type Book struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	PublishedYear int       `json:"publishedYear"`
	Genre         string    `json:"genre,omitempty"`
	PDFURL        string    `json:"pdfUrl,omitempty"`
	ThumbnailURL  string    `json:"thumbnailUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
