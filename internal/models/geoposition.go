package models

import (
	"time"

	"github.com/google/uuid"
)

// GeoPosition is a city users pick during registration (reference data).
type GeoPosition struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
