package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a directory member. A user may be a patient and/or a doctor;
// IsDoctor controls whether the user appears in doctor listings and can
// receive reviews.
type User struct {
	ID            uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TelegramID    int64        `gorm:"not null;uniqueIndex" json:"telegram_id"`
	FullName      string       `gorm:"type:text" json:"full_name"`
	PhoneNumber   *string      `gorm:"type:text" json:"phone_number"`
	CategoryID    *uuid.UUID   `gorm:"type:uuid;index" json:"-"`
	Category      *Category    `json:"category,omitempty"`
	GeoPositionID *uuid.UUID   `gorm:"type:uuid;index" json:"-"`
	GeoPosition   *GeoPosition `json:"geo_position,omitempty"`
	ClinicID      *uuid.UUID   `gorm:"type:uuid;index" json:"-"`
	Clinic        *Clinic      `json:"clinic,omitempty"`
	IsPatient     bool         `gorm:"default:false" json:"is_patient"`
	IsDoctor      bool         `gorm:"default:false;index" json:"is_doctor"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
