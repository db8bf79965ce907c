package dto

import "github.com/google/uuid"

type CreateUserRequest struct {
	TelegramID    int64      `json:"telegram_id"`
	FullName      string     `json:"full_name"`
	PhoneNumber   *string    `json:"phone_number,omitempty"`
	GeoPositionID *uuid.UUID `json:"geo_position_id,omitempty"`
	IsPatient     bool       `json:"is_patient"`
}

// UpdateUserRequest applies only the fields that are present (admin tooling
// and future profile edits; the bot itself never updates users).
type UpdateUserRequest struct {
	FullName      *string    `json:"full_name,omitempty"`
	PhoneNumber   *string    `json:"phone_number,omitempty"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	GeoPositionID *uuid.UUID `json:"geo_position_id,omitempty"`
	ClinicID      *uuid.UUID `json:"clinic_id,omitempty"`
}

type CreateReviewRequest struct {
	AuthorID uuid.UUID `json:"author_id"`
	DoctorID uuid.UUID `json:"doctor_id"`
	Rating   int       `json:"rating"`
	Text     string    `json:"text"`
}

type CreateSupportRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Text   string    `json:"text"`
}
