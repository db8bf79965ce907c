package models

import (
	"time"

	"github.com/google/uuid"
)

// SupportRequest is a ticket filed through the bot; immutable after creation.
type SupportRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	User      *User     `json:"user,omitempty"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
