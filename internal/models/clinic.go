package models

import (
	"time"

	"github.com/google/uuid"
)

type Clinic struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Address   string    `gorm:"type:text" json:"address"`
	Phone     string    `gorm:"size:100" json:"phone"`
	Email     string    `gorm:"size:255" json:"email"`
	WorkTime  string    `gorm:"type:text" json:"work_time"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
