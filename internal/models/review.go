package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is one patient's rating of one doctor. The composite unique index
// enforces the one-review-per-(author, doctor) rule at the storage level, so
// a concurrent check-then-create race cannot produce duplicates.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_reviews_author_doctor" json:"-"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_reviews_author_doctor" json:"-"`
	Doctor    *User     `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Rating    int       `gorm:"not null" json:"rating"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
