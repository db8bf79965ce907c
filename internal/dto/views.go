package dto

import (
	"time"

	"github.com/google/uuid"

	"medrating/internal/models"
)

// Response views returned by the API and decoded by the bot client.
// Rating is nil when the subject has no reviews (undefined, not zero).

type CategoryView struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type GeoPositionView struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type ClinicView struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	WorkTime     string    `json:"work_time"`
	Rating       *float64  `json:"rating,omitempty"`
	ReviewsCount int64     `json:"reviews_count"`
}

type UserView struct {
	ID           uuid.UUID        `json:"id"`
	TelegramID   int64            `json:"telegram_id"`
	FullName     string           `json:"full_name"`
	PhoneNumber  *string          `json:"phone_number,omitempty"`
	Category     *CategoryView    `json:"category,omitempty"`
	GeoPosition  *GeoPositionView `json:"geo_position,omitempty"`
	Clinic       *ClinicView      `json:"clinic,omitempty"`
	IsPatient    bool             `json:"is_patient"`
	IsDoctor     bool             `json:"is_doctor"`
	Rating       *float64         `json:"rating,omitempty"`
	ReviewsCount int64            `json:"reviews_count"`
	CreatedAt    time.Time        `json:"created_at"`
}

type ReviewView struct {
	ID        uuid.UUID `json:"id"`
	Author    *UserView `json:"author,omitempty"`
	Doctor    *UserView `json:"doctor,omitempty"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type SupportRequestView struct {
	ID        uuid.UUID `json:"id"`
	User      *UserView `json:"user,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

// ErrorResponse carries a human-readable detail on every non-2xx response;
// the bot surfaces this text directly to the end user.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func NewCategoryView(c models.Category) CategoryView {
	return CategoryView{ID: c.ID, Title: c.Title}
}

func NewGeoPositionView(g models.GeoPosition) GeoPositionView {
	return GeoPositionView{ID: g.ID, Title: g.Title}
}

func NewClinicView(c models.Clinic, rating *float64, reviewsCount int64) ClinicView {
	return ClinicView{
		ID:           c.ID,
		Title:        c.Title,
		Address:      c.Address,
		Phone:        c.Phone,
		Email:        c.Email,
		WorkTime:     c.WorkTime,
		Rating:       rating,
		ReviewsCount: reviewsCount,
	}
}

func NewUserView(u models.User, rating *float64, reviewsCount int64) UserView {
	view := UserView{
		ID:           u.ID,
		TelegramID:   u.TelegramID,
		FullName:     u.FullName,
		PhoneNumber:  u.PhoneNumber,
		IsPatient:    u.IsPatient,
		IsDoctor:     u.IsDoctor,
		Rating:       rating,
		ReviewsCount: reviewsCount,
		CreatedAt:    u.CreatedAt,
	}
	if u.Category != nil {
		c := NewCategoryView(*u.Category)
		view.Category = &c
	}
	if u.GeoPosition != nil {
		g := NewGeoPositionView(*u.GeoPosition)
		view.GeoPosition = &g
	}
	if u.Clinic != nil {
		c := NewClinicView(*u.Clinic, nil, 0)
		view.Clinic = &c
	}
	return view
}

func NewReviewView(r models.Review) ReviewView {
	view := ReviewView{
		ID:        r.ID,
		Rating:    r.Rating,
		Text:      r.Text,
		CreatedAt: r.CreatedAt,
	}
	if r.Author != nil {
		a := NewUserView(*r.Author, nil, 0)
		view.Author = &a
	}
	if r.Doctor != nil {
		d := NewUserView(*r.Doctor, nil, 0)
		view.Doctor = &d
	}
	return view
}

func NewSupportRequestView(s models.SupportRequest) SupportRequestView {
	view := SupportRequestView{
		ID:        s.ID,
		Text:      s.Text,
		CreatedAt: s.CreatedAt,
	}
	if s.User != nil {
		u := NewUserView(*s.User, nil, 0)
		view.User = &u
	}
	return view
}
