package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"medrating/internal/dto"
)

func ratingPtr(v float64) *float64 { return &v }

func TestFormatDoctorCard(t *testing.T) {
	doctor := dto.UserView{
		FullName:     "Иванов Иван Иванович",
		Category:     &dto.CategoryView{Title: "Кардиолог"},
		Clinic:       &dto.ClinicView{Title: "Клиника №1"},
		GeoPosition:  &dto.GeoPositionView{Title: "Казань"},
		Rating:       ratingPtr(4.67),
		ReviewsCount: 3,
	}

	card := formatDoctorCard(doctor)

	assert.Contains(t, card, "Иванов Иван Иванович")
	assert.Contains(t, card, "Кардиолог")
	assert.Contains(t, card, "Клиника №1")
	assert.Contains(t, card, "4.67")
	assert.Contains(t, card, "отзывов: 3")
}

func TestFormatDoctorCardWithoutReviews(t *testing.T) {
	card := formatDoctorCard(dto.UserView{FullName: "Петров Пётр"})

	assert.Contains(t, card, "Отзывов пока нет")
	assert.NotContains(t, card, "Рейтинг")
}

func TestFormatClinicCardSkipsEmptyFields(t *testing.T) {
	card := formatClinicCard(dto.ClinicView{Title: "Клиника №1", Address: "ул. Ленина, 1"})

	assert.Contains(t, card, "ул. Ленина, 1")
	assert.NotContains(t, card, "Телефон")
	assert.NotContains(t, card, "Email")
}

func TestFormatReviewsListTruncatesLongText(t *testing.T) {
	long := strings.Repeat("о", 150)
	out := formatReviewsList("Отзывы", []dto.ReviewView{
		{Author: &dto.UserView{FullName: "Аня"}, Rating: 5, Text: long},
	})

	assert.Contains(t, out, "Аня")
	assert.Contains(t, out, strings.Repeat("о", reviewPreviewLimit)+"…")
	assert.NotContains(t, out, strings.Repeat("о", reviewPreviewLimit+1))
}

func TestFormatReviewsListAnonymousAuthor(t *testing.T) {
	out := formatReviewsList("Отзывы", []dto.ReviewView{{Rating: 3, Text: "нормально"}})

	assert.Contains(t, out, "Аноним")
}

func TestFormatTopDoctorsCapsAtTen(t *testing.T) {
	doctors := make([]dto.UserView, 15)
	for i := range doctors {
		doctors[i] = dto.UserView{
			FullName:     "Врач",
			Rating:       ratingPtr(5.0 - float64(i)*0.1),
			ReviewsCount: 1,
		}
	}

	out := formatTopDoctors(doctors)

	assert.Contains(t, out, "10. ")
	assert.NotContains(t, out, "11. ")
}

func TestFormatRegistrationSummary(t *testing.T) {
	phone := "+79001234567"
	withPhone := formatRegistrationSummary("Alice Smith", "Казань", &phone)
	assert.Contains(t, withPhone, "Alice Smith")
	assert.Contains(t, withPhone, "Казань")
	assert.Contains(t, withPhone, phone)

	withoutPhone := formatRegistrationSummary("Alice Smith", "Казань", nil)
	assert.Contains(t, withoutPhone, "не указан")
}

func TestTruncateCountsRunesNotBytes(t *testing.T) {
	// Cyrillic is two bytes per rune; the cut must be at rune boundaries.
	s := strings.Repeat("ю", 12)
	assert.Equal(t, strings.Repeat("ю", 10)+"…", truncate(s, 10))
	assert.Equal(t, s, truncate(s, 12))
}
