package engine

import (
	"fmt"
	"strings"

	"medrating/internal/dto"
)

const (
	reviewPreviewLimit   = 100
	myReviewPreviewLimit = 150
	topDoctorsLimit      = 10
)

func formatDoctorCard(doctor dto.UserView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", doctor.FullName)
	if doctor.Category != nil {
		fmt.Fprintf(&b, "Специальность: %s\n", doctor.Category.Title)
	}
	if doctor.Clinic != nil {
		fmt.Fprintf(&b, "Клиника: %s\n", doctor.Clinic.Title)
	}
	if doctor.GeoPosition != nil {
		fmt.Fprintf(&b, "Город: %s\n", doctor.GeoPosition.Title)
	}
	if doctor.Rating != nil {
		fmt.Fprintf(&b, "\nРейтинг: %.2f ★ (отзывов: %d)\n", *doctor.Rating, doctor.ReviewsCount)
	} else {
		b.WriteString("\nОтзывов пока нет.\n")
	}
	return b.String()
}

func formatClinicCard(clinic dto.ClinicView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", clinic.Title)
	if clinic.Address != "" {
		fmt.Fprintf(&b, "Адрес: %s\n", clinic.Address)
	}
	if clinic.Phone != "" {
		fmt.Fprintf(&b, "Телефон: %s\n", clinic.Phone)
	}
	if clinic.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", clinic.Email)
	}
	if clinic.WorkTime != "" {
		fmt.Fprintf(&b, "Время работы: %s\n", clinic.WorkTime)
	}
	if clinic.Rating != nil {
		fmt.Fprintf(&b, "\nРейтинг: %.2f ★ (отзывов: %d)\n", *clinic.Rating, clinic.ReviewsCount)
	} else {
		b.WriteString("\nОтзывов пока нет.\n")
	}
	return b.String()
}

// formatReviewsList renders reviews about one subject. Long texts are cut to
// a preview so a single message stays readable.
func formatReviewsList(title string, reviews []dto.ReviewView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n\n", title)
	for i, review := range reviews {
		author := "Аноним"
		if review.Author != nil {
			author = review.Author.FullName
		}
		fmt.Fprintf(&b, "%d. %s ★ %d\n%s\n\n",
			i+1, author, review.Rating, truncate(review.Text, reviewPreviewLimit))
	}
	return strings.TrimRight(b.String(), "\n")
}

type reviewWithDoctor struct {
	review     dto.ReviewView
	doctorName string
}

// formatClinicReviews renders the union of reviews across the clinic's
// doctors, labeling each entry with the doctor it concerns.
func formatClinicReviews(items []reviewWithDoctor) string {
	var b strings.Builder
	b.WriteString("<b>Отзывы о врачах клиники</b>\n\n")
	for i, item := range items {
		author := "Аноним"
		if item.review.Author != nil {
			author = item.review.Author.FullName
		}
		fmt.Fprintf(&b, "%d. %s, о враче %s ★ %d\n%s\n\n",
			i+1, author, item.doctorName, item.review.Rating,
			truncate(item.review.Text, reviewPreviewLimit))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatMyReviews(reviews []dto.ReviewView) string {
	var b strings.Builder
	b.WriteString("<b>Мои отзывы</b>\n\n")
	for i, review := range reviews {
		doctor := "—"
		if review.Doctor != nil {
			doctor = review.Doctor.FullName
		}
		fmt.Fprintf(&b, "%d. %s ★ %d\n%s\n\n",
			i+1, doctor, review.Rating, truncate(review.Text, myReviewPreviewLimit))
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatTopDoctors renders the ranked list as numbered text, capped at the
// first ten entries.
func formatTopDoctors(doctors []dto.UserView) string {
	var b strings.Builder
	b.WriteString("<b>Рейтинг врачей</b>\n\n")
	for i, doctor := range doctors {
		if i >= topDoctorsLimit {
			break
		}
		line := fmt.Sprintf("%d. %s", i+1, doctor.FullName)
		if doctor.Category != nil {
			line += ", " + doctor.Category.Title
		}
		if doctor.Rating != nil {
			line += fmt.Sprintf(" ★ %.2f (отзывов: %d)", *doctor.Rating, doctor.ReviewsCount)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatRegistrationSummary(fullName, cityName string, phone *string) string {
	phoneText := "не указан"
	if phone != nil && *phone != "" {
		phoneText = *phone
	}
	return fmt.Sprintf(
		"Проверьте данные:\n\nФИО: %s\nГород: %s\nТелефон: %s\n\nВсё верно?",
		fullName, cityName, phoneText)
}

// formatAdminTicket is the notification pushed to the admin chat when a new
// support request is created.
func formatAdminTicket(user dto.UserView, subject, message string) string {
	phone := "не указан"
	if user.PhoneNumber != nil && *user.PhoneNumber != "" {
		phone = *user.PhoneNumber
	}
	return fmt.Sprintf(
		"<b>Новое обращение в поддержку</b>\n\nОт: %s (tg id %d)\nТелефон: %s\n\nТема: %s\n\n%s",
		user.FullName, user.TelegramID, phone, subject, message)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
