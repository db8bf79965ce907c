package engine

import (
	"fmt"

	"github.com/google/uuid"

	"medrating/internal/dto"
	"medrating/internal/telegram"
)

// Reply keyboards

func mainMenuKeyboard() telegram.ReplyKeyboardMarkup {
	return telegram.ReplyKeyboardMarkup{
		Keyboard: [][]telegram.KeyboardButton{
			{{Text: btnCategories}, {Text: btnDoctorsRating}},
			{{Text: btnClinicsRating}, {Text: btnMyReviews}},
			{{Text: btnSupport}},
		},
		ResizeKeyboard: true,
	}
}

func consentKeyboard() telegram.ReplyKeyboardMarkup {
	return telegram.ReplyKeyboardMarkup{
		Keyboard: [][]telegram.KeyboardButton{
			{{Text: btnConsentAccept}, {Text: btnConsentRefuse}},
		},
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
	}
}

func phoneKeyboard() telegram.ReplyKeyboardMarkup {
	return telegram.ReplyKeyboardMarkup{
		Keyboard: [][]telegram.KeyboardButton{
			{{Text: btnSharePhone, RequestContact: true}},
			{{Text: btnSkip}},
		},
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
	}
}

func confirmKeyboard() telegram.ReplyKeyboardMarkup {
	return telegram.ReplyKeyboardMarkup{
		Keyboard: [][]telegram.KeyboardButton{
			{{Text: btnConfirm}, {Text: btnEdit}},
		},
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
	}
}

// Inline keyboards

func ratingKeyboard() telegram.InlineKeyboardMarkup {
	return telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{
				{Text: "1", CallbackData: "rating_1"},
				{Text: "2", CallbackData: "rating_2"},
				{Text: "3", CallbackData: "rating_3"},
			},
			{
				{Text: "4", CallbackData: "rating_4"},
				{Text: "5", CallbackData: "rating_5"},
			},
			{{Text: btnCancel, CallbackData: "cancel_review"}},
		},
	}
}

func cancelKeyboard() telegram.InlineKeyboardMarkup {
	return telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{{Text: btnCancel, CallbackData: "cancel"}},
		},
	}
}

func backToMenuKeyboard() telegram.InlineKeyboardMarkup {
	return telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{{Text: btnToMenu, CallbackData: "main_menu"}},
		},
	}
}

func categoryBackKeyboard() telegram.InlineKeyboardMarkup {
	return telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{
				{Text: btnBackToCategories, CallbackData: "back_to_categories"},
				{Text: btnToMenu, CallbackData: "main_menu"},
			},
		},
	}
}

func citiesKeyboard(cities []dto.GeoPositionView, page, pageSize int) telegram.InlineKeyboardMarkup {
	pageCities, hasPrev, hasNext := Paginate(cities, page, pageSize)
	page = ClampPage(len(cities), page, pageSize)

	rows := make([][]telegram.InlineKeyboardButton, 0, len(pageCities)+2)
	for _, city := range pageCities {
		rows = append(rows, []telegram.InlineKeyboardButton{
			{Text: city.Title, CallbackData: "city_" + city.ID.String()},
		})
	}
	rows = appendNavRow(rows, hasPrev, hasNext,
		fmt.Sprintf("cities_page_%d", page-1),
		fmt.Sprintf("cities_page_%d", page+1))
	return telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func categoriesKeyboard(categories []dto.CategoryView, page, pageSize int) telegram.InlineKeyboardMarkup {
	pageCategories, hasPrev, hasNext := Paginate(categories, page, pageSize)
	page = ClampPage(len(categories), page, pageSize)

	rows := make([][]telegram.InlineKeyboardButton, 0, len(pageCategories)+2)
	for _, category := range pageCategories {
		rows = append(rows, []telegram.InlineKeyboardButton{
			{Text: category.Title, CallbackData: "category_" + category.ID.String()},
		})
	}
	rows = appendNavRow(rows, hasPrev, hasNext,
		fmt.Sprintf("categories_page_%d", page-1),
		fmt.Sprintf("categories_page_%d", page+1))
	rows = append(rows, []telegram.InlineKeyboardButton{
		{Text: btnToMenu, CallbackData: "main_menu"},
	})
	return telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func doctorsKeyboard(doctors []dto.UserView, page, pageSize int, categoryID *uuid.UUID) telegram.InlineKeyboardMarkup {
	pageDoctors, hasPrev, hasNext := Paginate(doctors, page, pageSize)
	page = ClampPage(len(doctors), page, pageSize)

	rows := make([][]telegram.InlineKeyboardButton, 0, len(pageDoctors)+2)
	for _, doctor := range pageDoctors {
		label := doctor.FullName
		if doctor.Clinic != nil && doctor.Clinic.Title != "" {
			label += " (" + doctor.Clinic.Title + ")"
		}
		if doctor.Rating != nil {
			label += fmt.Sprintf(" ★ %.1f", *doctor.Rating)
		}
		rows = append(rows, []telegram.InlineKeyboardButton{
			{Text: label, CallbackData: "doctor_" + doctor.ID.String()},
		})
	}

	prevData := fmt.Sprintf("doctors_page_%d", page-1)
	nextData := fmt.Sprintf("doctors_page_%d", page+1)
	if categoryID != nil {
		prevData += "_cat_" + categoryID.String()
		nextData += "_cat_" + categoryID.String()
	}
	rows = appendNavRow(rows, hasPrev, hasNext, prevData, nextData)

	rows = append(rows, []telegram.InlineKeyboardButton{
		{Text: btnBackToCategories, CallbackData: "back_to_categories"},
		{Text: btnToMenu, CallbackData: "main_menu"},
	})
	return telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func clinicsKeyboard(clinics []dto.ClinicView, page, pageSize int) telegram.InlineKeyboardMarkup {
	pageClinics, hasPrev, hasNext := Paginate(clinics, page, pageSize)
	page = ClampPage(len(clinics), page, pageSize)

	rows := make([][]telegram.InlineKeyboardButton, 0, len(pageClinics)+2)
	for _, clinic := range pageClinics {
		label := clinic.Title
		if clinic.Rating != nil {
			label += fmt.Sprintf(" ★ %.1f", *clinic.Rating)
		}
		rows = append(rows, []telegram.InlineKeyboardButton{
			{Text: label, CallbackData: "clinic_" + clinic.ID.String()},
		})
	}
	rows = appendNavRow(rows, hasPrev, hasNext,
		fmt.Sprintf("clinics_page_%d", page-1),
		fmt.Sprintf("clinics_page_%d", page+1))
	rows = append(rows, []telegram.InlineKeyboardButton{
		{Text: btnToMenu, CallbackData: "main_menu"},
	})
	return telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func doctorCardKeyboard(doctorID uuid.UUID) telegram.InlineKeyboardMarkup {
	return telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{{Text: btnLeaveReview, CallbackData: "review_doctor_" + doctorID.String()}},
			{{Text: btnViewReviews, CallbackData: "view_reviews_" + doctorID.String()}},
			{
				{Text: btnBackToDoctors, CallbackData: "back_to_doctors"},
				{Text: btnToMenu, CallbackData: "main_menu"},
			},
		},
	}
}

func clinicCardKeyboard(clinicID uuid.UUID) telegram.InlineKeyboardMarkup {
	return telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{{Text: btnViewReviews, CallbackData: "view_clinic_reviews_" + clinicID.String()}},
			{
				{Text: btnBackToClinics, CallbackData: "back_to_clinics"},
				{Text: btnToMenu, CallbackData: "main_menu"},
			},
		},
	}
}

// appendNavRow adds prev/next controls: prev only when page>0, next only
// when items remain beyond the current page's end.
func appendNavRow(rows [][]telegram.InlineKeyboardButton, hasPrev, hasNext bool, prevData, nextData string) [][]telegram.InlineKeyboardButton {
	var nav []telegram.InlineKeyboardButton
	if hasPrev {
		nav = append(nav, telegram.InlineKeyboardButton{Text: btnPrevPage, CallbackData: prevData})
	}
	if hasNext {
		nav = append(nav, telegram.InlineKeyboardButton{Text: btnNextPage, CallbackData: nextData})
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	return rows
}
