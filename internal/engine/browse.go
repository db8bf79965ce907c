package engine

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"medrating/internal/apiclient"
)

// showCategories opens the category picker as a fresh message (entered from
// the reply menu, so there is nothing to edit).
func (e *Engine) showCategories(ctx context.Context, chatID int64) {
	categories, err := e.api.GetCategories(ctx)
	if err != nil {
		e.reportError(ctx, chatID, err)
		return
	}
	if len(categories) == 0 {
		e.send(ctx, chatID, msgNoCategories, backToMenuKeyboard())
		return
	}
	e.send(ctx, chatID, msgChooseCategory, categoriesKeyboard(categories, 0, e.pageSize))
}

// editCategories re-renders the picker in place for pagination and back
// navigation.
func (e *Engine) editCategories(ctx context.Context, chatID, messageID int64, page int) {
	categories, err := e.api.GetCategories(ctx)
	if err != nil {
		e.reportError(ctx, chatID, err)
		return
	}
	if len(categories) == 0 {
		e.edit(ctx, chatID, messageID, msgNoCategories, backToMenuKeyboard())
		return
	}
	e.edit(ctx, chatID, messageID, msgChooseCategory, categoriesKeyboard(categories, page, e.pageSize))
}

func (e *Engine) showDoctorsInCategory(ctx context.Context, chatID, messageID int64, sess *Session, categoryID uuid.UUID, page int) {
	doctors, err := e.api.GetDoctorsByCategory(ctx, categoryID)
	if err != nil {
		e.reportError(ctx, chatID, err)
		return
	}
	// Remember the category so doctor cards can navigate back to this list.
	id := categoryID
	sess.Scratch.CategoryID = &id
	sess.Scratch.RankedDoctors = false

	if len(doctors) == 0 {
		e.edit(ctx, chatID, messageID, msgNoDoctors, categoryBackKeyboard())
		return
	}
	e.edit(ctx, chatID, messageID, msgDoctorsInCategory, doctorsKeyboard(doctors, page, e.pageSize, &categoryID))
}

func (e *Engine) doctorsPage(ctx context.Context, chatID, messageID int64, sess *Session, page int, categoryID *uuid.UUID) {
	if categoryID == nil {
		categoryID = sess.Scratch.CategoryID
	}
	if categoryID == nil {
		if sess.Scratch.RankedDoctors {
			e.rankedDoctorsPage(ctx, chatID, messageID, page)
			return
		}
		e.editCategories(ctx, chatID, messageID, 0)
		return
	}
	e.showDoctorsInCategory(ctx, chatID, messageID, sess, *categoryID, page)
}

// backToDoctors returns from a doctor card to the list it was opened from:
// the category's doctors, the rating leaderboard, or the category picker
// when the context is gone.
func (e *Engine) backToDoctors(ctx context.Context, chatID, messageID int64, sess *Session) {
	if sess.Scratch.CategoryID != nil {
		e.showDoctorsInCategory(ctx, chatID, messageID, sess, *sess.Scratch.CategoryID, 0)
		return
	}
	if sess.Scratch.RankedDoctors {
		e.rankedDoctorsPage(ctx, chatID, messageID, 0)
		return
	}
	e.editCategories(ctx, chatID, messageID, 0)
}

func (e *Engine) showDoctorCard(ctx context.Context, chatID, messageID int64, doctorID uuid.UUID) {
	doctor, err := e.api.GetUser(ctx, doctorID)
	if err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			e.edit(ctx, chatID, messageID, msgNoDoctors, backToMenuKeyboard())
			return
		}
		e.reportError(ctx, chatID, err)
		return
	}
	e.edit(ctx, chatID, messageID, formatDoctorCard(*doctor), doctorCardKeyboard(doctor.ID))
}

func (e *Engine) showDoctorReviews(ctx context.Context, chatID int64, doctorID uuid.UUID) {
	reviews, err := e.api.GetReviewsByDoctor(ctx, doctorID)
	if err != nil {
		e.reportError(ctx, chatID, err)
		return
	}
	if len(reviews) == 0 {
		e.send(ctx, chatID, msgNoReviews, backToMenuKeyboard())
		return
	}
	title := "Отзывы о враче"
	if reviews[0].Doctor != nil {
		title = "Отзывы о враче " + reviews[0].Doctor.FullName
	}
	e.send(ctx, chatID, formatReviewsList(title, reviews), backToMenuKeyboard())
}

// showTopDoctors renders the ranked list as a numbered leaderboard with the
// doctors attached as buttons, so a card (and a review) is reachable straight
// from the rating.
func (e *Engine) showTopDoctors(ctx context.Context, chatID int64, sess *Session) {
	doctors, err := e.api.GetDoctorsRanked(ctx)
	if err != nil {
		e.reportError(ctx, chatID, err)
		return
	}
	if len(doctors) == 0 {
		e.send(ctx, chatID, msgNoRatedDoctors, backToMenuKeyboard())
		return
	}
	sess.Scratch.CategoryID = nil
	sess.Scratch.RankedDoctors = true
	e.send(ctx, chatID, formatTopDoctors(doctors), doctorsKeyboard(doctors, 0, e.pageSize, nil))
}

func (e *Engine) rankedDoctorsPage(ctx context.Context, chatID, messageID int64, page int) {
	doctors, err := e.api.GetDoctorsRanked(ctx)
	if err != nil {
		e.reportError(ctx, chatID, err)
		return
	}
	if len(doctors) == 0 {
		e.edit(ctx, chatID, messageID, msgNoRatedDoctors, backToMenuKeyboard())
		return
	}
	e.edit(ctx, chatID, messageID, formatTopDoctors(doctors), doctorsKeyboard(doctors, page, e.pageSize, nil))
}

func (e *Engine) showClinicsRating(ctx context.Context, chatID int64) {
	clinics, err := e.api.GetClinicsRanked(ctx)
	if err != nil {
		e.reportError(ctx, chatID, err)
		return
	}
	if len(clinics) == 0 {
		e.send(ctx, chatID, msgNoRatedClinics, backToMenuKeyboard())
		return
	}
	e.send(ctx, chatID, msgChooseClinic, clinicsKeyboard(clinics, 0, e.pageSize))
}

func (e *Engine) clinicsPage(ctx context.Context, chatID, messageID int64, page int) {
	clinics, err := e.api.GetClinicsRanked(ctx)
	if err != nil {
		e.reportError(ctx, chatID, err)
		return
	}
	if len(clinics) == 0 {
		e.edit(ctx, chatID, messageID, msgNoRatedClinics, backToMenuKeyboard())
		return
	}
	e.edit(ctx, chatID, messageID, msgChooseClinic, clinicsKeyboard(clinics, page, e.pageSize))
}

func (e *Engine) showClinicCard(ctx context.Context, chatID, messageID int64, clinicID uuid.UUID) {
	clinic, err := e.api.GetClinic(ctx, clinicID)
	if err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			e.edit(ctx, chatID, messageID, msgNoClinics, backToMenuKeyboard())
			return
		}
		e.reportError(ctx, chatID, err)
		return
	}
	e.edit(ctx, chatID, messageID, formatClinicCard(*clinic), clinicCardKeyboard(clinic.ID))
}

// showClinicReviews collects reviews for every doctor working at the clinic.
func (e *Engine) showClinicReviews(ctx context.Context, chatID int64, clinicID uuid.UUID) {
	doctors, err := e.api.GetDoctors(ctx, apiclient.DoctorFilter{ClinicID: &clinicID})
	if err != nil {
		e.reportError(ctx, chatID, err)
		return
	}

	var all []reviewWithDoctor
	for _, doctor := range doctors {
		reviews, err := e.api.GetReviewsByDoctor(ctx, doctor.ID)
		if err != nil {
			e.reportError(ctx, chatID, err)
			return
		}
		for _, r := range reviews {
			all = append(all, reviewWithDoctor{review: r, doctorName: doctor.FullName})
		}
	}
	if len(all) == 0 {
		e.send(ctx, chatID, msgNoReviews, backToMenuKeyboard())
		return
	}
	e.send(ctx, chatID, formatClinicReviews(all), backToMenuKeyboard())
}

func (e *Engine) showMyReviews(ctx context.Context, userID, chatID int64) {
	user, err := e.api.GetUserByTelegramID(ctx, userID)
	if err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			e.send(ctx, chatID, msgNeedRegistration, nil)
			return
		}
		e.reportError(ctx, chatID, err)
		return
	}

	reviews, err := e.api.GetReviewsByAuthor(ctx, user.ID)
	if err != nil {
		e.reportError(ctx, chatID, err)
		return
	}
	if len(reviews) == 0 {
		e.send(ctx, chatID, msgNoMyReviews, backToMenuKeyboard())
		return
	}
	e.send(ctx, chatID, formatMyReviews(reviews), backToMenuKeyboard())
}
