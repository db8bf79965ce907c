package engine

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"medrating/internal/apiclient"
	"medrating/internal/dto"
)

const (
	reviewTextMinLen = 10
	reviewTextMaxLen = 1000
)

// startReview checks the preconditions (registered author, no prior review
// for this doctor) before asking for a rating.
func (e *Engine) startReview(ctx context.Context, userID, chatID int64, sess *Session, doctorID uuid.UUID) {
	author, err := e.api.GetUserByTelegramID(ctx, userID)
	if err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			e.send(ctx, chatID, msgNeedRegistration, nil)
			return
		}
		e.reportError(ctx, chatID, err)
		return
	}

	exists, err := e.api.HasReviewForDoctor(ctx, author.ID, doctorID)
	if err != nil {
		e.reportError(ctx, chatID, err)
		return
	}
	if exists {
		e.send(ctx, chatID, msgAlreadyReviewed, backToMenuKeyboard())
		return
	}

	sess.Scratch.AuthorID = author.ID
	sess.Scratch.DoctorID = doctorID
	sess.State = StateRating
	e.send(ctx, chatID, msgAskRating, ratingKeyboard())
}

func (e *Engine) handleRatingPick(ctx context.Context, chatID int64, sess *Session, rating int) {
	if sess.State != StateRating {
		return
	}
	if rating < 1 || rating > 5 {
		e.send(ctx, chatID, msgAskRating, ratingKeyboard())
		return
	}
	sess.Scratch.Rating = rating
	sess.State = StateReviewText
	e.send(ctx, chatID, msgAskReviewText, cancelKeyboard())
}

func (e *Engine) handleReviewText(ctx context.Context, userID, chatID int64, sess *Session, text string) {
	text = strings.TrimSpace(text)
	if n := utf8.RuneCountInString(text); n < reviewTextMinLen || n > reviewTextMaxLen {
		e.send(ctx, chatID, msgReviewTextBounds, cancelKeyboard())
		return
	}

	_, err := e.api.CreateReview(ctx, dto.CreateReviewRequest{
		AuthorID: sess.Scratch.AuthorID,
		DoctorID: sess.Scratch.DoctorID,
		Rating:   sess.Scratch.Rating,
		Text:     text,
	})
	switch {
	case err == nil:
		e.sessions.Clear(userID)
		e.send(ctx, chatID, msgReviewSaved, mainMenuKeyboard())
	case errors.Is(err, apiclient.ErrConflict):
		// Raced with a parallel submission; the storage unique index won.
		e.sessions.Clear(userID)
		e.send(ctx, chatID, msgAlreadyReviewed, mainMenuKeyboard())
	default:
		e.reportError(ctx, chatID, err)
	}
}
