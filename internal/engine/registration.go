package engine

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"medrating/internal/apiclient"
	"medrating/internal/dto"
	"medrating/internal/telegram"
)

const (
	fullNameMinLen = 3
	cityMinLen     = 2
)

// handleStart greets a known user or opens the consent step for a new one.
func (e *Engine) handleStart(ctx context.Context, userID, chatID int64) {
	_, err := e.api.GetUserByTelegramID(ctx, userID)
	switch {
	case err == nil:
		e.send(ctx, chatID, msgWelcomeBack, mainMenuKeyboard())
	case errors.Is(err, apiclient.ErrNotFound):
		sess := e.sessions.Get(userID)
		sess.State = StateConsent
		e.send(ctx, chatID, msgConsent, consentKeyboard())
	default:
		e.reportError(ctx, chatID, err)
	}
}

func (e *Engine) handleConsent(ctx context.Context, userID, chatID int64, sess *Session, text string) {
	switch strings.TrimSpace(text) {
	case btnConsentAccept:
		sess.State = StateFullName
		e.send(ctx, chatID, msgAskFullName, telegram.ReplyKeyboardRemove{RemoveKeyboard: true})
	case btnConsentRefuse:
		e.sessions.Clear(userID)
		e.send(ctx, chatID, msgConsentRefused, telegram.ReplyKeyboardRemove{RemoveKeyboard: true})
	default:
		e.send(ctx, chatID, msgConsent, consentKeyboard())
	}
}

func (e *Engine) handleFullName(ctx context.Context, chatID int64, sess *Session, text string) {
	name := strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(strings.ReplaceAll(name, " ", "")) < fullNameMinLen {
		e.send(ctx, chatID, msgFullNameTooShort, nil)
		return
	}
	sess.Scratch.FullName = name
	sess.State = StateCity

	cities, err := e.api.GetGeoPositions(ctx)
	if err != nil || len(cities) == 0 {
		// Fall back to free-text entry when the directory is unavailable.
		if err != nil {
			e.reportError(ctx, chatID, err)
		}
		sess.Scratch.Cities = nil
		e.send(ctx, chatID, msgTypeCity, nil)
		return
	}
	sess.Scratch.Cities = cities
	e.send(ctx, chatID, msgChooseCity, citiesKeyboard(cities, 0, e.pageSize))
}

// cityPage flips the city picker to another page in place.
func (e *Engine) cityPage(ctx context.Context, chatID, messageID int64, sess *Session, page int) {
	if sess.State != StateCity || len(sess.Scratch.Cities) == 0 {
		return
	}
	e.edit(ctx, chatID, messageID, msgChooseCity, citiesKeyboard(sess.Scratch.Cities, page, e.pageSize))
}

func (e *Engine) handleCityPick(ctx context.Context, chatID int64, sess *Session, cityID uuid.UUID) {
	if sess.State != StateCity {
		return
	}
	for _, city := range sess.Scratch.Cities {
		if city.ID == cityID {
			id := city.ID
			sess.Scratch.CityID = &id
			sess.Scratch.CityName = city.Title
			sess.State = StatePhone
			e.send(ctx, chatID, msgAskPhone, phoneKeyboard())
			return
		}
	}
	// Stale keyboard from an expired directory snapshot.
	e.send(ctx, chatID, msgTypeCity, nil)
	sess.Scratch.Cities = nil
}

// handleCityText accepts a typed city name, used when the directory has no
// entries or the user ignores the keyboard.
func (e *Engine) handleCityText(ctx context.Context, chatID int64, sess *Session, text string) {
	city := strings.TrimSpace(text)
	if utf8.RuneCountInString(city) < cityMinLen {
		e.send(ctx, chatID, msgCityTooShort, nil)
		return
	}
	sess.Scratch.CityID = nil
	sess.Scratch.CityName = city
	sess.State = StatePhone
	e.send(ctx, chatID, msgAskPhone, phoneKeyboard())
}

func (e *Engine) handlePhone(ctx context.Context, chatID int64, sess *Session, msg *telegram.Message) {
	switch {
	case msg.Contact != nil:
		phone := msg.Contact.PhoneNumber
		sess.Scratch.Phone = &phone
	case strings.TrimSpace(msg.Text) == btnSkip:
		sess.Scratch.Phone = nil
	case strings.TrimSpace(msg.Text) != "":
		phone := strings.TrimSpace(msg.Text)
		sess.Scratch.Phone = &phone
	default:
		e.send(ctx, chatID, msgAskPhone, phoneKeyboard())
		return
	}
	sess.State = StateConfirm
	summary := formatRegistrationSummary(sess.Scratch.FullName, sess.Scratch.CityName, sess.Scratch.Phone)
	e.send(ctx, chatID, summary, confirmKeyboard())
}

func (e *Engine) handleConfirm(ctx context.Context, userID, chatID int64, sess *Session, text string) {
	switch strings.TrimSpace(text) {
	case btnConfirm:
		_, err := e.api.CreateUser(ctx, dto.CreateUserRequest{
			TelegramID:    userID,
			FullName:      sess.Scratch.FullName,
			PhoneNumber:   sess.Scratch.Phone,
			GeoPositionID: sess.Scratch.CityID,
			IsPatient:     true,
		})
		switch {
		case err == nil:
			e.sessions.Clear(userID)
			e.send(ctx, chatID, msgRegistered, mainMenuKeyboard())
		case errors.Is(err, apiclient.ErrConflict):
			e.sessions.Clear(userID)
			e.send(ctx, chatID, msgAlreadyRegistered, mainMenuKeyboard())
		default:
			e.reportError(ctx, chatID, err)
		}
	case btnEdit:
		sess.Scratch = Scratch{}
		sess.State = StateFullName
		e.send(ctx, chatID, msgAskFullName, telegram.ReplyKeyboardRemove{RemoveKeyboard: true})
	default:
		summary := formatRegistrationSummary(sess.Scratch.FullName, sess.Scratch.CityName, sess.Scratch.Phone)
		e.send(ctx, chatID, summary, confirmKeyboard())
	}
}
