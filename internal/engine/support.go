package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"medrating/internal/apiclient"
	"medrating/internal/dto"
	"medrating/internal/telegram"
)

const (
	subjectMinLen = 3
	subjectMaxLen = 100
	messageMinLen = 10
	messageMaxLen = 2000
)

// startSupport opens the ticket flow; only registered users can file tickets.
func (e *Engine) startSupport(ctx context.Context, userID, chatID int64, sess *Session) {
	_, err := e.api.GetUserByTelegramID(ctx, userID)
	if err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			e.send(ctx, chatID, msgNeedRegistration, nil)
			return
		}
		e.reportError(ctx, chatID, err)
		return
	}
	sess.State = StateSubject
	e.send(ctx, chatID, msgAskSubject, cancelKeyboard())
}

func (e *Engine) handleSubject(ctx context.Context, chatID int64, sess *Session, text string) {
	subject := strings.TrimSpace(text)
	if n := utf8.RuneCountInString(subject); n < subjectMinLen || n > subjectMaxLen {
		e.send(ctx, chatID, msgSubjectBounds, cancelKeyboard())
		return
	}
	sess.Scratch.Subject = subject
	sess.State = StateMessage
	e.send(ctx, chatID, msgAskMessage, cancelKeyboard())
}

func (e *Engine) handleSupportMessage(ctx context.Context, userID, chatID int64, sess *Session, text string) {
	message := strings.TrimSpace(text)
	if n := utf8.RuneCountInString(message); n < messageMinLen || n > messageMaxLen {
		e.send(ctx, chatID, msgMessageBounds, cancelKeyboard())
		return
	}

	user, err := e.api.GetUserByTelegramID(ctx, userID)
	if err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			e.sessions.Clear(userID)
			e.send(ctx, chatID, msgNeedRegistration, nil)
			return
		}
		e.reportError(ctx, chatID, err)
		return
	}

	subject := sess.Scratch.Subject
	_, err = e.api.CreateSupportRequest(ctx, dto.CreateSupportRequest{
		UserID: user.ID,
		Text:   fmt.Sprintf("Тема: %s\n\n%s", subject, message),
	})
	if err != nil {
		e.reportError(ctx, chatID, err)
		return
	}

	e.sessions.Clear(userID)
	e.send(ctx, chatID, msgTicketCreated, mainMenuKeyboard())
	e.notifyAdmin(ctx, *user, subject, message)
}

// notifyAdmin pushes the new ticket to the admin chat. Delivery is best
// effort; the ticket is already persisted.
func (e *Engine) notifyAdmin(ctx context.Context, user dto.UserView, subject, message string) {
	if e.adminChatID == 0 {
		return
	}
	err := e.tg.SendMessage(ctx, telegram.SendMessageParams{
		ChatID:    e.adminChatID,
		Text:      formatAdminTicket(user, subject, message),
		ParseMode: "HTML",
	})
	if err != nil {
		slog.Error("notify admin about support request", "error", err)
	}
}
