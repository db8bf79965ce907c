package engine

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"medrating/internal/apiclient"
	"medrating/internal/dto"
	"medrating/internal/telegram"
)

// Backend is the slice of the data service API the engine depends on.
// *apiclient.Client satisfies it; tests substitute a fake.
type Backend interface {
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*dto.UserView, error)
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserView, error)
	GetUser(ctx context.Context, id uuid.UUID) (*dto.UserView, error)
	GetCategories(ctx context.Context) ([]dto.CategoryView, error)
	GetGeoPositions(ctx context.Context) ([]dto.GeoPositionView, error)
	GetDoctors(ctx context.Context, filter apiclient.DoctorFilter) ([]dto.UserView, error)
	GetDoctorsByCategory(ctx context.Context, categoryID uuid.UUID) ([]dto.UserView, error)
	GetDoctorsRanked(ctx context.Context) ([]dto.UserView, error)
	GetClinicsRanked(ctx context.Context) ([]dto.ClinicView, error)
	GetClinic(ctx context.Context, id uuid.UUID) (*dto.ClinicView, error)
	CreateReview(ctx context.Context, req dto.CreateReviewRequest) (*dto.ReviewView, error)
	GetReviewsByDoctor(ctx context.Context, doctorID uuid.UUID) ([]dto.ReviewView, error)
	GetReviewsByAuthor(ctx context.Context, authorID uuid.UUID) ([]dto.ReviewView, error)
	HasReviewForDoctor(ctx context.Context, authorID, doctorID uuid.UUID) (bool, error)
	CreateSupportRequest(ctx context.Context, req dto.CreateSupportRequest) (*dto.SupportRequestView, error)
}

// Messenger is the outgoing Telegram surface. *telegram.Client satisfies it.
type Messenger interface {
	SendMessage(ctx context.Context, params telegram.SendMessageParams) error
	EditMessageText(ctx context.Context, params telegram.EditMessageTextParams) error
	AnswerCallbackQuery(ctx context.Context, params telegram.AnswerCallbackQueryParams) error
}

// Engine turns incoming Telegram updates into conversation steps. It owns the
// per-user sessions and the per-user throttle; all persistent state lives
// behind Backend.
type Engine struct {
	api         Backend
	tg          Messenger
	sessions    *SessionStore
	throttle    *Throttle
	pageSize    int
	adminChatID int64
}

type Config struct {
	PageSize       int
	ThrottleWindow time.Duration
	AdminChatID    int64
}

func New(api Backend, tg Messenger, cfg Config) *Engine {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Engine{
		api:         api,
		tg:          tg,
		sessions:    NewSessionStore(),
		throttle:    NewThrottle(cfg.ThrottleWindow),
		pageSize:    pageSize,
		adminChatID: cfg.AdminChatID,
	}
}

// HandleUpdate processes one update to completion. Throttled updates are
// answered with a hint and otherwise discarded without touching session state.
func (e *Engine) HandleUpdate(ctx context.Context, update telegram.Update) {
	switch {
	case update.Message != nil && update.Message.From != nil:
		msg := update.Message
		if !e.throttle.Allow(msg.From.ID) {
			e.send(ctx, msg.Chat.ID, msgThrottled, nil)
			return
		}
		e.handleMessage(ctx, msg)
	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		if !e.throttle.Allow(cb.From.ID) {
			e.answerCallback(ctx, cb.ID, msgThrottledCallback)
			return
		}
		e.handleCallback(ctx, cb)
	}
}

func (e *Engine) handleMessage(ctx context.Context, msg *telegram.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID
	sess := e.sessions.Get(userID)

	// An active flow consumes the message regardless of its text, so a
	// mid-flow /start restarts cleanly first.
	if strings.HasPrefix(msg.Text, "/start") {
		e.sessions.Clear(userID)
		e.handleStart(ctx, userID, chatID)
		return
	}

	switch sess.State {
	case StateConsent:
		e.handleConsent(ctx, userID, chatID, sess, msg.Text)
		return
	case StateFullName:
		e.handleFullName(ctx, chatID, sess, msg.Text)
		return
	case StateCity:
		e.handleCityText(ctx, chatID, sess, msg.Text)
		return
	case StatePhone:
		e.handlePhone(ctx, chatID, sess, msg)
		return
	case StateConfirm:
		e.handleConfirm(ctx, userID, chatID, sess, msg.Text)
		return
	case StateReviewText:
		e.handleReviewText(ctx, userID, chatID, sess, msg.Text)
		return
	case StateRating:
		// Rating is picked from the inline keyboard only.
		e.send(ctx, chatID, msgAskRating, ratingKeyboard())
		return
	case StateSubject:
		e.handleSubject(ctx, chatID, sess, msg.Text)
		return
	case StateMessage:
		e.handleSupportMessage(ctx, userID, chatID, sess, msg.Text)
		return
	}

	switch msg.Text {
	case btnCategories:
		e.showCategories(ctx, chatID)
	case btnDoctorsRating:
		e.showTopDoctors(ctx, chatID, sess)
	case btnClinicsRating:
		e.showClinicsRating(ctx, chatID)
	case btnMyReviews:
		e.showMyReviews(ctx, userID, chatID)
	case btnSupport:
		e.startSupport(ctx, userID, chatID, sess)
	default:
		e.send(ctx, chatID, msgUnknownCommand, mainMenuKeyboard())
	}
}

func (e *Engine) handleCallback(ctx context.Context, cb *telegram.CallbackQuery) {
	if cb.Message == nil {
		e.answerCallback(ctx, cb.ID, "")
		return
	}

	userID := cb.From.ID
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID
	sess := e.sessions.Get(userID)
	data := cb.Data

	e.answerCallback(ctx, cb.ID, "")

	switch {
	case data == "main_menu":
		e.sessions.Clear(userID)
		e.send(ctx, chatID, msgMainMenu, mainMenuKeyboard())

	case data == "cancel":
		e.sessions.Clear(userID)
		e.send(ctx, chatID, msgActionCancelled, mainMenuKeyboard())

	case data == "cancel_review":
		e.sessions.Clear(userID)
		e.send(ctx, chatID, msgReviewCancelled, mainMenuKeyboard())

	case data == "back_to_categories":
		e.editCategories(ctx, chatID, messageID, 0)

	case data == "back_to_doctors":
		e.backToDoctors(ctx, chatID, messageID, sess)

	case data == "back_to_clinics":
		e.clinicsPage(ctx, chatID, messageID, 0)

	case strings.HasPrefix(data, "cities_page_"):
		e.cityPage(ctx, chatID, messageID, sess, pageArg(data, "cities_page_"))

	case strings.HasPrefix(data, "city_"):
		e.handleCityPick(ctx, chatID, sess, idArg(data, "city_"))

	case strings.HasPrefix(data, "categories_page_"):
		e.editCategories(ctx, chatID, messageID, pageArg(data, "categories_page_"))

	case strings.HasPrefix(data, "category_"):
		e.showDoctorsInCategory(ctx, chatID, messageID, sess, idArg(data, "category_"), 0)

	case strings.HasPrefix(data, "doctors_page_"):
		page, categoryID := doctorsPageArgs(data)
		e.doctorsPage(ctx, chatID, messageID, sess, page, categoryID)

	case strings.HasPrefix(data, "doctor_"):
		e.showDoctorCard(ctx, chatID, messageID, idArg(data, "doctor_"))

	case strings.HasPrefix(data, "review_doctor_"):
		e.startReview(ctx, userID, chatID, sess, idArg(data, "review_doctor_"))

	case strings.HasPrefix(data, "rating_"):
		e.handleRatingPick(ctx, chatID, sess, pageArg(data, "rating_"))

	case strings.HasPrefix(data, "view_clinic_reviews_"):
		e.showClinicReviews(ctx, chatID, idArg(data, "view_clinic_reviews_"))

	case strings.HasPrefix(data, "view_reviews_"):
		e.showDoctorReviews(ctx, chatID, idArg(data, "view_reviews_"))

	case strings.HasPrefix(data, "clinics_page_"):
		e.clinicsPage(ctx, chatID, messageID, pageArg(data, "clinics_page_"))

	case strings.HasPrefix(data, "clinic_"):
		e.showClinicCard(ctx, chatID, messageID, idArg(data, "clinic_"))

	default:
		slog.Warn("unknown callback data", "data", data)
	}
}

// send delivers a plain HTML message, logging delivery failures instead of
// propagating them; a lost message must not wedge the session.
func (e *Engine) send(ctx context.Context, chatID int64, text string, markup interface{}) {
	err := e.tg.SendMessage(ctx, telegram.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   "HTML",
		ReplyMarkup: markup,
	})
	if err != nil {
		slog.Error("send message", "chat_id", chatID, "error", err)
	}
}

func (e *Engine) edit(ctx context.Context, chatID, messageID int64, text string, markup telegram.InlineKeyboardMarkup) {
	err := e.tg.EditMessageText(ctx, telegram.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ParseMode:   "HTML",
		ReplyMarkup: &markup,
	})
	if err != nil {
		slog.Error("edit message", "chat_id", chatID, "error", err)
	}
}

func (e *Engine) answerCallback(ctx context.Context, callbackID, text string) {
	err := e.tg.AnswerCallbackQuery(ctx, telegram.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
	})
	if err != nil {
		slog.Error("answer callback", "error", err)
	}
}

// reportError tells the user something went wrong without losing their place
// in the flow. Client errors carry the backend's human-readable detail, which
// is surfaced as-is; everything else collapses to the generic text.
func (e *Engine) reportError(ctx context.Context, chatID int64, err error) {
	slog.Error("backend call failed", "error", err)
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode < 500 && apiErr.Detail != "" {
		e.send(ctx, chatID, apiErr.Detail, nil)
		return
	}
	e.send(ctx, chatID, msgGenericError, nil)
}

// Callback data parsing helpers. Malformed data yields zero values, which the
// handlers treat as "not found".

func pageArg(data, prefix string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(data, prefix))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func idArg(data, prefix string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimPrefix(data, prefix))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// doctorsPageArgs parses "doctors_page_<n>" or "doctors_page_<n>_cat_<uuid>".
func doctorsPageArgs(data string) (int, *uuid.UUID) {
	rest := strings.TrimPrefix(data, "doctors_page_")
	pagePart := rest
	var categoryID *uuid.UUID
	if i := strings.Index(rest, "_cat_"); i >= 0 {
		pagePart = rest[:i]
		if id, err := uuid.Parse(rest[i+len("_cat_"):]); err == nil {
			categoryID = &id
		}
	}
	page, err := strconv.Atoi(pagePart)
	if err != nil || page < 0 {
		page = 0
	}
	return page, categoryID
}
