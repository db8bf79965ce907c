package engine

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medrating/internal/apiclient"
	"medrating/internal/dto"
	"medrating/internal/telegram"
)

// fakeBackend serves canned data and records writes.
type fakeBackend struct {
	usersByTelegramID map[int64]*dto.UserView
	geoPositions      []dto.GeoPositionView
	categories        []dto.CategoryView
	doctors           []dto.UserView
	clinics           []dto.ClinicView
	reviewsByAuthor   map[uuid.UUID][]dto.ReviewView
	reviewsByDoctor   map[uuid.UUID][]dto.ReviewView

	createdUsers   []dto.CreateUserRequest
	createdReviews []dto.CreateReviewRequest
	createdTickets []dto.CreateSupportRequest

	createUserErr   error
	createReviewErr error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		usersByTelegramID: make(map[int64]*dto.UserView),
		reviewsByAuthor:   make(map[uuid.UUID][]dto.ReviewView),
		reviewsByDoctor:   make(map[uuid.UUID][]dto.ReviewView),
	}
}

func (f *fakeBackend) GetUserByTelegramID(_ context.Context, telegramID int64) (*dto.UserView, error) {
	if u, ok := f.usersByTelegramID[telegramID]; ok {
		return u, nil
	}
	return nil, apiclient.ErrNotFound
}

func (f *fakeBackend) CreateUser(_ context.Context, req dto.CreateUserRequest) (*dto.UserView, error) {
	if f.createUserErr != nil {
		return nil, f.createUserErr
	}
	f.createdUsers = append(f.createdUsers, req)
	return &dto.UserView{ID: uuid.New(), TelegramID: req.TelegramID, FullName: req.FullName}, nil
}

func (f *fakeBackend) GetUser(_ context.Context, id uuid.UUID) (*dto.UserView, error) {
	for i := range f.doctors {
		if f.doctors[i].ID == id {
			return &f.doctors[i], nil
		}
	}
	return nil, apiclient.ErrNotFound
}

func (f *fakeBackend) GetCategories(_ context.Context) ([]dto.CategoryView, error) {
	return f.categories, nil
}

func (f *fakeBackend) GetGeoPositions(_ context.Context) ([]dto.GeoPositionView, error) {
	return f.geoPositions, nil
}

func (f *fakeBackend) GetDoctors(_ context.Context, _ apiclient.DoctorFilter) ([]dto.UserView, error) {
	return f.doctors, nil
}

func (f *fakeBackend) GetDoctorsByCategory(_ context.Context, _ uuid.UUID) ([]dto.UserView, error) {
	return f.doctors, nil
}

func (f *fakeBackend) GetDoctorsRanked(_ context.Context) ([]dto.UserView, error) {
	return f.doctors, nil
}

func (f *fakeBackend) GetClinicsRanked(_ context.Context) ([]dto.ClinicView, error) {
	return f.clinics, nil
}

func (f *fakeBackend) GetClinic(_ context.Context, id uuid.UUID) (*dto.ClinicView, error) {
	for i := range f.clinics {
		if f.clinics[i].ID == id {
			return &f.clinics[i], nil
		}
	}
	return nil, apiclient.ErrNotFound
}

func (f *fakeBackend) CreateReview(_ context.Context, req dto.CreateReviewRequest) (*dto.ReviewView, error) {
	if f.createReviewErr != nil {
		return nil, f.createReviewErr
	}
	f.createdReviews = append(f.createdReviews, req)
	return &dto.ReviewView{ID: uuid.New(), Rating: req.Rating, Text: req.Text}, nil
}

func (f *fakeBackend) GetReviewsByDoctor(_ context.Context, doctorID uuid.UUID) ([]dto.ReviewView, error) {
	return f.reviewsByDoctor[doctorID], nil
}

func (f *fakeBackend) GetReviewsByAuthor(_ context.Context, authorID uuid.UUID) ([]dto.ReviewView, error) {
	return f.reviewsByAuthor[authorID], nil
}

func (f *fakeBackend) HasReviewForDoctor(ctx context.Context, authorID, doctorID uuid.UUID) (bool, error) {
	reviews, _ := f.GetReviewsByAuthor(ctx, authorID)
	for _, r := range reviews {
		if r.Doctor != nil && r.Doctor.ID == doctorID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBackend) CreateSupportRequest(_ context.Context, req dto.CreateSupportRequest) (*dto.SupportRequestView, error) {
	f.createdTickets = append(f.createdTickets, req)
	return &dto.SupportRequestView{ID: uuid.New(), Text: req.Text}, nil
}

// fakeMessenger records outgoing traffic.
type fakeMessenger struct {
	sent     []telegram.SendMessageParams
	edited   []telegram.EditMessageTextParams
	answered []telegram.AnswerCallbackQueryParams
}

func (f *fakeMessenger) SendMessage(_ context.Context, p telegram.SendMessageParams) error {
	f.sent = append(f.sent, p)
	return nil
}

func (f *fakeMessenger) EditMessageText(_ context.Context, p telegram.EditMessageTextParams) error {
	f.edited = append(f.edited, p)
	return nil
}

func (f *fakeMessenger) AnswerCallbackQuery(_ context.Context, p telegram.AnswerCallbackQueryParams) error {
	f.answered = append(f.answered, p)
	return nil
}

func (f *fakeMessenger) lastSent(t *testing.T) telegram.SendMessageParams {
	t.Helper()
	require.NotEmpty(t, f.sent)
	return f.sent[len(f.sent)-1]
}

const (
	testUserID = int64(100500)
	testChatID = int64(100500)
)

func newTestEngine(api Backend) (*Engine, *fakeMessenger) {
	tg := &fakeMessenger{}
	e := New(api, tg, Config{PageSize: 5, ThrottleWindow: time.Second, AdminChatID: 777})
	// Tests drive many updates in a row; advance the throttle clock on every
	// check so nothing is rejected unless a test installs its own clock.
	var tick int64
	e.throttle.now = func() time.Time {
		tick++
		return time.Unix(tick*10, 0)
	}
	return e, tg
}

func textUpdate(text string) telegram.Update {
	return telegram.Update{
		Message: &telegram.Message{
			From: &telegram.User{ID: testUserID},
			Chat: telegram.Chat{ID: testChatID},
			Text: text,
		},
	}
}

func contactUpdate(phone string) telegram.Update {
	u := textUpdate("")
	u.Message.Contact = &telegram.Contact{PhoneNumber: phone, UserID: testUserID}
	return u
}

func callbackUpdate(data string) telegram.Update {
	return telegram.Update{
		CallbackQuery: &telegram.CallbackQuery{
			ID:   "cb-1",
			From: telegram.User{ID: testUserID},
			Message: &telegram.Message{
				MessageID: 7,
				Chat:      telegram.Chat{ID: testChatID},
			},
			Data: data,
		},
	}
}

func TestRegistrationFlow(t *testing.T) {
	api := newFakeBackend()
	cityID := uuid.New()
	api.geoPositions = []dto.GeoPositionView{
		{ID: cityID, Title: "Казань"},
		{ID: uuid.New(), Title: "Москва"},
	}
	e, tg := newTestEngine(api)
	ctx := context.Background()

	e.HandleUpdate(ctx, textUpdate("/start"))
	assert.Equal(t, msgConsent, tg.lastSent(t).Text)
	assert.Equal(t, StateConsent, e.sessions.Get(testUserID).State)

	e.HandleUpdate(ctx, textUpdate(btnConsentAccept))
	assert.Equal(t, msgAskFullName, tg.lastSent(t).Text)

	// Too short, must stay on the same step.
	e.HandleUpdate(ctx, textUpdate("Al"))
	assert.Equal(t, msgFullNameTooShort, tg.lastSent(t).Text)
	assert.Equal(t, StateFullName, e.sessions.Get(testUserID).State)

	e.HandleUpdate(ctx, textUpdate("Alice Smith"))
	assert.Equal(t, msgChooseCity, tg.lastSent(t).Text)
	assert.Equal(t, StateCity, e.sessions.Get(testUserID).State)

	e.HandleUpdate(ctx, callbackUpdate("city_"+cityID.String()))
	assert.Equal(t, msgAskPhone, tg.lastSent(t).Text)

	e.HandleUpdate(ctx, contactUpdate("+79001234567"))
	assert.Contains(t, tg.lastSent(t).Text, "Alice Smith")
	assert.Contains(t, tg.lastSent(t).Text, "Казань")
	assert.Contains(t, tg.lastSent(t).Text, "+79001234567")

	e.HandleUpdate(ctx, textUpdate(btnConfirm))
	assert.Equal(t, msgRegistered, tg.lastSent(t).Text)

	require.Len(t, api.createdUsers, 1)
	created := api.createdUsers[0]
	assert.Equal(t, testUserID, created.TelegramID)
	assert.Equal(t, "Alice Smith", created.FullName)
	require.NotNil(t, created.GeoPositionID)
	assert.Equal(t, cityID, *created.GeoPositionID)
	require.NotNil(t, created.PhoneNumber)
	assert.Equal(t, "+79001234567", *created.PhoneNumber)
	assert.True(t, created.IsPatient)

	// Session is gone after successful registration.
	assert.Equal(t, StateIdle, e.sessions.Get(testUserID).State)
}

func TestRegistrationConsentRefused(t *testing.T) {
	api := newFakeBackend()
	e, tg := newTestEngine(api)
	ctx := context.Background()

	e.HandleUpdate(ctx, textUpdate("/start"))
	e.HandleUpdate(ctx, textUpdate(btnConsentRefuse))

	assert.Equal(t, msgConsentRefused, tg.lastSent(t).Text)
	assert.Equal(t, StateIdle, e.sessions.Get(testUserID).State)
	assert.Empty(t, api.createdUsers)
}

func TestStartForRegisteredUser(t *testing.T) {
	api := newFakeBackend()
	api.usersByTelegramID[testUserID] = &dto.UserView{ID: uuid.New(), TelegramID: testUserID}
	e, tg := newTestEngine(api)

	e.HandleUpdate(context.Background(), textUpdate("/start"))

	assert.Equal(t, msgWelcomeBack, tg.lastSent(t).Text)
	assert.Equal(t, StateIdle, e.sessions.Get(testUserID).State)
}

func TestReviewFlow(t *testing.T) {
	api := newFakeBackend()
	authorID := uuid.New()
	doctorID := uuid.New()
	api.usersByTelegramID[testUserID] = &dto.UserView{ID: authorID, TelegramID: testUserID}
	e, tg := newTestEngine(api)
	ctx := context.Background()

	e.HandleUpdate(ctx, callbackUpdate("review_doctor_"+doctorID.String()))
	assert.Equal(t, msgAskRating, tg.lastSent(t).Text)
	assert.Equal(t, StateRating, e.sessions.Get(testUserID).State)

	e.HandleUpdate(ctx, callbackUpdate("rating_4"))
	assert.Equal(t, msgAskReviewText, tg.lastSent(t).Text)

	// Nine runes, one short of the minimum.
	e.HandleUpdate(ctx, textUpdate("123456789"))
	assert.Equal(t, msgReviewTextBounds, tg.lastSent(t).Text)
	assert.Empty(t, api.createdReviews)

	e.HandleUpdate(ctx, textUpdate("1234567890"))
	assert.Equal(t, msgReviewSaved, tg.lastSent(t).Text)

	require.Len(t, api.createdReviews, 1)
	review := api.createdReviews[0]
	assert.Equal(t, authorID, review.AuthorID)
	assert.Equal(t, doctorID, review.DoctorID)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, "1234567890", review.Text)
	assert.Equal(t, StateIdle, e.sessions.Get(testUserID).State)
}

func TestReviewRequiresRegistration(t *testing.T) {
	api := newFakeBackend()
	e, tg := newTestEngine(api)

	e.HandleUpdate(context.Background(), callbackUpdate("review_doctor_"+uuid.NewString()))

	assert.Equal(t, msgNeedRegistration, tg.lastSent(t).Text)
	assert.Equal(t, StateIdle, e.sessions.Get(testUserID).State)
}

func TestReviewRejectedWhenAlreadyReviewed(t *testing.T) {
	api := newFakeBackend()
	authorID := uuid.New()
	doctorID := uuid.New()
	api.usersByTelegramID[testUserID] = &dto.UserView{ID: authorID, TelegramID: testUserID}
	api.reviewsByAuthor[authorID] = []dto.ReviewView{
		{Doctor: &dto.UserView{ID: doctorID}, Rating: 5, Text: "предыдущий отзыв"},
	}
	e, tg := newTestEngine(api)

	e.HandleUpdate(context.Background(), callbackUpdate("review_doctor_"+doctorID.String()))

	assert.Equal(t, msgAlreadyReviewed, tg.lastSent(t).Text)
	assert.Equal(t, StateIdle, e.sessions.Get(testUserID).State)
}

func TestReviewDuplicateConflictFromBackend(t *testing.T) {
	api := newFakeBackend()
	authorID := uuid.New()
	doctorID := uuid.New()
	api.usersByTelegramID[testUserID] = &dto.UserView{ID: authorID, TelegramID: testUserID}
	api.createReviewErr = apiclient.ErrConflict
	e, tg := newTestEngine(api)
	ctx := context.Background()

	e.HandleUpdate(ctx, callbackUpdate("review_doctor_"+doctorID.String()))
	e.HandleUpdate(ctx, callbackUpdate("rating_5"))
	e.HandleUpdate(ctx, textUpdate("отличный врач, рекомендую"))

	assert.Equal(t, msgAlreadyReviewed, tg.lastSent(t).Text)
	assert.Equal(t, StateIdle, e.sessions.Get(testUserID).State)
}

func TestSupportFlow(t *testing.T) {
	api := newFakeBackend()
	userID := uuid.New()
	api.usersByTelegramID[testUserID] = &dto.UserView{
		ID: userID, TelegramID: testUserID, FullName: "Alice Smith",
	}
	e, tg := newTestEngine(api)
	ctx := context.Background()

	e.HandleUpdate(ctx, textUpdate(btnSupport))
	assert.Equal(t, msgAskSubject, tg.lastSent(t).Text)

	e.HandleUpdate(ctx, textUpdate("Не работает поиск"))
	assert.Equal(t, msgAskMessage, tg.lastSent(t).Text)

	// Below the ten character minimum.
	e.HandleUpdate(ctx, textUpdate("коротко"))
	assert.Equal(t, msgMessageBounds, tg.lastSent(t).Text)

	e.HandleUpdate(ctx, textUpdate("Поиск по фамилии врача ничего не находит."))

	require.Len(t, api.createdTickets, 1)
	ticket := api.createdTickets[0]
	assert.Equal(t, userID, ticket.UserID)
	assert.Contains(t, ticket.Text, "Тема: Не работает поиск")
	assert.Contains(t, ticket.Text, "Поиск по фамилии врача")

	// The confirmation goes to the user, the notification to the admin chat.
	require.GreaterOrEqual(t, len(tg.sent), 2)
	assert.Equal(t, msgTicketCreated, tg.sent[len(tg.sent)-2].Text)
	admin := tg.sent[len(tg.sent)-1]
	assert.Equal(t, int64(777), admin.ChatID)
	assert.Contains(t, admin.Text, "Не работает поиск")
}

func TestSupportRequiresRegistration(t *testing.T) {
	api := newFakeBackend()
	e, tg := newTestEngine(api)

	e.HandleUpdate(context.Background(), textUpdate(btnSupport))

	assert.Equal(t, msgNeedRegistration, tg.lastSent(t).Text)
	assert.Empty(t, api.createdTickets)
}

func TestThrottledMessageIsDiscarded(t *testing.T) {
	api := newFakeBackend()
	e, tg := newTestEngine(api)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e.throttle.now = func() time.Time { return current }
	ctx := context.Background()

	e.HandleUpdate(ctx, textUpdate("/start"))
	assert.Equal(t, StateConsent, e.sessions.Get(testUserID).State)

	// Within the window: the consent answer must be dropped without a state
	// transition.
	current = current.Add(200 * time.Millisecond)
	e.HandleUpdate(ctx, textUpdate(btnConsentAccept))
	assert.Equal(t, msgThrottled, tg.lastSent(t).Text)
	assert.Equal(t, StateConsent, e.sessions.Get(testUserID).State)

	current = current.Add(time.Second)
	e.HandleUpdate(ctx, textUpdate(btnConsentAccept))
	assert.Equal(t, msgAskFullName, tg.lastSent(t).Text)
	assert.Equal(t, StateFullName, e.sessions.Get(testUserID).State)
}

func TestThrottledCallbackIsAnswered(t *testing.T) {
	api := newFakeBackend()
	e, tg := newTestEngine(api)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e.throttle.now = func() time.Time { return current }
	ctx := context.Background()

	e.HandleUpdate(ctx, textUpdate("/start"))
	current = current.Add(100 * time.Millisecond)
	e.HandleUpdate(ctx, callbackUpdate("main_menu"))

	require.NotEmpty(t, tg.answered)
	assert.Equal(t, msgThrottledCallback, tg.answered[len(tg.answered)-1].Text)
	// Session untouched by the throttled callback.
	assert.Equal(t, StateConsent, e.sessions.Get(testUserID).State)
}

func TestUnknownTextShowsMenu(t *testing.T) {
	api := newFakeBackend()
	e, tg := newTestEngine(api)

	e.HandleUpdate(context.Background(), textUpdate("что-то непонятное"))

	assert.Equal(t, msgUnknownCommand, tg.lastSent(t).Text)
}

func TestCancelCallbackResetsSession(t *testing.T) {
	api := newFakeBackend()
	authorID := uuid.New()
	api.usersByTelegramID[testUserID] = &dto.UserView{ID: authorID, TelegramID: testUserID}
	e, tg := newTestEngine(api)
	ctx := context.Background()

	e.HandleUpdate(ctx, textUpdate(btnSupport))
	assert.Equal(t, StateSubject, e.sessions.Get(testUserID).State)

	e.HandleUpdate(ctx, callbackUpdate("cancel"))

	assert.Equal(t, msgActionCancelled, tg.lastSent(t).Text)
	assert.Equal(t, StateIdle, e.sessions.Get(testUserID).State)
}

func TestRegistrationDuplicateConflictFromBackend(t *testing.T) {
	api := newFakeBackend()
	api.createUserErr = apiclient.ErrConflict
	e, tg := newTestEngine(api)
	ctx := context.Background()

	e.HandleUpdate(ctx, textUpdate("/start"))
	e.HandleUpdate(ctx, textUpdate(btnConsentAccept))
	e.HandleUpdate(ctx, textUpdate("Alice Smith"))
	// Empty city directory, so the flow falls back to free-text entry.
	assert.Equal(t, msgTypeCity, tg.lastSent(t).Text)
	e.HandleUpdate(ctx, textUpdate("Казань"))
	e.HandleUpdate(ctx, textUpdate(btnSkip))
	e.HandleUpdate(ctx, textUpdate(btnConfirm))

	assert.Equal(t, msgAlreadyRegistered, tg.lastSent(t).Text)
	assert.Equal(t, StateIdle, e.sessions.Get(testUserID).State)
	assert.Empty(t, api.createdUsers)
}

func callbackData(markup interface{}) []string {
	inline, ok := markup.(telegram.InlineKeyboardMarkup)
	if !ok {
		return nil
	}
	var data []string
	for _, row := range inline.InlineKeyboard {
		for _, btn := range row {
			data = append(data, btn.CallbackData)
		}
	}
	return data
}

func TestTopDoctorsLeaderboardOpensDoctorCard(t *testing.T) {
	api := newFakeBackend()
	doctorID := uuid.New()
	api.doctors = []dto.UserView{
		{ID: doctorID, FullName: "Иванов Иван", IsDoctor: true, Rating: doctorRating(4.8), ReviewsCount: 3},
		{ID: uuid.New(), FullName: "Петров Пётр", IsDoctor: true, Rating: doctorRating(4.1), ReviewsCount: 1},
	}
	e, tg := newTestEngine(api)
	ctx := context.Background()

	e.HandleUpdate(ctx, textUpdate(btnDoctorsRating))

	leaderboard := tg.lastSent(t)
	assert.Contains(t, leaderboard.Text, "Рейтинг врачей")
	assert.Contains(t, callbackData(leaderboard.ReplyMarkup), "doctor_"+doctorID.String())

	e.HandleUpdate(ctx, callbackUpdate("doctor_"+doctorID.String()))
	require.NotEmpty(t, tg.edited)
	assert.Contains(t, tg.edited[len(tg.edited)-1].Text, "Иванов Иван")

	// Back navigation returns to the leaderboard, not the category picker.
	e.HandleUpdate(ctx, callbackUpdate("back_to_doctors"))
	assert.Contains(t, tg.edited[len(tg.edited)-1].Text, "Рейтинг врачей")

	e.HandleUpdate(ctx, callbackUpdate("doctors_page_0"))
	assert.Contains(t, tg.edited[len(tg.edited)-1].Text, "Рейтинг врачей")
}

func TestClinicCardBackToClinics(t *testing.T) {
	api := newFakeBackend()
	clinicID := uuid.New()
	api.clinics = []dto.ClinicView{
		{ID: clinicID, Title: "Клиника №1", Rating: doctorRating(4.5), ReviewsCount: 2},
	}
	e, tg := newTestEngine(api)
	ctx := context.Background()

	e.HandleUpdate(ctx, textUpdate(btnClinicsRating))
	assert.Equal(t, msgChooseClinic, tg.lastSent(t).Text)

	e.HandleUpdate(ctx, callbackUpdate("clinic_"+clinicID.String()))
	require.NotEmpty(t, tg.edited)
	card := tg.edited[len(tg.edited)-1]
	assert.Contains(t, card.Text, "Клиника №1")
	require.NotNil(t, card.ReplyMarkup)
	assert.Contains(t, callbackData(*card.ReplyMarkup), "back_to_clinics")

	e.HandleUpdate(ctx, callbackUpdate("back_to_clinics"))
	assert.Equal(t, msgChooseClinic, tg.edited[len(tg.edited)-1].Text)
}

func TestBackendDetailShownToUser(t *testing.T) {
	api := newFakeBackend()
	authorID := uuid.New()
	doctorID := uuid.New()
	api.usersByTelegramID[testUserID] = &dto.UserView{ID: authorID, TelegramID: testUserID}
	api.createReviewErr = &apiclient.APIError{StatusCode: 422, Detail: "Рейтинг должен быть от 1 до 5"}
	e, tg := newTestEngine(api)
	ctx := context.Background()

	e.HandleUpdate(ctx, callbackUpdate("review_doctor_"+doctorID.String()))
	e.HandleUpdate(ctx, callbackUpdate("rating_5"))
	e.HandleUpdate(ctx, textUpdate("отличный врач, рекомендую"))

	// The backend's detail reaches the user verbatim, the flow stays put.
	assert.Equal(t, "Рейтинг должен быть от 1 до 5", tg.lastSent(t).Text)
	assert.Equal(t, StateReviewText, e.sessions.Get(testUserID).State)
}

func doctorRating(v float64) *float64 { return &v }

func TestMidFlowStartRestarts(t *testing.T) {
	api := newFakeBackend()
	e, tg := newTestEngine(api)
	ctx := context.Background()

	e.HandleUpdate(ctx, textUpdate("/start"))
	e.HandleUpdate(ctx, textUpdate(btnConsentAccept))
	assert.Equal(t, StateFullName, e.sessions.Get(testUserID).State)

	e.HandleUpdate(ctx, textUpdate("/start"))
	assert.Equal(t, msgConsent, tg.lastSent(t).Text)
	assert.Equal(t, StateConsent, e.sessions.Get(testUserID).State)
}
