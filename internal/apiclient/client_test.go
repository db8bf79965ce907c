package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medrating/internal/dto"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 2*time.Second)
}

func TestGetUserByTelegramID(t *testing.T) {
	want := dto.UserView{ID: uuid.New(), TelegramID: 42, FullName: "Alice Smith"}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/users/telegram/42", r.URL.Path)
		_ = json.NewEncoder(w).Encode(want)
	})

	got, err := client.GetUserByTelegramID(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, "Alice Smith", got.FullName)
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Detail: "Пользователь не найден"})
	})

	_, err := client.GetUserByTelegramID(context.Background(), 42)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConflictMapsToSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Detail: "Вы уже оставляли отзыв этому врачу"})
	})

	_, err := client.CreateReview(context.Background(), dto.CreateReviewRequest{})

	assert.ErrorIs(t, err, ErrConflict)
}

func TestValidationErrorCarriesDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Detail: "Оценка должна быть от 1 до 5"})
	})

	_, err := client.CreateReview(context.Background(), dto.CreateReviewRequest{Rating: 9})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "Оценка должна быть от 1 до 5", apiErr.Detail)
}

func TestCreateUserSendsJSONBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req dto.CreateUserRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(42), req.TelegramID)
		assert.True(t, req.IsPatient)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(dto.UserView{ID: uuid.New(), TelegramID: req.TelegramID})
	})

	_, err := client.CreateUser(context.Background(), dto.CreateUserRequest{
		TelegramID: 42,
		FullName:   "Alice Smith",
		IsPatient:  true,
	})

	require.NoError(t, err)
}

func TestGetDoctorsBuildsFilterQuery(t *testing.T) {
	categoryID := uuid.New()
	clinicID := uuid.New()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/doctors", r.URL.Path)
		assert.Equal(t, categoryID.String(), r.URL.Query().Get("category"))
		assert.Equal(t, clinicID.String(), r.URL.Query().Get("clinic"))
		assert.Equal(t, "Иванов", r.URL.Query().Get("search"))
		_ = json.NewEncoder(w).Encode([]dto.UserView{})
	})

	_, err := client.GetDoctors(context.Background(), DoctorFilter{
		CategoryID: &categoryID,
		ClinicID:   &clinicID,
		Search:     "Иванов",
	})

	require.NoError(t, err)
}

func TestHasReviewForDoctor(t *testing.T) {
	authorID := uuid.New()
	doctorID := uuid.New()
	otherDoctorID := uuid.New()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reviews/user/"+authorID.String(), r.URL.Path)
		_ = json.NewEncoder(w).Encode([]dto.ReviewView{
			{Doctor: &dto.UserView{ID: doctorID}, Rating: 5, Text: "отличный врач"},
		})
	})

	has, err := client.HasReviewForDoctor(context.Background(), authorID, doctorID)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = client.HasReviewForDoctor(context.Background(), authorID, otherDoctorID)
	require.NoError(t, err)
	assert.False(t, has)
}
