package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"medrating/internal/dto"
)

var (
	// ErrNotFound maps 404 responses ("no such user" is an expected
	// outcome, not a failure).
	ErrNotFound = errors.New("resource not found")
	// ErrConflict maps 409 responses (duplicate registration or review).
	ErrConflict = errors.New("resource already exists")
)

// APIError carries the backend's human-readable detail for any other non-2xx
// response; the engine surfaces Detail directly to the end user.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
}

// Client talks to the data service's REST surface.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp dto.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		switch resp.StatusCode {
		case http.StatusNotFound:
			return ErrNotFound
		case http.StatusConflict:
			return ErrConflict
		default:
			detail := errResp.Detail
			if detail == "" {
				detail = http.StatusText(resp.StatusCode)
			}
			return &APIError{StatusCode: resp.StatusCode, Detail: detail}
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// Users

func (c *Client) GetUserByTelegramID(ctx context.Context, telegramID int64) (*dto.UserView, error) {
	var user dto.UserView
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/telegram/%d", telegramID), nil, nil, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserView, error) {
	var user dto.UserView
	if err := c.do(ctx, http.MethodPost, "/users", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetUser(ctx context.Context, id uuid.UUID) (*dto.UserView, error) {
	var user dto.UserView
	if err := c.do(ctx, http.MethodGet, "/users/"+id.String(), nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Reference data

func (c *Client) GetCategories(ctx context.Context) ([]dto.CategoryView, error) {
	var categories []dto.CategoryView
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) GetGeoPositions(ctx context.Context) ([]dto.GeoPositionView, error) {
	var positions []dto.GeoPositionView
	if err := c.do(ctx, http.MethodGet, "/geopositions", nil, nil, &positions); err != nil {
		return nil, err
	}
	return positions, nil
}

// Doctors

type DoctorFilter struct {
	CategoryID    *uuid.UUID
	GeoPositionID *uuid.UUID
	ClinicID      *uuid.UUID
	Search        string
}

func (c *Client) GetDoctors(ctx context.Context, filter DoctorFilter) ([]dto.UserView, error) {
	query := url.Values{}
	if filter.CategoryID != nil {
		query.Set("category", filter.CategoryID.String())
	}
	if filter.GeoPositionID != nil {
		query.Set("geo_position", filter.GeoPositionID.String())
	}
	if filter.ClinicID != nil {
		query.Set("clinic", filter.ClinicID.String())
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}

	var doctors []dto.UserView
	if err := c.do(ctx, http.MethodGet, "/users/doctors", query, nil, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (c *Client) GetDoctorsByCategory(ctx context.Context, categoryID uuid.UUID) ([]dto.UserView, error) {
	var doctors []dto.UserView
	err := c.do(ctx, http.MethodGet, "/users/doctors/category/"+categoryID.String(), nil, nil, &doctors)
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (c *Client) GetDoctorsRanked(ctx context.Context) ([]dto.UserView, error) {
	var doctors []dto.UserView
	if err := c.do(ctx, http.MethodGet, "/users/doctors/rating", nil, nil, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// Clinics

func (c *Client) GetClinics(ctx context.Context) ([]dto.ClinicView, error) {
	var clinics []dto.ClinicView
	if err := c.do(ctx, http.MethodGet, "/clinics", nil, nil, &clinics); err != nil {
		return nil, err
	}
	return clinics, nil
}

func (c *Client) GetClinicsRanked(ctx context.Context) ([]dto.ClinicView, error) {
	var clinics []dto.ClinicView
	if err := c.do(ctx, http.MethodGet, "/clinics/rating", nil, nil, &clinics); err != nil {
		return nil, err
	}
	return clinics, nil
}

func (c *Client) GetClinic(ctx context.Context, id uuid.UUID) (*dto.ClinicView, error) {
	var clinic dto.ClinicView
	if err := c.do(ctx, http.MethodGet, "/clinics/"+id.String(), nil, nil, &clinic); err != nil {
		return nil, err
	}
	return &clinic, nil
}

// Reviews

func (c *Client) CreateReview(ctx context.Context, req dto.CreateReviewRequest) (*dto.ReviewView, error) {
	var review dto.ReviewView
	if err := c.do(ctx, http.MethodPost, "/reviews", nil, req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (c *Client) GetReviewsByDoctor(ctx context.Context, doctorID uuid.UUID) ([]dto.ReviewView, error) {
	var reviews []dto.ReviewView
	err := c.do(ctx, http.MethodGet, "/reviews/doctor/"+doctorID.String(), nil, nil, &reviews)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *Client) GetReviewsByAuthor(ctx context.Context, authorID uuid.UUID) ([]dto.ReviewView, error) {
	var reviews []dto.ReviewView
	err := c.do(ctx, http.MethodGet, "/reviews/user/"+authorID.String(), nil, nil, &reviews)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// HasReviewForDoctor reports whether the author already reviewed the doctor.
// This is a read-then-scan pre-check; the storage-level unique index is the
// real guard against races.
func (c *Client) HasReviewForDoctor(ctx context.Context, authorID, doctorID uuid.UUID) (bool, error) {
	reviews, err := c.GetReviewsByAuthor(ctx, authorID)
	if err != nil {
		return false, err
	}
	for _, r := range reviews {
		if r.Doctor != nil && r.Doctor.ID == doctorID {
			return true, nil
		}
	}
	return false, nil
}

// Support

func (c *Client) CreateSupportRequest(ctx context.Context, req dto.CreateSupportRequest) (*dto.SupportRequestView, error) {
	var ticket dto.SupportRequestView
	if err := c.do(ctx, http.MethodPost, "/support-requests", nil, req, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}
