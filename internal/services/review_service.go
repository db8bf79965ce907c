package services

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"medrating/internal/dto"
	"medrating/internal/models"
)

const (
	RatingMin = 1
	RatingMax = 5

	ReviewTextMinLen = 10
	ReviewTextMaxLen = 1000
)

type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// ReviewFilter narrows review listings by doctor and/or author.
type ReviewFilter struct {
	DoctorID *uuid.UUID
	AuthorID *uuid.UUID
}

func (s *ReviewService) Create(req dto.CreateReviewRequest) (*dto.ReviewView, error) {
	if req.Rating < RatingMin || req.Rating > RatingMax {
		return nil, &ValidationError{Detail: "Рейтинг должен быть от 1 до 5"}
	}
	length := utf8.RuneCountInString(req.Text)
	if length < ReviewTextMinLen {
		return nil, &ValidationError{Detail: "Текст отзыва должен содержать минимум 10 символов"}
	}
	if length > ReviewTextMaxLen {
		return nil, &ValidationError{Detail: "Текст отзыва слишком длинный (максимум 1000 символов)"}
	}

	var author, doctor models.User
	if err := s.db.First(&author, "id = ?", req.AuthorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load review author: %w", err)
	}
	if err := s.db.First(&doctor, "id = ?", req.DoctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load reviewed doctor: %w", err)
	}

	review := models.Review{
		AuthorID: req.AuthorID,
		DoctorID: req.DoctorID,
		Rating:   req.Rating,
		Text:     req.Text,
	}
	if err := s.db.Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	return s.getView(review.ID)
}

func (s *ReviewService) List(filter ReviewFilter) ([]dto.ReviewView, error) {
	query := s.db.
		Preload("Author").Preload("Author.Category").Preload("Author.Clinic").
		Preload("Doctor").Preload("Doctor.Category").Preload("Doctor.Clinic")
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}

	var reviews []models.Review
	if err := query.Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	views := make([]dto.ReviewView, len(reviews))
	for i, r := range reviews {
		views[i] = dto.NewReviewView(r)
	}
	return views, nil
}

func (s *ReviewService) ListByDoctor(doctorID uuid.UUID) ([]dto.ReviewView, error) {
	return s.List(ReviewFilter{DoctorID: &doctorID})
}

func (s *ReviewService) ListByAuthor(authorID uuid.UUID) ([]dto.ReviewView, error) {
	return s.List(ReviewFilter{AuthorID: &authorID})
}

func (s *ReviewService) getView(id uuid.UUID) (*dto.ReviewView, error) {
	var review models.Review
	err := s.db.
		Preload("Author").Preload("Author.Category").Preload("Author.Clinic").
		Preload("Doctor").Preload("Doctor.Category").Preload("Doctor.Clinic").
		First(&review, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("load created review: %w", err)
	}
	view := dto.NewReviewView(review)
	return &view, nil
}
