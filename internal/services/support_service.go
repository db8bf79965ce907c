package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"medrating/internal/dto"
	"medrating/internal/models"
)

type SupportService struct {
	db *gorm.DB
}

func NewSupportService(db *gorm.DB) *SupportService {
	return &SupportService{db: db}
}

func (s *SupportService) Create(req dto.CreateSupportRequest) (*dto.SupportRequestView, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, &ValidationError{Detail: "Текст обращения не может быть пустым"}
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load ticket user: %w", err)
	}

	ticket := models.SupportRequest{
		UserID: req.UserID,
		Text:   req.Text,
	}
	if err := s.db.Create(&ticket).Error; err != nil {
		return nil, fmt.Errorf("create support request: %w", err)
	}
	ticket.User = &user

	view := dto.NewSupportRequestView(ticket)
	return &view, nil
}

// List returns tickets, newest first, optionally for one user.
func (s *SupportService) List(userID *uuid.UUID) ([]dto.SupportRequestView, error) {
	query := s.db.Preload("User")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var tickets []models.SupportRequest
	if err := query.Order("created_at DESC").Find(&tickets).Error; err != nil {
		return nil, fmt.Errorf("list support requests: %w", err)
	}

	views := make([]dto.SupportRequestView, len(tickets))
	for i, t := range tickets {
		views[i] = dto.NewSupportRequestView(t)
	}
	return views, nil
}
