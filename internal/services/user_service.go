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

// UserService owns users and doctors, including the derived doctor ratings.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// DoctorFilter narrows doctor listings; zero values mean "no filter".
type DoctorFilter struct {
	CategoryID    *uuid.UUID
	GeoPositionID *uuid.UUID
	ClinicID      *uuid.UUID
	Search        string
}

func (s *UserService) Create(req dto.CreateUserRequest) (*dto.UserView, error) {
	if req.TelegramID == 0 {
		return nil, &ValidationError{Detail: "Не указан telegram_id"}
	}
	if strings.TrimSpace(req.FullName) == "" {
		return nil, &ValidationError{Detail: "Не указано имя пользователя"}
	}

	var existing models.User
	err := s.db.Where("telegram_id = ?", req.TelegramID).First(&existing).Error
	if err == nil {
		return nil, ErrConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	user := models.User{
		TelegramID:    req.TelegramID,
		FullName:      strings.TrimSpace(req.FullName),
		PhoneNumber:   req.PhoneNumber,
		GeoPositionID: req.GeoPositionID,
		IsPatient:     req.IsPatient,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.GetByID(user.ID)
}

func (s *UserService) Update(id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserView, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		if strings.TrimSpace(*req.FullName) == "" {
			return nil, &ValidationError{Detail: "Имя не может быть пустым"}
		}
		updates["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.GeoPositionID != nil {
		updates["geo_position_id"] = *req.GeoPositionID
	}
	if req.ClinicID != nil {
		updates["clinic_id"] = *req.ClinicID
	}
	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
	}

	return s.GetByID(id)
}

func (s *UserService) GetByID(id uuid.UUID) (*dto.UserView, error) {
	var user models.User
	err := s.db.Preload("Category").Preload("GeoPosition").Preload("Clinic").
		First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return s.userViewWithRating(user)
}

func (s *UserService) GetByTelegramID(telegramID int64) (*dto.UserView, error) {
	var user models.User
	err := s.db.Preload("Category").Preload("GeoPosition").Preload("Clinic").
		First(&user, "telegram_id = ?", telegramID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}
	return s.userViewWithRating(user)
}

func (s *UserService) ListDoctors(filter DoctorFilter) ([]dto.UserView, error) {
	query := s.db.Preload("Category").Preload("GeoPosition").Preload("Clinic").
		Where("is_doctor = ?", true)
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.GeoPositionID != nil {
		query = query.Where("geo_position_id = ?", *filter.GeoPositionID)
	}
	if filter.ClinicID != nil {
		query = query.Where("clinic_id = ?", *filter.ClinicID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("full_name ILIKE ?", "%"+search+"%")
	}

	var doctors []models.User
	if err := query.Order("full_name ASC").Find(&doctors).Error; err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}

	stats, err := s.doctorStats()
	if err != nil {
		return nil, err
	}

	views := make([]dto.UserView, len(doctors))
	for i, d := range doctors {
		views[i] = userView(d, stats)
	}
	return views, nil
}

// ListDoctorsRanked returns doctors that have at least one review, sorted by
// rating desc then reviews count desc. The category filter narrows the set
// before ranking.
func (s *UserService) ListDoctorsRanked(categoryID *uuid.UUID) ([]dto.UserView, error) {
	doctors, err := s.ListDoctors(DoctorFilter{CategoryID: categoryID})
	if err != nil {
		return nil, err
	}

	ranked := make([]dto.UserView, 0, len(doctors))
	for _, d := range doctors {
		if d.Rating != nil {
			ranked = append(ranked, d)
		}
	}
	sortRankedUsers(ranked)
	return ranked, nil
}

func (s *UserService) doctorStats() (map[uuid.UUID]ratingStat, error) {
	var stats []ratingStat
	err := s.db.Model(&models.Review{}).
		Select("doctor_id AS subject_id, AVG(rating) AS avg_rating, COUNT(*) AS reviews_count").
		Group("doctor_id").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate doctor ratings: %w", err)
	}

	byDoctor := make(map[uuid.UUID]ratingStat, len(stats))
	for _, st := range stats {
		byDoctor[st.SubjectID] = st
	}
	return byDoctor, nil
}

func (s *UserService) userViewWithRating(user models.User) (*dto.UserView, error) {
	if !user.IsDoctor {
		view := dto.NewUserView(user, nil, 0)
		return &view, nil
	}
	stats, err := s.doctorStats()
	if err != nil {
		return nil, err
	}
	view := userView(user, stats)
	return &view, nil
}

// userView attaches the derived rating; non-doctors never carry one even if
// stray review rows exist.
func userView(user models.User, stats map[uuid.UUID]ratingStat) dto.UserView {
	if !user.IsDoctor {
		return dto.NewUserView(user, nil, 0)
	}
	if st, ok := stats[user.ID]; ok {
		rating := round2(st.AvgRating)
		return dto.NewUserView(user, &rating, st.Count)
	}
	return dto.NewUserView(user, nil, 0)
}
