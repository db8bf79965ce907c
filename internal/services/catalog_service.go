package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"medrating/internal/dto"
	"medrating/internal/models"
)

// CatalogService serves the read-only reference data: categories, cities and
// clinics, including the derived clinic ratings.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) ListCategories() ([]dto.CategoryView, error) {
	var categories []models.Category
	if err := s.db.Order("title ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	views := make([]dto.CategoryView, len(categories))
	for i, c := range categories {
		views[i] = dto.NewCategoryView(c)
	}
	return views, nil
}

func (s *CatalogService) ListGeoPositions() ([]dto.GeoPositionView, error) {
	var positions []models.GeoPosition
	if err := s.db.Order("title ASC").Find(&positions).Error; err != nil {
		return nil, fmt.Errorf("list geo positions: %w", err)
	}
	views := make([]dto.GeoPositionView, len(positions))
	for i, g := range positions {
		views[i] = dto.NewGeoPositionView(g)
	}
	return views, nil
}

func (s *CatalogService) ListClinics() ([]dto.ClinicView, error) {
	var clinics []models.Clinic
	if err := s.db.Order("title ASC").Find(&clinics).Error; err != nil {
		return nil, fmt.Errorf("list clinics: %w", err)
	}

	stats, err := s.clinicStats()
	if err != nil {
		return nil, err
	}

	views := make([]dto.ClinicView, len(clinics))
	for i, c := range clinics {
		views[i] = s.clinicView(c, stats)
	}
	return views, nil
}

func (s *CatalogService) GetClinic(id uuid.UUID) (*dto.ClinicView, error) {
	var clinic models.Clinic
	if err := s.db.First(&clinic, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get clinic: %w", err)
	}

	stats, err := s.clinicStats()
	if err != nil {
		return nil, err
	}
	view := s.clinicView(clinic, stats)
	return &view, nil
}

// ListClinicsRanked returns clinics that have at least one review, sorted by
// rating desc then reviews count desc.
func (s *CatalogService) ListClinicsRanked() ([]dto.ClinicView, error) {
	clinics, err := s.ListClinics()
	if err != nil {
		return nil, err
	}

	ranked := make([]dto.ClinicView, 0, len(clinics))
	for _, c := range clinics {
		if c.Rating != nil {
			ranked = append(ranked, c)
		}
	}
	sortRankedClinics(ranked)
	return ranked, nil
}

// clinicStats aggregates over the union of reviews received by each clinic's
// doctors: a mean across all those reviews, not a mean of per-doctor means.
func (s *CatalogService) clinicStats() (map[uuid.UUID]ratingStat, error) {
	var stats []ratingStat
	err := s.db.Model(&models.Review{}).
		Select("users.clinic_id AS subject_id, AVG(reviews.rating) AS avg_rating, COUNT(*) AS reviews_count").
		Joins("JOIN users ON users.id = reviews.doctor_id").
		Where("users.clinic_id IS NOT NULL AND users.is_doctor = ?", true).
		Group("users.clinic_id").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate clinic ratings: %w", err)
	}

	byClinic := make(map[uuid.UUID]ratingStat, len(stats))
	for _, st := range stats {
		byClinic[st.SubjectID] = st
	}
	return byClinic, nil
}

func (s *CatalogService) clinicView(c models.Clinic, stats map[uuid.UUID]ratingStat) dto.ClinicView {
	if st, ok := stats[c.ID]; ok {
		rating := round2(st.AvgRating)
		return dto.NewClinicView(c, &rating, st.Count)
	}
	return dto.NewClinicView(c, nil, 0)
}
