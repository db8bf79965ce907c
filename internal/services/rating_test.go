package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medrating/internal/dto"
	"medrating/internal/models"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"integer mean", 4.0, 4.0},
		{"two thirds", 14.0 / 3.0, 4.67},
		{"repeating third", 13.0 / 3.0, 4.33},
		{"half rounds up", 4.005, 4.01},
		{"already two decimals", 3.25, 3.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, round2(tt.in), 1e-9)
		})
	}
}

// The aggregation SQL in clinicStats produces one mean over the union of the
// clinic's doctors' reviews; clinicView attaches it. Doctor A has reviews 5
// and 4, doctor B has one review 5: the union mean is (5+4+5)/3 = 4.67, not
// the mean of per-doctor means (4.5+5)/2 = 4.75.
func TestClinicViewCarriesUnionMean(t *testing.T) {
	svc := NewCatalogService(nil)
	clinic := models.Clinic{ID: uuid.New(), Title: "Клиника №1"}
	stats := map[uuid.UUID]ratingStat{
		clinic.ID: {SubjectID: clinic.ID, AvgRating: (5.0 + 4.0 + 5.0) / 3.0, Count: 3},
	}

	view := svc.clinicView(clinic, stats)

	require.NotNil(t, view.Rating)
	assert.InDelta(t, 4.67, *view.Rating, 1e-9)
	assert.NotEqual(t, 4.75, *view.Rating)
	assert.EqualValues(t, 3, view.ReviewsCount)
}

func TestClinicViewWithoutReviews(t *testing.T) {
	svc := NewCatalogService(nil)
	clinic := models.Clinic{ID: uuid.New(), Title: "Клиника №2"}

	view := svc.clinicView(clinic, map[uuid.UUID]ratingStat{})

	assert.Nil(t, view.Rating)
	assert.EqualValues(t, 0, view.ReviewsCount)
}

func ptr(v float64) *float64 { return &v }

func TestSortRankedUsers(t *testing.T) {
	views := []dto.UserView{
		{FullName: "C", Rating: ptr(4.5), ReviewsCount: 2},
		{FullName: "A", Rating: ptr(5.0), ReviewsCount: 1},
		{FullName: "D", Rating: ptr(4.5), ReviewsCount: 7},
		{FullName: "B", Rating: ptr(5.0), ReviewsCount: 3},
	}

	sortRankedUsers(views)

	names := make([]string, len(views))
	for i, v := range views {
		names[i] = v.FullName
	}
	// Rating desc first, reviews count desc inside equal ratings.
	assert.Equal(t, []string{"B", "A", "D", "C"}, names)
}

func TestSortRankedUsersStableOnFullTie(t *testing.T) {
	views := []dto.UserView{
		{FullName: "first", Rating: ptr(4.0), ReviewsCount: 2},
		{FullName: "second", Rating: ptr(4.0), ReviewsCount: 2},
	}

	sortRankedUsers(views)

	assert.Equal(t, "first", views[0].FullName)
	assert.Equal(t, "second", views[1].FullName)
}

func TestSortRankedClinics(t *testing.T) {
	views := []dto.ClinicView{
		{Title: "low", Rating: ptr(3.2), ReviewsCount: 10},
		{Title: "top", Rating: ptr(4.9), ReviewsCount: 1},
		{Title: "mid", Rating: ptr(4.1), ReviewsCount: 4},
	}

	sortRankedClinics(views)

	assert.Equal(t, "top", views[0].Title)
	assert.Equal(t, "mid", views[1].Title)
	assert.Equal(t, "low", views[2].Title)
}
