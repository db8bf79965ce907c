package services

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"medrating/internal/dto"
)

// ratingStat is one aggregation row: the arithmetic mean and count of review
// ratings for a doctor or a clinic.
type ratingStat struct {
	SubjectID uuid.UUID `gorm:"column:subject_id"`
	AvgRating float64   `gorm:"column:avg_rating"`
	Count     int64     `gorm:"column:reviews_count"`
}

// round2 rounds a derived rating to 2 decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// sortRankedUsers orders doctor views by rating desc, then reviews count
// desc. Callers must have excluded unrated entries already.
func sortRankedUsers(views []dto.UserView) {
	sort.SliceStable(views, func(i, j int) bool {
		ri, rj := *views[i].Rating, *views[j].Rating
		if ri != rj {
			return ri > rj
		}
		return views[i].ReviewsCount > views[j].ReviewsCount
	})
}

func sortRankedClinics(views []dto.ClinicView) {
	sort.SliceStable(views, func(i, j int) bool {
		ri, rj := *views[i].Rating, *views[j].Rating
		if ri != rj {
			return ri > rj
		}
		return views[i].ReviewsCount > views[j].ReviewsCount
	})
}
