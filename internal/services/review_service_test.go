package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medrating/internal/dto"
)

// Validation runs before any storage access, so a nil DB is fine here.

func TestCreateReviewValidation(t *testing.T) {
	svc := NewReviewService(nil)

	tests := []struct {
		name string
		req  dto.CreateReviewRequest
	}{
		{"rating below minimum", dto.CreateReviewRequest{Rating: 0, Text: strings.Repeat("x", 20)}},
		{"rating above maximum", dto.CreateReviewRequest{Rating: 6, Text: strings.Repeat("x", 20)}},
		{"text too short", dto.CreateReviewRequest{Rating: 5, Text: "коротко"}},
		{"text too long", dto.CreateReviewRequest{Rating: 5, Text: strings.Repeat("x", ReviewTextMaxLen+1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.AuthorID = uuid.New()
			tt.req.DoctorID = uuid.New()

			_, err := svc.Create(tt.req)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.NotEmpty(t, vErr.Detail)
		})
	}
}

func TestCreateReviewTextBoundsCountRunes(t *testing.T) {
	svc := NewReviewService(nil)

	// Nine cyrillic characters are 18 bytes but still below the 10 rune
	// minimum.
	_, err := svc.Create(dto.CreateReviewRequest{
		AuthorID: uuid.New(),
		DoctorID: uuid.New(),
		Rating:   4,
		Text:     strings.Repeat("ы", 9),
	})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Detail, "минимум 10 символов")
}
