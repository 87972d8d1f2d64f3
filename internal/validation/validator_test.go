package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/filmshelf/filmshelf/internal/errors"
	"github.com/filmshelf/filmshelf/internal/validation"
)

type entry struct {
	Title  string  `name:"title" validate:"required,max=10"`
	Rating float64 `name:"rating" validate:"gte=1,lte=10"`
	Year   int     `validate:"gte=1888,lte=2100"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()
	assert.NoError(t, v.Validate(entry{Title: "Heat", Rating: 8.3, Year: 1995}))
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		in        entry
		wantField string
		wantMsg   string
	}{
		{"missing title", entry{Rating: 5, Year: 2000}, "title", "title is required"},
		{"title too long", entry{Title: "A very long title", Rating: 5, Year: 2000}, "title", "must not exceed 10"},
		{"rating too low", entry{Title: "Heat", Rating: 0.5, Year: 2000}, "rating", "greater than or equal to 1"},
		{"rating too high", entry{Title: "Heat", Rating: 10.5, Year: 2000}, "rating", "less than or equal to 10"},
		{"year too early", entry{Title: "Heat", Rating: 5, Year: 1700}, "year", "greater than or equal to 1888"},
		{"year too late", entry{Title: "Heat", Rating: 5, Year: 2200}, "year", "less than or equal to 2100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, domainerrors.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantMsg)

			var de *domainerrors.Error
			require.ErrorAs(t, err, &de)
			details, ok := de.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, details, tt.wantField)
		})
	}
}

func TestValidator_MultipleFieldsSorted(t *testing.T) {
	v := validation.New()

	err := v.Validate(entry{Rating: 0, Year: 0})
	require.Error(t, err)
	assert.Equal(t,
		"rating must be greater than or equal to 1; title is required; year must be greater than or equal to 1888",
		err.Error())
}
