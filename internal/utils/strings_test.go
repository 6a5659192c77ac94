package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCamelToSnake(t *testing.T) {
	tests := map[string]string{
		"Title":     "title",
		"YearMin":   "year_min",
		"ImdbID":    "imdb_id",
		"RatingMax": "rating_max",
		"ID":        "id",
	}
	for in, want := range tests {
		assert.Equal(t, want, CamelToSnake(in), in)
	}
}
