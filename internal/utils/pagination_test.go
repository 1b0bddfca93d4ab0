package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAndNormalizePagination(t *testing.T) {
	page, pageSize := ValidateAndNormalizePagination(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 15, pageSize)

	page, pageSize = ValidateAndNormalizePagination(-3, 500)
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, pageSize)

	page, pageSize = ValidateAndNormalizePagination(4, 25)
	assert.Equal(t, 4, page)
	assert.Equal(t, 25, pageSize)
}

func TestCalculatePaginationInfo(t *testing.T) {
	info := CalculatePaginationInfo(45, 2, 15)
	assert.Equal(t, int64(45), info.Total)
	assert.Equal(t, 3, info.TotalPages)
	assert.True(t, info.HasNext)
	assert.True(t, info.HasPrevious)

	info = CalculatePaginationInfo(0, 1, 15)
	assert.Equal(t, 1, info.TotalPages)
	assert.False(t, info.HasNext)
	assert.False(t, info.HasPrevious)
}

func TestCalculateOffset(t *testing.T) {
	assert.Equal(t, 0, CalculateOffset(1, 15))
	assert.Equal(t, 30, CalculateOffset(3, 15))
}

func TestParsePaginationFromQuery(t *testing.T) {
	page, pageSize := ParsePaginationFromQuery("", "")
	assert.Equal(t, 1, page)
	assert.Equal(t, 15, pageSize)

	page, pageSize = ParsePaginationFromQuery("3", "50")
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, pageSize)

	// Garbage and out-of-range values fall back to defaults
	page, pageSize = ParsePaginationFromQuery("abc", "1000")
	assert.Equal(t, 1, page)
	assert.Equal(t, 15, pageSize)
}
