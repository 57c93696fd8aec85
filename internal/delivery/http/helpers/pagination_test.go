package helpers

import (
	"net/http/httptest"
	"testing"

	"artistbooking/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want domain.PaginationParams
	}{
		{"defaults", "/bookings", domain.PaginationParams{Page: 1, PageSize: 20}},
		{"explicit", "/bookings?page=3&page_size=50", domain.PaginationParams{Page: 3, PageSize: 50}},
		{"clamped to max", "/bookings?page_size=9999", domain.PaginationParams{Page: 1, PageSize: 100}},
		{"garbage falls back", "/bookings?page=abc&page_size=-1", domain.PaginationParams{Page: 1, PageSize: 20}},
		{"zero page falls back", "/bookings?page=0", domain.PaginationParams{Page: 1, PageSize: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			assert.Equal(t, tt.want, ParsePagination(r))
		})
	}
}

func TestNewPaginationMeta(t *testing.T) {
	meta := NewPaginationMeta(2, 20, 41)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 41, meta.Total)

	assert.Equal(t, 0, NewPaginationMeta(1, 0, 10).TotalPages)
	assert.Equal(t, 0, NewPaginationMeta(1, 20, 0).TotalPages)
}
