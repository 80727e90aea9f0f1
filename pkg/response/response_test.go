package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationMeta(t *testing.T) {
	tests := []struct {
		name        string
		total       int64
		page        int
		limit       int
		totalPages  int
		hasNext     bool
		hasPrevious bool
	}{
		{"first page of three", 12, 1, 5, 3, true, false},
		{"middle page", 12, 2, 5, 3, true, true},
		{"last page", 12, 3, 5, 3, false, true},
		{"exact fit", 10, 2, 5, 2, false, true},
		{"empty table", 0, 1, 5, 0, false, false},
		{"single page", 3, 1, 5, 1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NewPaginationMeta(tt.total, tt.page, tt.limit)
			assert.Equal(t, tt.total, meta.Total)
			assert.Equal(t, tt.page, meta.Page)
			assert.Equal(t, tt.limit, meta.Limit)
			assert.Equal(t, tt.totalPages, meta.TotalPages)
			assert.Equal(t, tt.hasNext, meta.HasNext)
			assert.Equal(t, tt.hasPrevious, meta.HasPrevious)
		})
	}
}
