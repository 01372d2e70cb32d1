package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   string
	}{
		{
			name:   "defaults to newest start first",
			filter: Filter{},
			want:   "b.start_time DESC",
		},
		{
			name:   "ascending start time",
			filter: Filter{SortBy: "start_time", SortOrder: "asc"},
			want:   "b.start_time ASC",
		},
		{
			name:   "uppercase direction",
			filter: Filter{SortBy: "created_at", SortOrder: "ASC"},
			want:   "b.created_at ASC",
		},
		{
			name:   "status column",
			filter: Filter{SortBy: "status"},
			want:   "b.status DESC",
		},
		{
			name:   "unknown column falls back",
			filter: Filter{SortBy: "total_cost"},
			want:   "b.start_time DESC",
		},
		{
			name:   "hostile input never reaches the clause",
			filter: Filter{SortBy: "start_time; DROP TABLE bookings", SortOrder: "asc; --"},
			want:   "b.start_time DESC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orderClause(tt.filter))
		})
	}
}
