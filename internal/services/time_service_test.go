package services

import (
	"testing"
	"time"

	"tasklist/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestTimeService_NextID(t *testing.T) {
	service := NewTimeService("1/2/2006")
	at := time.UnixMilli(1_700_000_000_000)

	tests := []struct {
		name     string
		list     domain.TaskList
		last     int64
		expected int64
	}{
		{"should use the timestamp on an empty list", nil, 0, 1_700_000_000_000},
		{"should use the timestamp when it is newer", domain.TaskList{{ID: 5}}, 7, 1_700_000_000_000},
		{"should bump past an equal id", domain.TaskList{{ID: 1_700_000_000_000}}, 0, 1_700_000_000_001},
		{"should bump past a newer id in the list", domain.TaskList{{ID: 1_800_000_000_000}}, 0, 1_800_000_000_001},
		{"should bump past the last issued id", nil, 1_800_000_000_000, 1_800_000_000_001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.NextID(at, tt.list, tt.last))
		})
	}
}

func TestTimeService_DateStamp(t *testing.T) {
	at := time.Date(2024, 3, 4, 23, 0, 0, 0, time.Local)

	assert.Equal(t, "3/4/2024", NewTimeService("1/2/2006").DateStamp(at))
	assert.Equal(t, "2024-03-04", NewTimeService("2006-01-02").DateStamp(at))
}

func TestTimeService_Now(t *testing.T) {
	fixed := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	service := NewTimeServiceWithClock("1/2/2006", func() time.Time { return fixed })

	assert.Equal(t, fixed, service.Now())
}
