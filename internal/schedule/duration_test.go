package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trainingscheduler/internal/domain"
)

func TestHoursBetween(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  float64
	}{
		{name: "basic afternoon block", start: "14:30", end: "17:30", want: 3},
		{name: "forty minutes rounds up to half hour", start: "09:00", end: "09:40", want: 0.5},
		{name: "ten minutes rounds down to zero", start: "09:00", end: "09:10", want: 0},
		{name: "quarter hour ties round up", start: "09:00", end: "10:15", want: 1.5},
		{name: "crosses midnight", start: "23:00", end: "01:00", want: 2},
		{name: "equal times", start: "08:00", end: "08:00", want: 0},
		{name: "full morning", start: "08:30", end: "13:00", want: 4.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HoursBetween(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHoursBetween_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
	}{
		{name: "empty start", start: "", end: "10:00"},
		{name: "empty end", start: "09:00", end: ""},
		{name: "missing separator", start: "0900", end: "10:00"},
		{name: "hour out of range", start: "24:00", end: "10:00"},
		{name: "minute out of range", start: "09:60", end: "10:00"},
		{name: "not zero padded", start: "9:00", end: "10:00"},
		{name: "garbage", start: "ab:cd", end: "10:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := HoursBetween(tt.start, tt.end)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestValidTime(t *testing.T) {
	assert.True(t, ValidTime("00:00"))
	assert.True(t, ValidTime("23:59"))
	assert.False(t, ValidTime(""))
	assert.False(t, ValidTime("23:60"))
	assert.False(t, ValidTime("7:30"))
}
