package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trainingscheduler/internal/domain"
)

func sessionsWithHours(hours ...float64) []*domain.CourseSession {
	out := make([]*domain.CourseSession, 0, len(hours))
	for _, h := range hours {
		out = append(out, &domain.CourseSession{Hours: h})
	}
	return out
}

func TestAssignedHours(t *testing.T) {
	assert.Equal(t, 0.0, AssignedHours(nil))
	assert.Equal(t, 6.5, AssignedHours(sessionsWithHours(3, 2, 1.5)))
}

func TestRemainingHours(t *testing.T) {
	tests := []struct {
		name   string
		course *domain.Course
		want   float64
	}{
		{
			name:   "empty calendar",
			course: &domain.Course{TotalHours: 20},
			want:   20,
		},
		{
			name:   "partially assigned",
			course: &domain.Course{TotalHours: 20, Sessions: sessionsWithHours(3, 2)},
			want:   15,
		},
		{
			name:   "over-assigned floors at zero",
			course: &domain.Course{TotalHours: 5, Sessions: sessionsWithHours(3, 3, 2)},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemainingHours(tt.course))
		})
	}
}

func TestOverAssigned(t *testing.T) {
	assert.False(t, OverAssigned(&domain.Course{TotalHours: 5, Sessions: sessionsWithHours(5)}))
	assert.True(t, OverAssigned(&domain.Course{TotalHours: 5, Sessions: sessionsWithHours(3, 3, 2)}))
}

func TestAvailableHours(t *testing.T) {
	course := &domain.Course{TotalHours: 10}
	editing := &domain.CourseSession{Hours: 3}
	course.Sessions = []*domain.CourseSession{editing, {Hours: 5}}

	// 10 - 8 assigned = 2 free for a new session.
	assert.Equal(t, 2.0, AvailableHours(course, nil))
	// Editing gives the session its own 3 hours back.
	assert.Equal(t, 5.0, AvailableHours(course, editing))
}
