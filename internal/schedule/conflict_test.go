package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trainingscheduler/internal/domain"
)

func courseWithSession(courseID, title, expertID string) *domain.Course {
	return &domain.Course{
		ID:      courseID,
		Title:   title,
		Experts: []domain.CourseExpert{{ID: expertID, Name: "Expert " + expertID}},
		Sessions: []*domain.CourseSession{
			{ID: "s1", CourseID: courseID, Date: "2025-05-15", StartTime: "14:00", EndTime: "16:00", Hours: 2},
		},
	}
}

func TestFindConflict(t *testing.T) {
	courseA := courseWithSession("course-a", "Robotics Lab", "exp1")

	tests := []struct {
		name            string
		candidate       SessionSlot
		expertID        string
		courses         []*domain.Course
		excludeCourseID string
		wantConflict    bool
	}{
		{
			name:         "same expert same date overlapping time",
			candidate:    SessionSlot{Date: "2025-05-15", StartTime: "15:00", EndTime: "17:00"},
			expertID:     "exp1",
			courses:      []*domain.Course{courseA},
			wantConflict: true,
		},
		{
			name:         "different date",
			candidate:    SessionSlot{Date: "2025-05-16", StartTime: "15:00", EndTime: "17:00"},
			expertID:     "exp1",
			courses:      []*domain.Course{courseA},
			wantConflict: false,
		},
		{
			name:            "self exclusion",
			candidate:       SessionSlot{Date: "2025-05-15", StartTime: "14:00", EndTime: "16:00"},
			expertID:        "exp1",
			courses:         []*domain.Course{courseA},
			excludeCourseID: "course-a",
			wantConflict:    false,
		},
		{
			name:         "different expert",
			candidate:    SessionSlot{Date: "2025-05-15", StartTime: "14:00", EndTime: "16:00"},
			expertID:     "exp2",
			courses:      []*domain.Course{courseA},
			wantConflict: false,
		},
		{
			name:         "touching slots do not conflict",
			candidate:    SessionSlot{Date: "2025-05-15", StartTime: "16:00", EndTime: "18:00"},
			expertID:     "exp1",
			courses:      []*domain.Course{courseA},
			wantConflict: false,
		},
		{
			name:         "empty expert id matches nothing",
			candidate:    SessionSlot{Date: "2025-05-15", StartTime: "14:00", EndTime: "16:00"},
			expertID:     "",
			courses:      []*domain.Course{courseA},
			wantConflict: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindConflict(tt.candidate, tt.expertID, tt.courses, tt.excludeCourseID)
			require.NoError(t, err)
			if tt.wantConflict {
				require.NotNil(t, got)
				assert.Equal(t, "course-a", got.CourseID)
				assert.Equal(t, "Robotics Lab", got.CourseTitle)
				assert.Equal(t, tt.expertID, got.ExpertID)
				require.NotNil(t, got.Session)
			} else {
				assert.Nil(t, got)
			}

			hasConflict, err := HasConflict(tt.candidate, tt.expertID, tt.courses, tt.excludeCourseID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantConflict, hasConflict)
		})
	}
}

func TestFindConflict_InvalidCandidate(t *testing.T) {
	courses := []*domain.Course{courseWithSession("course-a", "Robotics Lab", "exp1")}

	_, err := FindConflict(SessionSlot{Date: "", StartTime: "09:00", EndTime: "10:00"}, "exp1", courses, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = FindConflict(SessionSlot{Date: "2025-05-15", StartTime: "", EndTime: "10:00"}, "exp1", courses, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// The scan is pure: repeated calls with the same inputs agree and leave the
// course list untouched.
func TestHasConflict_Idempotent(t *testing.T) {
	courseA := courseWithSession("course-a", "Robotics Lab", "exp1")
	courses := []*domain.Course{courseA}
	candidate := SessionSlot{Date: "2025-05-15", StartTime: "15:00", EndTime: "17:00"}

	for i := 0; i < 3; i++ {
		got, err := HasConflict(candidate, "exp1", courses, "")
		require.NoError(t, err)
		assert.True(t, got)
	}
	assert.Len(t, courseA.Sessions, 1)
	assert.Equal(t, "14:00", courseA.Sessions[0].StartTime)
}
