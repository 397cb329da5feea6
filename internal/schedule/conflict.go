package schedule

import (
	"fmt"

	"trainingscheduler/internal/domain"
)

// SessionSlot is a candidate calendar slot to test against an expert's
// existing engagements.
type SessionSlot struct {
	Date      string
	StartTime string
	EndTime   string
}

// Conflict identifies the engagement a candidate slot collides with.
type Conflict struct {
	ExpertID    string
	CourseID    string
	CourseTitle string
	Session     *domain.CourseSession
}

// FindConflict scans courses for a session of expertID on the same date as
// the candidate slot with overlapping times, and returns the first collision
// found, or nil. Courses the expert is not assigned to are ignored, as is the
// course with excludeCourseID so a session can be rescheduled within its own
// course without colliding with itself. An empty expertID matches no course.
// A candidate with an empty date or malformed times is rejected with
// domain.ErrInvalidInput.
func FindConflict(candidate SessionSlot, expertID string, courses []*domain.Course, excludeCourseID string) (*Conflict, error) {
	if candidate.Date == "" {
		return nil, fmt.Errorf("candidate slot has no date: %w", domain.ErrInvalidInput)
	}
	if !ValidTime(candidate.StartTime) || !ValidTime(candidate.EndTime) {
		return nil, fmt.Errorf("candidate slot times %q-%q: %w", candidate.StartTime, candidate.EndTime, domain.ErrInvalidInput)
	}
	if expertID == "" {
		return nil, nil
	}
	for _, course := range courses {
		if course.ID == excludeCourseID || !course.HasExpert(expertID) {
			continue
		}
		for _, s := range course.Sessions {
			if s.Date != candidate.Date {
				continue
			}
			if Overlaps(candidate.StartTime, candidate.EndTime, s.StartTime, s.EndTime) {
				return &Conflict{
					ExpertID:    expertID,
					CourseID:    course.ID,
					CourseTitle: course.Title,
					Session:     s,
				}, nil
			}
		}
	}
	return nil, nil
}

// HasConflict reports whether the candidate slot double-books the expert.
// See FindConflict for the scan rules.
func HasConflict(candidate SessionSlot, expertID string, courses []*domain.Course, excludeCourseID string) (bool, error) {
	c, err := FindConflict(candidate, expertID, courses, excludeCourseID)
	if err != nil {
		return false, err
	}
	return c != nil, nil
}
