package schedule

import "trainingscheduler/internal/domain"

// AssignedHours returns the sum of session hours already scheduled on the
// course. An empty calendar is 0.
func AssignedHours(sessions []*domain.CourseSession) float64 {
	var total float64
	for _, s := range sessions {
		total += s.Hours
	}
	return total
}

// RemainingHours returns the unassigned part of the course's hour budget,
// floored at 0 so an over-assigned course never reports a negative balance.
func RemainingHours(course *domain.Course) float64 {
	remaining := course.TotalHours - AssignedHours(course.Sessions)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// OverAssigned reports whether the course's sessions exceed its hour budget.
// RemainingHours masks the overrun; callers that need to surface it check
// this first.
func OverAssigned(course *domain.Course) bool {
	return AssignedHours(course.Sessions) > course.TotalHours
}

// AvailableHours returns the budget available to a session being created or
// edited. When editing, the hours the session currently holds are given back
// before the check, so rescheduling a session inside its own footprint always
// fits. Pass nil for a new session.
func AvailableHours(course *domain.Course, editing *domain.CourseSession) float64 {
	available := RemainingHours(course)
	if editing != nil {
		available += editing.Hours
	}
	return available
}
