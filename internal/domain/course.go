package domain

import (
	"context"
	"errors"
	"time"
)

// ErrSessionConflict is returned when a proposed session overlaps an existing
// session of one of the course's experts on the same date.
var ErrSessionConflict = errors.New("session conflict")

// ErrHoursExceeded is returned when a proposed session would push a course's
// assigned hours past its budgeted total.
var ErrHoursExceeded = errors.New("course hours exceeded")

// CourseExpert is an expert assigned to a course, with the rate agreed for it.
type CourseExpert struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	HourlyRate float64 `json:"hourly_rate"`
}

// CourseSession is one scheduled meeting of a course. Date is ISO YYYY-MM-DD;
// StartTime and EndTime are zero-padded 24-hour HH:MM defining the half-open
// interval [StartTime, EndTime) on Date. Hours is always derived from the
// times on save, never taken from the client.
type CourseSession struct {
	ID        string  `json:"id"`
	CourseID  string  `json:"course_id"`
	Date      string  `json:"date"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Hours     float64 `json:"hours"`
}

// Course is a training engagement with a fixed hour budget, one or more
// assigned experts, and zero or more sessions.
// swagger:model Course
type Course struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	ProjectID      string           `json:"project_id"`
	ProjectName    string           `json:"project_name"`
	SchoolID       string           `json:"school_id"`
	SchoolName     string           `json:"school_name"`
	Location       string           `json:"location"`
	TotalHours     float64          `json:"total_hours"`
	HourlyRate     float64          `json:"hourly_rate"`
	TutorName      string           `json:"tutor_name"`
	TutorPhone     string           `json:"tutor_phone"`
	Experts        []CourseExpert   `json:"experts"`
	Sessions       []*CourseSession `json:"sessions"`
	RemainingHours float64          `json:"remaining_hours"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// HasExpert reports whether the expert with the given id is assigned to the course.
func (c *Course) HasExpert(expertID string) bool {
	for _, e := range c.Experts {
		if e.ID == expertID {
			return true
		}
	}
	return false
}

// SessionByID returns the course's session with the given id, or nil.
func (c *Course) SessionByID(sessionID string) *CourseSession {
	for _, s := range c.Sessions {
		if s.ID == sessionID {
			return s
		}
	}
	return nil
}

// SessionInput carries operator-entered session fields. Hours is intentionally
// absent: it is computed from the times.
type SessionInput struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// CourseRepository defines the interface for course storage. GetByID and List
// return courses hydrated with their experts and sessions.
type CourseRepository interface {
	Create(ctx context.Context, course *Course) error
	GetByID(ctx context.Context, id string) (*Course, error)
	List(ctx context.Context, p PaginationParams) ([]*Course, error)
	// ListByExpertID returns every course the expert is assigned to,
	// hydrated with experts and sessions.
	ListByExpertID(ctx context.Context, expertID string) ([]*Course, error)
	Update(ctx context.Context, course *Course) error
	Delete(ctx context.Context, id string) error
	UpdateRemainingHours(ctx context.Context, courseID string, remaining float64) error
}

// SessionRepository defines the interface for course session storage.
type SessionRepository interface {
	Create(ctx context.Context, session *CourseSession) error
	GetByID(ctx context.Context, id string) (*CourseSession, error)
	Update(ctx context.Context, session *CourseSession) error
	Delete(ctx context.Context, id string) error
	ListByExpertID(ctx context.Context, expertID string) ([]*ExpertSession, error)
}

// CourseService defines the business logic for courses and their calendars.
type CourseService interface {
	CreateCourse(ctx context.Context, course *Course) error
	GetCourse(ctx context.Context, courseID string) (*Course, error)
	ListCourses(ctx context.Context, p PaginationParams) ([]*Course, error)
	UpdateCourse(ctx context.Context, course *Course) (*Course, error)
	DeleteCourse(ctx context.Context, courseID string) error

	AddSession(ctx context.Context, courseID string, in SessionInput) (*CourseSession, error)
	UpdateSession(ctx context.Context, courseID, sessionID string, in SessionInput) (*CourseSession, error)
	DeleteSession(ctx context.Context, courseID, sessionID string) error
}
