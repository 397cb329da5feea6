package domain

import (
	"context"
	"time"
)

// Expert is an external instructor assignable to one or more courses.
// swagger:model Expert
type Expert struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	FiscalCode string    `json:"fiscal_code"`
	VATNumber  string    `json:"vat_number"`
	Subjects   []string  `json:"subjects"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FullName returns "FirstName LastName" for display and notifications.
func (e *Expert) FullName() string {
	if e.FirstName == "" {
		return e.LastName
	}
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// ExpertSession is one entry of an expert's cross-course calendar: a session
// joined with the course context needed to display or export it.
type ExpertSession struct {
	SessionID   string  `json:"session_id"`
	CourseID    string  `json:"course_id"`
	CourseTitle string  `json:"course_title"`
	SchoolName  string  `json:"school_name"`
	Location    string  `json:"location"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Hours       float64 `json:"hours"`
}

// ExpertRepository defines the interface for expert storage.
type ExpertRepository interface {
	Create(ctx context.Context, expert *Expert) error
	GetByID(ctx context.Context, id string) (*Expert, error)
	List(ctx context.Context) ([]*Expert, error)
	Update(ctx context.Context, expert *Expert) error
	Delete(ctx context.Context, id string) error
}

// ExpertService defines the business logic for experts.
type ExpertService interface {
	CreateExpert(ctx context.Context, expert *Expert) error
	GetExpert(ctx context.Context, expertID string) (*Expert, error)
	ListExperts(ctx context.Context) ([]*Expert, error)
	UpdateExpert(ctx context.Context, expert *Expert) (*Expert, error)
	DeleteExpert(ctx context.Context, expertID string) error

	// Schedule returns every session of every course the expert is assigned
	// to, sorted by date then start time.
	Schedule(ctx context.Context, expertID string) ([]*ExpertSession, error)
}
