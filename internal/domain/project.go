package domain

import (
	"context"
	"time"
)

// Project is a funding program that groups courses, tied to a school year.
// swagger:model Project
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Year      int       `json:"year"`
	Type      string    `json:"type"`
	SchoolID  string    `json:"school_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectRepository defines the interface for project storage.
type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context) ([]*Project, error)
	ListBySchoolID(ctx context.Context, schoolID string) ([]*Project, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id string) error
}

// ProjectService defines the business logic for projects.
type ProjectService interface {
	CreateProject(ctx context.Context, project *Project) error
	GetProject(ctx context.Context, projectID string) (*Project, error)
	ListProjects(ctx context.Context) ([]*Project, error)
	ListSchoolProjects(ctx context.Context, schoolID string) ([]*Project, error)
	UpdateProject(ctx context.Context, project *Project) (*Project, error)
	DeleteProject(ctx context.Context, projectID string) error
}
