package domain

import (
	"context"
	"time"
)

// SchoolLocation is a secondary site of a school, e.g. a branch campus.
type SchoolLocation struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	ManagerName  string `json:"manager_name"`
	ManagerPhone string `json:"manager_phone"`
	MapLink      string `json:"map_link,omitempty"`
}

// School is an institution that hosts courses.
// swagger:model School
type School struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Address            string           `json:"address"`
	PrincipalName      string           `json:"principal_name"`
	PrincipalPhone     string           `json:"principal_phone"`
	ManagerName        string           `json:"manager_name"`
	ManagerPhone       string           `json:"manager_phone"`
	MapLink            string           `json:"map_link,omitempty"`
	SecondaryLocations []SchoolLocation `json:"secondary_locations"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// SchoolRepository defines the interface for school storage. GetByID and List
// return schools hydrated with their secondary locations.
type SchoolRepository interface {
	Create(ctx context.Context, school *School) error
	GetByID(ctx context.Context, id string) (*School, error)
	List(ctx context.Context) ([]*School, error)
	Update(ctx context.Context, school *School) error
	Delete(ctx context.Context, id string) error
}

// SchoolService defines the business logic for schools.
type SchoolService interface {
	CreateSchool(ctx context.Context, school *School) error
	GetSchool(ctx context.Context, schoolID string) (*School, error)
	ListSchools(ctx context.Context) ([]*School, error)
	UpdateSchool(ctx context.Context, school *School) (*School, error)
	DeleteSchool(ctx context.Context, schoolID string) error
}
