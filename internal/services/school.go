package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"trainingscheduler/internal/domain"
)

type schoolService struct {
	schoolRepo     domain.SchoolRepository
	contextTimeout time.Duration
}

func NewSchoolService(schoolRepo domain.SchoolRepository, timeout time.Duration) domain.SchoolService {
	return &schoolService{
		schoolRepo:     schoolRepo,
		contextTimeout: timeout,
	}
}

func (s *schoolService) CreateSchool(ctx context.Context, school *domain.School) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if school.Name == "" {
		return fmt.Errorf("school name is required: %w", domain.ErrInvalidInput)
	}
	if school.ID == "" {
		school.ID = uuid.NewString()
	}
	for i := range school.SecondaryLocations {
		if school.SecondaryLocations[i].ID == "" {
			school.SecondaryLocations[i].ID = uuid.NewString()
		}
	}
	school.CreatedAt = time.Now()
	school.UpdatedAt = time.Now()

	if err := s.schoolRepo.Create(ctx, school); err != nil {
		return fmt.Errorf("create school: %w", err)
	}
	return nil
}

func (s *schoolService) GetSchool(ctx context.Context, schoolID string) (*domain.School, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	school, err := s.schoolRepo.GetByID(ctx, schoolID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get school: %w", err)
	}
	return school, nil
}

func (s *schoolService) ListSchools(ctx context.Context) ([]*domain.School, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	schools, err := s.schoolRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list schools: %w", err)
	}
	if schools == nil {
		schools = []*domain.School{}
	}
	return schools, nil
}

func (s *schoolService) UpdateSchool(ctx context.Context, school *domain.School) (*domain.School, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if school.Name == "" {
		return nil, fmt.Errorf("school name is required: %w", domain.ErrInvalidInput)
	}
	current, err := s.schoolRepo.GetByID(ctx, school.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get school: %w", err)
	}
	for i := range school.SecondaryLocations {
		if school.SecondaryLocations[i].ID == "" {
			school.SecondaryLocations[i].ID = uuid.NewString()
		}
	}
	school.CreatedAt = current.CreatedAt
	school.UpdatedAt = time.Now()

	if err := s.schoolRepo.Update(ctx, school); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update school: %w", err)
	}
	return school, nil
}

func (s *schoolService) DeleteSchool(ctx context.Context, schoolID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.schoolRepo.Delete(ctx, schoolID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete school: %w", err)
	}
	return nil
}
