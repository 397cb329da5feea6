package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"trainingscheduler/internal/domain"
)

type projectService struct {
	projectRepo    domain.ProjectRepository
	schoolRepo     domain.SchoolRepository
	contextTimeout time.Duration
}

func NewProjectService(projectRepo domain.ProjectRepository, schoolRepo domain.SchoolRepository, timeout time.Duration) domain.ProjectService {
	return &projectService{
		projectRepo:    projectRepo,
		schoolRepo:     schoolRepo,
		contextTimeout: timeout,
	}
}

func (s *projectService) CreateProject(ctx context.Context, project *domain.Project) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if project.Name == "" {
		return fmt.Errorf("project name is required: %w", domain.ErrInvalidInput)
	}
	if project.SchoolID != "" {
		if _, err := s.schoolRepo.GetByID(ctx, project.SchoolID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("school %s: %w", project.SchoolID, domain.ErrNotFound)
			}
			return fmt.Errorf("get school: %w", err)
		}
	}
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	project.CreatedAt = time.Now()
	project.UpdatedAt = time.Now()

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (s *projectService) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return project, nil
}

func (s *projectService) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	if projects == nil {
		projects = []*domain.Project{}
	}
	return projects, nil
}

func (s *projectService) ListSchoolProjects(ctx context.Context, schoolID string) ([]*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.schoolRepo.GetByID(ctx, schoolID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get school: %w", err)
	}
	projects, err := s.projectRepo.ListBySchoolID(ctx, schoolID)
	if err != nil {
		return nil, fmt.Errorf("list school projects: %w", err)
	}
	if projects == nil {
		projects = []*domain.Project{}
	}
	return projects, nil
}

func (s *projectService) UpdateProject(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if project.Name == "" {
		return nil, fmt.Errorf("project name is required: %w", domain.ErrInvalidInput)
	}
	current, err := s.projectRepo.GetByID(ctx, project.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	project.CreatedAt = current.CreatedAt
	project.UpdatedAt = time.Now()

	if err := s.projectRepo.Update(ctx, project); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

func (s *projectService) DeleteProject(ctx context.Context, projectID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
