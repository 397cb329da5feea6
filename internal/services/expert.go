package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"trainingscheduler/internal/domain"
)

type expertService struct {
	expertRepo     domain.ExpertRepository
	sessionRepo    domain.SessionRepository
	contextTimeout time.Duration
}

func NewExpertService(expertRepo domain.ExpertRepository, sessionRepo domain.SessionRepository, timeout time.Duration) domain.ExpertService {
	return &expertService{
		expertRepo:     expertRepo,
		sessionRepo:    sessionRepo,
		contextTimeout: timeout,
	}
}

func (s *expertService) CreateExpert(ctx context.Context, expert *domain.Expert) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if expert.FirstName == "" && expert.LastName == "" {
		return fmt.Errorf("expert name is required: %w", domain.ErrInvalidInput)
	}
	if expert.ID == "" {
		expert.ID = uuid.NewString()
	}
	expert.CreatedAt = time.Now()
	expert.UpdatedAt = time.Now()

	if err := s.expertRepo.Create(ctx, expert); err != nil {
		return fmt.Errorf("create expert: %w", err)
	}
	return nil
}

func (s *expertService) GetExpert(ctx context.Context, expertID string) (*domain.Expert, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	expert, err := s.expertRepo.GetByID(ctx, expertID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get expert: %w", err)
	}
	return expert, nil
}

func (s *expertService) ListExperts(ctx context.Context) ([]*domain.Expert, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	experts, err := s.expertRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list experts: %w", err)
	}
	if experts == nil {
		experts = []*domain.Expert{}
	}
	return experts, nil
}

func (s *expertService) UpdateExpert(ctx context.Context, expert *domain.Expert) (*domain.Expert, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if expert.FirstName == "" && expert.LastName == "" {
		return nil, fmt.Errorf("expert name is required: %w", domain.ErrInvalidInput)
	}
	current, err := s.expertRepo.GetByID(ctx, expert.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get expert: %w", err)
	}
	expert.CreatedAt = current.CreatedAt
	expert.UpdatedAt = time.Now()

	if err := s.expertRepo.Update(ctx, expert); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update expert: %w", err)
	}
	return expert, nil
}

func (s *expertService) DeleteExpert(ctx context.Context, expertID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.expertRepo.Delete(ctx, expertID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete expert: %w", err)
	}
	return nil
}

func (s *expertService) Schedule(ctx context.Context, expertID string) ([]*domain.ExpertSession, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.expertRepo.GetByID(ctx, expertID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get expert: %w", err)
	}
	sessions, err := s.sessionRepo.ListByExpertID(ctx, expertID)
	if err != nil {
		return nil, fmt.Errorf("list expert sessions: %w", err)
	}
	if sessions == nil {
		sessions = []*domain.ExpertSession{}
	}
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].Date != sessions[j].Date {
			return sessions[i].Date < sessions[j].Date
		}
		return sessions[i].StartTime < sessions[j].StartTime
	})
	return sessions, nil
}
