package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"trainingscheduler/internal/domain"
	"trainingscheduler/internal/schedule"
)

type courseService struct {
	courseRepo     domain.CourseRepository
	sessionRepo    domain.SessionRepository
	expertRepo     domain.ExpertRepository
	schoolRepo     domain.SchoolRepository
	projectRepo    domain.ProjectRepository
	emailService   domain.EmailService
	contextTimeout time.Duration

	// expertLocks serializes the conflict-scan-then-persist window per
	// expert, so two concurrent bookings of the same expert cannot both
	// pass the scan before either commits.
	expertLocks sync.Map // expertID -> *sync.Mutex
}

func NewCourseService(courseRepo domain.CourseRepository,
	sessionRepo domain.SessionRepository,
	expertRepo domain.ExpertRepository,
	schoolRepo domain.SchoolRepository,
	projectRepo domain.ProjectRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.CourseService {
	return &courseService{
		courseRepo:     courseRepo,
		sessionRepo:    sessionRepo,
		expertRepo:     expertRepo,
		schoolRepo:     schoolRepo,
		projectRepo:    projectRepo,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

// lockExperts acquires the per-expert mutexes for every given id in sorted
// order (sorting keeps concurrent multi-expert bookings deadlock-free) and
// returns the unlock function.
func (s *courseService) lockExperts(expertIDs []string) func() {
	ids := make([]string, 0, len(expertIDs))
	seen := make(map[string]struct{}, len(expertIDs))
	for _, id := range expertIDs {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	locked := make([]*sync.Mutex, 0, len(ids))
	for _, id := range ids {
		v, _ := s.expertLocks.LoadOrStore(id, &sync.Mutex{})
		mu := v.(*sync.Mutex)
		mu.Lock()
		locked = append(locked, mu)
	}
	return func() {
		for i := len(locked) - 1; i >= 0; i-- {
			locked[i].Unlock()
		}
	}
}

// lockCourse loads the course, acquires its expert locks, and reloads the
// course so conflict and budget checks run on in-lock state: a booking that
// held the locks first may have changed the calendar between the two loads.
// Callers must call unlock when err is nil.
func (s *courseService) lockCourse(ctx context.Context, courseID string) (_ *domain.Course, unlock func(), err error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get course: %w", err)
	}

	unlock = s.lockExperts(expertIDs(course))
	course, err = s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		unlock()
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get course: %w", err)
	}
	return course, unlock, nil
}

func (s *courseService) CreateCourse(ctx context.Context, course *domain.Course) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if course.Title == "" {
		return fmt.Errorf("course title is required: %w", domain.ErrInvalidInput)
	}
	if course.TotalHours < 0 {
		return fmt.Errorf("total hours must not be negative: %w", domain.ErrInvalidInput)
	}
	if err := s.hydrateReferences(ctx, course); err != nil {
		return err
	}

	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	course.Sessions = []*domain.CourseSession{}
	course.RemainingHours = schedule.RemainingHours(course)
	course.CreatedAt = time.Now()
	course.UpdatedAt = time.Now()

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// hydrateReferences resolves project, school, and expert names from their ids
// so stored denormalized names cannot drift from what the operator picked.
func (s *courseService) hydrateReferences(ctx context.Context, course *domain.Course) error {
	if course.ProjectID != "" {
		project, err := s.projectRepo.GetByID(ctx, course.ProjectID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("project %s: %w", course.ProjectID, domain.ErrNotFound)
			}
			return fmt.Errorf("get project: %w", err)
		}
		course.ProjectName = project.Name
	}
	if course.SchoolID != "" {
		school, err := s.schoolRepo.GetByID(ctx, course.SchoolID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("school %s: %w", course.SchoolID, domain.ErrNotFound)
			}
			return fmt.Errorf("get school: %w", err)
		}
		course.SchoolName = school.Name
	}
	for i := range course.Experts {
		expert, err := s.expertRepo.GetByID(ctx, course.Experts[i].ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("expert %s: %w", course.Experts[i].ID, domain.ErrNotFound)
			}
			return fmt.Errorf("get expert: %w", err)
		}
		course.Experts[i].Name = expert.FullName()
	}
	return nil
}

func (s *courseService) GetCourse(ctx context.Context, courseID string) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}
	return course, nil
}

func (s *courseService) ListCourses(ctx context.Context, p domain.PaginationParams) ([]*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	courses, err := s.courseRepo.List(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	if courses == nil {
		courses = []*domain.Course{}
	}
	return courses, nil
}

func (s *courseService) UpdateCourse(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if course.Title == "" {
		return nil, fmt.Errorf("course title is required: %w", domain.ErrInvalidInput)
	}
	if course.TotalHours < 0 {
		return nil, fmt.Errorf("total hours must not be negative: %w", domain.ErrInvalidInput)
	}

	current, err := s.courseRepo.GetByID(ctx, course.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}
	if err := s.hydrateReferences(ctx, course); err != nil {
		return nil, err
	}

	// The calendar is edited through the session endpoints; a course update
	// keeps the stored sessions and rebalances the budget against them. A
	// budget shrunk below the scheduled hours is rejected rather than
	// silently clamped to zero remaining.
	course.Sessions = current.Sessions
	if schedule.OverAssigned(course) {
		return nil, fmt.Errorf("total of %.1f hours is below the %.1f hours already scheduled on course %q: %w",
			course.TotalHours, schedule.AssignedHours(course.Sessions), course.Title, domain.ErrHoursExceeded)
	}
	course.RemainingHours = schedule.RemainingHours(course)
	course.CreatedAt = current.CreatedAt
	course.UpdatedAt = time.Now()

	if err := s.courseRepo.Update(ctx, course); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update course: %w", err)
	}
	return course, nil
}

func (s *courseService) DeleteCourse(ctx context.Context, courseID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.courseRepo.Delete(ctx, courseID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}

// validateSessionInput checks shape only; the conflict and budget rules run
// later under the expert locks.
func validateSessionInput(in domain.SessionInput) error {
	if in.Date == "" {
		return fmt.Errorf("session date is required: %w", domain.ErrInvalidInput)
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return fmt.Errorf("malformed session date %q: %w", in.Date, domain.ErrInvalidInput)
	}
	if !schedule.ValidTime(in.StartTime) || !schedule.ValidTime(in.EndTime) {
		return fmt.Errorf("malformed session times %q-%q: %w", in.StartTime, in.EndTime, domain.ErrInvalidInput)
	}
	return nil
}

// checkExpertConflicts scans every expert of the course for a double booking
// on the candidate slot, skipping the course's own calendar.
func (s *courseService) checkExpertConflicts(ctx context.Context, course *domain.Course, slot schedule.SessionSlot) error {
	for _, expert := range course.Experts {
		others, err := s.courseRepo.ListByExpertID(ctx, expert.ID)
		if err != nil {
			return fmt.Errorf("list courses for expert %s: %w", expert.ID, err)
		}
		conflict, err := schedule.FindConflict(slot, expert.ID, others, course.ID)
		if err != nil {
			return err
		}
		if conflict != nil {
			return fmt.Errorf("expert %s is already booked on %s from %s to %s for course %q: %w",
				expert.Name, conflict.Session.Date, conflict.Session.StartTime,
				conflict.Session.EndTime, conflict.CourseTitle, domain.ErrSessionConflict)
		}
	}
	return nil
}

func (s *courseService) AddSession(ctx context.Context, courseID string, in domain.SessionInput) (*domain.CourseSession, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateSessionInput(in); err != nil {
		return nil, err
	}
	hours, err := schedule.HoursBetween(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	course, unlock, err := s.lockCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	slot := schedule.SessionSlot{Date: in.Date, StartTime: in.StartTime, EndTime: in.EndTime}
	if err := s.checkExpertConflicts(ctx, course, slot); err != nil {
		return nil, err
	}
	if hours > schedule.AvailableHours(course, nil) {
		return nil, fmt.Errorf("session of %.1f hours exceeds the %.1f hours left on course %q: %w",
			hours, schedule.AvailableHours(course, nil), course.Title, domain.ErrHoursExceeded)
	}

	session := &domain.CourseSession{
		ID:        uuid.NewString(),
		CourseID:  courseID,
		Date:      in.Date,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Hours:     hours,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	course.Sessions = append(course.Sessions, session)
	if err := s.courseRepo.UpdateRemainingHours(ctx, courseID, schedule.RemainingHours(course)); err != nil {
		return nil, fmt.Errorf("update remaining hours: %w", err)
	}

	s.notifyExperts(ctx, course, session)
	return session, nil
}

func (s *courseService) UpdateSession(ctx context.Context, courseID, sessionID string, in domain.SessionInput) (*domain.CourseSession, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateSessionInput(in); err != nil {
		return nil, err
	}
	hours, err := schedule.HoursBetween(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	course, unlock, err := s.lockCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	session := course.SessionByID(sessionID)
	if session == nil {
		return nil, domain.ErrNotFound
	}

	slot := schedule.SessionSlot{Date: in.Date, StartTime: in.StartTime, EndTime: in.EndTime}
	if err := s.checkExpertConflicts(ctx, course, slot); err != nil {
		return nil, err
	}
	if hours > schedule.AvailableHours(course, session) {
		return nil, fmt.Errorf("session of %.1f hours exceeds the %.1f hours left on course %q: %w",
			hours, schedule.AvailableHours(course, session), course.Title, domain.ErrHoursExceeded)
	}

	session.Date = in.Date
	session.StartTime = in.StartTime
	session.EndTime = in.EndTime
	session.Hours = hours
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update session: %w", err)
	}

	if err := s.courseRepo.UpdateRemainingHours(ctx, courseID, schedule.RemainingHours(course)); err != nil {
		return nil, fmt.Errorf("update remaining hours: %w", err)
	}

	s.notifyExperts(ctx, course, session)
	return session, nil
}

func (s *courseService) DeleteSession(ctx context.Context, courseID, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	course, unlock, err := s.lockCourse(ctx, courseID)
	if err != nil {
		return err
	}
	defer unlock()

	if course.SessionByID(sessionID) == nil {
		return domain.ErrNotFound
	}

	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete session: %w", err)
	}

	kept := course.Sessions[:0]
	for _, sess := range course.Sessions {
		if sess.ID != sessionID {
			kept = append(kept, sess)
		}
	}
	course.Sessions = kept
	if err := s.courseRepo.UpdateRemainingHours(ctx, courseID, schedule.RemainingHours(course)); err != nil {
		return fmt.Errorf("update remaining hours: %w", err)
	}
	return nil
}

func expertIDs(course *domain.Course) []string {
	ids := make([]string, 0, len(course.Experts))
	for _, e := range course.Experts {
		ids = append(ids, e.ID)
	}
	return ids
}

// notifyExperts emails each course expert about the booked slot. Failures are
// swallowed: the session is already committed and mail is best effort.
func (s *courseService) notifyExperts(ctx context.Context, course *domain.Course, session *domain.CourseSession) {
	for _, ce := range course.Experts {
		expert, err := s.expertRepo.GetByID(ctx, ce.ID)
		if err != nil || expert.Email == "" {
			continue
		}
		data := &domain.SessionBookedEmailData{
			Email:       expert.Email,
			ExpertName:  expert.FullName(),
			CourseTitle: course.Title,
			SchoolName:  course.SchoolName,
			Date:        session.Date,
			StartTime:   session.StartTime,
			EndTime:     session.EndTime,
			Hours:       session.Hours,
		}
		_ = s.emailService.SendSessionBooked(ctx, data)
	}
}
