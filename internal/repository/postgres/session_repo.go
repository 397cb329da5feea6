package postgres

import (
	"context"
	"database/sql"

	"trainingscheduler/internal/domain"
)

type SessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &SessionRepository{
		DB: db,
	}
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.CourseSession) error {
	query := `
		INSERT INTO course_sessions (id, course_id, date, start_time, end_time, hours)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, query, s.ID, s.CourseID, s.Date, s.StartTime, s.EndTime, s.Hours)
	return err
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*domain.CourseSession, error) {
	query := `
		SELECT id, course_id, date, start_time, end_time, hours
		FROM course_sessions
		WHERE id = $1
	`
	s := &domain.CourseSession{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.CourseID, &s.Date, &s.StartTime, &s.EndTime, &s.Hours)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *SessionRepository) Update(ctx context.Context, s *domain.CourseSession) error {
	query := `
		UPDATE course_sessions
		SET date = $2, start_time = $3, end_time = $4, hours = $5
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, s.ID, s.Date, s.StartTime, s.EndTime, s.Hours)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM course_sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SessionRepository) ListByExpertID(ctx context.Context, expertID string) ([]*domain.ExpertSession, error) {
	query := `
		SELECT s.id, s.course_id, c.title, c.school_name, c.location, s.date, s.start_time, s.end_time, s.hours
		FROM course_sessions s
		INNER JOIN courses c ON c.id = s.course_id
		INNER JOIN course_experts ce ON ce.course_id = c.id
		WHERE ce.expert_id = $1
		ORDER BY s.date, s.start_time
	`
	rows, err := r.DB.QueryContext(ctx, query, expertID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sessions []*domain.ExpertSession
	for rows.Next() {
		es := &domain.ExpertSession{}
		if err := rows.Scan(&es.SessionID, &es.CourseID, &es.CourseTitle, &es.SchoolName, &es.Location,
			&es.Date, &es.StartTime, &es.EndTime, &es.Hours); err != nil {
			return nil, err
		}
		sessions = append(sessions, es)
	}
	return sessions, rows.Err()
}
