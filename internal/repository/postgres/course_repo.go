package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"trainingscheduler/internal/domain"
)

type CourseRepository struct {
	DB *sql.DB
}

func NewCourseRepository(db *sql.DB) domain.CourseRepository {
	return &CourseRepository{
		DB: db,
	}
}

const courseColumns = `id, title, description, project_id, project_name, school_id, school_name, location, total_hours, hourly_rate, tutor_name, tutor_phone, remaining_hours, created_at, updated_at`

func scanCourse(row interface{ Scan(...any) error }) (*domain.Course, error) {
	c := &domain.Course{}
	var projectID, schoolID sql.NullString
	err := row.Scan(&c.ID, &c.Title, &c.Description, &projectID, &c.ProjectName, &schoolID, &c.SchoolName,
		&c.Location, &c.TotalHours, &c.HourlyRate, &c.TutorName, &c.TutorPhone, &c.RemainingHours,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.ProjectID = projectID.String
	c.SchoolID = schoolID.String
	c.Experts = []domain.CourseExpert{}
	c.Sessions = []*domain.CourseSession{}
	return c, nil
}

func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) error {
	query := `
		INSERT INTO courses (id, title, description, project_id, project_name, school_id, school_name, location, total_hours, hourly_rate, tutor_name, tutor_phone, remaining_hours, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.DB.ExecContext(ctx, query, c.ID, c.Title, c.Description,
		nullString(c.ProjectID), c.ProjectName, nullString(c.SchoolID), c.SchoolName,
		c.Location, c.TotalHours, c.HourlyRate, c.TutorName, c.TutorPhone,
		c.RemainingHours, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return err
	}
	return r.replaceExperts(ctx, c)
}

func (r *CourseRepository) replaceExperts(ctx context.Context, c *domain.Course) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM course_experts WHERE course_id = $1`, c.ID); err != nil {
		return err
	}
	for _, e := range c.Experts {
		if _, err := r.DB.ExecContext(ctx,
			`INSERT INTO course_experts (course_id, expert_id, expert_name, hourly_rate) VALUES ($1, $2, $3, $4)`,
			c.ID, e.ID, e.Name, e.HourlyRate); err != nil {
			return err
		}
	}
	return nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	c, err := scanCourse(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.hydrate(ctx, []*domain.Course{c}); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CourseRepository) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY title LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, p.PageSize, p.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var courses []*domain.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.hydrate(ctx, courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CourseRepository) ListByExpertID(ctx context.Context, expertID string) ([]*domain.Course, error) {
	query := `
		SELECT c.id, c.title, c.description, c.project_id, c.project_name, c.school_id, c.school_name, c.location, c.total_hours, c.hourly_rate, c.tutor_name, c.tutor_phone, c.remaining_hours, c.created_at, c.updated_at
		FROM courses c
		INNER JOIN course_experts ce ON ce.course_id = c.id
		WHERE ce.expert_id = $1
		ORDER BY c.title
	`
	rows, err := r.DB.QueryContext(ctx, query, expertID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var courses []*domain.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.hydrate(ctx, courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// hydrate loads the experts and sessions of every given course in two
// queries, the way the calendar views consume them.
func (r *CourseRepository) hydrate(ctx context.Context, courses []*domain.Course) error {
	if len(courses) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Course, len(courses))
	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
		ids = append(ids, c.ID)
	}

	expertRows, err := r.DB.QueryContext(ctx,
		`SELECT course_id, expert_id, expert_name, hourly_rate FROM course_experts WHERE course_id = ANY($1)`,
		pq.Array(ids))
	if err != nil {
		return err
	}
	defer expertRows.Close()
	for expertRows.Next() {
		var courseID string
		var e domain.CourseExpert
		if err := expertRows.Scan(&courseID, &e.ID, &e.Name, &e.HourlyRate); err != nil {
			return err
		}
		if c := byID[courseID]; c != nil {
			c.Experts = append(c.Experts, e)
		}
	}
	if err := expertRows.Err(); err != nil {
		return err
	}

	sessionRows, err := r.DB.QueryContext(ctx,
		`SELECT id, course_id, date, start_time, end_time, hours FROM course_sessions WHERE course_id = ANY($1) ORDER BY date, start_time`,
		pq.Array(ids))
	if err != nil {
		return err
	}
	defer sessionRows.Close()
	for sessionRows.Next() {
		s := &domain.CourseSession{}
		if err := sessionRows.Scan(&s.ID, &s.CourseID, &s.Date, &s.StartTime, &s.EndTime, &s.Hours); err != nil {
			return err
		}
		if c := byID[s.CourseID]; c != nil {
			c.Sessions = append(c.Sessions, s)
		}
	}
	return sessionRows.Err()
}

func (r *CourseRepository) Update(ctx context.Context, c *domain.Course) error {
	query := `
		UPDATE courses
		SET title = $2, description = $3, project_id = $4, project_name = $5, school_id = $6, school_name = $7,
		    location = $8, total_hours = $9, hourly_rate = $10, tutor_name = $11, tutor_phone = $12,
		    remaining_hours = $13, updated_at = $14
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, c.ID, c.Title, c.Description,
		nullString(c.ProjectID), c.ProjectName, nullString(c.SchoolID), c.SchoolName,
		c.Location, c.TotalHours, c.HourlyRate, c.TutorName, c.TutorPhone,
		c.RemainingHours, c.UpdatedAt)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return r.replaceExperts(ctx, c)
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CourseRepository) UpdateRemainingHours(ctx context.Context, courseID string, remaining float64) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE courses SET remaining_hours = $2, updated_at = NOW() WHERE id = $1`, courseID, remaining)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
