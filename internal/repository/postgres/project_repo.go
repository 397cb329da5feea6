package postgres

import (
	"context"
	"database/sql"

	"trainingscheduler/internal/domain"
)

type ProjectRepository struct {
	DB *sql.DB
}

func NewProjectRepository(db *sql.DB) domain.ProjectRepository {
	return &ProjectRepository{
		DB: db,
	}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	query := `
		INSERT INTO projects (id, name, year, type, school_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.ExecContext(ctx, query, p.ID, p.Name, p.Year, p.Type, nullString(p.SchoolID), p.CreatedAt, p.UpdatedAt)
	return err
}

func scanProject(row interface{ Scan(...any) error }) (*domain.Project, error) {
	p := &domain.Project{}
	var schoolID sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.Year, &p.Type, &schoolID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.SchoolID = schoolID.String
	return p, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT id, name, year, type, school_id, created_at, updated_at FROM projects WHERE id = $1`
	p, err := scanProject(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	query := `SELECT id, name, year, type, school_id, created_at, updated_at FROM projects ORDER BY year DESC, name`
	return r.queryProjects(ctx, query)
}

func (r *ProjectRepository) ListBySchoolID(ctx context.Context, schoolID string) ([]*domain.Project, error) {
	query := `SELECT id, name, year, type, school_id, created_at, updated_at FROM projects WHERE school_id = $1 ORDER BY year DESC, name`
	return r.queryProjects(ctx, query, schoolID)
}

func (r *ProjectRepository) queryProjects(ctx context.Context, query string, args ...any) ([]*domain.Project, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	query := `
		UPDATE projects
		SET name = $2, year = $3, type = $4, school_id = $5, updated_at = $6
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, p.ID, p.Name, p.Year, p.Type, nullString(p.SchoolID), p.UpdatedAt)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
