package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"trainingscheduler/internal/domain"
)

type SchoolRepository struct {
	DB *sql.DB
}

func NewSchoolRepository(db *sql.DB) domain.SchoolRepository {
	return &SchoolRepository{
		DB: db,
	}
}

func (r *SchoolRepository) Create(ctx context.Context, s *domain.School) error {
	query := `
		INSERT INTO schools (id, name, address, principal_name, principal_phone, manager_name, manager_phone, map_link, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.DB.ExecContext(ctx, query, s.ID, s.Name, s.Address, s.PrincipalName, s.PrincipalPhone,
		s.ManagerName, s.ManagerPhone, nullString(s.MapLink), s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return err
	}
	return r.replaceLocations(ctx, s)
}

func (r *SchoolRepository) replaceLocations(ctx context.Context, s *domain.School) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM school_locations WHERE school_id = $1`, s.ID); err != nil {
		return err
	}
	for _, loc := range s.SecondaryLocations {
		if _, err := r.DB.ExecContext(ctx,
			`INSERT INTO school_locations (id, school_id, name, address, manager_name, manager_phone, map_link) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			loc.ID, s.ID, loc.Name, loc.Address, loc.ManagerName, loc.ManagerPhone, nullString(loc.MapLink)); err != nil {
			return err
		}
	}
	return nil
}

func (r *SchoolRepository) GetByID(ctx context.Context, id string) (*domain.School, error) {
	query := `
		SELECT id, name, address, principal_name, principal_phone, manager_name, manager_phone, map_link, created_at, updated_at
		FROM schools
		WHERE id = $1
	`
	s, err := scanSchool(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadLocations(ctx, []*domain.School{s}); err != nil {
		return nil, err
	}
	return s, nil
}

func scanSchool(row interface{ Scan(...any) error }) (*domain.School, error) {
	s := &domain.School{}
	var mapLink sql.NullString
	err := row.Scan(&s.ID, &s.Name, &s.Address, &s.PrincipalName, &s.PrincipalPhone,
		&s.ManagerName, &s.ManagerPhone, &mapLink, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.MapLink = mapLink.String
	s.SecondaryLocations = []domain.SchoolLocation{}
	return s, nil
}

func (r *SchoolRepository) List(ctx context.Context) ([]*domain.School, error) {
	query := `
		SELECT id, name, address, principal_name, principal_phone, manager_name, manager_phone, map_link, created_at, updated_at
		FROM schools
		ORDER BY name
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var schools []*domain.School
	for rows.Next() {
		s, err := scanSchool(rows)
		if err != nil {
			return nil, err
		}
		schools = append(schools, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadLocations(ctx, schools); err != nil {
		return nil, err
	}
	return schools, nil
}

func (r *SchoolRepository) loadLocations(ctx context.Context, schools []*domain.School) error {
	if len(schools) == 0 {
		return nil
	}
	byID := make(map[string]*domain.School, len(schools))
	ids := make([]string, 0, len(schools))
	for _, s := range schools {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, school_id, name, address, manager_name, manager_phone, map_link FROM school_locations WHERE school_id = ANY($1) ORDER BY name`,
		pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var schoolID string
		var loc domain.SchoolLocation
		var mapLink sql.NullString
		if err := rows.Scan(&loc.ID, &schoolID, &loc.Name, &loc.Address, &loc.ManagerName, &loc.ManagerPhone, &mapLink); err != nil {
			return err
		}
		loc.MapLink = mapLink.String
		if s := byID[schoolID]; s != nil {
			s.SecondaryLocations = append(s.SecondaryLocations, loc)
		}
	}
	return rows.Err()
}

func (r *SchoolRepository) Update(ctx context.Context, s *domain.School) error {
	query := `
		UPDATE schools
		SET name = $2, address = $3, principal_name = $4, principal_phone = $5, manager_name = $6, manager_phone = $7, map_link = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, s.ID, s.Name, s.Address, s.PrincipalName, s.PrincipalPhone,
		s.ManagerName, s.ManagerPhone, nullString(s.MapLink), s.UpdatedAt)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return r.replaceLocations(ctx, s)
}

func (r *SchoolRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM schools WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
