package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"trainingscheduler/internal/domain"
)

type ExpertRepository struct {
	DB *sql.DB
}

func NewExpertRepository(db *sql.DB) domain.ExpertRepository {
	return &ExpertRepository{
		DB: db,
	}
}

func (r *ExpertRepository) Create(ctx context.Context, e *domain.Expert) error {
	query := `
		INSERT INTO experts (id, first_name, last_name, phone, email, fiscal_code, vat_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.DB.ExecContext(ctx, query, e.ID, e.FirstName, e.LastName, e.Phone, e.Email,
		e.FiscalCode, e.VATNumber, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return err
	}
	return r.replaceSubjects(ctx, e)
}

func (r *ExpertRepository) replaceSubjects(ctx context.Context, e *domain.Expert) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM expert_subjects WHERE expert_id = $1`, e.ID); err != nil {
		return err
	}
	for _, subject := range e.Subjects {
		if _, err := r.DB.ExecContext(ctx,
			`INSERT INTO expert_subjects (expert_id, subject) VALUES ($1, $2)`, e.ID, subject); err != nil {
			return err
		}
	}
	return nil
}

func (r *ExpertRepository) GetByID(ctx context.Context, id string) (*domain.Expert, error) {
	query := `
		SELECT id, first_name, last_name, phone, email, fiscal_code, vat_number, created_at, updated_at
		FROM experts
		WHERE id = $1
	`
	e := &domain.Expert{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.FirstName, &e.LastName, &e.Phone,
		&e.Email, &e.FiscalCode, &e.VATNumber, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	e.Subjects = []string{}
	if err := r.loadSubjects(ctx, []*domain.Expert{e}); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *ExpertRepository) List(ctx context.Context) ([]*domain.Expert, error) {
	query := `
		SELECT id, first_name, last_name, phone, email, fiscal_code, vat_number, created_at, updated_at
		FROM experts
		ORDER BY last_name, first_name
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var experts []*domain.Expert
	for rows.Next() {
		e := &domain.Expert{}
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Phone, &e.Email,
			&e.FiscalCode, &e.VATNumber, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		e.Subjects = []string{}
		experts = append(experts, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadSubjects(ctx, experts); err != nil {
		return nil, err
	}
	return experts, nil
}

func (r *ExpertRepository) loadSubjects(ctx context.Context, experts []*domain.Expert) error {
	if len(experts) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Expert, len(experts))
	ids := make([]string, 0, len(experts))
	for _, e := range experts {
		byID[e.ID] = e
		ids = append(ids, e.ID)
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT expert_id, subject FROM expert_subjects WHERE expert_id = ANY($1) ORDER BY subject`,
		pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var expertID, subject string
		if err := rows.Scan(&expertID, &subject); err != nil {
			return err
		}
		if e := byID[expertID]; e != nil {
			e.Subjects = append(e.Subjects, subject)
		}
	}
	return rows.Err()
}

func (r *ExpertRepository) Update(ctx context.Context, e *domain.Expert) error {
	query := `
		UPDATE experts
		SET first_name = $2, last_name = $3, phone = $4, email = $5, fiscal_code = $6, vat_number = $7, updated_at = $8
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, e.ID, e.FirstName, e.LastName, e.Phone, e.Email,
		e.FiscalCode, e.VATNumber, e.UpdatedAt)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return r.replaceSubjects(ctx, e)
}

func (r *ExpertRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM experts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
