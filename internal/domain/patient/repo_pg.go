package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const patientColumns = `id, user_id, first_name, last_name, email, date_of_birth, gender, phone_number, COALESCE(address, ''), created_at, updated_at`

// PGRepository stores patient profiles in Postgres.
type PGRepository struct {
	pool *pgxpool.Pool
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func scanPatient(row pgx.Row) (*Patient, error) {
	p := &Patient{}
	err := row.Scan(&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Email,
		&p.DateOfBirth, &p.Gender, &p.PhoneNumber, &p.Address, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan patient: %w", err)
	}
	return p, nil
}

func (r *PGRepository) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count patients: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+patientColumns+` FROM patients ORDER BY last_name, first_name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *PGRepository) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx,
		`SELECT `+patientColumns+` FROM patients WHERE id = $1`, id))
}

func (r *PGRepository) Create(ctx context.Context, p *Patient) (*Patient, error) {
	p.ID = uuid.New()
	return scanPatient(r.pool.QueryRow(ctx, `
		INSERT INTO patients (id, first_name, last_name, email, date_of_birth, gender, phone_number, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+patientColumns,
		p.ID, p.FirstName, p.LastName, p.Email, p.DateOfBirth, p.Gender, p.PhoneNumber, p.Address))
}

func (r *PGRepository) Update(ctx context.Context, p *Patient) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx, `
		UPDATE patients
		SET first_name = $1, last_name = $2, email = $3, date_of_birth = $4,
		    gender = $5, phone_number = $6, address = $7, updated_at = CURRENT_TIMESTAMP
		WHERE id = $8
		RETURNING `+patientColumns,
		p.FirstName, p.LastName, p.Email, p.DateOfBirth, p.Gender, p.PhoneNumber, p.Address, p.ID))
}

func (r *PGRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
