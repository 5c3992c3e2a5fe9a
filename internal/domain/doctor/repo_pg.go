package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const doctorColumns = `id, user_id, first_name, last_name, email, specialization, phone_number, created_at, updated_at`

// PGRepository stores doctor profiles in Postgres.
type PGRepository struct {
	pool *pgxpool.Pool
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func scanDoctor(row pgx.Row) (*Doctor, error) {
	d := &Doctor{}
	err := row.Scan(&d.ID, &d.UserID, &d.FirstName, &d.LastName, &d.Email,
		&d.Specialization, &d.PhoneNumber, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan doctor: %w", err)
	}
	return d, nil
}

func collectDoctors(rows pgx.Rows) ([]*Doctor, error) {
	defer rows.Close()
	var items []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *PGRepository) List(ctx context.Context) ([]*Doctor, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+doctorColumns+` FROM doctors ORDER BY last_name, first_name`)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return collectDoctors(rows)
}

func (r *PGRepository) Get(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return scanDoctor(r.pool.QueryRow(ctx,
		`SELECT `+doctorColumns+` FROM doctors WHERE id = $1`, id))
}

func (r *PGRepository) GetByEmail(ctx context.Context, email string) (*Doctor, error) {
	return scanDoctor(r.pool.QueryRow(ctx,
		`SELECT `+doctorColumns+` FROM doctors WHERE email = $1`, email))
}

func (r *PGRepository) Search(ctx context.Context, query string) ([]*Doctor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+doctorColumns+`
		FROM doctors
		WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1
		ORDER BY last_name, first_name
		LIMIT $2`,
		"%"+query+"%", SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search doctors: %w", err)
	}
	return collectDoctors(rows)
}

func (r *PGRepository) Create(ctx context.Context, d *Doctor) (*Doctor, error) {
	d.ID = uuid.New()
	return scanDoctor(r.pool.QueryRow(ctx, `
		INSERT INTO doctors (id, first_name, last_name, email, specialization, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+doctorColumns,
		d.ID, d.FirstName, d.LastName, d.Email, d.Specialization, d.PhoneNumber))
}

func (r *PGRepository) Update(ctx context.Context, d *Doctor) (*Doctor, error) {
	return scanDoctor(r.pool.QueryRow(ctx, `
		UPDATE doctors
		SET first_name = $1, last_name = $2, email = $3, specialization = $4,
		    phone_number = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
		RETURNING `+doctorColumns,
		d.FirstName, d.LastName, d.Email, d.Specialization, d.PhoneNumber, d.ID))
}

func (r *PGRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
