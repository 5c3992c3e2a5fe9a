package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepository stores accounts in Postgres.
type PGRepository struct {
	pool *pgxpool.Pool
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) Create(ctx context.Context, u *User, req *RegisterRequest) (*User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	u.ID = uuid.New()
	err = tx.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, role, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		u.ID, u.Email, u.PasswordHash, u.Role, u.FirstName, u.LastName,
	).Scan(&u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	switch u.Role {
	case RolePatient:
		_, err = tx.Exec(ctx, `
			INSERT INTO patients (id, user_id, first_name, last_name, email, date_of_birth, gender, phone_number)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.New(), u.ID, u.FirstName, u.LastName, u.Email, req.DateOfBirth, req.Gender, req.PhoneNumber)
		if err != nil {
			return nil, fmt.Errorf("insert patient profile: %w", err)
		}
	case RoleDoctor:
		_, err = tx.Exec(ctx, `
			INSERT INTO doctors (id, user_id, first_name, last_name, email, specialization, phone_number)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.New(), u.ID, u.FirstName, u.LastName, u.Email, req.Specialization, req.PhoneNumber)
		if err != nil {
			return nil, fmt.Errorf("insert doctor profile: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return u, nil
}

func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	u := &User{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, role, first_name, last_name, created_at
		FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FirstName, &u.LastName, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (r *PGRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return taken, nil
}
