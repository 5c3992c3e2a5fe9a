package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const listQuery = `
	SELECT a.id, a.doctor_id, a.patient_id, a.appointment_date, a.status,
	       COALESCE(a.notes, ''), a.created_at, a.updated_at,
	       COALESCE(d.first_name, ''), COALESCE(d.last_name, ''),
	       COALESCE(p.first_name, ''), COALESCE(p.last_name, '')
	FROM appointments a
	LEFT JOIN doctors d ON a.doctor_id = d.id
	LEFT JOIN patients p ON a.patient_id = p.id`

// PGRepository stores appointments in Postgres.
type PGRepository struct {
	pool *pgxpool.Pool
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	a := &Appointment{}
	err := row.Scan(&a.ID, &a.DoctorID, &a.PatientID, &a.AppointmentDate, &a.Status,
		&a.Notes, &a.CreatedAt, &a.UpdatedAt,
		&a.DoctorFirstName, &a.DoctorLastName, &a.PatientFirstName, &a.PatientLastName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan appointment: %w", err)
	}
	return a, nil
}

func (r *PGRepository) list(ctx context.Context, where string, args ...interface{}) ([]*Appointment, error) {
	rows, err := r.pool.Query(ctx, listQuery+where+` ORDER BY a.appointment_date`, args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *PGRepository) List(ctx context.Context) ([]*Appointment, error) {
	return r.list(ctx, "")
}

func (r *PGRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Appointment, error) {
	return r.list(ctx, ` WHERE a.doctor_id = $1`, doctorID)
}

func (r *PGRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error) {
	return r.list(ctx, ` WHERE a.patient_id = $1`, patientID)
}

func (r *PGRepository) Create(ctx context.Context, a *Appointment) (*Appointment, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM doctors WHERE id = $1)`, a.DoctorID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check doctor: %w", err)
	}
	if !exists {
		return nil, ErrDoctorNotFound
	}
	if a.PatientID != nil {
		err = r.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM patients WHERE id = $1)`, *a.PatientID).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("check patient: %w", err)
		}
		if !exists {
			return nil, ErrPatientNotFound
		}
	}

	a.ID = uuid.New()
	err = r.pool.QueryRow(ctx, `
		INSERT INTO appointments (id, doctor_id, patient_id, appointment_date, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		a.ID, a.DoctorID, a.PatientID, a.AppointmentDate, a.Status, a.Notes,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert appointment: %w", err)
	}
	return a, nil
}

func (r *PGRepository) Update(ctx context.Context, id uuid.UUID, req *UpdateRequest) (*Appointment, error) {
	var sets []string
	var args []interface{}
	if req.AppointmentDate != nil {
		args = append(args, *req.AppointmentDate)
		sets = append(sets, fmt.Sprintf("appointment_date = $%d", len(args)))
	}
	if req.Status != nil {
		args = append(args, *req.Status)
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}
	if req.Notes != nil {
		args = append(args, *req.Notes)
		sets = append(sets, fmt.Sprintf("notes = $%d", len(args)))
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	a := &Appointment{}
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE appointments SET %s WHERE id = $%d
		RETURNING id, doctor_id, patient_id, appointment_date, status, COALESCE(notes, ''), created_at, updated_at`,
		strings.Join(sets, ", "), len(args)), args...,
	).Scan(&a.ID, &a.DoctorID, &a.PatientID, &a.AppointmentDate, &a.Status,
		&a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	return a, nil
}

func (r *PGRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
