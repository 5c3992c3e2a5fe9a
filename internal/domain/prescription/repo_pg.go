package prescription

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const listQuery = `
	SELECT p.id, p.doctor_id, p.patient_id, COALESCE(p.notes, ''), p.created_at,
	       COALESCE(d.first_name, ''), COALESCE(d.last_name, ''),
	       COALESCE(pt.first_name, ''), COALESCE(pt.last_name, '')
	FROM prescriptions p
	LEFT JOIN doctors d ON p.doctor_id = d.id
	LEFT JOIN patients pt ON p.patient_id = pt.id`

// PGRepository stores prescriptions in Postgres.
type PGRepository struct {
	pool *pgxpool.Pool
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func scanPrescription(row pgx.Row) (*Prescription, error) {
	p := &Prescription{}
	err := row.Scan(&p.ID, &p.DoctorID, &p.PatientID, &p.Notes, &p.CreatedAt,
		&p.DoctorFirstName, &p.DoctorLastName, &p.PatientFirstName, &p.PatientLastName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan prescription: %w", err)
	}
	return p, nil
}

func (r *PGRepository) list(ctx context.Context, where string, args ...interface{}) ([]*Prescription, error) {
	rows, err := r.pool.Query(ctx, listQuery+where+` ORDER BY p.created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list prescriptions: %w", err)
	}
	defer rows.Close()

	var items []*Prescription
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *PGRepository) List(ctx context.Context) ([]*Prescription, error) {
	return r.list(ctx, "")
}

func (r *PGRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Prescription, error) {
	return r.list(ctx, ` WHERE p.doctor_id = $1`, doctorID)
}

func (r *PGRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Prescription, error) {
	return r.list(ctx, ` WHERE p.patient_id = $1`, patientID)
}

func (r *PGRepository) Get(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	p, err := scanPrescription(r.pool.QueryRow(ctx, listQuery+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT medication_name, dosage, frequency, duration
		FROM prescription_medications
		WHERE prescription_id = $1
		ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("load medications: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m Medication
		if err := rows.Scan(&m.MedicationName, &m.Dosage, &m.Frequency, &m.Duration); err != nil {
			return nil, fmt.Errorf("scan medication: %w", err)
		}
		p.Medications = append(p.Medications, m)
	}
	return p, rows.Err()
}

func (r *PGRepository) Create(ctx context.Context, p *Prescription) (*Prescription, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM doctors WHERE id = $1)`, p.DoctorID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check doctor: %w", err)
	}
	if !exists {
		return nil, ErrDoctorNotFound
	}
	err = r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM patients WHERE id = $1)`, p.PatientID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check patient: %w", err)
	}
	if !exists {
		return nil, ErrPatientNotFound
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	p.ID = uuid.New()
	err = tx.QueryRow(ctx, `
		INSERT INTO prescriptions (id, doctor_id, patient_id, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		p.ID, p.DoctorID, p.PatientID, p.Notes,
	).Scan(&p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert prescription: %w", err)
	}

	for _, m := range p.Medications {
		_, err = tx.Exec(ctx, `
			INSERT INTO prescription_medications (prescription_id, medication_name, dosage, frequency, duration)
			VALUES ($1, $2, $3, $4, $5)`,
			p.ID, m.MedicationName, m.Dosage, m.Frequency, m.Duration)
		if err != nil {
			return nil, fmt.Errorf("insert medication: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return p, nil
}

func (r *PGRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM prescriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete prescription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepository) SearchPatients(ctx context.Context, query string) ([]*PatientHit, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, first_name, last_name, email, date_of_birth, gender
		FROM patients
		WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1
		ORDER BY last_name, first_name
		LIMIT $2`,
		"%"+query+"%", SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search patients: %w", err)
	}
	defer rows.Close()

	var hits []*PatientHit
	for rows.Next() {
		h := &PatientHit{}
		if err := rows.Scan(&h.ID, &h.FirstName, &h.LastName, &h.Email, &h.DateOfBirth, &h.Gender); err != nil {
			return nil, fmt.Errorf("scan patient hit: %w", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}
