package refill

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepository stores refill requests in Postgres.
type PGRepository struct {
	pool *pgxpool.Pool
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) Create(ctx context.Context, prescriptionID, patientID uuid.UUID) (*Request, error) {
	req := &Request{}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO refill_requests (id, prescription_id, patient_id)
		VALUES ($1, $2, $3)
		RETURNING id, prescription_id, patient_id, status, requested_at, responded_at`,
		uuid.New(), prescriptionID, patientID,
	).Scan(&req.ID, &req.PrescriptionID, &req.PatientID, &req.Status, &req.RequestedAt, &req.RespondedAt)
	if err != nil {
		return nil, fmt.Errorf("insert refill request: %w", err)
	}
	return req, nil
}

func (r *PGRepository) List(ctx context.Context) ([]*Request, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.prescription_id, r.patient_id, r.status, r.requested_at, r.responded_at,
		       pt.first_name, pt.last_name,
		       json_agg(json_build_object(
		           'medicationName', pm.medication_name,
		           'dosage', pm.dosage,
		           'frequency', pm.frequency,
		           'duration', pm.duration
		       )) AS medications
		FROM refill_requests r
		JOIN patients pt ON r.patient_id = pt.id
		JOIN prescription_medications pm ON pm.prescription_id = r.prescription_id
		GROUP BY r.id, r.prescription_id, r.patient_id, r.status, r.requested_at, r.responded_at,
		         pt.first_name, pt.last_name
		ORDER BY r.requested_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list refill requests: %w", err)
	}
	defer rows.Close()

	var items []*Request
	for rows.Next() {
		req := &Request{}
		err := rows.Scan(&req.ID, &req.PrescriptionID, &req.PatientID, &req.Status,
			&req.RequestedAt, &req.RespondedAt,
			&req.PatientFirstName, &req.PatientLastName, &req.Medications)
		if err != nil {
			return nil, fmt.Errorf("scan refill request: %w", err)
		}
		items = append(items, req)
	}
	return items, rows.Err()
}

func (r *PGRepository) SetStatus(ctx context.Context, id uuid.UUID, status string) (*Request, error) {
	req := &Request{}
	err := r.pool.QueryRow(ctx, `
		UPDATE refill_requests
		SET status = $1, responded_at = CURRENT_TIMESTAMP
		WHERE id = $2
		RETURNING id, prescription_id, patient_id, status, requested_at, responded_at`,
		status, id,
	).Scan(&req.ID, &req.PrescriptionID, &req.PatientID, &req.Status, &req.RequestedAt, &req.RespondedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update refill request: %w", err)
	}
	return req, nil
}
