package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"course-go-avito-dispatch/internal/domain"
)

// DeliveryRepo represents delivery repository.
type DeliveryRepo struct {
	db *pgxpool.Pool
}

// NewDeliveryRepo creates a new DeliveryRepo.
func NewDeliveryRepo(db *pgxpool.Pool) *DeliveryRepo {
	return &DeliveryRepo{db: db}
}

// Get - returns delivery by its ID.
func (r *DeliveryRepo) Get(ctx context.Context, id int64) (*domain.Delivery, error) {
	var d domain.Delivery
	err := r.db.QueryRow(ctx, `
        SELECT id, area_id, service_kind, rider_id, status, created_at
        FROM deliveries
        WHERE id = $1
    `, id).Scan(&d.ID, &d.AreaID, &d.ServiceKind, &d.RiderID, &d.Status, &d.CreatedAt)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery %d: %w", id, err)
	}
	return &d, nil
}

// IsUnassigned reports whether the delivery exists and has no rider yet.
func (r *DeliveryRepo) IsUnassigned(ctx context.Context, id int64) (bool, error) {
	var unassigned bool
	err := r.db.QueryRow(ctx,
		`SELECT rider_id IS NULL FROM deliveries WHERE id = $1`, id,
	).Scan(&unassigned)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("is unassigned %d: %w", id, err)
	}
	return unassigned, nil
}

// MarkAssigned claims the delivery for the rider. The claim only succeeds
// while the delivery is still unassigned, so a duplicate acceptance loses the
// race here instead of double-assigning. Returns whether the row was claimed.
func (r *DeliveryRepo) MarkAssigned(ctx context.Context, id, riderID int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE deliveries
        SET rider_id = $2, status = $3, updated_at = now()
        WHERE id = $1 AND rider_id IS NULL
    `, id, riderID, string(domain.DeliveryAssigned))
	if err != nil {
		return false, fmt.Errorf("mark delivery %d assigned: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

// MarkUnassigned drops the rider from the delivery (operator cancel path).
func (r *DeliveryRepo) MarkUnassigned(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `
        UPDATE deliveries
        SET rider_id = NULL, status = $2, updated_at = now()
        WHERE id = $1
    `, id, string(domain.DeliveryCreated))
	if err != nil {
		return fmt.Errorf("mark delivery %d unassigned: %w", id, err)
	}
	return nil
}

// Create - creates a new delivery.
func (r *DeliveryRepo) Create(ctx context.Context, d *domain.Delivery) error {
	err := r.db.QueryRow(ctx, `
        INSERT INTO deliveries (area_id, service_kind, status, created_at)
        VALUES ($1, $2, $3, now())
        RETURNING id, created_at
    `, d.AreaID, string(d.ServiceKind), string(d.Status)).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}
