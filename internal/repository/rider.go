package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"course-go-avito-dispatch/internal/apperr"
	"course-go-avito-dispatch/internal/domain"
)

// RiderRepo represents rider repository.
type RiderRepo struct{ db *pgxpool.Pool }

// NewRiderRepo creates a new RiderRepo.
func NewRiderRepo(db *pgxpool.Pool) *RiderRepo { return &RiderRepo{db: db} }

// ListCandidates returns available riders for the area and service kind,
// least-loaded first. The order of this list is the offer order.
func (r *RiderRepo) ListCandidates(ctx context.Context, areaID int64, kind domain.ServiceKind) ([]domain.Candidate, error) {
	rows, err := r.db.Query(ctx, `
        SELECT r.id, r.phone, r.name
        FROM riders r
        WHERE r.area_id = $1
          AND r.service_kind = $2
          AND r.status = $3
        ORDER BY
            (SELECT COUNT(*) FROM deliveries d WHERE d.rider_id = r.id AND d.status = 'assigned') ASC,
            r.id ASC
    `, areaID, string(kind), string(domain.RiderAvailable))
	if err != nil {
		return nil, fmt.Errorf("list candidates area %d: %w", areaID, err)
	}
	defer rows.Close()

	var out []domain.Candidate
	for rows.Next() {
		var c domain.Candidate
		if err := rows.Scan(&c.RiderID, &c.Phone, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByPhone - returns a rider by its normalized phone number.
func (r *RiderRepo) GetByPhone(ctx context.Context, phone string) (*domain.Rider, error) {
	var rd domain.Rider
	err := r.db.QueryRow(ctx,
		`SELECT id, name, phone, area_id, status, service_kind FROM riders WHERE phone=$1`, phone,
	).Scan(&rd.ID, &rd.Name, &rd.Phone, &rd.AreaID, &rd.Status, &rd.ServiceKind)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rider by phone %q: %w", phone, err)
	}
	return &rd, nil
}

// Create - creates a new rider.
func (r *RiderRepo) Create(ctx context.Context, rd *domain.Rider) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO riders(name,phone,area_id,status,service_kind) VALUES($1,$2,$3,$4,$5) RETURNING id`,
		rd.Name, rd.Phone, rd.AreaID, rd.Status, rd.ServiceKind).Scan(&id)
	if err != nil {
		if IsDuplicate(err) {
			return 0, apperr.ErrConflict
		}
		return 0, fmt.Errorf("create rider: %w", err)
	}
	return id, nil
}
