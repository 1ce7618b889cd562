package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"course-go-avito-dispatch/internal/domain"
)

// MappingRepo stores the phone -> delivery correlation records. Unlike the
// in-memory offer state, these rows survive a process restart; expiry is the
// only cleanup, stale rows are simply overwritten by later offers.
type MappingRepo struct{ db *pgxpool.Pool }

// NewMappingRepo creates a new MappingRepo.
func NewMappingRepo(db *pgxpool.Pool) *MappingRepo { return &MappingRepo{db: db} }

// Upsert writes the mapping for the phone. At most one live mapping per phone:
// a new offer to the same phone overwrites the previous one (last write wins).
func (r *MappingRepo) Upsert(ctx context.Context, phone string, deliveryID int64, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO phone_delivery_mappings (phone, delivery_id, expires_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (phone) DO UPDATE
        SET delivery_id = EXCLUDED.delivery_id,
            expires_at  = EXCLUDED.expires_at
    `, phone, deliveryID, expiresAt)
	if err != nil {
		return fmt.Errorf("upsert mapping for %q: %w", phone, err)
	}
	return nil
}

// Resolve - returns the mapping for the phone, nil if none exists. Expiry is
// checked by the caller against its own clock.
func (r *MappingRepo) Resolve(ctx context.Context, phone string) (*domain.PhoneMapping, error) {
	var m domain.PhoneMapping
	err := r.db.QueryRow(ctx, `
        SELECT phone, delivery_id, expires_at
        FROM phone_delivery_mappings
        WHERE phone = $1
    `, phone).Scan(&m.Phone, &m.DeliveryID, &m.ExpiresAt)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve mapping for %q: %w", phone, err)
	}
	return &m, nil
}

// DeleteExpired removes mappings whose expiry has passed. Not part of the
// dispatch flow, only housekeeping for the table size.
func (r *MappingRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	ct, err := r.db.Exec(ctx,
		`DELETE FROM phone_delivery_mappings WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired mappings: %w", err)
	}
	return ct.RowsAffected(), nil
}
