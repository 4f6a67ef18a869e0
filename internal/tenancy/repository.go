package tenancy

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepository implements Lookup using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindTenant fetches the id and subscription status of a tenant.
func (r *PGRepository) FindTenant(ctx context.Context, id string) (*Tenant, error) {
	const query = `SELECT id, subscription_status FROM tenants WHERE id = $1`
	var (
		tenant Tenant
		status string
	)
	if err := r.pool.QueryRow(ctx, query, id).Scan(&tenant.ID, &status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	tenant.SubscriptionStatus = SubscriptionStatus(status)
	return &tenant, nil
}

var _ Lookup = (*PGRepository)(nil)
