package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odontia/odontia/internal/shared"
)

// Repository defines persistence operations for auth module.
type Repository interface {
	FindPrincipal(ctx context.Context, id string) (*Record, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindPrincipal fetches the role, tenant and permissions of a user.
func (r *PGRepository) FindPrincipal(ctx context.Context, id string) (*Record, error) {
	const query = `SELECT id, role, tenant_id, permissions, is_active FROM users WHERE id = $1`
	var (
		rec    Record
		tenant pgtype.Text
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(&rec.ID, &rec.Role, &tenant, &rec.Permissions, &rec.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	rec.TenantID = tenant.String
	return &rec, nil
}

var _ Repository = (*PGRepository)(nil)
