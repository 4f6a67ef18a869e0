package audit

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// InsertDecision appends entry to authz_decisions. Replays of the same task
// are ignored.
func (r *PGRepository) InsertDecision(ctx context.Context, e Entry) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO authz_decisions
		(id, request_id, occurred_at, principal_id, role, tenant_id, operation, allowed, kind)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING`,
		e.ID, optionalText(e.RequestID), e.At, optionalText(e.PrincipalID), optionalText(e.Role),
		optionalText(e.TenantID), e.Operation, e.Allowed, optionalText(e.Kind))
	return err
}

// ListDecisions returns decisions newest first.
func (r *PGRepository) ListDecisions(ctx context.Context, p ListParams) ([]Entry, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, request_id, occurred_at, principal_id, role, tenant_id, operation, allowed, kind
		FROM authz_decisions
		WHERE ($1::timestamptz IS NULL OR occurred_at >= $1)
		  AND ($2::timestamptz IS NULL OR occurred_at < $2)
		  AND ($3::text IS NULL OR tenant_id = $3)
		  AND ($4::text IS NULL OR principal_id = $4)
		  AND ($5::text IS NULL OR operation = $5)
		  AND (NOT $6 OR allowed = false)
		ORDER BY occurred_at DESC, id
		OFFSET $7 LIMIT $8`,
		toPgTime(p.From), toPgTime(p.To), optionalText(p.TenantID), optionalText(p.PrincipalID),
		optionalText(p.Operation), p.DeniedOnly, p.Offset, p.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var (
			e                                        Entry
			requestID, principal, role, tenant, kind pgtype.Text
		)
		if err := rows.Scan(&e.ID, &requestID, &e.At, &principal, &role, &tenant, &e.Operation, &e.Allowed, &kind); err != nil {
			return nil, err
		}
		e.RequestID = requestID.String
		e.PrincipalID = principal.String
		e.Role = role.String
		e.TenantID = tenant.String
		e.Kind = kind.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteDecisionsBefore removes decisions older than before.
func (r *PGRepository) DeleteDecisionsBefore(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM authz_decisions WHERE occurred_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func toPgTime(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func optionalText(value string) pgtype.Text {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: trimmed, Valid: true}
}

var _ Repository = (*PGRepository)(nil)
