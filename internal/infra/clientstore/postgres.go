package clientstore

import (
	"context"
	"errors"
	"time"

	"fahasa-storefront/internal/infra"
	"fahasa-storefront/internal/pkg/clock"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS client_state (
    namespace  TEXT        NOT NULL,
    session_id TEXT        NOT NULL,
    payload    JSONB       NOT NULL,
    expires_at TIMESTAMPTZ,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (namespace, session_id)
);
CREATE INDEX IF NOT EXISTS client_state_expires_at_idx ON client_state (expires_at) WHERE expires_at IS NOT NULL;
`

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresKV stores one row per (namespace, session). Expired rows read as missing and are
// removed by PurgeExpired.
type PostgresKV struct {
	db    DBTX
	clock clock.Clock
}

func NewPostgresKV(db DBTX, clk clock.Clock) *PostgresKV {
	return &PostgresKV{db: db, clock: clk}
}

func (p *PostgresKV) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, schemaSQL); err != nil {
		return infra.WrapRepoErr("failed to create client_state table", err, infra.KindStoreFailure)
	}
	return nil
}

func (p *PostgresKV) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	var payload []byte
	err := p.db.QueryRow(ctx, `
		SELECT payload FROM client_state
		WHERE namespace = $1 AND session_id = $2 AND (expires_at IS NULL OR expires_at > $3)`,
		namespace, key, p.clock.Now(),
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to read client state", err, infra.KindStoreFailure)
	}
	return payload, nil
}

func (p *PostgresKV) Put(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error {
	now := p.clock.Now()
	var expiresAt *time.Time
	if ttl > 0 {
		t := now.Add(ttl)
		expiresAt = &t
	}
	_, err := p.db.Exec(ctx, `
		INSERT INTO client_state (namespace, session_id, payload, expires_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (namespace, session_id)
		DO UPDATE SET payload = EXCLUDED.payload, expires_at = EXCLUDED.expires_at, updated_at = EXCLUDED.updated_at`,
		namespace, key, string(value), expiresAt, now,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to write client state", err, infra.KindStoreFailure)
	}
	return nil
}

func (p *PostgresKV) Delete(ctx context.Context, namespace, key string) error {
	_, err := p.db.Exec(ctx, `DELETE FROM client_state WHERE namespace = $1 AND session_id = $2`, namespace, key)
	if err != nil {
		return infra.WrapRepoErr("failed to delete client state", err, infra.KindStoreFailure)
	}
	return nil
}

func (p *PostgresKV) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := p.db.Exec(ctx, `DELETE FROM client_state WHERE expires_at IS NOT NULL AND expires_at <= $1`, p.clock.Now())
	if err != nil {
		return 0, infra.WrapRepoErr("failed to purge client state", err, infra.KindStoreFailure)
	}
	return tag.RowsAffected(), nil
}
