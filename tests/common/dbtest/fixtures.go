//go:build unit || e2e

package dbtest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// ResetDB empties the client state table between subtests.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, "TRUNCATE client_state")
	return err
}

// StatePayload returns the stored JSON for a session namespace, or nil if there is no row.
func StatePayload(t *testing.T, db DBLike, namespace, sessionID string) []byte {
	t.Helper()

	var payload []byte
	err := db.QueryRow(context.Background(),
		"SELECT payload FROM client_state WHERE namespace = $1 AND session_id = $2",
		namespace, sessionID).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	require.NoError(t, err)
	return payload
}

func CountState(t *testing.T, db DBLike, namespace string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM client_state WHERE namespace = $1", namespace).Scan(&n)
	require.NoError(t, err)
	return n
}

// ExpireState backdates a row so the next read treats it as expired.
func ExpireState(t *testing.T, db DBLike, namespace, sessionID string) {
	t.Helper()

	tag, err := db.Exec(context.Background(),
		"UPDATE client_state SET expires_at = now() - interval '1 minute' WHERE namespace = $1 AND session_id = $2",
		namespace, sessionID)
	require.NoError(t, err)
	require.EqualValues(t, 1, tag.RowsAffected(), "no client_state row to expire")
}
