package dbutil

import (
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestFinalizeRebindsPlaceholders(t *testing.T) {
	query, args := Finalize("SELECT id FROM users WHERE (email=?)", []interface{}{"a@b.co"})
	require.Equal(t, "SELECT id FROM users WHERE (email=$1)", query)
	require.Equal(t, []interface{}{"a@b.co"}, args)
}

func TestIsConflict(t *testing.T) {
	require.True(t, IsConflict(&pq.Error{Code: "23505"}))
	require.True(t, IsConflict(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})))
	require.False(t, IsConflict(&pq.Error{Code: "23503"}))
	require.False(t, IsConflict(fmt.Errorf("boom")))
	require.True(t, IsForeignKeyViolation(&pq.Error{Code: "23503"}))
	require.False(t, IsForeignKeyViolation(&pq.Error{Code: "23505"}))
}
