package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/aziyat1977/Inter-1.1/internal/db"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a private in-memory database with migrations applied and
// content seeded. It is closed when the test ends.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()
	path := fmt.Sprintf("file:test-%s?mode=memory&cache=shared", uuid.NewString())
	d, err := db.Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { MustClose(t, d) })
	return d
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
