package cmd

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireLockExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.lock")

	l1, err := acquireLock(path)
	require.NoError(t, err)

	_, err = acquireLock(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errLocked))

	l1.release()

	l2, err := acquireLock(path)
	require.NoError(t, err)
	l2.release()
}

func TestReleaseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.lock")
	l, err := acquireLock(path)
	require.NoError(t, err)
	l.release()
	assert.NotPanics(t, func() { l.release() })
}
