package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	key, err := s.Upload(ctx, strings.NewReader("report body"), "tasks/abc/report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "tasks/abc/report.pdf", key)

	f, err := s.Open(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(f)
	require.NoError(t, f.Close())
	require.NoError(t, err)
	assert.Equal(t, "report body", string(body))

	require.NoError(t, s.Delete(ctx, key))
	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Open(ctx, key)
	assert.Error(t, err)
}

func TestLocalStorage_StaysInsideBase(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	key, err := s.Upload(ctx, strings.NewReader("x"), "../../etc/evil.txt")
	require.NoError(t, err)
	assert.Equal(t, "etc/evil.txt", key)

	_, err = s.Upload(ctx, strings.NewReader("x"), "..")
	assert.ErrorIs(t, err, ErrInvalidPath)
}
