package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/fsociety/forum/internal/core/domain"
)

func newTestStore(t *testing.T) (*BlobStore, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: srv.Addr()})
	require.NoError(t, err)

	s := NewBlobStore(client)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s, srv
}

func TestBlobStore_GetPutDelete(t *testing.T) {
	ctx := context.Background()
	s, srv := newTestStore(t)

	_, err := s.Get(ctx, "fsociety-posts")
	require.ErrorIs(t, err, domain.ErrBlobNotFound)

	require.NoError(t, s.Put(ctx, "fsociety-posts", []byte(`[]`)))
	raw, err := srv.Get("fsociety-posts")
	require.NoError(t, err)
	require.Equal(t, `[]`, raw)
	require.Zero(t, srv.TTL("fsociety-posts"))

	got, err := s.Get(ctx, "fsociety-posts")
	require.NoError(t, err)
	require.Equal(t, `[]`, string(got))

	require.NoError(t, s.Delete(ctx, "fsociety-posts"))
	require.NoError(t, s.Delete(ctx, "fsociety-posts"))
	require.False(t, srv.Exists("fsociety-posts"))
	require.NoError(t, s.Ping(ctx))
}

func TestBlobStore_TransportErrorIsNotAbsence(t *testing.T) {
	ctx := context.Background()
	s, srv := newTestStore(t)

	srv.SetError("ERR server unavailable")
	_, err := s.Get(ctx, "fsociety-users")
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrBlobNotFound)
}

func TestConnect_Unreachable(t *testing.T) {
	srv, err := miniredis.Run()
	require.NoError(t, err)
	addr := srv.Addr()
	srv.Close()

	_, err = Connect(context.Background(), Config{Addr: addr})
	require.Error(t, err)
}
