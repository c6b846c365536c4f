package favorites

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evently/evently/internal/client/api"
	"github.com/evently/evently/internal/client/credstore"
	"github.com/evently/evently/internal/client/models"
	"github.com/evently/evently/internal/client/optimistic"
	"github.com/evently/evently/internal/client/session"
	"github.com/evently/evently/internal/common"
	"github.com/evently/evently/internal/logging"
)

type fakeAPI struct {
	api.Client

	listFn   func(ctx context.Context) ([]*models.Event, error)
	addFn    func(ctx context.Context, eventID string) error
	removeFn func(ctx context.Context, eventID string) error

	addCalls    int
	removeCalls int
}

func (f *fakeAPI) ListFavorites(ctx context.Context) ([]*models.Event, error) {
	return f.listFn(ctx)
}

func (f *fakeAPI) AddFavorite(ctx context.Context, eventID string) error {
	f.addCalls++
	return f.addFn(ctx, eventID)
}

func (f *fakeAPI) RemoveFavorite(ctx context.Context, eventID string) error {
	f.removeCalls++
	return f.removeFn(ctx, eventID)
}

func newTestCache(t *testing.T, apiClient api.Client, token string) *Cache {
	t.Helper()
	creds := credstore.NewMemoryStore()
	if token != "" {
		require.NoError(t, creds.Save(context.Background(), token))
	}
	sess := session.NewController(creds, nil, logging.NewNop())
	return NewCache(apiClient, sess, logging.NewNop())
}

func TestToggle_AnonymousRejectedBeforeAnyEffect(t *testing.T) {
	f := &fakeAPI{
		addFn:    func(ctx context.Context, eventID string) error { return nil },
		removeFn: func(ctx context.Context, eventID string) error { return nil },
	}
	c := newTestCache(t, f, "")

	err := c.Toggle(context.Background(), "evt1")

	require.ErrorIs(t, err, common.ErrAuthRequired)
	require.False(t, c.Contains("evt1"), "no local delta for anonymous viewers")
	require.Zero(t, f.addCalls)
	require.Zero(t, f.removeCalls)
}

func TestToggle_AddSuccessKeepsOptimisticState(t *testing.T) {
	f := &fakeAPI{
		addFn: func(ctx context.Context, eventID string) error {
			return nil
		},
	}
	c := newTestCache(t, f, "tok")

	require.NoError(t, c.Toggle(context.Background(), "evt1"))

	require.True(t, c.Contains("evt1"))
	require.Equal(t, 1, f.addCalls)
	require.Zero(t, f.removeCalls)
}

func TestToggle_AddFailureRestoresExactPriorState(t *testing.T) {
	f := &fakeAPI{
		addFn: func(ctx context.Context, eventID string) error {
			return common.ErrServer
		},
	}
	c := newTestCache(t, f, "tok")

	err := c.Toggle(context.Background(), "evt1")

	require.ErrorIs(t, err, common.ErrServer)
	require.False(t, c.Contains("evt1"), "failed toggle must restore the pre-toggle state")
}

func TestToggle_RemoveFailureRestoresMembership(t *testing.T) {
	f := &fakeAPI{
		listFn: func(ctx context.Context) ([]*models.Event, error) {
			return []*models.Event{{ID: "evt1", Title: "Go meetup"}}, nil
		},
		removeFn: func(ctx context.Context, eventID string) error {
			return common.ErrNoConnection
		},
	}
	c := newTestCache(t, f, "tok")
	require.NoError(t, c.Load(context.Background()))
	require.True(t, c.Contains("evt1"))

	err := c.Toggle(context.Background(), "evt1")

	require.ErrorIs(t, err, common.ErrNoConnection)
	require.True(t, c.Contains("evt1"))
	require.Equal(t, 1, f.removeCalls)
}

func TestToggle_FailedThenRetried(t *testing.T) {
	fail := true
	f := &fakeAPI{
		addFn: func(ctx context.Context, eventID string) error {
			if fail {
				return common.ErrServer
			}
			return nil
		},
	}
	c := newTestCache(t, f, "tok")

	require.Error(t, c.Toggle(context.Background(), "evt1"))
	require.False(t, c.Contains("evt1"))

	fail = false
	require.NoError(t, c.Toggle(context.Background(), "evt1"))
	require.True(t, c.Contains("evt1"))
	require.Equal(t, 2, f.addCalls)
}

func TestToggle_SecondToggleRemoves(t *testing.T) {
	f := &fakeAPI{
		addFn:    func(ctx context.Context, eventID string) error { return nil },
		removeFn: func(ctx context.Context, eventID string) error { return nil },
	}
	c := newTestCache(t, f, "tok")
	ctx := context.Background()

	require.NoError(t, c.Toggle(ctx, "evt1"))
	require.True(t, c.Contains("evt1"))

	require.NoError(t, c.Toggle(ctx, "evt1"))
	require.False(t, c.Contains("evt1"))
	require.Equal(t, 1, f.addCalls)
	require.Equal(t, 1, f.removeCalls)
}

func TestToggle_InFlightReentryRejected(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	f := &fakeAPI{
		addFn: func(ctx context.Context, eventID string) error {
			close(entered)
			<-release
			return nil
		},
	}
	c := newTestCache(t, f, "tok")
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- c.Toggle(ctx, "evt1") }()

	<-entered
	require.True(t, c.Busy("evt1"))
	require.ErrorIs(t, c.Toggle(ctx, "evt1"), optimistic.ErrInFlight)

	close(release)
	require.NoError(t, <-done)
	require.Equal(t, 1, f.addCalls, "re-entry must not reach the network")
	require.True(t, c.Contains("evt1"))
}

func TestLoad_ReplacesSetWholesale(t *testing.T) {
	list := []*models.Event{{ID: "evt1"}, {ID: "evt2"}}
	f := &fakeAPI{
		listFn: func(ctx context.Context) ([]*models.Event, error) {
			return list, nil
		},
	}
	c := newTestCache(t, f, "tok")
	ctx := context.Background()

	require.NoError(t, c.Load(ctx))
	require.True(t, c.Contains("evt1"))
	require.True(t, c.Contains("evt2"))
	require.Len(t, c.Events(), 2)

	list = []*models.Event{{ID: "evt3"}}
	require.NoError(t, c.Load(ctx))
	require.False(t, c.Contains("evt1"))
	require.True(t, c.Contains("evt3"))
	require.Len(t, c.Events(), 1)
}

func TestLoad_AnonymousRejected(t *testing.T) {
	f := &fakeAPI{
		listFn: func(ctx context.Context) ([]*models.Event, error) {
			t.Error("anonymous load must not reach the network")
			return nil, nil
		},
	}
	c := newTestCache(t, f, "")

	require.ErrorIs(t, c.Load(context.Background()), common.ErrAuthRequired)
}
