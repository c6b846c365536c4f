package events

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/evently/evently/internal/client/api"
	"github.com/evently/evently/internal/client/credstore"
	"github.com/evently/evently/internal/client/models"
	"github.com/evently/evently/internal/client/session"
	"github.com/evently/evently/internal/common"
	"github.com/evently/evently/internal/logging"
)

type fakeAPI struct {
	api.Client

	listFn   func(ctx context.Context, filter models.EventFilter) ([]*models.Event, error)
	getFn    func(ctx context.Context, eventID string) (*models.Event, error)
	createFn func(ctx context.Context, input models.EventInput) (*models.Event, error)
	updateFn func(ctx context.Context, eventID string, input models.EventInput) (*models.Event, error)
	deleteFn func(ctx context.Context, eventID string) error
	joinFn   func(ctx context.Context, eventID string) error
	leaveFn  func(ctx context.Context, eventID string) error

	joinCalls  int
	leaveCalls int
	getCalls   int
}

func (f *fakeAPI) ListEvents(ctx context.Context, filter models.EventFilter) ([]*models.Event, error) {
	return f.listFn(ctx, filter)
}

func (f *fakeAPI) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	f.getCalls++
	return f.getFn(ctx, eventID)
}

func (f *fakeAPI) CreateEvent(ctx context.Context, input models.EventInput) (*models.Event, error) {
	return f.createFn(ctx, input)
}

func (f *fakeAPI) UpdateEvent(ctx context.Context, eventID string, input models.EventInput) (*models.Event, error) {
	return f.updateFn(ctx, eventID, input)
}

func (f *fakeAPI) DeleteEvent(ctx context.Context, eventID string) error {
	return f.deleteFn(ctx, eventID)
}

func (f *fakeAPI) JoinEvent(ctx context.Context, eventID string) error {
	f.joinCalls++
	return f.joinFn(ctx, eventID)
}

func (f *fakeAPI) LeaveEvent(ctx context.Context, eventID string) error {
	f.leaveCalls++
	return f.leaveFn(ctx, eventID)
}

func tokenFor(t *testing.T, subjectID string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{"_id": subjectID}).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

func newTestService(t *testing.T, apiClient api.Client, token string) *Service {
	t.Helper()
	creds := credstore.NewMemoryStore()
	if token != "" {
		require.NoError(t, creds.Save(context.Background(), token))
	}
	sess := session.NewController(creds, nil, logging.NewNop())
	return NewService(apiClient, sess, logging.NewNop())
}

func TestList_ScopedFiltersRequireCredential(t *testing.T) {
	f := &fakeAPI{
		listFn: func(ctx context.Context, filter models.EventFilter) ([]*models.Event, error) {
			return []*models.Event{{ID: "evt1"}}, nil
		},
	}
	s := newTestService(t, f, "")
	ctx := context.Background()

	list, err := s.List(ctx, models.EventFilter{})
	require.NoError(t, err, "the public list is open to anonymous viewers")
	require.Len(t, list, 1)

	_, err = s.List(ctx, models.EventFilter{Mine: true})
	require.ErrorIs(t, err, common.ErrAuthRequired)

	_, err = s.List(ctx, models.EventFilter{Attending: true})
	require.ErrorIs(t, err, common.ErrAuthRequired)
}

func TestCreate_BlankTitleRejected(t *testing.T) {
	f := &fakeAPI{
		createFn: func(ctx context.Context, input models.EventInput) (*models.Event, error) {
			t.Error("invalid input must not reach the network")
			return nil, nil
		},
	}
	s := newTestService(t, f, tokenFor(t, "u1"))

	_, err := s.Create(context.Background(), models.EventInput{Title: "   "})
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestUpdateDelete_CreatorOnly(t *testing.T) {
	f := &fakeAPI{
		updateFn: func(ctx context.Context, eventID string, input models.EventInput) (*models.Event, error) {
			t.Error("non-creator update must not reach the network")
			return nil, nil
		},
		deleteFn: func(ctx context.Context, eventID string) error {
			t.Error("non-creator delete must not reach the network")
			return nil
		},
	}
	s := newTestService(t, f, tokenFor(t, "u1"))
	other := &models.Event{ID: "evt1", Title: "t", CreatedBy: models.Ref{ID: "u2"}}

	_, err := s.Update(context.Background(), other, models.EventInput{Title: "t"})
	require.ErrorIs(t, err, common.ErrForbidden)

	require.ErrorIs(t, s.Delete(context.Background(), other), common.ErrForbidden)
}

func TestCanEdit(t *testing.T) {
	s := newTestService(t, &fakeAPI{}, tokenFor(t, "u1"))
	ctx := context.Background()

	require.True(t, s.CanEdit(ctx, &models.Event{CreatedBy: models.Ref{ID: "u1"}}))
	require.False(t, s.CanEdit(ctx, &models.Event{CreatedBy: models.Ref{ID: "u2"}}))
	require.False(t, s.CanEdit(ctx, &models.Event{}))

	anon := newTestService(t, &fakeAPI{}, "")
	require.False(t, anon.CanEdit(ctx, &models.Event{CreatedBy: models.Ref{ID: "u1"}}))
}

func TestToggleAttend_JoinThenRefetchReplaces(t *testing.T) {
	f := &fakeAPI{
		joinFn: func(ctx context.Context, eventID string) error { return nil },
		getFn: func(ctx context.Context, eventID string) (*models.Event, error) {
			return &models.Event{ID: "evt1", Title: "fresh",
				Attendees: []models.Ref{{ID: "u1"}, {ID: "u5"}}}, nil
		},
	}
	s := newTestService(t, f, tokenFor(t, "u1"))
	event := &models.Event{ID: "evt1", Title: "stale"}

	require.NoError(t, s.ToggleAttend(context.Background(), event))

	require.Equal(t, 1, f.joinCalls)
	require.Equal(t, 1, f.getCalls, "a successful toggle refetches the event")
	require.Equal(t, "fresh", event.Title, "the refetched record replaces the local one")
	require.Len(t, event.Attendees, 2)
	require.True(t, s.IsAttending(context.Background(), event))
}

func TestToggleAttend_LeaveWhenAttending(t *testing.T) {
	f := &fakeAPI{
		leaveFn: func(ctx context.Context, eventID string) error { return nil },
		getFn: func(ctx context.Context, eventID string) (*models.Event, error) {
			return &models.Event{ID: "evt1", Attendees: []models.Ref{}}, nil
		},
	}
	s := newTestService(t, f, tokenFor(t, "u1"))
	event := &models.Event{ID: "evt1", Attendees: []models.Ref{{ID: "u1"}}}

	require.NoError(t, s.ToggleAttend(context.Background(), event))

	require.Equal(t, 1, f.leaveCalls)
	require.Zero(t, f.joinCalls)
	require.False(t, event.HasAttendee("u1"))
}

func TestToggleAttend_FailureRestoresMembership(t *testing.T) {
	f := &fakeAPI{
		joinFn: func(ctx context.Context, eventID string) error {
			return common.ErrServer
		},
	}
	s := newTestService(t, f, tokenFor(t, "u1"))
	event := &models.Event{ID: "evt1", Attendees: []models.Ref{{ID: "u9"}}}

	err := s.ToggleAttend(context.Background(), event)

	require.ErrorIs(t, err, common.ErrServer)
	require.False(t, event.HasAttendee("u1"), "failed join is rolled back")
	require.True(t, event.HasAttendee("u9"), "other attendees are untouched")
	require.Zero(t, f.getCalls)
}

func TestToggleAttend_RefetchFailureKeepsOptimisticState(t *testing.T) {
	f := &fakeAPI{
		joinFn: func(ctx context.Context, eventID string) error { return nil },
		getFn: func(ctx context.Context, eventID string) (*models.Event, error) {
			return nil, common.ErrNoConnection
		},
	}
	s := newTestService(t, f, tokenFor(t, "u1"))
	event := &models.Event{ID: "evt1"}

	require.NoError(t, s.ToggleAttend(context.Background(), event),
		"the mutation succeeded; a failed refetch is not an error")
	require.True(t, event.HasAttendee("u1"), "optimistic membership stands")
}

func TestToggleAttend_AnonymousRejected(t *testing.T) {
	f := &fakeAPI{}
	s := newTestService(t, f, "")
	event := &models.Event{ID: "evt1"}

	require.ErrorIs(t, s.ToggleAttend(context.Background(), event), common.ErrAuthRequired)
	require.Empty(t, event.Attendees)
	require.Zero(t, f.joinCalls)
}
