// Package favorites caches the viewer's favorite-event set. The set is the
// unit of truth: Load replaces it wholesale from the server, and a toggle
// mutates membership locally for instant feedback while the request is in
// flight. No per-event favorite flag is ever trusted.
package favorites

import (
	"context"
	"fmt"
	"sync"

	"github.com/evently/evently/internal/client/api"
	"github.com/evently/evently/internal/client/models"
	"github.com/evently/evently/internal/client/optimistic"
	"github.com/evently/evently/internal/client/session"
	"github.com/evently/evently/internal/logging"
)

type Cache struct {
	api     api.Client
	session *session.Controller
	coord   *optimistic.Coordinator
	logger  logging.Logger

	mu     sync.Mutex
	ids    map[string]struct{}
	events []*models.Event
}

func NewCache(apiClient api.Client, sess *session.Controller, logger logging.Logger) *Cache {
	return &Cache{
		api:     apiClient,
		session: sess,
		coord:   optimistic.NewCoordinator(),
		logger:  logger,
		ids:     make(map[string]struct{}),
	}
}

// Load replaces the cached set wholesale with the server's list for the
// current subject.
func (c *Cache) Load(ctx context.Context) error {
	if _, err := c.session.RequireCredential(ctx); err != nil {
		return err
	}

	events, err := c.api.ListFavorites(ctx)
	if err != nil {
		return fmt.Errorf("load favorites: %w", err)
	}

	ids := make(map[string]struct{}, len(events))
	for _, ev := range events {
		ids[ev.ID] = struct{}{}
	}

	c.mu.Lock()
	c.ids = ids
	c.events = events
	c.mu.Unlock()
	return nil
}

func (c *Cache) Contains(eventID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.ids[eventID]
	return ok
}

// Events returns the snapshot from the last Load. Toggles mutate the id
// set only; the snapshot refreshes on the next Load.
func (c *Cache) Events() []*models.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*models.Event, len(c.events))
	copy(out, c.events)
	return out
}

// Busy reports an unsettled toggle for eventID; callers disable the
// control while it is true.
func (c *Cache) Busy(eventID string) bool {
	return c.coord.Busy(eventID)
}

// Toggle flips membership of eventID. An anonymous viewer is rejected with
// ErrAuthRequired before any local or network effect. On remote failure the
// pre-toggle membership is restored exactly — not flipped again — so a
// racing reader can never observe a double-applied toggle.
func (c *Cache) Toggle(ctx context.Context, eventID string) error {
	if _, err := c.session.RequireCredential(ctx); err != nil {
		return err
	}

	wasFavorite := c.Contains(eventID)

	m := optimistic.Mutation[struct{}]{
		Target: eventID,
		Apply: func() {
			c.set(eventID, !wasFavorite)
		},
		Revert: func() {
			c.set(eventID, wasFavorite)
		},
		Send: func(ctx context.Context) (struct{}, bool, error) {
			// Neither endpoint returns authoritative state; the optimistic
			// value stands until the next Load.
			if wasFavorite {
				return struct{}{}, false, c.api.RemoveFavorite(ctx, eventID)
			}
			return struct{}{}, false, c.api.AddFavorite(ctx, eventID)
		},
	}
	return optimistic.Run(ctx, c.coord, m)
}

func (c *Cache) set(eventID string, favorite bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if favorite {
		c.ids[eventID] = struct{}{}
	} else {
		delete(c.ids, eventID)
	}
}
