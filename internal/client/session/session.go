// Package session owns the authenticated/anonymous state of the client and
// the server-verified profile.
//
// The state machine is Unknown → Anonymous | Authenticated. A stored
// credential alone never implies authentication: only a successful server
// verification round trip reaches Authenticated, and any verification
// failure — expired token, network down — collapses to Anonymous (fail
// closed). The stored credential survives verification failures; only an
// explicit Logout clears it, so a transient network error cannot destroy a
// still-valid token.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/evently/evently/internal/client/credstore"
	"github.com/evently/evently/internal/client/identity"
	"github.com/evently/evently/internal/client/models"
	"github.com/evently/evently/internal/common"
	"github.com/evently/evently/internal/logging"
)

type State int

const (
	StateUnknown State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Verifier is the server call proving a stored credential is still
// accepted. *api.HTTPClient satisfies it.
type Verifier interface {
	Verify(ctx context.Context) (*models.Profile, error)
}

type Controller struct {
	creds    credstore.Store
	verifier Verifier
	logger   logging.Logger

	mu        sync.Mutex
	state     State
	resolving bool
	profile   *models.Profile
}

func NewController(creds credstore.Store, verifier Verifier, logger logging.Logger) *Controller {
	return &Controller{
		creds:    creds,
		verifier: verifier,
		logger:   logger,
		state:    StateUnknown,
	}
}

// Authenticate reconciles the stored credential with the server. With no
// credential the session resolves directly to Anonymous; with one, a
// verification call decides. Concurrent calls are distinct attempts toward
// the same deterministic end state: none can leave the machine in Unknown.
//
// A verification failure is not reported as an error — the session has
// still resolved, just to Anonymous. Only a failure to read the store
// surfaces.
func (c *Controller) Authenticate(ctx context.Context) error {
	c.mu.Lock()
	c.resolving = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.resolving = false
		c.mu.Unlock()
	}()

	token, err := c.creds.Read(ctx)
	if err != nil {
		c.setAnonymous()
		return fmt.Errorf("read credential: %w", err)
	}
	if token == "" {
		c.setAnonymous()
		return nil
	}

	profile, err := c.verifier.Verify(ctx)
	if err != nil {
		c.logger.Warn(ctx, "credential verification failed", "error", err)
		c.setAnonymous()
		return nil
	}

	c.mu.Lock()
	c.state = StateAuthenticated
	c.profile = profile
	c.mu.Unlock()
	return nil
}

// Login stores the credential obtained from a login or signup exchange and
// re-resolves the session against the server.
func (c *Controller) Login(ctx context.Context, token string) error {
	if err := c.creds.Save(ctx, token); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}
	return c.Authenticate(ctx)
}

// Logout clears the stored credential — the only operation that does — and
// re-resolves, which lands in Anonymous.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.creds.Clear(ctx); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return c.Authenticate(ctx)
}

func (c *Controller) setAnonymous() {
	c.mu.Lock()
	c.state = StateAnonymous
	c.profile = nil
	c.mu.Unlock()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) IsAuthenticated() bool {
	return c.State() == StateAuthenticated
}

func (c *Controller) IsResolving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolving
}

// Profile returns the server-verified profile, or nil while anonymous.
func (c *Controller) Profile() *models.Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile
}

// Identity derives the unverified subject from the currently stored
// credential. Recomputed on every call so it always tracks the store;
// never persisted.
func (c *Controller) Identity(ctx context.Context) identity.Unverified {
	token, err := c.creds.Read(ctx)
	if err != nil {
		return identity.Unverified{}
	}
	return identity.Derive(token)
}

// RequireCredential returns the stored token, or ErrAuthRequired when none
// is stored. Mutating callers gate on this before any local delta or
// network activity.
func (c *Controller) RequireCredential(ctx context.Context) (string, error) {
	token, err := c.creds.Read(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", common.ErrAuthRequired
	}
	return token, nil
}
