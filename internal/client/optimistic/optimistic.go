// Package optimistic implements the shared mutation pattern behind the
// favorite, attendance and comment-like toggles: apply the expected local
// state first, send the request, then either accept an authoritative
// replacement from the response or roll the local delta back.
package optimistic

import (
	"context"
	"errors"
	"sync"
)

// ErrInFlight rejects a mutation on a target whose previous mutation has
// not settled. Callers surface it by disabling the control until Busy
// reports false again.
var ErrInFlight = errors.New("mutation already in flight for this target")

// Mutation describes one optimistic toggle against a single target.
//
// Apply runs synchronously before any network activity, so callers observe
// the new state with zero perceived latency. Send performs the remote
// operation; when it returns ok=true the value is authoritative and is
// handed to Accept, replacing the optimistic state. On a Send error, Revert
// must restore the exact pre-Apply state — the caller never sees optimistic
// state survive a confirmed failure.
type Mutation[T any] struct {
	Target string
	Apply  func()
	Revert func()
	Send   func(ctx context.Context) (value T, ok bool, err error)
	Accept func(value T)
}

// Coordinator tracks in-flight targets for one logical operation kind.
// Different operation kinds on the same resource get separate coordinators
// and may race freely; only same-kind, same-target re-entry is blocked.
type Coordinator struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewCoordinator() *Coordinator {
	return &Coordinator{inFlight: make(map[string]struct{})}
}

// Busy reports whether a mutation for target has not settled yet.
func (c *Coordinator) Busy(target string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.inFlight[target]
	return ok
}

func (c *Coordinator) acquire(target string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.inFlight[target]; ok {
		return false
	}
	c.inFlight[target] = struct{}{}
	return true
}

func (c *Coordinator) release(target string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, target)
}

// Run executes one mutation and blocks until the remote call settles. The
// local delta is visible from the moment Run is entered.
func Run[T any](ctx context.Context, c *Coordinator, m Mutation[T]) error {
	if !c.acquire(m.Target) {
		return ErrInFlight
	}
	defer c.release(m.Target)

	m.Apply()

	value, ok, err := m.Send(ctx)
	if err != nil {
		m.Revert()
		return err
	}
	if ok && m.Accept != nil {
		m.Accept(value)
	}
	return nil
}
