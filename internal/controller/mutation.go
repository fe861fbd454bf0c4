package controller

import "github.com/peaksport/vitrina/internal/logging"

// MutationState is the lifecycle of one optimistic mutation:
// idle -> (confirming ->) pending -> resolved | rejected.
// Destructive mutations pass through confirming; they never fire on
// the first click.
type MutationState int

const (
	MutIdle MutationState = iota
	MutConfirming
	MutPending
	MutResolved
	MutRejected
)

// Mutation tracks the affordance state for one entity while a write is
// in flight. This is transient UI state, not entity state: the fetched
// records are never patched.
type Mutation struct {
	EntityID string
	State    MutationState
	// Label is the affordance's original label, restored on rejection.
	Label string
	// ErrMessage holds the surfaced error after a rejection.
	ErrMessage string
}

// MutationOf reports the mutation tracked for the entity, if any.
func (c *Controller[T]) MutationOf(id string) (Mutation, bool) {
	m, ok := c.muts[id]
	if !ok {
		return Mutation{}, false
	}
	return *m, true
}

// MutationPending reports whether any mutation is in flight.
func (c *Controller[T]) MutationPending() bool {
	for _, m := range c.muts {
		if m.State == MutPending {
			return true
		}
	}
	return false
}

// RequestDelete arms a destructive mutation. The affordance moves to
// confirming; nothing is sent until ConfirmMutation.
func (c *Controller[T]) RequestDelete(id, label string) {
	c.muts[id] = &Mutation{EntityID: id, State: MutConfirming, Label: label}
}

// ConfirmMutation moves a confirming mutation to pending. Returns
// false when there is nothing armed for the entity, or a write is
// already in flight for it.
func (c *Controller[T]) ConfirmMutation(id string) bool {
	m, ok := c.muts[id]
	if !ok || m.State != MutConfirming {
		return false
	}
	m.State = MutPending
	logging.Info("mutation pending", "entity", id)
	return true
}

// CancelMutation disarms a confirming mutation; the affordance returns
// to idle with its original label.
func (c *Controller[T]) CancelMutation(id string) {
	if m, ok := c.muts[id]; ok && m.State == MutConfirming {
		delete(c.muts, id)
	}
}

// BeginMutation starts a non-destructive mutation (quantity change,
// review submit) directly in pending. Returns false when one is
// already in flight for the entity.
func (c *Controller[T]) BeginMutation(id, label string) bool {
	if m, ok := c.muts[id]; ok && m.State == MutPending {
		return false
	}
	c.muts[id] = &Mutation{EntityID: id, State: MutPending, Label: label}
	return true
}

// ResolveMutation records success and clears the tracked state. The
// caller follows with a full refresh (BeginFetch), which is what makes
// the result visible; zero-quantity updates surface as removals there.
func (c *Controller[T]) ResolveMutation(id string) {
	if m, ok := c.muts[id]; ok {
		m.State = MutResolved
		delete(c.muts, id)
		logging.Info("mutation resolved", "entity", id)
	}
}

// RejectMutation records failure. The fetched records are untouched -
// the entity stays visible exactly as before - and the affordance is
// re-enabled with its original label. No automatic retry.
func (c *Controller[T]) RejectMutation(id, message string) {
	m, ok := c.muts[id]
	if !ok {
		return
	}
	m.State = MutRejected
	m.ErrMessage = message
	logging.Warn("mutation rejected", "entity", id, "message", message)
}

// AcknowledgeRejection returns a rejected affordance to idle once the
// error has been surfaced.
func (c *Controller[T]) AcknowledgeRejection(id string) {
	if m, ok := c.muts[id]; ok && m.State == MutRejected {
		delete(c.muts, id)
	}
}
