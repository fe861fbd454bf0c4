package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteRequiresConfirmation(t *testing.T) {
	c := newTestController()

	// First click only arms the mutation; nothing is pending yet.
	c.RequestDelete("7", "delete")
	mut, ok := c.MutationOf("7")
	require.True(t, ok)
	assert.Equal(t, MutConfirming, mut.State)
	assert.False(t, c.MutationPending())

	// Confirmation moves it to pending.
	require.True(t, c.ConfirmMutation("7"))
	mut, _ = c.MutationOf("7")
	assert.Equal(t, MutPending, mut.State)
	assert.True(t, c.MutationPending())
}

func TestConfirmWithoutArmingFails(t *testing.T) {
	c := newTestController()
	assert.False(t, c.ConfirmMutation("7"))

	c.BeginMutation("7", "more")
	assert.False(t, c.ConfirmMutation("7"), "pending mutation cannot be re-confirmed")
}

func TestCancelDisarms(t *testing.T) {
	c := newTestController()
	c.RequestDelete("7", "delete")
	c.CancelMutation("7")

	_, ok := c.MutationOf("7")
	assert.False(t, ok, "cancelled mutation should return to idle")
}

func TestResolveClearsAndLeavesRefreshToCaller(t *testing.T) {
	c := newTestController()
	_, seq := c.BeginFetch()
	require.True(t, c.Apply(seq, fixture(5), 5))

	c.RequestDelete("3", "delete")
	require.True(t, c.ConfirmMutation("3"))
	c.ResolveMutation("3")

	_, ok := c.MutationOf("3")
	assert.False(t, ok)
	// Items are untouched until the follow-up fetch lands; optimistic
	// local patches are not how removal becomes visible.
	assert.Len(t, c.Items(), 5)
}

func TestRejectionRollsBack(t *testing.T) {
	c := newTestController()
	_, seq := c.BeginFetch()
	items := fixture(5)
	require.True(t, c.Apply(seq, items, 5))

	c.RequestDelete("3", "delete")
	require.True(t, c.ConfirmMutation("3"))
	c.RejectMutation("3", "No se pudo eliminar el producto")

	// The entity stays visible exactly as before.
	assert.Len(t, c.Items(), 5)
	found := false
	for _, p := range c.Projection() {
		if p.EntityID() == "3" {
			found = true
		}
	}
	assert.True(t, found, "rejected delete must leave the entity in the list")

	mut, ok := c.MutationOf("3")
	require.True(t, ok)
	assert.Equal(t, MutRejected, mut.State)
	assert.Equal(t, "delete", mut.Label, "original affordance label survives rejection")
	assert.Equal(t, "No se pudo eliminar el producto", mut.ErrMessage)

	// Acknowledging re-enables the affordance.
	c.AcknowledgeRejection("3")
	_, ok = c.MutationOf("3")
	assert.False(t, ok)
}

func TestBeginMutationBlocksConcurrentWrites(t *testing.T) {
	c := newTestController()
	require.True(t, c.BeginMutation("9", "more"))
	assert.False(t, c.BeginMutation("9", "less"), "one in-flight write per entity")
	assert.True(t, c.BeginMutation("4", "more"), "other entities are independent")
}
