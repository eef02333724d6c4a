package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	// When: a session is created
	session := NewSession("tic-tac-toe", "alice", []string{" ", " ", " "})

	// Then: slot one is seated, the session waits for a second player
	assert.False(t, session.Active)
	assert.Equal(t, SlotOne, session.CurrentPlayer)
	assert.Equal(t, map[string]string{SlotOne: "alice"}, session.Players)
	assert.False(t, session.IsReady())
}

func TestSession_Join(t *testing.T) {
	t.Run("SecondPlayerActivatesSession", func(t *testing.T) {
		session := NewSession("tic-tac-toe", "alice", nil)

		// When: a second player joins
		session.Join("bob")

		// Then: the session is active and ready, slot one is untouched
		assert.True(t, session.Active)
		assert.True(t, session.IsReady())
		assert.Equal(t, "alice", session.Players[SlotOne])
		assert.Equal(t, "bob", session.Players[SlotTwo])
		assert.Equal(t, SlotOne, session.CurrentPlayer)
	})

	t.Run("SecondJoinReplacesSlotTwo", func(t *testing.T) {
		session := NewSession("tic-tac-toe", "alice", nil)
		session.Join("bob")

		// When: another player joins an already active session
		session.Join("carol")

		// Then: slot two is silently replaced
		assert.Equal(t, "carol", session.Players[SlotTwo])
		assert.True(t, session.Active)
	})
}

func TestSession_AdvanceTurn(t *testing.T) {
	t.Run("FlipsBetweenSeatedSlots", func(t *testing.T) {
		session := NewSession("tic-tac-toe", "alice", nil)
		session.Join("bob")

		// When: the turn advances twice
		session.AdvanceTurn()
		require.Equal(t, SlotTwo, session.CurrentPlayer)

		session.AdvanceTurn()

		// Then: it is back with slot one, never a third value
		assert.Equal(t, SlotOne, session.CurrentPlayer)
	})

	t.Run("StaysWithSlotOneWhileWaiting", func(t *testing.T) {
		session := NewSession("tic-tac-toe", "alice", nil)

		// When: the turn advances before a second player joined
		session.AdvanceTurn()

		// Then: the current player is still a seated slot
		assert.Equal(t, SlotOne, session.CurrentPlayer)
	})
}
