package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aaron-McGill/HandyGameServer/internal/apperror"
	"github.com/Aaron-McGill/HandyGameServer/internal/entity"
	"github.com/Aaron-McGill/HandyGameServer/testing/suite"
)

func TestRedisTurnStateCache_SetGet(t *testing.T) {
	ctx, st := suite.New(t)

	turnStateCache := NewRedisTurnStateCache(st.Redis)

	// Given: a cached turn state
	state := &TurnState{CurrentPlayer: entity.SlotTwo, Ready: true}
	require.NoError(t, turnStateCache.Set(ctx, 42, state))

	// When: Get is called for the same session
	retrieved, err := turnStateCache.Get(ctx, 42)

	// Then: the cached projection comes back unchanged
	require.NoError(t, err)
	assert.Equal(t, state, retrieved)
}

func TestRedisTurnStateCache_GetMiss(t *testing.T) {
	ctx, st := suite.New(t)

	turnStateCache := NewRedisTurnStateCache(st.Redis)

	// When: Get is called for a session that was never cached
	retrieved, err := turnStateCache.Get(ctx, 9999999)

	// Then: an ErrTurnStateNotCached error should be returned
	require.ErrorIs(t, err, apperror.ErrTurnStateNotCached)
	assert.Nil(t, retrieved)
}

func TestRedisTurnStateCache_Delete(t *testing.T) {
	ctx, st := suite.New(t)

	turnStateCache := NewRedisTurnStateCache(st.Redis)

	state := &TurnState{CurrentPlayer: entity.SlotOne, Ready: false}
	require.NoError(t, turnStateCache.Set(ctx, 7, state))

	// When: the entry is deleted
	require.NoError(t, turnStateCache.Delete(ctx, 7))

	// Then: subsequent reads miss, and deleting again is a no-op
	_, err := turnStateCache.Get(ctx, 7)
	require.ErrorIs(t, err, apperror.ErrTurnStateNotCached)

	require.NoError(t, turnStateCache.Delete(ctx, 7))
}
