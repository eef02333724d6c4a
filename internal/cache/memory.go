package cache

import (
	"context"
	"sync"

	"github.com/Aaron-McGill/HandyGameServer/internal/apperror"
)

// memoryTurnState is a map-backed TurnStateCache for tests and deployments
// that run without redis. Values are copied on the way in and out.
type memoryTurnState struct {
	mu     sync.RWMutex
	states map[int64]TurnState
}

func NewMemoryTurnStateCache() TurnStateCache {
	return &memoryTurnState{
		states: make(map[int64]TurnState),
	}
}

func (that *memoryTurnState) Get(_ context.Context, sessionID int64) (*TurnState, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	state, ok := that.states[sessionID]
	if !ok {
		return nil, apperror.ErrTurnStateNotCached
	}

	return &state, nil
}

func (that *memoryTurnState) Set(_ context.Context, sessionID int64, state *TurnState) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.states[sessionID] = *state

	return nil
}

func (that *memoryTurnState) Delete(_ context.Context, sessionID int64) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.states, sessionID)

	return nil
}
