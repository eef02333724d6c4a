package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/Aaron-McGill/HandyGameServer/internal/apperror"
)

// TurnState is the cached projection of a session: which slot moves next and
// whether both seats are taken. The session record stays the source of truth.
type TurnState struct {
	CurrentPlayer string `json:"current_player"`
	Ready         bool   `json:"ready"`
}

type TurnStateCache interface {
	Get(ctx context.Context, sessionID int64) (*TurnState, error)
	Set(ctx context.Context, sessionID int64, state *TurnState) error
	Delete(ctx context.Context, sessionID int64) error
}

type redisTurnState struct {
	client *redis.Client
}

func NewRedisTurnStateCache(client *redis.Client) TurnStateCache {
	return &redisTurnState{
		client: client,
	}
}

func (that *redisTurnState) Get(ctx context.Context, sessionID int64) (*TurnState, error) {
	response, err := that.client.Get(ctx, turnStateKey(sessionID)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrTurnStateNotCached
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get turn state: %w", err)
	}

	var state TurnState
	if err = json.Unmarshal([]byte(response), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal turn state: %w", err)
	}

	return &state, nil
}

func (that *redisTurnState) Set(ctx context.Context, sessionID int64, state *TurnState) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("could not marshal turn state: %w", err)
	}

	err = that.client.Set(ctx, turnStateKey(sessionID), stateJSON, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set turn state: %w", err)
	}

	return nil
}

// Delete removes the cached entry. Deleting an absent key is a no-op.
func (that *redisTurnState) Delete(ctx context.Context, sessionID int64) error {
	err := that.client.Del(ctx, turnStateKey(sessionID)).Err()
	if err != nil {
		return fmt.Errorf("failed to delete turn state: %w", err)
	}

	return nil
}

func turnStateKey(sessionID int64) string {
	return "turnstate:" + strconv.FormatInt(sessionID, 10)
}
