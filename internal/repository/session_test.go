package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aaron-McGill/HandyGameServer/internal/apperror"
	"github.com/Aaron-McGill/HandyGameServer/internal/board"
	"github.com/Aaron-McGill/HandyGameServer/internal/entity"
	"github.com/Aaron-McGill/HandyGameServer/testing/suite"
)

func newSession(gameType, creatorName string) *entity.Session {
	return entity.NewSession(gameType, creatorName, board.New(gameType))
}

func TestSessionRepository_Create(t *testing.T) {
	ctx := context.Background()
	sessionRepo := NewSessionRepository(suite.NewSessionDB(t))

	// Given: a fresh tic-tac-toe session
	session := newSession(board.TypeTicTacToe, "alice")

	// When: Create is called
	err := sessionRepo.Create(ctx, session)

	// Then: the store assigns an id and the record round-trips
	require.NoError(t, err)
	require.NotZero(t, session.ID)

	retrieved, err := sessionRepo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session, retrieved)
}

func TestSessionRepository_GetByID(t *testing.T) {
	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx := context.Background()
		sessionRepo := NewSessionRepository(suite.NewSessionDB(t))

		// When: GetByID is called with a non-existent id
		retrieved, err := sessionRepo.GetByID(ctx, 9999999)

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Nil(t, retrieved)
	})
}

func TestSessionRepository_List(t *testing.T) {
	ctx := context.Background()
	sessionRepo := NewSessionRepository(suite.NewSessionDB(t))

	// Given: two tic-tac-toe sessions, one active, and one connect-four session
	waiting := newSession(board.TypeTicTacToe, "alice")
	require.NoError(t, sessionRepo.Create(ctx, waiting))

	active := newSession(board.TypeTicTacToe, "bob")
	active.Join("carol")
	require.NoError(t, sessionRepo.Create(ctx, active))

	connectFour := newSession(board.TypeConnectFour, "dave")
	require.NoError(t, sessionRepo.Create(ctx, connectFour))

	t.Run("NoFilterReturnsAll", func(t *testing.T) {
		sessions, err := sessionRepo.List(ctx, Filter{})

		require.NoError(t, err)
		assert.Len(t, sessions, 3)
	})

	t.Run("FilterByType", func(t *testing.T) {
		sessions, err := sessionRepo.List(ctx, Filter{GameType: board.TypeTicTacToe})

		require.NoError(t, err)
		require.Len(t, sessions, 2)
		for _, session := range sessions {
			assert.Equal(t, board.TypeTicTacToe, session.Type)
		}
	})

	t.Run("FilterByActive", func(t *testing.T) {
		isActive := true
		sessions, err := sessionRepo.List(ctx, Filter{Active: &isActive})

		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, active.ID, sessions[0].ID)
		assert.NotEmpty(t, sessions[0].Players[entity.SlotTwo])
	})

	t.Run("FilterByTypeAndActive", func(t *testing.T) {
		isActive := false
		sessions, err := sessionRepo.List(ctx, Filter{GameType: board.TypeTicTacToe, Active: &isActive})

		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, waiting.ID, sessions[0].ID)
	})
}

func TestSessionRepository_Update(t *testing.T) {
	t.Run("Update_Success", func(t *testing.T) {
		ctx := context.Background()
		sessionRepo := NewSessionRepository(suite.NewSessionDB(t))

		session := newSession(board.TypeTicTacToe, "alice")
		require.NoError(t, sessionRepo.Create(ctx, session))

		// When: the session is mutated and written back
		session.Join("bob")
		session.Board[4] = "X"
		err := sessionRepo.Update(ctx, session)

		// Then: the stored record matches the update
		require.NoError(t, err)

		retrieved, err := sessionRepo.GetByID(ctx, session.ID)
		require.NoError(t, err)
		assert.True(t, retrieved.Active)
		assert.Equal(t, "X", retrieved.Board[4])
		assert.Equal(t, "bob", retrieved.Players[entity.SlotTwo])
	})

	t.Run("Update_NotFound", func(t *testing.T) {
		ctx := context.Background()
		sessionRepo := NewSessionRepository(suite.NewSessionDB(t))

		session := newSession(board.TypeTicTacToe, "alice")
		session.ID = 9999999

		// When: Update is called for a session that was never stored
		err := sessionRepo.Update(ctx, session)

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}

func TestSessionRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx := context.Background()
		sessionRepo := NewSessionRepository(suite.NewSessionDB(t))

		session := newSession(board.TypeTicTacToe, "alice")
		require.NoError(t, sessionRepo.Create(ctx, session))

		// When: DeleteByID is called with an existing id
		err := sessionRepo.DeleteByID(ctx, session.ID)

		// Then: the session is gone
		require.NoError(t, err)

		_, err = sessionRepo.GetByID(ctx, session.ID)
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("DeleteByID_AbsentIsNoOp", func(t *testing.T) {
		ctx := context.Background()
		sessionRepo := NewSessionRepository(suite.NewSessionDB(t))

		// When: DeleteByID is called with a non-existent id
		err := sessionRepo.DeleteByID(ctx, 9999999)

		// Then: no error should be returned
		require.NoError(t, err)
	})
}
