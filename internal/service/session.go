package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Aaron-McGill/HandyGameServer/internal/apperror"
	"github.com/Aaron-McGill/HandyGameServer/internal/board"
	"github.com/Aaron-McGill/HandyGameServer/internal/cache"
	"github.com/Aaron-McGill/HandyGameServer/internal/entity"
	"github.com/Aaron-McGill/HandyGameServer/internal/pkg"
	"github.com/Aaron-McGill/HandyGameServer/internal/repository"
)

// SessionService is the session state machine: it validates each transition,
// writes the authoritative record and then synchronizes the turn-state cache.
type SessionService interface {
	CreateSession(ctx context.Context, gameType, creatorName string) (*entity.Session, error)
	ListSessions(ctx context.Context, filter repository.Filter) ([]*entity.Session, error)
	GetSessionByID(ctx context.Context, id int64) (*entity.Session, error)
	JoinSession(ctx context.Context, id int64, playerName string) (*entity.Session, error)
	MakeMove(ctx context.Context, id int64, newBoard []string) (*entity.Session, error)
	DeleteSession(ctx context.Context, id int64) error

	CurrentPlayer(ctx context.Context, id int64) (string, error)
	IsGameReady(ctx context.Context, id int64) (bool, error)
}

type sessionRepo interface {
	Create(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id int64) (*entity.Session, error)
	List(ctx context.Context, filter repository.Filter) ([]*entity.Session, error)
	Update(ctx context.Context, session *entity.Session) error
	DeleteByID(ctx context.Context, id int64) error
}

type turnStateCache interface {
	Get(ctx context.Context, sessionID int64) (*cache.TurnState, error)
	Set(ctx context.Context, sessionID int64, state *cache.TurnState) error
	Delete(ctx context.Context, sessionID int64) error
}

type sessionService struct {
	logger *slog.Logger

	sessionRepo    sessionRepo
	turnStateCache turnStateCache

	// serializes mutating operations per session id, so two concurrent
	// moves can't both read the same turn and flip it independently.
	sessionLocks *pkg.KeyLock
}

func NewSessionService(logger *slog.Logger, sessionRepo sessionRepo, turnStateCache turnStateCache) SessionService {
	return &sessionService{
		logger:         logger.With("component", "session-service"),
		sessionRepo:    sessionRepo,
		turnStateCache: turnStateCache,
		sessionLocks:   pkg.NewKeyLock(),
	}
}

func (that *sessionService) CreateSession(ctx context.Context, gameType, creatorName string) (*entity.Session, error) {
	if creatorName == "" {
		return nil, apperror.ErrEmptyPlayerName
	}

	session := entity.NewSession(gameType, creatorName, board.New(gameType))

	if err := that.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.sessionLocks.Lock(session.ID)
	defer that.sessionLocks.Unlock(session.ID)

	that.syncTurnState(ctx, session)

	return session, nil
}

func (that *sessionService) ListSessions(ctx context.Context, filter repository.Filter) ([]*entity.Session, error) {
	sessions, err := that.sessionRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return sessions, nil
}

func (that *sessionService) GetSessionByID(ctx context.Context, id int64) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

func (that *sessionService) JoinSession(ctx context.Context, id int64, playerName string) (*entity.Session, error) {
	if playerName == "" {
		return nil, apperror.ErrEmptyPlayerName
	}

	that.sessionLocks.Lock(id)
	defer that.sessionLocks.Unlock(id)

	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session.Join(playerName)

	if err = that.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	that.syncTurnState(ctx, session)

	return session, nil
}

func (that *sessionService) MakeMove(ctx context.Context, id int64, newBoard []string) (*entity.Session, error) {
	that.sessionLocks.Lock(id)
	defer that.sessionLocks.Unlock(id)

	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if len(newBoard) != len(session.Board) {
		return nil, fmt.Errorf("%w: got %d cells, want %d", apperror.ErrBoardSizeMismatch, len(newBoard), len(session.Board))
	}

	session.Board = newBoard
	session.AdvanceTurn()

	if err = that.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	that.syncTurnState(ctx, session)

	return session, nil
}

// DeleteSession removes the record and its cache entry. Both removals are
// no-ops when the id is already gone.
func (that *sessionService) DeleteSession(ctx context.Context, id int64) error {
	that.sessionLocks.Lock(id)
	defer that.sessionLocks.Unlock(id)

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	if err := that.turnStateCache.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete turn state: %w", err)
	}

	return nil
}

func (that *sessionService) CurrentPlayer(ctx context.Context, id int64) (string, error) {
	state, err := that.getOrRebuildTurnState(ctx, id)
	if err != nil {
		return "", err
	}

	return state.CurrentPlayer, nil
}

func (that *sessionService) IsGameReady(ctx context.Context, id int64) (bool, error) {
	state, err := that.getOrRebuildTurnState(ctx, id)
	if err != nil {
		return false, err
	}

	return state.Ready, nil
}

func (that *sessionService) getOrRebuildTurnState(ctx context.Context, id int64) (*cache.TurnState, error) {
	state, err := that.turnStateCache.Get(ctx, id)
	if err == nil {
		return state, nil
	}

	if !errors.Is(err, apperror.ErrTurnStateNotCached) {
		return nil, fmt.Errorf("failed to get turn state: %w", err)
	}

	// Cache entries don't survive restarts; rebuild from the record.
	that.sessionLocks.Lock(id)
	defer that.sessionLocks.Unlock(id)

	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild turn state: %w", err)
	}

	return that.syncTurnState(ctx, session), nil
}

// syncTurnState projects the session onto the cache. A failed cache write
// after a successful store write is logged, not retried; the next cache
// miss rebuilds the entry from the record. Callers must hold the session
// lock so the cache and the store can't disagree about whose turn it is.
func (that *sessionService) syncTurnState(ctx context.Context, session *entity.Session) *cache.TurnState {
	state := &cache.TurnState{
		CurrentPlayer: session.CurrentPlayer,
		Ready:         session.IsReady(),
	}

	if err := that.turnStateCache.Set(ctx, session.ID, state); err != nil {
		that.logger.Error("failed to sync turn state", "session_id", session.ID, "error", err)
	}

	return state
}
