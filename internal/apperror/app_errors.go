package apperror

import "errors"

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrEmptyPlayerName    = errors.New("player name must not be empty")
	ErrBoardSizeMismatch  = errors.New("board does not match the session board size")
	ErrTurnStateNotCached = errors.New("turn state is not cached")
)
