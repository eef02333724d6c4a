package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Aaron-McGill/HandyGameServer/internal/apperror"
	"github.com/Aaron-McGill/HandyGameServer/internal/entity"
)

// Filter narrows List results. A zero value matches every session.
type Filter struct {
	GameType string
	Active   *bool
}

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id int64) (*entity.Session, error)
	List(ctx context.Context, filter Filter) ([]*entity.Session, error)
	Update(ctx context.Context, session *entity.Session) error
	DeleteByID(ctx context.Context, id int64) error
}

type dbSession struct {
	conn *sql.DB
}

func NewSessionRepository(conn *sql.DB) SessionRepository {
	return &dbSession{
		conn: conn,
	}
}

func (that *dbSession) Create(ctx context.Context, session *entity.Session) error {
	boardJSON, playersJSON, err := encodeSession(session)
	if err != nil {
		return err
	}

	query := `INSERT INTO sessions (type, board, active, current_player, players) VALUES (?, ?, ?, ?, ?)`

	result, err := that.conn.ExecContext(ctx, query, session.Type, boardJSON, session.Active, session.CurrentPlayer, playersJSON)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new session id: %w", err)
	}

	session.ID = id

	return nil
}

func (that *dbSession) GetByID(ctx context.Context, id int64) (*entity.Session, error) {
	query := `SELECT id, type, board, active, current_player, players FROM sessions WHERE id = ?`

	session, err := scanSession(that.conn.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	return session, nil
}

func (that *dbSession) List(ctx context.Context, filter Filter) ([]*entity.Session, error) {
	query := `SELECT id, type, board, active, current_player, players FROM sessions`

	var (
		clauses string
		args    []any
	)

	if filter.GameType != "" {
		clauses = " WHERE type = ?"
		args = append(args, filter.GameType)
	}

	if filter.Active != nil {
		if clauses == "" {
			clauses = " WHERE active = ?"
		} else {
			clauses += " AND active = ?"
		}
		args = append(args, *filter.Active)
	}

	rows, err := that.conn.QueryContext(ctx, query+clauses+" ORDER BY id", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]*entity.Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}

		sessions = append(sessions, session)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read session rows: %w", err)
	}

	return sessions, nil
}

func (that *dbSession) Update(ctx context.Context, session *entity.Session) error {
	boardJSON, playersJSON, err := encodeSession(session)
	if err != nil {
		return err
	}

	query := `UPDATE sessions SET type = ?, board = ?, active = ?, current_player = ?, players = ? WHERE id = ?`

	result, err := that.conn.ExecContext(ctx, query, session.Type, boardJSON, session.Active, session.CurrentPlayer, playersJSON, session.ID)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected == 0 {
		return apperror.ErrSessionNotFound
	}

	return nil
}

// DeleteByID removes a session. Deleting an absent id is a no-op.
func (that *dbSession) DeleteByID(ctx context.Context, id int64) error {
	query := `DELETE FROM sessions WHERE id = ?`

	if _, err := that.conn.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func encodeSession(session *entity.Session) (string, string, error) {
	boardJSON, err := json.Marshal(session.Board)
	if err != nil {
		return "", "", fmt.Errorf("could not marshal board: %w", err)
	}

	playersJSON, err := json.Marshal(session.Players)
	if err != nil {
		return "", "", fmt.Errorf("could not marshal players: %w", err)
	}

	return string(boardJSON), string(playersJSON), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*entity.Session, error) {
	var (
		session     entity.Session
		boardJSON   string
		playersJSON string
	)

	if err := row.Scan(&session.ID, &session.Type, &boardJSON, &session.Active, &session.CurrentPlayer, &playersJSON); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(boardJSON), &session.Board); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board: %w", err)
	}

	if err := json.Unmarshal([]byte(playersJSON), &session.Players); err != nil {
		return nil, fmt.Errorf("failed to unmarshal players: %w", err)
	}

	return &session, nil
}
