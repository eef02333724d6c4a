package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Aaron-McGill/HandyGameServer/internal/apperror"
	"github.com/Aaron-McGill/HandyGameServer/internal/repository"
	"github.com/Aaron-McGill/HandyGameServer/internal/service"
)

type SessionHandler struct {
	logger   *slog.Logger
	sessions service.SessionService
	validate *validator.Validate
}

func NewSessionHandler(logger *slog.Logger, sessions service.SessionService) *SessionHandler {
	return &SessionHandler{
		logger:   logger.With("component", "rest"),
		sessions: sessions,
		validate: validator.New(),
	}
}

type createSessionRequest struct {
	Type          string `json:"type" validate:"required"`
	CurrentPlayer string `json:"current_player" validate:"required"`
}

type joinSessionRequest struct {
	CurrentPlayer string `json:"current_player" validate:"required"`
}

type makeMoveRequest struct {
	Board []string `json:"board" validate:"required,min=1"`
}

func (that *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.Filter{
		GameType: r.URL.Query().Get("type"),
	}

	// the active token matches "true" case-insensitively; any other
	// non-empty token filters for inactive sessions.
	if token := r.URL.Query().Get("active"); token != "" {
		active := strings.EqualFold(token, "true")
		filter.Active = &active
	}

	sessions, err := that.sessions.ListSessions(r.Context(), filter)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, sessions)
}

func (that *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request createSessionRequest
	if !that.decode(w, r, &request) {
		return
	}

	session, err := that.sessions.CreateSession(r.Context(), request.Type, request.CurrentPlayer)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, session)
}

func (that *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := that.sessionID(w, r)
	if !ok {
		return
	}

	session, err := that.sessions.GetSessionByID(r.Context(), id)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	id, ok := that.sessionID(w, r)
	if !ok {
		return
	}

	var request joinSessionRequest
	if !that.decode(w, r, &request) {
		return
	}

	session, err := that.sessions.JoinSession(r.Context(), id, request.CurrentPlayer)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *SessionHandler) MakeMove(w http.ResponseWriter, r *http.Request) {
	id, ok := that.sessionID(w, r)
	if !ok {
		return
	}

	var request makeMoveRequest
	if !that.decode(w, r, &request) {
		return
	}

	session, err := that.sessions.MakeMove(r.Context(), id, request.Board)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *SessionHandler) CurrentPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := that.sessionID(w, r)
	if !ok {
		return
	}

	slot, err := that.sessions.CurrentPlayer(r.Context(), id)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeText(w, slot)
}

func (that *SessionHandler) GameReady(w http.ResponseWriter, r *http.Request) {
	id, ok := that.sessionID(w, r)
	if !ok {
		return
	}

	ready, err := that.sessions.IsGameReady(r.Context(), id)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeText(w, strconv.FormatBool(ready))
}

func (that *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := that.sessionID(w, r)
	if !ok {
		return
	}

	if err := that.sessions.DeleteSession(r.Context(), id); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *SessionHandler) sessionID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return 0, false
	}

	return id, true
}

func (that *SessionHandler) decode(w http.ResponseWriter, r *http.Request, request any) bool {
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}

	if err := that.validate.Struct(request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}

	return true
}

func (that *SessionHandler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

func (that *SessionHandler) writeText(w http.ResponseWriter, body string) {
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte(body)); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *SessionHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, apperror.ErrEmptyPlayerName), errors.Is(err, apperror.ErrBoardSizeMismatch):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		that.logger.Error("request failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
