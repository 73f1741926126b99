package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/middleware"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

var (
	errUnauthorized = errors.New("session token required")
	errForbidden    = errors.New("token does not grant access to this session")
)

type FieldFactory func(height, width int, density float64) (*mines.Field, error)

func randomField(height, width int, density float64) (*mines.Field, error) {
	return mines.NewField(height, width, mines.WithDensity(density))
}

type GameHandler struct {
	logger   *slog.Logger
	store    *session.Store
	jwt      *config.JWT
	ws       *config.WebSocket
	field    *config.Field
	newField FieldFactory
}

func NewGameHandler(
	logger *slog.Logger,
	store *session.Store,
	jwt *config.JWT,
	ws *config.WebSocket,
	field *config.Field,
) *GameHandler {
	handler := &GameHandler{
		logger:   logger,
		store:    store,
		jwt:      jwt,
		ws:       ws,
		field:    field,
		newField: randomField,
	}
	return handler
}

// WithFieldFactory replaces random mine placement, e.g. with a fixed
// layout.
func (g *GameHandler) WithFieldFactory(f FieldFactory) *GameHandler {
	g.newField = f
	return g
}

// authorize checks that the request carries a token for the session named
// in the path.
func (g GameHandler) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	claims, ok := middleware.SessionClaims(r.Context())
	if !ok {
		SendErrorOrLog(w, g.logger, http.StatusUnauthorized, errUnauthorized)
		return "", false
	}
	if claims.SessionID != id {
		SendErrorOrLog(w, g.logger, http.StatusForbidden, errForbidden)
		return "", false
	}
	return id, true
}

func (g GameHandler) sendError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		SendErrorOrLog(w, g.logger, http.StatusNotFound, err)
	case errors.Is(err, session.ErrGameOver):
		SendErrorOrLog(w, g.logger, http.StatusConflict, err)
	case errors.Is(err, mines.ErrOutOfBounds),
		errors.Is(err, mines.ErrInvalidDimension),
		errors.Is(err, mines.ErrInvalidDensity):
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
	default:
		g.logger.Error("unexpected error", slog.Any("error", err))
		SendErrorOrLog(w, g.logger, http.StatusInternalServerError,
			errors.New("internal error"))
	}
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query(), g.field)
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	if err := g.field.Validate(dto.Height, dto.Width, dto.Density); err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	field, err := g.newField(dto.Height, dto.Width, dto.Density)
	if err != nil {
		g.sendError(w, fmt.Errorf("unable to generate a new field: %w", err))
		return
	}

	s := g.store.Create(field)

	token, err := g.jwt.SignSession(s.ID)
	if err != nil {
		g.store.Delete(s.ID)
		g.logger.Error("unable to sign session token", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	res := NewGameSessionDTO(s.View())
	res.Token = token
	SendJSONOrLog(w, g.logger, http.StatusCreated, res)
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, err := g.store.Get(r.PathValue("id"))
	if err != nil {
		g.sendError(w, err)
		return
	}

	SendJSONOrLog(w, g.logger, http.StatusOK, NewGameSessionDTO(s.View()))
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	id, ok := g.authorize(w, r)
	if !ok {
		return
	}

	dto, err := ParseMoveDTO(r.URL.Query())
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	move, err := ParseGameMove(dto.Move)
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	s, err := g.store.Get(id)
	if err != nil {
		g.sendError(w, err)
		return
	}

	var view session.View
	switch move {
	case Reveal:
		view, err = s.Reveal(dto.Position())
	case Flag:
		view, err = s.Flag(dto.Position())
	}
	if err != nil {
		g.sendError(w, err)
		return
	}

	if view.EndedAt != nil {
		g.logger.Info("game over",
			slog.String("id", view.ID),
			slog.String("status", view.Status.String()),
		)
	}

	SendJSONOrLog(w, g.logger, http.StatusOK, NewGameSessionDTO(view))
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	id, ok := g.authorize(w, r)
	if !ok {
		return
	}

	s, err := g.store.Get(id)
	if err != nil {
		g.sendError(w, err)
		return
	}

	SendJSONOrLog(w, g.logger, http.StatusOK, NewGameSessionDTO(s.Forfeit()))
}
