package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordsearch/internal/api/apierr"
	"github.com/mcoot/wordsearch/internal/api/middleware"
	"github.com/mcoot/wordsearch/internal/api/request"
	"github.com/mcoot/wordsearch/internal/api/response"
	"github.com/mcoot/wordsearch/internal/model"
	"github.com/mcoot/wordsearch/internal/services/game"
	"github.com/mcoot/wordsearch/internal/services/generator"
	"github.com/mcoot/wordsearch/internal/web/sse"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController game.ControllerInterface
	hubManager     *sse.HubManager
	logger         *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController game.ControllerInterface, hubManager *sse.HubManager, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		hubManager:     hubManager,
		logger:         logger,
	}
}

// cellAction is a controller method acting on one cell
type cellAction func(ctx context.Context, gameID model.GameID, playerID model.PlayerID, pos model.Position) (*model.Game, error)

// gameAction is a controller method acting on the whole game
type gameAction func(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error)

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateGameRequest
	if err := decodeOptional(r, &req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Size < 0 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("size must not be negative"))
		return
	}
	if req.WordCount < 0 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("word_count must not be negative"))
		return
	}

	g, err := h.gameController.NewGame(r.Context(), player.ID, game.NewGameOptions{
		Size:      req.Size,
		WordCount: req.WordCount,
		Seed:      req.Seed,
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(g, h.gameController.ElapsedDisplay(g)))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	g, err := h.gameController.GetGame(r.Context(), gameID(r), player.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.writeGame(w, g)
}

// Abandon handles DELETE /api/v1/games/{id}
func (h *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	if err := h.gameController.Abandon(r.Context(), gameID(r), player.ID); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Toggle handles POST /api/v1/games/{id}/toggle
func (h *GameHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	h.cell(w, r, h.gameController.Toggle)
}

// Press handles POST /api/v1/games/{id}/press
func (h *GameHandler) Press(w http.ResponseWriter, r *http.Request) {
	h.cell(w, r, h.gameController.Press)
}

// Drag handles POST /api/v1/games/{id}/drag
func (h *GameHandler) Drag(w http.ResponseWriter, r *http.Request) {
	h.cell(w, r, h.gameController.DragEnter)
}

// Release handles POST /api/v1/games/{id}/release
func (h *GameHandler) Release(w http.ResponseWriter, r *http.Request) {
	h.whole(w, r, h.gameController.Release)
}

// ClearSelection handles DELETE /api/v1/games/{id}/selection
func (h *GameHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	h.whole(w, r, h.gameController.ClearSelection)
}

// Reset handles POST /api/v1/games/{id}/reset
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.whole(w, r, h.gameController.Reset)
}

// Submit handles POST /api/v1/games/{id}/submit
func (h *GameHandler) Submit(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	result, err := h.gameController.Submit(r.Context(), gameID(r), player.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SubmitResponseFromResult(result, h.gameController.ElapsedDisplay(result.Game)))
}

// SetShowWords handles PATCH /api/v1/games/{id}/words
func (h *GameHandler) SetShowWords(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.PreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ShowWords == nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("show_words is required"))
		return
	}

	g, err := h.gameController.SetShowWords(r.Context(), gameID(r), player.ID, *req.ShowWords)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.writeGame(w, g)
}

// Snapshot handles GET /api/v1/games/{id}/snapshot. The puzzle is
// returned as YAML so it can be regenerated or archived.
func (h *GameHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	g, err := h.gameController.GetGame(r.Context(), gameID(r), player.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	data, err := generator.NewSnapshot(g.Seed, &generator.Puzzle{Grid: g.Grid, Placed: g.Placed}).Serialize()
	if err != nil {
		h.logger.Error("failed to serialize snapshot",
			slog.String("game_id", string(g.ID)),
			slog.String("error", err.Error()),
		)
		apierr.WriteError(w, apierr.NewInternalError())
		return
	}

	response.YAML(w, http.StatusOK, data)
}

// Events handles GET /api/v1/games/{id}/events as a JSON event stream
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	g, err := h.gameController.GetGame(r.Context(), gameID(r), player.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(g.ID)
	sse.ServeSSE(w, r, hub, player.ID, sse.JSONFormatter)
}

func (h *GameHandler) cell(w http.ResponseWriter, r *http.Request, action cellAction) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.PositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Row == nil || req.Col == nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("row and col are required"))
		return
	}

	g, err := action(r.Context(), gameID(r), player.ID, model.Position{Row: *req.Row, Col: *req.Col})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.writeGame(w, g)
}

func (h *GameHandler) whole(w http.ResponseWriter, r *http.Request, action gameAction) {
	player := middleware.MustGetPlayer(r.Context())

	g, err := action(r.Context(), gameID(r), player.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.writeGame(w, g)
}

func (h *GameHandler) writeGame(w http.ResponseWriter, g *model.Game) {
	response.JSON(w, http.StatusOK, response.GameFromModel(g, h.gameController.ElapsedDisplay(g)))
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}
