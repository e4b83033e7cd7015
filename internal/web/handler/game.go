package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordsearch/internal/model"
	"github.com/mcoot/wordsearch/internal/services/game"
	"github.com/mcoot/wordsearch/internal/services/records"
	"github.com/mcoot/wordsearch/internal/web/middleware"
	"github.com/mcoot/wordsearch/internal/web/sse"
	"github.com/mcoot/wordsearch/internal/web/templates/layout"
	"github.com/mcoot/wordsearch/internal/web/templates/pages"
)

// GameHandler serves the puzzle pages and their form actions
type GameHandler struct {
	controller game.ControllerInterface
	records    records.ServiceInterface
	hubManager *sse.HubManager
	logger     *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(
	controller game.ControllerInterface,
	records records.ServiceInterface,
	hubManager *sse.HubManager,
	logger *slog.Logger,
) *GameHandler {
	return &GameHandler{
		controller: controller,
		records:    records,
		hubManager: hubManager,
		logger:     logger,
	}
}

// Create handles POST /games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())

	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	opts := game.NewGameOptions{}
	if v := strings.TrimSpace(r.FormValue("size")); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			middleware.SetFlash(w, "error", "Invalid grid size")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		opts.Size = size
	}
	if v := strings.TrimSpace(r.FormValue("word_count")); v != "" {
		count, err := strconv.Atoi(v)
		if err != nil {
			middleware.SetFlash(w, "error", "Invalid word count")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		opts.WordCount = count
	}

	g, err := h.controller.NewGame(r.Context(), player.ID, opts)
	if err != nil {
		middleware.SetFlash(w, "error", errorMessage(err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, gamePath(g.ID), http.StatusSeeOther)
}

// View handles GET /games/{id}
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	gameID := gameIDFromRequest(r)

	g, err := h.controller.GetGame(r.Context(), gameID, player.ID)
	if err != nil {
		middleware.SetFlash(w, "error", errorMessage(err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := h.gameData(r, player, g)
	if isHTMX(r) {
		render(w, r, pages.GameFragment(data))
		return
	}
	render(w, r, pages.Game(data))
}

// Toggle handles POST /games/{id}/toggle with a "row,col" cell value
func (h *GameHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	gameID := gameIDFromRequest(r)

	if err := r.ParseForm(); err != nil {
		h.respond(w, r, player, gameID, nil, "error", "Invalid form data")
		return
	}
	pos, err := parseCell(r.FormValue("cell"))
	if err != nil {
		h.respond(w, r, player, gameID, nil, "error", "Invalid cell")
		return
	}

	g, err := h.controller.Toggle(r.Context(), gameID, player.ID, pos)
	if err != nil {
		h.respond(w, r, player, gameID, nil, "error", errorMessage(err))
		return
	}
	h.respond(w, r, player, gameID, g, "", "")
}

// Submit handles POST /games/{id}/submit
func (h *GameHandler) Submit(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	gameID := gameIDFromRequest(r)

	result, err := h.controller.Submit(r.Context(), gameID, player.ID)
	if err != nil {
		h.respond(w, r, player, gameID, nil, "error", errorMessage(err))
		return
	}

	switch {
	case result.Complete:
		h.respond(w, r, player, gameID, result.Game, "success", "All words found!")
	case result.Found:
		h.respond(w, r, player, gameID, result.Game, "success", "Found "+result.FoundWord.Text)
	case result.Word != "":
		h.respond(w, r, player, gameID, result.Game, "info", "Not a word: "+result.Word)
	default:
		h.respond(w, r, player, gameID, result.Game, "", "")
	}
}

// Clear handles POST /games/{id}/clear
func (h *GameHandler) Clear(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	gameID := gameIDFromRequest(r)

	g, err := h.controller.ClearSelection(r.Context(), gameID, player.ID)
	if err != nil {
		h.respond(w, r, player, gameID, nil, "error", errorMessage(err))
		return
	}
	h.respond(w, r, player, gameID, g, "", "")
}

// Reset handles POST /games/{id}/reset
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	gameID := gameIDFromRequest(r)

	g, err := h.controller.Reset(r.Context(), gameID, player.ID)
	if err != nil {
		h.respond(w, r, player, gameID, nil, "error", errorMessage(err))
		return
	}
	h.respond(w, r, player, gameID, g, "", "")
}

// Words handles POST /games/{id}/words, flipping the word list visibility
func (h *GameHandler) Words(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	gameID := gameIDFromRequest(r)

	g, err := h.controller.ToggleShowWords(r.Context(), gameID, player.ID)
	if err != nil {
		h.respond(w, r, player, gameID, nil, "error", errorMessage(err))
		return
	}
	h.respond(w, r, player, gameID, g, "", "")
}

// Abandon handles POST /games/{id}/abandon
func (h *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	gameID := gameIDFromRequest(r)

	if err := h.controller.Abandon(r.Context(), gameID, player.ID); err != nil {
		middleware.SetFlash(w, "error", errorMessage(err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, "info", "Puzzle abandoned")
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Events handles GET /games/{id}/events, streaming HTML fragments
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	gameID := gameIDFromRequest(r)

	if _, err := h.controller.GetGame(r.Context(), gameID, player.ID); err != nil {
		http.Error(w, errorMessage(err), http.StatusNotFound)
		return
	}

	hub := h.hubManager.GetOrCreateHub(gameID)
	sse.ServeSSE(w, r, hub, player.ID, sse.HTMLFormatter)
}

// respond finishes a form action. htmx gets the refreshed game fragment with
// any message swapped in out of band; plain forms get a redirect and a flash.
func (h *GameHandler) respond(w http.ResponseWriter, r *http.Request, player *model.Player, gameID model.GameID, g *model.Game, flashType, message string) {
	if !isHTMX(r) {
		if message != "" {
			middleware.SetFlash(w, flashType, message)
		}
		http.Redirect(w, r, gamePath(gameID), http.StatusSeeOther)
		return
	}

	if g == nil {
		var err error
		g, err = h.controller.GetGame(r.Context(), gameID, player.ID)
		if err != nil {
			w.Header().Set("HX-Redirect", "/")
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.GameFragment(h.gameData(r, player, g)).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if message != "" {
		_, _ = io.WriteString(w, oobFlash(flashType, message))
	}
}

func (h *GameHandler) gameData(r *http.Request, player *model.Player, g *model.Game) pages.GameData {
	data := pages.GameData{
		PageData: layout.PageData{
			Title:  "Puzzle",
			Player: player,
			Flash:  middleware.GetFlash(r.Context()),
		},
		Game:    g,
		Elapsed: h.controller.ElapsedDisplay(g),
	}
	if g.State == model.GameStateComplete {
		if best, err := h.records.BestTimeDisplay(r.Context(), player.ID); err == nil {
			data.BestTime = best
		}
	}
	return data
}

func gameIDFromRequest(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

func gamePath(id model.GameID) string {
	return "/games/" + string(id)
}

// parseCell parses a "row,col" form value
func parseCell(value string) (model.Position, error) {
	rowStr, colStr, ok := strings.Cut(value, ",")
	if !ok {
		return model.Position{}, errors.New("expected row,col")
	}
	row, err := strconv.Atoi(strings.TrimSpace(rowStr))
	if err != nil {
		return model.Position{}, err
	}
	col, err := strconv.Atoi(strings.TrimSpace(colStr))
	if err != nil {
		return model.Position{}, err
	}
	return model.Position{Row: row, Col: col}, nil
}

// errorMessage turns service errors into something to show a player
func errorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrGameNotFound), errors.Is(err, model.ErrNotGameOwner):
		return "Game not found"
	case errors.Is(err, model.ErrGameComplete):
		return "This puzzle is already solved"
	case errors.Is(err, model.ErrOutOfBounds):
		return "That cell is outside the grid"
	case errors.Is(err, model.ErrInvalidGridSize):
		return "Grid size is out of range"
	case errors.Is(err, model.ErrInvalidWordCount):
		return "Word count must be positive"
	case errors.Is(err, model.ErrWordListNotLoaded), errors.Is(err, model.ErrEmptyWordList):
		return "No word list is available"
	default:
		return "Something went wrong"
	}
}
