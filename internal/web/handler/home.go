package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/wordsearch/internal/services/game"
	"github.com/mcoot/wordsearch/internal/services/records"
	"github.com/mcoot/wordsearch/internal/web/middleware"
	"github.com/mcoot/wordsearch/internal/web/templates/layout"
	"github.com/mcoot/wordsearch/internal/web/templates/pages"
)

// HomeHandler handles the home page
type HomeHandler struct {
	records records.ServiceInterface
	cfg     game.Config
	logger  *slog.Logger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(records records.ServiceInterface, cfg game.Config, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{
		records: records,
		cfg:     cfg,
		logger:  logger,
	}
}

// Home renders the home page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())

	data := pages.HomeData{
		PageData: layout.PageData{
			Title:  "Home",
			Player: player,
			Flash:  middleware.GetFlash(r.Context()),
		},
		Next:             r.URL.Query().Get("next"),
		DefaultSize:      h.cfg.DefaultSize,
		DefaultWordCount: h.cfg.DefaultWordCount,
	}

	if player != nil {
		if best, err := h.records.BestTimeDisplay(r.Context(), player.ID); err == nil {
			data.BestTime = best
		}
		history, err := h.records.History(r.Context(), player.ID, records.DefaultHistoryLimit)
		if err != nil {
			h.logger.Warn("failed to load history",
				slog.String("player_id", string(player.ID)),
				slog.String("error", err.Error()))
		}
		data.History = history
	}

	render(w, r, pages.Home(data))
}
