package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/mcoot/wordsearch/internal/api/apierr"
	"github.com/mcoot/wordsearch/internal/api/middleware"
	"github.com/mcoot/wordsearch/internal/api/request"
	"github.com/mcoot/wordsearch/internal/api/response"
	"github.com/mcoot/wordsearch/internal/services/records"
)

// RecordsHandler serves best times, preferences and history
type RecordsHandler struct {
	records records.ServiceInterface
}

// NewRecordsHandler creates a new records handler
func NewRecordsHandler(records records.ServiceInterface) *RecordsHandler {
	return &RecordsHandler{records: records}
}

// GetMine handles GET /api/v1/records/me?limit=N
func (h *RecordsHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	ctx := r.Context()

	limit := records.DefaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			apierr.WriteError(w, apierr.NewInvalidRequestError("limit must be a positive number"))
			return
		}
		limit = n
	}

	best, err := h.records.BestTimeDisplay(ctx, player.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	showWords, err := h.records.ShowWords(ctx, player.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	history, err := h.records.History(ctx, player.ID, limit)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	resp := response.Records{
		BestTime:  best,
		ShowWords: showWords,
		History:   make([]response.GameSummary, len(history)),
	}
	for i, s := range history {
		resp.History[i] = response.GameSummaryFromModel(s)
	}

	response.JSON(w, http.StatusOK, resp)
}

// UpdatePreferences handles PATCH /api/v1/preferences
func (h *RecordsHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
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

	if err := h.records.SetShowWords(r.Context(), player.ID, *req.ShowWords); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Preferences{ShowWords: *req.ShowWords})
}
