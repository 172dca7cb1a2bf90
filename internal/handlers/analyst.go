package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fanarena/analyst-api/internal/logic"
	"github.com/fanarena/analyst-api/internal/models"
)

// AnswerQuestion runs the full analyst pipeline for one fan question.
// When the room has the AI assistant switched off the request is a no-op:
// no fetch, no history write, no learning.
// @Summary Answer Fan Question
// @Tags Analyst
// @Accept json
// @Produce json
// @Param request body models.AnswerRequest true "Question and match context"
// @Success 200 {object} models.AnswerResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /analyst/answer [post]
func (h *Handler) AnswerQuestion(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req models.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	if req.Match.HomeTeam == "" || req.Match.AwayTeam == "" {
		h.errorResponse(w, http.StatusBadRequest, "Both team names are required")
		return
	}

	if req.AIEnabled != nil && !*req.AIEnabled {
		h.jsonResponse(w, http.StatusOK, models.AnswerResponse{Enabled: false})
		return
	}

	resp, err := h.analyst.Answer(r.Context(), req.Question, req.Match, req.RoomID)
	if err != nil {
		h.logger.Errorw("Failed to answer question", "error", err, "room", req.RoomID)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to answer question")
		return
	}

	h.jsonResponse(w, http.StatusOK, resp)
}

// PredictMatch returns a heuristic outcome forecast for a fixture.
// Form scores are optional; when omitted the engine falls back to neutral
// defaults rather than fetching.
// @Summary Predict Match Outcome
// @Tags Analyst
// @Accept json
// @Produce json
// @Param request body models.PredictRequest true "Match and optional form scores"
// @Success 200 {object} models.MatchPrediction
// @Router /analyst/predict [post]
func (h *Handler) PredictMatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req models.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	if req.Match.HomeTeam == "" || req.Match.AwayTeam == "" {
		h.errorResponse(w, http.StatusBadRequest, "Both team names are required")
		return
	}

	opts := logic.PredictOptions{Jitter: req.Jitter}
	if req.HomeFormScore != nil {
		opts.HomeForm = &models.TeamForm{TeamName: req.Match.HomeTeam, FormScore: *req.HomeFormScore}
	}
	if req.AwayFormScore != nil {
		opts.AwayForm = &models.TeamForm{TeamName: req.Match.AwayTeam, FormScore: *req.AwayFormScore}
	}

	h.jsonResponse(w, http.StatusOK, h.analyst.Predict(req.Match, opts))
}

// GetInsights returns learned insights filtered by subject and category
// @Summary Search Insights
// @Tags Analyst
// @Produce json
// @Param subject query string false "Subject substring filter"
// @Param category query string false "Insight category"
// @Param limit query int false "Max results (capped at 20)"
// @Success 200 {object} map[string]interface{}
// @Router /analyst/insights [get]
func (h *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	subject := r.URL.Query().Get("subject")
	category := r.URL.Query().Get("category")

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.errorResponse(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	insights, err := h.analyst.Insights(r.Context(), subject, category, limit)
	if err != nil {
		h.logger.Errorw("Failed to get insights", "error", err, "subject", subject)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to get insights")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"insights": insights,
		"count":    len(insights),
	})
}

// GetSnapshot returns the cached analysis snapshot for a room
// @Summary Get Room Snapshot
// @Tags Analyst
// @Produce json
// @Param roomID path string true "Room ID"
// @Success 200 {object} models.CachedAnalysisSnapshot
// @Failure 404 {object} map[string]string "Not Found"
// @Router /analyst/snapshot/{roomID} [get]
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	if roomID == "" {
		h.errorResponse(w, http.StatusBadRequest, "Room ID is required")
		return
	}

	snap, err := h.analyst.Snapshot(r.Context(), roomID)
	if err != nil {
		h.logger.Errorw("Failed to get snapshot", "error", err, "room", roomID)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to get snapshot")
		return
	}
	if snap == nil {
		h.errorResponse(w, http.StatusNotFound, "No snapshot for room")
		return
	}

	h.jsonResponse(w, http.StatusOK, snap)
}
