package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Akhil2453/NRLScoringApp/middleware"
	"github.com/Akhil2453/NRLScoringApp/models"
	"github.com/Akhil2453/NRLScoringApp/services"
	"github.com/go-chi/chi/v5"
)

type ScoreHandler struct {
	scoreService services.ScoreService
}

func NewScoreHandler(scoreService services.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService}
}

// SubmitScore handles POST /matches/{matchID}/score/{alliance}. The body is a
// merge patch: fields left out keep their previously submitted values.
func (h *ScoreHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDFromRequest(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	alliance := models.Alliance(chi.URLParam(r, "alliance"))

	var patch models.ScorePatch
	if err := readJSON(w, r, &patch); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	// The submitting referee defaults to the token holder.
	if patch.SubmittedBy == nil {
		if userID, err := middleware.GetUserIDFromContext(r.Context()); err == nil {
			patch.SubmittedBy = &userID
		}
	}

	result, err := h.scoreService.SubmitScore(r.Context(), matchID, alliance, &patch)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message":       fmt.Sprintf("%s alliance score submitted successfully", alliance),
		"total_score":   result.TotalScore,
		"golden_points": result.GoldenPoints,
		"finalised":     result.Entry.Finalised,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type finaliseScoreInput struct {
	MatchID     int `json:"match_id"`
	ConfirmedBy int `json:"confirmed_by"`
}

func (h *ScoreHandler) FinaliseScore(w http.ResponseWriter, r *http.Request) {
	var input finaliseScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.MatchID == 0 || input.ConfirmedBy == 0 {
		badRequestResponse(w, r, errors.New("match_id and confirmed_by are required"))
		return
	}

	if err := h.scoreService.FinaliseMatch(r.Context(), input.MatchID, input.ConfirmedBy); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message": fmt.Sprintf("Match %d scores finalised by Head Referee ID %d", input.MatchID, input.ConfirmedBy),
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type broadcastScoreInput struct {
	MatchID  int             `json:"match_id"`
	Alliance models.Alliance `json:"alliance"`
	Score    interface{}     `json:"score"`
}

// BroadcastScore re-emits a score figure to viewers without touching storage.
func (h *ScoreHandler) BroadcastScore(w http.ResponseWriter, r *http.Request) {
	var input broadcastScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.MatchID == 0 || input.Alliance == "" || input.Score == nil {
		badRequestResponse(w, r, errors.New("match_id, alliance and score are required"))
		return
	}

	if err := h.scoreService.Broadcast(input.MatchID, input.Alliance, input.Score); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "Score update broadcasted"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
