package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Akhil2453/NRLScoringApp/services"
	"github.com/go-chi/chi/v5"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(matchService services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

func matchIDFromRequest(r *http.Request) (int, error) {
	idStr := chi.URLParam(r, "matchID")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid match id in URL")
	}
	return id, nil
}

func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matchService.ListMatches(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) GetMatchSummary(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDFromRequest(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	summary, err := h.matchService.GetMatchSummary(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, summary, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) GetMatchDetails(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDFromRequest(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	details, err := h.matchService.GetMatchDetails(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, details, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
