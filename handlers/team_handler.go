package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Akhil2453/NRLScoringApp/models"
	"github.com/Akhil2453/NRLScoringApp/services"
	"github.com/go-chi/chi/v5"
)

type TeamHandler struct {
	teamService services.TeamService
}

func NewTeamHandler(teamService services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

type updateInspectionInput struct {
	InspectionStatus models.InspectionStatus `json:"inspection_status"`
}

func (h *TeamHandler) UpdateInspection(w http.ResponseWriter, r *http.Request) {
	teamNumber := chi.URLParam(r, "teamNumber")
	if teamNumber == "" {
		badRequestResponse(w, r, errors.New("team number is required"))
		return
	}

	var input updateInspectionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.teamService.UpdateInspection(r.Context(), teamNumber, input.InspectionStatus); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message": fmt.Sprintf("Inspection status for team %s updated to %s", teamNumber, input.InspectionStatus),
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	teamNumber := chi.URLParam(r, "teamNumber")
	if teamNumber == "" {
		badRequestResponse(w, r, errors.New("team number is required"))
		return
	}

	team, err := h.teamService.GetProfile(r.Context(), teamNumber)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, team, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type addCardInput struct {
	Card models.CardColor `json:"card"`
}

func (h *TeamHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	teamNumber := chi.URLParam(r, "teamNumber")
	if teamNumber == "" {
		badRequestResponse(w, r, errors.New("team number is required"))
		return
	}

	var input addCardInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.AddCard(r.Context(), teamNumber, input.Card)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message":      fmt.Sprintf("%s card recorded for team %s", input.Card, teamNumber),
		"red_cards":    team.RedCards,
		"yellow_cards": team.YellowCards,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
