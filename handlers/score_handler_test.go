package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Akhil2453/NRLScoringApp/models"
	"github.com/Akhil2453/NRLScoringApp/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScoreService struct {
	submitResult *services.SubmitScoreResult
	submitErr    error
	finaliseErr  error
	broadcastErr error

	lastMatchID  int
	lastAlliance models.Alliance
	lastPatch    *models.ScorePatch
}

func (s *stubScoreService) SubmitScore(ctx context.Context, matchID int, alliance models.Alliance, patch *models.ScorePatch) (*services.SubmitScoreResult, error) {
	s.lastMatchID = matchID
	s.lastAlliance = alliance
	s.lastPatch = patch
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	return s.submitResult, nil
}

func (s *stubScoreService) FinaliseMatch(ctx context.Context, matchID int, confirmedBy int) error {
	s.lastMatchID = matchID
	return s.finaliseErr
}

func (s *stubScoreService) Broadcast(matchID int, alliance models.Alliance, score interface{}) error {
	s.lastMatchID = matchID
	s.lastAlliance = alliance
	return s.broadcastErr
}

func newScoreRouter(svc services.ScoreService) http.Handler {
	handler := NewScoreHandler(svc)
	router := chi.NewRouter()
	router.Post("/matches/{matchID}/score/{alliance}", handler.SubmitScore)
	router.Post("/matches/finalise", handler.FinaliseScore)
	router.Post("/broadcast", handler.BroadcastScore)
	return router
}

func TestSubmitScoreOK(t *testing.T) {
	stub := &stubScoreService{
		submitResult: &services.SubmitScoreResult{
			Entry:        &models.ScoreEntry{MatchID: 5, Alliance: models.AllianceRed},
			TotalScore:   40,
			GoldenPoints: 25,
		},
	}
	router := newScoreRouter(stub)

	body := `{"alliance_charge": 3, "golden_charge_stack": "[[true],[true]]"}`
	req := httptest.NewRequest(http.MethodPost, "/matches/5/score/red", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, stub.lastMatchID)
	assert.Equal(t, models.AllianceRed, stub.lastAlliance)
	require.NotNil(t, stub.lastPatch.AllianceCharge)
	assert.Equal(t, 3, *stub.lastPatch.AllianceCharge)
	assert.Nil(t, stub.lastPatch.CapturedCharge)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.EqualValues(t, 40, got["total_score"])
	assert.EqualValues(t, 25, got["golden_points"])
	assert.Equal(t, false, got["finalised"])
}

func TestSubmitScoreErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"unknown match", services.ErrMatchNotFound, http.StatusNotFound},
		{"bad alliance", services.ErrInvalidAlliance, http.StatusBadRequest},
		{"already finalised", services.ErrScoreAlreadyFinalised, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newScoreRouter(&stubScoreService{submitErr: tt.serviceErr})

			req := httptest.NewRequest(http.MethodPost, "/matches/5/score/red", strings.NewReader(`{}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestSubmitScoreRejectsBadInput(t *testing.T) {
	router := newScoreRouter(&stubScoreService{})

	// non-numeric match id
	req := httptest.NewRequest(http.MethodPost, "/matches/abc/score/red", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// unknown body field
	req = httptest.NewRequest(http.MethodPost, "/matches/5/score/red", strings.NewReader(`{"bogus": 1}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFinaliseScore(t *testing.T) {
	stub := &stubScoreService{}
	router := newScoreRouter(stub)

	req := httptest.NewRequest(http.MethodPost, "/matches/finalise", strings.NewReader(`{"match_id": 5, "confirmed_by": 42}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, stub.lastMatchID)

	// missing confirmed_by
	req = httptest.NewRequest(http.MethodPost, "/matches/finalise", strings.NewReader(`{"match_id": 5}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFinaliseScorePreconditions(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
	}{
		{"pair incomplete", services.ErrScoresNotSubmitted},
		{"double finalise", services.ErrScoreAlreadyFinalised},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newScoreRouter(&stubScoreService{finaliseErr: tt.serviceErr})

			req := httptest.NewRequest(http.MethodPost, "/matches/finalise", strings.NewReader(`{"match_id": 5, "confirmed_by": 42}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusConflict, rec.Code)
		})
	}
}

func TestBroadcastScore(t *testing.T) {
	stub := &stubScoreService{}
	router := newScoreRouter(stub)

	req := httptest.NewRequest(http.MethodPost, "/broadcast", strings.NewReader(`{"match_id": 5, "alliance": "blue", "score": 125}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.AllianceBlue, stub.lastAlliance)

	// score is required
	req = httptest.NewRequest(http.MethodPost, "/broadcast", strings.NewReader(`{"match_id": 5, "alliance": "blue"}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
