package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Akhil2453/NRLScoringApp/live"
	"github.com/Akhil2453/NRLScoringApp/models"
	"github.com/Akhil2453/NRLScoringApp/repositories"
	"github.com/Akhil2453/NRLScoringApp/scoring"
)

type ScoreService interface {
	// SubmitScore merge-patches the (match, alliance) entry and publishes a
	// score_update event. Finalised entries reject the submission.
	SubmitScore(ctx context.Context, matchID int, alliance models.Alliance, patch *models.ScorePatch) (*SubmitScoreResult, error)
	// FinaliseMatch locks both alliance entries atomically and publishes a
	// match_finalised event. There is no way back from finalised.
	FinaliseMatch(ctx context.Context, matchID int, confirmedBy int) error
	// Broadcast re-emits an arbitrary score figure to viewers without touching
	// stored entries (manual override from the head referee desk).
	Broadcast(matchID int, alliance models.Alliance, score interface{}) error
}

type SubmitScoreResult struct {
	Entry        *models.ScoreEntry
	TotalScore   int
	GoldenPoints int
}

// ScoreBreakdown is the wire shape shared by summaries and live events.
type ScoreBreakdown struct {
	AllianceCharge    int    `json:"alliance_charge"`
	CapturedCharge    int    `json:"captured_charge"`
	GoldenChargeStack string `json:"golden_charge_stack"`
	GoldenPoints      int    `json:"golden_points"`
	MinorPenalties    int    `json:"minor_penalties"`
	MajorPenalties    int    `json:"major_penalties"`
	FullParking       int    `json:"full_parking"`
	PartialParking    int    `json:"partial_parking"`
	Docked            int    `json:"docked"`
	Engaged           int    `json:"engaged"`
	SuperchargeMode   bool   `json:"supercharge_mode"`
}

func NewScoreBreakdown(entry *models.ScoreEntry) *ScoreBreakdown {
	if entry == nil {
		return nil
	}
	return &ScoreBreakdown{
		AllianceCharge:    entry.AllianceCharge,
		CapturedCharge:    entry.CapturedCharge,
		GoldenChargeStack: entry.GoldenChargeStack,
		GoldenPoints:      scoring.GoldenPointsFromText(entry.GoldenChargeStack),
		MinorPenalties:    entry.MinorPenalties,
		MajorPenalties:    entry.MajorPenalties,
		FullParking:       entry.FullParking,
		PartialParking:    entry.PartialParking,
		Docked:            entry.Docked,
		Engaged:           entry.Engaged,
		SuperchargeMode:   entry.SuperchargeMode,
	}
}

type ScoreUpdatePayload struct {
	MatchID        int             `json:"match_id"`
	Alliance       models.Alliance `json:"alliance"`
	ScoreBreakdown *ScoreBreakdown `json:"score_breakdown,omitempty"`
	Score          interface{}     `json:"score,omitempty"`
	TotalScore     *int            `json:"total_score,omitempty"`
	Finalised      *bool           `json:"finalised,omitempty"`
}

type MatchFinalisedPayload struct {
	MatchID     int `json:"match_id"`
	RedTotal    int `json:"red_total"`
	BlueTotal   int `json:"blue_total"`
	ConfirmedBy int `json:"confirmed_by"`
}

type scoreService struct {
	matchRepo repositories.MatchRepository
	scoreRepo repositories.ScoreRepository
	hub       live.Broadcaster
}

func NewScoreService(
	matchRepo repositories.MatchRepository,
	scoreRepo repositories.ScoreRepository,
	hub live.Broadcaster,
) ScoreService {
	return &scoreService{
		matchRepo: matchRepo,
		scoreRepo: scoreRepo,
		hub:       hub,
	}
}

func (s *scoreService) SubmitScore(ctx context.Context, matchID int, alliance models.Alliance, patch *models.ScorePatch) (*SubmitScoreResult, error) {
	if !models.ValidAlliance(alliance) {
		return nil, ErrInvalidAlliance
	}
	if patch == nil {
		patch = &models.ScorePatch{}
	}

	if _, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d: %w", matchID, err)
	}

	entry, err := s.scoreRepo.Upsert(ctx, matchID, alliance, patch)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrScoreEntryLocked):
			return nil, ErrScoreAlreadyFinalised
		case errors.Is(err, repositories.ErrScoreMatchInvalid):
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to upsert score for match %d/%s: %w", matchID, alliance, err)
	}

	total := scoring.CalculateTotalScore(entry)
	golden := scoring.GoldenPointsFromText(entry.GoldenChargeStack)

	s.publish(live.EventScoreUpdate, matchID, &ScoreUpdatePayload{
		MatchID:        matchID,
		Alliance:       alliance,
		ScoreBreakdown: NewScoreBreakdown(entry),
		TotalScore:     &total,
		Finalised:      &entry.Finalised,
	})

	return &SubmitScoreResult{
		Entry:        entry,
		TotalScore:   total,
		GoldenPoints: golden,
	}, nil
}

func (s *scoreService) FinaliseMatch(ctx context.Context, matchID int, confirmedBy int) error {
	if _, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to load match %d: %w", matchID, err)
	}

	if err := s.scoreRepo.Finalise(ctx, matchID, confirmedBy); err != nil {
		switch {
		case errors.Is(err, repositories.ErrScorePairIncomplete):
			return ErrScoresNotSubmitted
		case errors.Is(err, repositories.ErrScoreEntryLocked):
			return ErrScoreAlreadyFinalised
		}
		return fmt.Errorf("failed to finalise match %d: %w", matchID, err)
	}

	red, blue, err := s.scoreRepo.GetPair(ctx, matchID)
	if err != nil {
		// finalisation committed; the event is best-effort anyway
		return nil
	}

	s.publish(live.EventMatchFinalised, matchID, &MatchFinalisedPayload{
		MatchID:     matchID,
		RedTotal:    scoring.CalculateTotalScore(red),
		BlueTotal:   scoring.CalculateTotalScore(blue),
		ConfirmedBy: confirmedBy,
	})
	return nil
}

func (s *scoreService) Broadcast(matchID int, alliance models.Alliance, score interface{}) error {
	if !models.ValidAlliance(alliance) {
		return ErrInvalidAlliance
	}
	s.publish(live.EventScoreUpdate, matchID, &ScoreUpdatePayload{
		MatchID:  matchID,
		Alliance: alliance,
		Score:    score,
	})
	return nil
}

// publish fans the event out to the per-match room and the global scores room.
func (s *scoreService) publish(eventType string, matchID int, payload interface{}) {
	if s.hub == nil {
		return
	}
	room := live.MatchRoom(matchID)
	s.hub.BroadcastToRoom(room, live.Message{Type: eventType, Payload: payload, RoomID: room})
	s.hub.BroadcastToRoom(live.RoomScores, live.Message{Type: eventType, Payload: payload, RoomID: live.RoomScores})
}
