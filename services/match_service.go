package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Akhil2453/NRLScoringApp/models"
	"github.com/Akhil2453/NRLScoringApp/repositories"
	"github.com/Akhil2453/NRLScoringApp/scoring"
	"golang.org/x/sync/errgroup"
)

type MatchService interface {
	ListMatches(ctx context.Context) ([]*models.Match, error)
	GetMatchSummary(ctx context.Context, matchID int) (*MatchSummary, error)
	GetMatchDetails(ctx context.Context, matchID int) (*MatchDetails, error)
}

// AllianceSummary mirrors the scoreboard payload: an alliance with no entry
// yet shows an empty breakdown with a zero total, not an error.
type AllianceSummary struct {
	ScoreBreakdown *ScoreBreakdown `json:"score_breakdown"`
	TotalScore     int             `json:"total_score"`
	Finalised      bool            `json:"finalised"`
	ConfirmedBy    *int            `json:"confirmed_by,omitempty"`
}

type MatchSummary struct {
	MatchID     int                `json:"match_id"`
	MatchNumber int                `json:"match_number"`
	Arena       string             `json:"arena"`
	Status      models.MatchStatus `json:"status"`
	Teams       MatchTeams         `json:"teams"`
	Score       MatchScorePair     `json:"score"`
}

type MatchTeams struct {
	Red  []string `json:"red"`
	Blue []string `json:"blue"`
}

type MatchScorePair struct {
	Red  AllianceSummary `json:"red"`
	Blue AllianceSummary `json:"blue"`
}

// AllianceDetails exposes the raw referee-entered fields plus the derived
// golden points; nil when no score has been submitted for the alliance.
type AllianceDetails struct {
	AllianceCharge     int    `json:"alliance_charge"`
	CapturedCharge     int    `json:"captured_charge"`
	GoldenChargeStack  string `json:"golden_charge_stack"`
	GoldenPoints       int    `json:"golden_points"`
	MinorPenalties     int    `json:"minor_penalties"`
	MajorPenalties     int    `json:"major_penalties"`
	FullParking        int    `json:"full_parking"`
	PartialParking     int    `json:"partial_parking"`
	Docked             int    `json:"docked"`
	Engaged            int    `json:"engaged"`
	SuperchargeMode    bool   `json:"supercharge_mode"`
	SuperchargeEndTime string `json:"supercharge_end_time"`
	SubmittedBy        *int   `json:"submitted_by"`
	Finalised          bool   `json:"finalised"`
	ConfirmedBy        *int   `json:"confirmed_by"`
}

type MatchDetails struct {
	MatchID     int                `json:"match_id"`
	MatchNumber int                `json:"match_number"`
	Arena       string             `json:"arena"`
	Status      models.MatchStatus `json:"status"`
	RedTeams    []string           `json:"red_teams"`
	BlueTeams   []string           `json:"blue_teams"`
	RedScore    *AllianceDetails   `json:"red_score"`
	BlueScore   *AllianceDetails   `json:"blue_score"`
}

type matchService struct {
	matchRepo repositories.MatchRepository
	scoreRepo repositories.ScoreRepository
}

func NewMatchService(matchRepo repositories.MatchRepository, scoreRepo repositories.ScoreRepository) MatchService {
	return &matchService{matchRepo: matchRepo, scoreRepo: scoreRepo}
}

func (s *matchService) ListMatches(ctx context.Context) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (s *matchService) GetMatchSummary(ctx context.Context, matchID int) (*MatchSummary, error) {
	match, red, blue, err := s.loadMatchWithScores(ctx, matchID)
	if err != nil {
		return nil, err
	}

	return &MatchSummary{
		MatchID:     match.ID,
		MatchNumber: match.MatchNumber,
		Arena:       match.Arena,
		Status:      match.Status,
		Teams:       MatchTeams{Red: match.RedTeams, Blue: match.BlueTeams},
		Score: MatchScorePair{
			Red:  newAllianceSummary(red),
			Blue: newAllianceSummary(blue),
		},
	}, nil
}

func (s *matchService) GetMatchDetails(ctx context.Context, matchID int) (*MatchDetails, error) {
	match, red, blue, err := s.loadMatchWithScores(ctx, matchID)
	if err != nil {
		return nil, err
	}

	return &MatchDetails{
		MatchID:     match.ID,
		MatchNumber: match.MatchNumber,
		Arena:       match.Arena,
		Status:      match.Status,
		RedTeams:    match.RedTeams,
		BlueTeams:   match.BlueTeams,
		RedScore:    newAllianceDetails(red),
		BlueScore:   newAllianceDetails(blue),
	}, nil
}

// loadMatchWithScores fetches the match and both alliance entries, entries in
// parallel. A missing entry is not an error here; callers render the absence.
func (s *matchService) loadMatchWithScores(ctx context.Context, matchID int) (*models.Match, *models.ScoreEntry, *models.ScoreEntry, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, nil, nil, ErrMatchNotFound
		}
		return nil, nil, nil, fmt.Errorf("failed to load match %d: %w", matchID, err)
	}

	var red, blue *models.ScoreEntry
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		entry, err := s.scoreRepo.GetByMatchAndAlliance(gCtx, matchID, models.AllianceRed)
		if err != nil && !errors.Is(err, repositories.ErrScoreEntryNotFound) {
			return fmt.Errorf("failed to load red score for match %d: %w", matchID, err)
		}
		red = entry
		return nil
	})
	g.Go(func() error {
		entry, err := s.scoreRepo.GetByMatchAndAlliance(gCtx, matchID, models.AllianceBlue)
		if err != nil && !errors.Is(err, repositories.ErrScoreEntryNotFound) {
			return fmt.Errorf("failed to load blue score for match %d: %w", matchID, err)
		}
		blue = entry
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return match, red, blue, nil
}

func newAllianceSummary(entry *models.ScoreEntry) AllianceSummary {
	if entry == nil {
		return AllianceSummary{ScoreBreakdown: &ScoreBreakdown{}}
	}
	return AllianceSummary{
		ScoreBreakdown: NewScoreBreakdown(entry),
		TotalScore:     scoring.CalculateTotalScore(entry),
		Finalised:      entry.Finalised,
		ConfirmedBy:    entry.ConfirmedBy,
	}
}

func newAllianceDetails(entry *models.ScoreEntry) *AllianceDetails {
	if entry == nil {
		return nil
	}
	return &AllianceDetails{
		AllianceCharge:     entry.AllianceCharge,
		CapturedCharge:     entry.CapturedCharge,
		GoldenChargeStack:  entry.GoldenChargeStack,
		GoldenPoints:       scoring.GoldenPointsFromText(entry.GoldenChargeStack),
		MinorPenalties:     entry.MinorPenalties,
		MajorPenalties:     entry.MajorPenalties,
		FullParking:        entry.FullParking,
		PartialParking:     entry.PartialParking,
		Docked:             entry.Docked,
		Engaged:            entry.Engaged,
		SuperchargeMode:    entry.SuperchargeMode,
		SuperchargeEndTime: entry.SuperchargeEndTime,
		SubmittedBy:        entry.SubmittedBy,
		Finalised:          entry.Finalised,
		ConfirmedBy:        entry.ConfirmedBy,
	}
}
