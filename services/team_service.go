package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Akhil2453/NRLScoringApp/models"
	"github.com/Akhil2453/NRLScoringApp/repositories"
)

type TeamService interface {
	UpdateInspection(ctx context.Context, number string, status models.InspectionStatus) error
	GetProfile(ctx context.Context, number string) (*models.Team, error)
	// AddCard increments the team's red or yellow card tally and returns the
	// updated profile.
	AddCard(ctx context.Context, number string, color models.CardColor) (*models.Team, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
}

func NewTeamService(teamRepo repositories.TeamRepository) TeamService {
	return &teamService{teamRepo: teamRepo}
}

func (s *teamService) UpdateInspection(ctx context.Context, number string, status models.InspectionStatus) error {
	if !models.ValidInspectionStatus(status) {
		return ErrInvalidInspectionStatus
	}

	if err := s.teamRepo.UpdateInspectionStatus(ctx, number, status); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to update inspection for team %s: %w", number, err)
	}
	return nil
}

func (s *teamService) GetProfile(ctx context.Context, number string) (*models.Team, error) {
	team, err := s.teamRepo.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team %s: %w", number, err)
	}
	return team, nil
}

func (s *teamService) AddCard(ctx context.Context, number string, color models.CardColor) (*models.Team, error) {
	if color != models.CardRed && color != models.CardYellow {
		return nil, ErrInvalidCardColor
	}

	team, err := s.teamRepo.IncrementCard(ctx, number, color)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to add %s card for team %s: %w", color, number, err)
	}
	return team, nil
}
