package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Akhil2453/NRLScoringApp/models"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	// EnsureByNumber creates the team with default attributes if it does not
	// exist yet. Returns true when a new row was inserted.
	EnsureByNumber(ctx context.Context, number string) (bool, error)
	GetByNumber(ctx context.Context, number string) (*models.Team, error)
	UpdateInspectionStatus(ctx context.Context, number string, status models.InspectionStatus) error
	IncrementCard(ctx context.Context, number string, color models.CardColor) (*models.Team, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) EnsureByNumber(ctx context.Context, number string) (bool, error) {
	query := `
		INSERT INTO teams (team_number, inspection_status, red_cards, yellow_cards)
		VALUES ($1, 'pending', 0, 0)
		ON CONFLICT (team_number) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query, number)
	if err != nil {
		return false, fmt.Errorf("failed to ensure team %s: %w", number, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return affected > 0, nil
}

func (r *postgresTeamRepository) GetByNumber(ctx context.Context, number string) (*models.Team, error) {
	query := `
		SELECT id, team_number, inspection_status, red_cards, yellow_cards
		FROM teams
		WHERE team_number = $1`

	team := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, number).Scan(
		&team.ID,
		&team.Number,
		&team.InspectionStatus,
		&team.RedCards,
		&team.YellowCards,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to scan team %s: %w", number, err)
	}
	return team, nil
}

func (r *postgresTeamRepository) UpdateInspectionStatus(ctx context.Context, number string, status models.InspectionStatus) error {
	query := `UPDATE teams SET inspection_status = $1 WHERE team_number = $2`
	result, err := r.db.ExecContext(ctx, query, status, number)
	if err != nil {
		return fmt.Errorf("failed to update inspection status for team %s: %w", number, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) IncrementCard(ctx context.Context, number string, color models.CardColor) (*models.Team, error) {
	column := "yellow_cards"
	if color == models.CardRed {
		column = "red_cards"
	}

	// column name is picked from a fixed set above, never from input
	query := fmt.Sprintf(`
		UPDATE teams SET %s = %s + 1
		WHERE team_number = $1
		RETURNING id, team_number, inspection_status, red_cards, yellow_cards`, column, column)

	team := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, number).Scan(
		&team.ID,
		&team.Number,
		&team.InspectionStatus,
		&team.RedCards,
		&team.YellowCards,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to increment %s for team %s: %w", column, number, err)
	}
	return team, nil
}
