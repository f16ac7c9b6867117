package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Akhil2453/NRLScoringApp/models"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	// CreateIfAbsent inserts the match keyed by its match number. Re-inserting
	// an existing match number is a no-op; returns true when a row was added.
	CreateIfAbsent(ctx context.Context, match *models.Match) (bool, error)
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListActive(ctx context.Context) ([]*models.Match, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

// Alliances are stored comma-joined, matching the upstream schedule format.
func joinTeams(teams []string) string {
	return strings.Join(teams, ",")
}

func splitTeams(joined string) []string {
	if joined == "" {
		return []string{}
	}
	return strings.Split(joined, ",")
}

func (r *postgresMatchRepository) CreateIfAbsent(ctx context.Context, match *models.Match) (bool, error) {
	query := `
		INSERT INTO matches (match_number, arena, red_teams, blue_teams, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (match_number) DO NOTHING
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		match.MatchNumber,
		match.Arena,
		joinTeams(match.RedTeams),
		joinTeams(match.BlueTeams),
		match.Status,
	).Scan(&match.ID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// conflict path: the match number already exists
			return false, nil
		}
		return false, fmt.Errorf("failed to insert match %d: %w", match.MatchNumber, err)
	}
	return true, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `
		SELECT id, match_number, arena, red_teams, blue_teams, status
		FROM matches
		WHERE id = $1`

	return r.scanMatch(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) ListActive(ctx context.Context) ([]*models.Match, error) {
	query := `
		SELECT id, match_number, arena, red_teams, blue_teams, status
		FROM matches
		WHERE status != 'completed'
		ORDER BY match_number ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var match models.Match
		var red, blue string
		if scanErr := rows.Scan(
			&match.ID,
			&match.MatchNumber,
			&match.Arena,
			&red,
			&blue,
			&match.Status,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		match.RedTeams = splitTeams(red)
		match.BlueTeams = splitTeams(blue)
		matches = append(matches, &match)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) scanMatch(row *sql.Row) (*models.Match, error) {
	match := &models.Match{}
	var red, blue string
	err := row.Scan(
		&match.ID,
		&match.MatchNumber,
		&match.Arena,
		&red,
		&blue,
		&match.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match: %w", err)
	}
	match.RedTeams = splitTeams(red)
	match.BlueTeams = splitTeams(blue)
	return match, nil
}
