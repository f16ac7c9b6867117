package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Akhil2453/NRLScoringApp/models"
	"github.com/lib/pq"
)

var (
	ErrScoreEntryNotFound  = errors.New("score entry not found")
	ErrScoreEntryLocked    = errors.New("score entry is finalised")
	ErrScorePairIncomplete = errors.New("score entries for both alliances are required")
	ErrScoreMatchInvalid   = errors.New("score entry references an unknown match")
)

type ScoreRepository interface {
	// Upsert applies the patch to the (match, alliance) entry in a single
	// statement, creating the entry with zero defaults if absent. Fails with
	// ErrScoreEntryLocked when the entry is already finalised.
	Upsert(ctx context.Context, matchID int, alliance models.Alliance, patch *models.ScorePatch) (*models.ScoreEntry, error)
	GetByMatchAndAlliance(ctx context.Context, matchID int, alliance models.Alliance) (*models.ScoreEntry, error)
	// GetPair returns the red and blue entries for the match; a missing entry
	// comes back nil without an error.
	GetPair(ctx context.Context, matchID int) (red, blue *models.ScoreEntry, err error)
	// Finalise locks both entries of the match in one transaction. Exactly one
	// concurrent caller can win; the rest observe ErrScoreEntryLocked.
	Finalise(ctx context.Context, matchID int, confirmedBy int) error
}

type postgresScoreRepository struct {
	db *sql.DB
}

func NewPostgresScoreRepository(db *sql.DB) ScoreRepository {
	return &postgresScoreRepository{db: db}
}

const scoreEntryColumns = `
	id, match_id, alliance, alliance_charge, captured_charge, golden_charge_stack,
	minor_penalties, major_penalties, full_parking, partial_parking, docked,
	engaged, supercharge_mode, supercharge_end_time, submitted_by, finalised, confirmed_by`

func (r *postgresScoreRepository) Upsert(ctx context.Context, matchID int, alliance models.Alliance, patch *models.ScorePatch) (*models.ScoreEntry, error) {
	// Single-statement merge upsert: NULL patch fields keep the stored value
	// (or the zero default on first insert). The WHERE clause on the conflict
	// arm makes finalised entries unreachable, so the statement returns no row
	// for a locked entry.
	query := `
		INSERT INTO score_entries (
			match_id, alliance, alliance_charge, captured_charge, golden_charge_stack,
			minor_penalties, major_penalties, full_parking, partial_parking, docked,
			engaged, supercharge_mode, supercharge_end_time, submitted_by
		) VALUES (
			$1, $2,
			COALESCE($3, 0), COALESCE($4, 0), COALESCE($5, ''),
			COALESCE($6, 0), COALESCE($7, 0), COALESCE($8, 0), COALESCE($9, 0),
			COALESCE($10, 0), COALESCE($11, 0), COALESCE($12, FALSE), COALESCE($13, ''),
			$14
		)
		ON CONFLICT (match_id, alliance) DO UPDATE SET
			alliance_charge      = COALESCE($3, score_entries.alliance_charge),
			captured_charge      = COALESCE($4, score_entries.captured_charge),
			golden_charge_stack  = COALESCE($5, score_entries.golden_charge_stack),
			minor_penalties      = COALESCE($6, score_entries.minor_penalties),
			major_penalties      = COALESCE($7, score_entries.major_penalties),
			full_parking         = COALESCE($8, score_entries.full_parking),
			partial_parking      = COALESCE($9, score_entries.partial_parking),
			docked               = COALESCE($10, score_entries.docked),
			engaged              = COALESCE($11, score_entries.engaged),
			supercharge_mode     = COALESCE($12, score_entries.supercharge_mode),
			supercharge_end_time = COALESCE($13, score_entries.supercharge_end_time),
			submitted_by         = COALESCE($14, score_entries.submitted_by)
		WHERE score_entries.finalised = FALSE
		RETURNING` + scoreEntryColumns

	row := r.db.QueryRowContext(ctx, query,
		matchID,
		alliance,
		patch.AllianceCharge,
		patch.CapturedCharge,
		patch.GoldenChargeStack,
		patch.MinorPenalties,
		patch.MajorPenalties,
		patch.FullParking,
		patch.PartialParking,
		patch.Docked,
		patch.Engaged,
		patch.SuperchargeMode,
		patch.SuperchargeEndTime,
		patch.SubmittedBy,
	)

	entry, err := scanScoreEntry(row)
	if err != nil {
		if errors.Is(err, ErrScoreEntryNotFound) {
			// the conflict arm skipped the row: the entry is finalised
			return nil, ErrScoreEntryLocked
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "score_entries_match_id_fkey" {
			return nil, ErrScoreMatchInvalid
		}
		return nil, err
	}
	return entry, nil
}

func (r *postgresScoreRepository) GetByMatchAndAlliance(ctx context.Context, matchID int, alliance models.Alliance) (*models.ScoreEntry, error) {
	query := `SELECT` + scoreEntryColumns + `
		FROM score_entries
		WHERE match_id = $1 AND alliance = $2`

	return scanScoreEntry(r.db.QueryRowContext(ctx, query, matchID, alliance))
}

func (r *postgresScoreRepository) GetPair(ctx context.Context, matchID int) (*models.ScoreEntry, *models.ScoreEntry, error) {
	query := `SELECT` + scoreEntryColumns + `
		FROM score_entries
		WHERE match_id = $1`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query score pair for match %d: %w", matchID, err)
	}
	defer rows.Close()

	var red, blue *models.ScoreEntry
	for rows.Next() {
		entry := &models.ScoreEntry{}
		if scanErr := rows.Scan(
			&entry.ID, &entry.MatchID, &entry.Alliance,
			&entry.AllianceCharge, &entry.CapturedCharge, &entry.GoldenChargeStack,
			&entry.MinorPenalties, &entry.MajorPenalties, &entry.FullParking,
			&entry.PartialParking, &entry.Docked, &entry.Engaged,
			&entry.SuperchargeMode, &entry.SuperchargeEndTime,
			&entry.SubmittedBy, &entry.Finalised, &entry.ConfirmedBy,
		); scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan score entry row: %w", scanErr)
		}
		switch entry.Alliance {
		case models.AllianceRed:
			red = entry
		case models.AllianceBlue:
			blue = entry
		}
	}
	if err = rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error during score entry rows iteration: %w", err)
	}
	return red, blue, nil
}

func (r *postgresScoreRepository) Finalise(ctx context.Context, matchID int, confirmedBy int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin finalise transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the pair so concurrent finalisers serialize here.
	rows, err := tx.QueryContext(ctx,
		`SELECT finalised FROM score_entries WHERE match_id = $1 FOR UPDATE`, matchID)
	if err != nil {
		return fmt.Errorf("failed to lock score entries for match %d: %w", matchID, err)
	}

	entries := 0
	locked := false
	for rows.Next() {
		var finalised bool
		if scanErr := rows.Scan(&finalised); scanErr != nil {
			rows.Close()
			return fmt.Errorf("failed to scan finalised flag: %w", scanErr)
		}
		entries++
		if finalised {
			locked = true
		}
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error during finalise lock iteration: %w", err)
	}
	rows.Close()

	if entries < 2 {
		return ErrScorePairIncomplete
	}
	if locked {
		return ErrScoreEntryLocked
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE score_entries
		SET finalised = TRUE, confirmed_by = $1
		WHERE match_id = $2 AND finalised = FALSE`, confirmedBy, matchID)
	if err != nil {
		return fmt.Errorf("failed to finalise score entries for match %d: %w", matchID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected != 2 {
		return ErrScoreEntryLocked
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit finalise transaction: %w", err)
	}
	return nil
}

func scanScoreEntry(row *sql.Row) (*models.ScoreEntry, error) {
	entry := &models.ScoreEntry{}
	err := row.Scan(
		&entry.ID, &entry.MatchID, &entry.Alliance,
		&entry.AllianceCharge, &entry.CapturedCharge, &entry.GoldenChargeStack,
		&entry.MinorPenalties, &entry.MajorPenalties, &entry.FullParking,
		&entry.PartialParking, &entry.Docked, &entry.Engaged,
		&entry.SuperchargeMode, &entry.SuperchargeEndTime,
		&entry.SubmittedBy, &entry.Finalised, &entry.ConfirmedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScoreEntryNotFound
		}
		return nil, fmt.Errorf("failed to scan score entry: %w", err)
	}
	return entry, nil
}
