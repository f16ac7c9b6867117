package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Akhil2453/NRLScoringApp/models"
	"github.com/Akhil2453/NRLScoringApp/repositories"
	"github.com/Akhil2453/NRLScoringApp/schedule"
	"github.com/Akhil2453/NRLScoringApp/storage"
)

const defaultArena = "Alpha" // assigned later by the field crew

type ScheduleService interface {
	// UploadSchedule ingests the CSV export. Ingestion is idempotent: match
	// numbers and team numbers already present are left untouched, so the same
	// file can be uploaded twice without duplicating anything.
	UploadSchedule(ctx context.Context, filename string, data []byte) (*UploadResult, error)
}

type UploadResult struct {
	MatchesAdded []int    `json:"matches_added"`
	TeamsAdded   []string `json:"teams_added"`
	ArchiveURL   string   `json:"archive_url,omitempty"`
}

type scheduleService struct {
	matchRepo repositories.MatchRepository
	teamRepo  repositories.TeamRepository
	uploader  storage.FileUploader
	logger    *slog.Logger
}

func NewScheduleService(
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) ScheduleService {
	return &scheduleService{
		matchRepo: matchRepo,
		teamRepo:  teamRepo,
		uploader:  uploader,
		logger:    logger,
	}
}

func (s *scheduleService) UploadSchedule(ctx context.Context, filename string, data []byte) (*UploadResult, error) {
	rows, err := schedule.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScheduleFile, err)
	}

	result := &UploadResult{
		MatchesAdded: []int{},
		TeamsAdded:   []string{},
	}

	for _, number := range schedule.TeamNumbers(rows) {
		created, err := s.teamRepo.EnsureByNumber(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("failed to ensure team %s: %w", number, err)
		}
		if created {
			result.TeamsAdded = append(result.TeamsAdded, number)
		}
	}

	for _, row := range rows {
		match := &models.Match{
			MatchNumber: row.MatchNumber,
			Arena:       defaultArena,
			RedTeams:    row.RedTeams,
			BlueTeams:   row.BlueTeams,
			Status:      models.MatchStatusPending,
		}
		created, err := s.matchRepo.CreateIfAbsent(ctx, match)
		if err != nil {
			return nil, fmt.Errorf("failed to create match %d: %w", row.MatchNumber, err)
		}
		if created {
			result.MatchesAdded = append(result.MatchesAdded, row.MatchNumber)
		}
	}

	result.ArchiveURL = s.archive(ctx, filename, data)
	return result, nil
}

// archive keeps a copy of the raw export in object storage for the scoring
// review desk. Failures are logged and swallowed: the archive is a convenience,
// the upload must not depend on it.
func (s *scheduleService) archive(ctx context.Context, filename string, data []byte) string {
	if s.uploader == nil {
		return ""
	}

	key := fmt.Sprintf("schedules/%s_%s", time.Now().UTC().Format("20060102T150405Z"), filename)
	uploaded, err := s.uploader.Upload(ctx, key, "text/csv", bytes.NewReader(data))
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to archive schedule export", slog.String("key", key), slog.Any("error", err))
		}
		return ""
	}
	return uploaded.Location
}
