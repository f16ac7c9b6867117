package services

import (
	"context"
	"sync"

	"github.com/Akhil2453/NRLScoringApp/live"
	"github.com/Akhil2453/NRLScoringApp/models"
	"github.com/Akhil2453/NRLScoringApp/repositories"
)

// In-memory stand-ins for the Postgres repositories. They reproduce the same
// contracts (merge-patch upsert, compare-and-set finalisation, sentinel
// errors) so the services can be exercised without a database.

type fakeMatchRepo struct {
	mu     sync.Mutex
	nextID int
	byID   map[int]*models.Match
	byNum  map[int]int
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{
		nextID: 1,
		byID:   make(map[int]*models.Match),
		byNum:  make(map[int]int),
	}
}

func (f *fakeMatchRepo) CreateIfAbsent(ctx context.Context, match *models.Match) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byNum[match.MatchNumber]; ok {
		return false, nil
	}
	match.ID = f.nextID
	f.nextID++
	stored := *match
	f.byID[match.ID] = &stored
	f.byNum[match.MatchNumber] = match.ID
	return true, nil
}

func (f *fakeMatchRepo) GetByID(ctx context.Context, id int) (*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	match, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	copied := *match
	return &copied, nil
}

func (f *fakeMatchRepo) ListActive(ctx context.Context) ([]*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matches := make([]*models.Match, 0, len(f.byID))
	for _, match := range f.byID {
		if match.Status == models.MatchStatusCompleted {
			continue
		}
		copied := *match
		matches = append(matches, &copied)
	}
	return matches, nil
}

type fakeTeamRepo struct {
	mu    sync.Mutex
	byNum map[string]*models.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{byNum: make(map[string]*models.Team)}
}

func (f *fakeTeamRepo) EnsureByNumber(ctx context.Context, number string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byNum[number]; ok {
		return false, nil
	}
	f.byNum[number] = &models.Team{
		ID:               len(f.byNum) + 1,
		Number:           number,
		InspectionStatus: models.InspectionPending,
	}
	return true, nil
}

func (f *fakeTeamRepo) GetByNumber(ctx context.Context, number string) (*models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	team, ok := f.byNum[number]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	copied := *team
	return &copied, nil
}

func (f *fakeTeamRepo) UpdateInspectionStatus(ctx context.Context, number string, status models.InspectionStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	team, ok := f.byNum[number]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.InspectionStatus = status
	return nil
}

func (f *fakeTeamRepo) IncrementCard(ctx context.Context, number string, color models.CardColor) (*models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	team, ok := f.byNum[number]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	if color == models.CardRed {
		team.RedCards++
	} else {
		team.YellowCards++
	}
	copied := *team
	return &copied, nil
}

type scoreKey struct {
	matchID  int
	alliance models.Alliance
}

type fakeScoreRepo struct {
	mu      sync.Mutex
	nextID  int
	entries map[scoreKey]*models.ScoreEntry
}

func newFakeScoreRepo() *fakeScoreRepo {
	return &fakeScoreRepo{nextID: 1, entries: make(map[scoreKey]*models.ScoreEntry)}
}

func (f *fakeScoreRepo) Upsert(ctx context.Context, matchID int, alliance models.Alliance, patch *models.ScorePatch) (*models.ScoreEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := scoreKey{matchID: matchID, alliance: alliance}
	entry, ok := f.entries[key]
	if !ok {
		entry = &models.ScoreEntry{ID: f.nextID, MatchID: matchID, Alliance: alliance}
		f.nextID++
		f.entries[key] = entry
	}
	if entry.Finalised {
		return nil, repositories.ErrScoreEntryLocked
	}

	if patch.AllianceCharge != nil {
		entry.AllianceCharge = *patch.AllianceCharge
	}
	if patch.CapturedCharge != nil {
		entry.CapturedCharge = *patch.CapturedCharge
	}
	if patch.GoldenChargeStack != nil {
		entry.GoldenChargeStack = *patch.GoldenChargeStack
	}
	if patch.MinorPenalties != nil {
		entry.MinorPenalties = *patch.MinorPenalties
	}
	if patch.MajorPenalties != nil {
		entry.MajorPenalties = *patch.MajorPenalties
	}
	if patch.FullParking != nil {
		entry.FullParking = *patch.FullParking
	}
	if patch.PartialParking != nil {
		entry.PartialParking = *patch.PartialParking
	}
	if patch.Docked != nil {
		entry.Docked = *patch.Docked
	}
	if patch.Engaged != nil {
		entry.Engaged = *patch.Engaged
	}
	if patch.SuperchargeMode != nil {
		entry.SuperchargeMode = *patch.SuperchargeMode
	}
	if patch.SuperchargeEndTime != nil {
		entry.SuperchargeEndTime = *patch.SuperchargeEndTime
	}
	if patch.SubmittedBy != nil {
		entry.SubmittedBy = patch.SubmittedBy
	}

	copied := *entry
	return &copied, nil
}

func (f *fakeScoreRepo) GetByMatchAndAlliance(ctx context.Context, matchID int, alliance models.Alliance) (*models.ScoreEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[scoreKey{matchID: matchID, alliance: alliance}]
	if !ok {
		return nil, repositories.ErrScoreEntryNotFound
	}
	copied := *entry
	return &copied, nil
}

func (f *fakeScoreRepo) GetPair(ctx context.Context, matchID int) (*models.ScoreEntry, *models.ScoreEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var red, blue *models.ScoreEntry
	if entry, ok := f.entries[scoreKey{matchID: matchID, alliance: models.AllianceRed}]; ok {
		copied := *entry
		red = &copied
	}
	if entry, ok := f.entries[scoreKey{matchID: matchID, alliance: models.AllianceBlue}]; ok {
		copied := *entry
		blue = &copied
	}
	return red, blue, nil
}

func (f *fakeScoreRepo) Finalise(ctx context.Context, matchID int, confirmedBy int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	red, redOK := f.entries[scoreKey{matchID: matchID, alliance: models.AllianceRed}]
	blue, blueOK := f.entries[scoreKey{matchID: matchID, alliance: models.AllianceBlue}]
	if !redOK || !blueOK {
		return repositories.ErrScorePairIncomplete
	}
	if red.Finalised || blue.Finalised {
		return repositories.ErrScoreEntryLocked
	}

	red.Finalised = true
	blue.Finalised = true
	red.ConfirmedBy = &confirmedBy
	blue.ConfirmedBy = &confirmedBy
	return nil
}

type fakeBroadcaster struct {
	mu       sync.Mutex
	messages []live.Message
	rooms    []string
}

func (f *fakeBroadcaster) BroadcastToRoom(roomID string, message interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg, ok := message.(live.Message); ok {
		f.messages = append(f.messages, msg)
	}
	f.rooms = append(f.rooms, roomID)
}

func (f *fakeBroadcaster) byType(eventType string) []live.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []live.Message
	for _, msg := range f.messages {
		if msg.Type == eventType {
			out = append(out, msg)
		}
	}
	return out
}
