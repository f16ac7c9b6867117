package services

import (
	"context"
	"testing"

	"github.com/Akhil2453/NRLScoringApp/live"
	"github.com/Akhil2453/NRLScoringApp/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }

func seedMatch(t *testing.T, repo *fakeMatchRepo, matchNumber int) int {
	t.Helper()
	match := &models.Match{
		MatchNumber: matchNumber,
		Arena:       "Alpha",
		RedTeams:    []string{"101", "102"},
		BlueTeams:   []string{"201", "202"},
		Status:      models.MatchStatusPending,
	}
	created, err := repo.CreateIfAbsent(context.Background(), match)
	require.NoError(t, err)
	require.True(t, created)
	return match.ID
}

func newScoreFixture(t *testing.T) (ScoreService, *fakeMatchRepo, *fakeScoreRepo, *fakeBroadcaster, int) {
	t.Helper()
	matchRepo := newFakeMatchRepo()
	scoreRepo := newFakeScoreRepo()
	hub := &fakeBroadcaster{}
	matchID := seedMatch(t, matchRepo, 1)
	return NewScoreService(matchRepo, scoreRepo, hub), matchRepo, scoreRepo, hub, matchID
}

func TestSubmitScoreCreatesEntryWithDefaults(t *testing.T) {
	svc, _, _, hub, matchID := newScoreFixture(t)

	result, err := svc.SubmitScore(context.Background(), matchID, models.AllianceRed, &models.ScorePatch{
		AllianceCharge: intPtr(3),
		SubmittedBy:    intPtr(7),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Entry.AllianceCharge)
	assert.Equal(t, 0, result.Entry.CapturedCharge)
	assert.Equal(t, 15, result.TotalScore)
	assert.Equal(t, 0, result.GoldenPoints)
	assert.False(t, result.Entry.Finalised)
	require.NotNil(t, result.Entry.SubmittedBy)
	assert.Equal(t, 7, *result.Entry.SubmittedBy)

	// one event, fanned out to the match room and the global room
	events := hub.byType(live.EventScoreUpdate)
	require.Len(t, events, 2)
	assert.Equal(t, live.MatchRoom(matchID), events[0].RoomID)
	assert.Equal(t, live.RoomScores, events[1].RoomID)
}

func TestSubmitScoreMergePatchKeepsOmittedFields(t *testing.T) {
	svc, _, _, _, matchID := newScoreFixture(t)
	ctx := context.Background()

	_, err := svc.SubmitScore(ctx, matchID, models.AllianceRed, &models.ScorePatch{
		AllianceCharge:    intPtr(4),
		GoldenChargeStack: strPtr(`[[true],[true]]`),
		SuperchargeMode:   boolPtr(true),
	})
	require.NoError(t, err)

	// patch a single field, everything else must survive
	result, err := svc.SubmitScore(ctx, matchID, models.AllianceRed, &models.ScorePatch{
		MinorPenalties: intPtr(2),
	})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Entry.AllianceCharge)
	assert.Equal(t, `[[true],[true]]`, result.Entry.GoldenChargeStack)
	assert.True(t, result.Entry.SuperchargeMode)
	assert.Equal(t, 2, result.Entry.MinorPenalties)
	// 4 units at supercharge rate 6, plus the column bonus, minus penalties
	assert.Equal(t, 4*6+25-2*5, result.TotalScore)
	assert.Equal(t, 25, result.GoldenPoints)
}

func TestSubmitScoreNilPatchIsNoOpWrite(t *testing.T) {
	svc, _, _, _, matchID := newScoreFixture(t)
	ctx := context.Background()

	_, err := svc.SubmitScore(ctx, matchID, models.AllianceBlue, &models.ScorePatch{Docked: intPtr(1)})
	require.NoError(t, err)

	result, err := svc.SubmitScore(ctx, matchID, models.AllianceBlue, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Entry.Docked)
	assert.Equal(t, 15, result.TotalScore)
}

func TestSubmitScoreUnknownMatch(t *testing.T) {
	svc, _, _, _, _ := newScoreFixture(t)

	_, err := svc.SubmitScore(context.Background(), 999, models.AllianceRed, &models.ScorePatch{})
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestSubmitScoreInvalidAlliance(t *testing.T) {
	svc, _, _, _, matchID := newScoreFixture(t)

	_, err := svc.SubmitScore(context.Background(), matchID, "green", &models.ScorePatch{})
	assert.ErrorIs(t, err, ErrInvalidAlliance)
}

func TestSubmitScoreRejectedAfterFinalise(t *testing.T) {
	svc, _, _, _, matchID := newScoreFixture(t)
	ctx := context.Background()

	_, err := svc.SubmitScore(ctx, matchID, models.AllianceRed, &models.ScorePatch{AllianceCharge: intPtr(1)})
	require.NoError(t, err)
	_, err = svc.SubmitScore(ctx, matchID, models.AllianceBlue, &models.ScorePatch{AllianceCharge: intPtr(2)})
	require.NoError(t, err)
	require.NoError(t, svc.FinaliseMatch(ctx, matchID, 42))

	_, err = svc.SubmitScore(ctx, matchID, models.AllianceRed, &models.ScorePatch{AllianceCharge: intPtr(9)})
	assert.ErrorIs(t, err, ErrScoreAlreadyFinalised)
}

func TestFinaliseMatchRequiresBothAlliances(t *testing.T) {
	svc, _, _, _, matchID := newScoreFixture(t)
	ctx := context.Background()

	// no entries at all
	assert.ErrorIs(t, svc.FinaliseMatch(ctx, matchID, 42), ErrScoresNotSubmitted)

	// only one alliance submitted
	_, err := svc.SubmitScore(ctx, matchID, models.AllianceRed, &models.ScorePatch{AllianceCharge: intPtr(1)})
	require.NoError(t, err)
	assert.ErrorIs(t, svc.FinaliseMatch(ctx, matchID, 42), ErrScoresNotSubmitted)
}

func TestFinaliseMatchLocksBothEntriesAndKeepsFirstConfirmer(t *testing.T) {
	svc, _, scoreRepo, hub, matchID := newScoreFixture(t)
	ctx := context.Background()

	_, err := svc.SubmitScore(ctx, matchID, models.AllianceRed, &models.ScorePatch{AllianceCharge: intPtr(3)})
	require.NoError(t, err)
	_, err = svc.SubmitScore(ctx, matchID, models.AllianceBlue, &models.ScorePatch{CapturedCharge: intPtr(2)})
	require.NoError(t, err)

	require.NoError(t, svc.FinaliseMatch(ctx, matchID, 42))

	red, blue, err := scoreRepo.GetPair(ctx, matchID)
	require.NoError(t, err)
	assert.True(t, red.Finalised)
	assert.True(t, blue.Finalised)
	require.NotNil(t, red.ConfirmedBy)
	assert.Equal(t, 42, *red.ConfirmedBy)

	events := hub.byType(live.EventMatchFinalised)
	require.Len(t, events, 2)
	payload, ok := events[0].Payload.(*MatchFinalisedPayload)
	require.True(t, ok)
	assert.Equal(t, 15, payload.RedTotal)
	assert.Equal(t, 20, payload.BlueTotal)
	assert.Equal(t, 42, payload.ConfirmedBy)

	// second finalisation must fail and leave the first confirmer in place
	assert.ErrorIs(t, svc.FinaliseMatch(ctx, matchID, 77), ErrScoreAlreadyFinalised)
	red, _, err = scoreRepo.GetPair(ctx, matchID)
	require.NoError(t, err)
	assert.Equal(t, 42, *red.ConfirmedBy)
}

func TestFinaliseMatchUnknownMatch(t *testing.T) {
	svc, _, _, _, _ := newScoreFixture(t)

	assert.ErrorIs(t, svc.FinaliseMatch(context.Background(), 999, 42), ErrMatchNotFound)
}

func TestBroadcastPublishesWithoutStoring(t *testing.T) {
	svc, _, scoreRepo, hub, matchID := newScoreFixture(t)

	require.NoError(t, svc.Broadcast(matchID, models.AllianceRed, 125))

	_, err := scoreRepo.GetByMatchAndAlliance(context.Background(), matchID, models.AllianceRed)
	assert.Error(t, err)

	events := hub.byType(live.EventScoreUpdate)
	require.Len(t, events, 2)
	payload, ok := events[0].Payload.(*ScoreUpdatePayload)
	require.True(t, ok)
	assert.Equal(t, 125, payload.Score)
	assert.Nil(t, payload.TotalScore)
}

func TestBroadcastInvalidAlliance(t *testing.T) {
	svc, _, _, _, matchID := newScoreFixture(t)

	assert.ErrorIs(t, svc.Broadcast(matchID, "purple", 10), ErrInvalidAlliance)
}

func TestSubmitScoreWorksWithoutHub(t *testing.T) {
	matchRepo := newFakeMatchRepo()
	scoreRepo := newFakeScoreRepo()
	matchID := seedMatch(t, matchRepo, 1)
	svc := NewScoreService(matchRepo, scoreRepo, nil)

	result, err := svc.SubmitScore(context.Background(), matchID, models.AllianceRed, &models.ScorePatch{Engaged: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, 10, result.TotalScore)
}
