package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordquest/internal/repository"
	"wordquest/pkg/models"
)

// fakeCatalog serves a single chapter with an ordered mission list
type fakeCatalog struct {
	repository.BookRepository
	chapter  *models.Chapter
	missions []models.Mission
}

func (f *fakeCatalog) GetChapter(ctx context.Context, id string) (*models.Chapter, error) {
	if f.chapter == nil || f.chapter.ID != id {
		return nil, models.ErrChapterNotFound
	}
	return f.chapter, nil
}

func (f *fakeCatalog) GetMission(ctx context.Context, id string) (*models.Mission, error) {
	for i := range f.missions {
		if f.missions[i].ID == id {
			return &f.missions[i], nil
		}
	}
	return nil, models.ErrMissionNotFound
}

func (f *fakeCatalog) ListMissions(ctx context.Context, chapterID string) ([]models.Mission, error) {
	return f.missions, nil
}

// fakeProgress replays stored progress and records the submit it receives
type fakeProgress struct {
	repository.ProgressRepository
	stored    map[string]*models.MissionProgress
	submitted *repository.SubmitParams
	outcome   *repository.SubmitOutcome
}

func (f *fakeProgress) GetChapterMissionProgress(ctx context.Context, userID, chapterID string) (map[string]*models.MissionProgress, error) {
	if f.stored == nil {
		return map[string]*models.MissionProgress{}, nil
	}
	return f.stored, nil
}

func (f *fakeProgress) SubmitMission(ctx context.Context, params repository.SubmitParams) (*repository.SubmitOutcome, error) {
	f.submitted = &params

	// mirror the persistence rules: attempts increment, best score is
	// monotone, one aggregated points increment
	prevBest, prevAttempts := 0, 0
	if p := f.stored[params.MissionID]; p != nil {
		prevBest, prevAttempts = p.BestScore, p.Attempts
	}
	best := prevBest
	if params.Score > best {
		best = params.Score
	}
	missionPoints := params.Score * 10
	achievementPoints := 0
	var newAchievements []models.Achievement
	for _, def := range params.Fired {
		achievementPoints += def.Points
		newAchievements = append(newAchievements, models.Achievement{
			ID: def.ID, UserID: params.UserID, Title: def.Title, Points: def.Points,
		})
	}

	f.outcome = &repository.SubmitOutcome{
		BestScore:       best,
		Attempts:        prevAttempts + 1,
		MissionPoints:   missionPoints,
		PointsAwarded:   missionPoints + achievementPoints,
		TotalPoints:     missionPoints + achievementPoints,
		UnlocksNext:     best >= models.UnlockThreshold,
		NewAchievements: newAchievements,
	}
	return f.outcome, nil
}

// fakeBoard records leaderboard writes
type fakeBoard struct {
	repository.LeaderboardRepository
	userID string
	points int
}

func (f *fakeBoard) SetScore(ctx context.Context, userID string, points int) error {
	f.userID = userID
	f.points = points
	return nil
}

// fakeNotifier records pushed events
type fakeNotifier struct {
	achievements []models.Achievement
	unlocked     []string
}

func (f *fakeNotifier) NotifyAchievement(userID string, a models.Achievement) {
	f.achievements = append(f.achievements, a)
}

func (f *fakeNotifier) NotifyMissionUnlocked(userID, chapterID, missionID string) {
	f.unlocked = append(f.unlocked, missionID)
}

func twoMissionChapter() *fakeCatalog {
	return &fakeCatalog{
		chapter: &models.Chapter{ID: "ch1", BookID: "bk1"},
		missions: []models.Mission{
			{
				ID: "m1", ChapterID: "ch1", Position: 1, Mode: models.ModeKeywords,
				Data: models.MissionData{CorrectWords: []string{"sol", "luna"}},
			},
			{
				ID: "m2", ChapterID: "ch1", Position: 2, Mode: models.ModeOrderSequence,
				Data: models.MissionData{Sequence: []models.SequenceStep{{ID: "s1"}, {ID: "s2"}}},
			},
		},
	}
}

func TestSubmitMissionFullPipeline(t *testing.T) {
	catalog := twoMissionChapter()
	progress := &fakeProgress{}
	board := &fakeBoard{}
	notifier := &fakeNotifier{}
	svc := NewProgressService(catalog, progress, nil, board, notifier)

	result, err := svc.SubmitMission(context.Background(), "u1", "m1", models.SubmitMissionRequest{
		SelectedWords: []string{"sol", "luna"},
	})
	require.NoError(t, err)

	assert.Equal(t, 100, result.Score)
	assert.Equal(t, 100, result.BestScore)
	assert.Equal(t, 1, result.Attempts)
	assert.Equal(t, 1000, result.MissionPoints)
	assert.True(t, result.UnlocksNext)

	// 100 first try on keywords fires perfect_first_try (500) and
	// keyword_master (200) on top of the 1000 mission points
	assert.Equal(t, 1700, result.PointsAwarded)
	require.Len(t, result.NewAchievements, 2)

	require.NotNil(t, progress.submitted)
	assert.Equal(t, "bk1", progress.submitted.BookID)
	assert.Equal(t, models.ModeKeywords, progress.submitted.Mode)

	// leaderboard refreshed with the committed total
	assert.Equal(t, "u1", board.userID)
	assert.Equal(t, result.TotalPoints, board.points)

	// achievements and the newly opened mission pushed to the feed
	assert.Len(t, notifier.achievements, 2)
	assert.Equal(t, []string{"m2"}, notifier.unlocked)
}

func TestSubmitMissionLocked(t *testing.T) {
	catalog := twoMissionChapter()
	svc := NewProgressService(catalog, &fakeProgress{}, nil, nil, nil)

	_, err := svc.SubmitMission(context.Background(), "u1", "m2", models.SubmitMissionRequest{
		Order: []string{"s1", "s2"},
	})
	require.ErrorIs(t, err, models.ErrMissionLocked)
}

func TestSubmitMissionUnlockedAfterPass(t *testing.T) {
	catalog := twoMissionChapter()
	progress := &fakeProgress{
		stored: map[string]*models.MissionProgress{
			"m1": {MissionID: "m1", Completed: true, BestScore: 70, Attempts: 1},
		},
	}
	svc := NewProgressService(catalog, progress, nil, nil, nil)

	result, err := svc.SubmitMission(context.Background(), "u1", "m2", models.SubmitMissionRequest{
		Order: []string{"s2", "s1"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
	assert.False(t, result.UnlocksNext)
}

func TestSubmitMissionBestScoreMonotone(t *testing.T) {
	catalog := twoMissionChapter()
	progress := &fakeProgress{
		stored: map[string]*models.MissionProgress{
			"m1": {MissionID: "m1", Completed: true, BestScore: 100, Attempts: 1},
		},
	}
	svc := NewProgressService(catalog, progress, nil, nil, nil)

	// a worse retry keeps the recorded best
	result, err := svc.SubmitMission(context.Background(), "u1", "m1", models.SubmitMissionRequest{
		SelectedWords: []string{"sol"},
	})
	require.NoError(t, err)
	assert.Equal(t, 50, result.Score)
	assert.Equal(t, 100, result.BestScore)
	assert.Equal(t, 2, result.Attempts)
}

func TestSubmitMissionAttemptsGateAchievements(t *testing.T) {
	catalog := twoMissionChapter()
	progress := &fakeProgress{
		stored: map[string]*models.MissionProgress{
			"m1": {MissionID: "m1", Completed: true, BestScore: 50, Attempts: 1},
		},
	}
	svc := NewProgressService(catalog, progress, nil, nil, nil)

	// perfect score on the second attempt: keyword_master fires,
	// perfect_first_try does not
	result, err := svc.SubmitMission(context.Background(), "u1", "m1", models.SubmitMissionRequest{
		SelectedWords: []string{"sol", "luna"},
	})
	require.NoError(t, err)
	require.Len(t, result.NewAchievements, 1)
	assert.Equal(t, models.AchievementKeywordMaster, result.NewAchievements[0].ID)
}

func TestGetMissionStatusesStripsAnswerKeys(t *testing.T) {
	catalog := twoMissionChapter()
	svc := NewProgressService(catalog, &fakeProgress{}, nil, nil, nil)

	statuses, err := svc.GetMissionStatuses(context.Background(), "u1", "ch1")
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	assert.Empty(t, statuses[0].Mission.Data.CorrectWords)
	for _, step := range statuses[1].Mission.Data.Sequence {
		assert.NotEmpty(t, step.ID)
	}
	assert.True(t, statuses[0].Unlocked)
	assert.False(t, statuses[1].Unlocked)
}

func TestRecordPositionValidatesChapter(t *testing.T) {
	catalog := twoMissionChapter()
	progress := &fakeProgress{}
	svc := NewProgressService(catalog, progress, nil, nil, nil)

	err := svc.RecordPosition(context.Background(), "u1", "bk1", models.RecordPositionRequest{})
	require.ErrorIs(t, err, models.ErrInvalidInput)

	err = svc.RecordPosition(context.Background(), "u1", "other-book", models.RecordPositionRequest{
		ChapterID: "ch1", MissionID: "m1",
	})
	require.ErrorIs(t, err, models.ErrInvalidInput)
}
