// Progress service: mission submissions, unlock gating and per-user progress
// reads. Scoring and achievement evaluation happen here; persistence is one
// transaction in the repository.
package core

import (
	"context"
	"fmt"

	"wordquest/internal/repository"
	"wordquest/pkg/logger"
	"wordquest/pkg/models"
)

// ProgressNotifier pushes real-time events to a connected player. The
// websocket hub implements it; a nil notifier disables the feed.
type ProgressNotifier interface {
	NotifyAchievement(userID string, achievement models.Achievement)
	NotifyMissionUnlocked(userID, chapterID, missionID string)
}

// ProgressService handles mission play for authenticated players
type ProgressService interface {
	// SubmitMission scores the raw answers server-side and applies the
	// outcome atomically. Locked missions are rejected before scoring.
	SubmitMission(ctx context.Context, userID, missionID string, req models.SubmitMissionRequest) (*models.SubmitResult, error)

	RecordPosition(ctx context.Context, userID, bookID string, req models.RecordPositionRequest) error

	GetMissionStatuses(ctx context.Context, userID, chapterID string) ([]models.MissionStatus, error)
	GetChapterProgress(ctx context.Context, userID, chapterID string) (*models.ChapterProgress, error)
	GetBookProgress(ctx context.Context, userID, bookID string) (*models.BookProgress, error)
	GetAchievements(ctx context.Context, userID string) ([]models.Achievement, error)
}

type progressService struct {
	bookRepo        repository.BookRepository
	progressRepo    repository.ProgressRepository
	achievementRepo repository.AchievementRepository
	leaderboard     repository.LeaderboardRepository
	notifier        ProgressNotifier
}

// NewProgressService creates a new progress service. leaderboard and notifier
// may be nil; both are best-effort side channels.
func NewProgressService(
	bookRepo repository.BookRepository,
	progressRepo repository.ProgressRepository,
	achievementRepo repository.AchievementRepository,
	leaderboard repository.LeaderboardRepository,
	notifier ProgressNotifier,
) ProgressService {
	return &progressService{
		bookRepo:        bookRepo,
		progressRepo:    progressRepo,
		achievementRepo: achievementRepo,
		leaderboard:     leaderboard,
		notifier:        notifier,
	}
}

// SubmitMission runs the full submission pipeline:
//
//  1. load the mission and verify it is unlocked for the user
//  2. score the raw answers against the stored answer key
//  3. evaluate achievement rules on the outcome
//  4. persist everything in one transaction
//  5. refresh the leaderboard cache and push notifications (best effort)
func (s *progressService) SubmitMission(ctx context.Context, userID, missionID string, req models.SubmitMissionRequest) (*models.SubmitResult, error) {
	mission, err := s.bookRepo.GetMission(ctx, missionID)
	if err != nil {
		return nil, err
	}
	chapter, err := s.bookRepo.GetChapter(ctx, mission.ChapterID)
	if err != nil {
		return nil, err
	}

	missions, err := s.bookRepo.ListMissions(ctx, mission.ChapterID)
	if err != nil {
		return nil, err
	}
	progress, err := s.progressRepo.GetChapterMissionProgress(ctx, userID, mission.ChapterID)
	if err != nil {
		return nil, err
	}
	idx := missionIndex(missions, missionID)
	if idx < 0 {
		return nil, models.ErrMissionNotFound
	}
	if !MissionUnlocked(idx, missions, progress) {
		return nil, fmt.Errorf("%w: complete the previous mission with %d%% or better first",
			models.ErrMissionLocked, models.UnlockThreshold)
	}

	score, err := ScoreSubmission(mission, req)
	if err != nil {
		return nil, err
	}

	prevAttempts := 0
	if p := progress[missionID]; p != nil {
		prevAttempts = p.Attempts
	}
	fired := EvaluateAchievements(MissionOutcome{
		Score:    score,
		Mode:     mission.Mode,
		Attempts: prevAttempts + 1,
	})

	outcome, err := s.progressRepo.SubmitMission(ctx, repository.SubmitParams{
		UserID:    userID,
		BookID:    chapter.BookID,
		ChapterID: mission.ChapterID,
		MissionID: missionID,
		Mode:      mission.Mode,
		Score:     score,
		Fired:     fired,
	})
	if err != nil {
		return nil, err
	}

	logger.Submission(userID, missionID, mission.Mode, score, outcome.PointsAwarded)
	s.afterCommit(ctx, userID, mission, missions, idx, outcome)

	return &models.SubmitResult{
		Score:           score,
		BestScore:       outcome.BestScore,
		Attempts:        outcome.Attempts,
		MissionPoints:   outcome.MissionPoints,
		PointsAwarded:   outcome.PointsAwarded,
		TotalPoints:     outcome.TotalPoints,
		UnlocksNext:     outcome.UnlocksNext,
		NewAchievements: outcome.NewAchievements,
	}, nil
}

// afterCommit runs the best-effort side channels. Failures are logged, never
// surfaced: the submission is already committed.
func (s *progressService) afterCommit(ctx context.Context, userID string, mission *models.Mission, missions []models.Mission, idx int, outcome *repository.SubmitOutcome) {
	if s.leaderboard != nil {
		if err := s.leaderboard.SetScore(ctx, userID, outcome.TotalPoints); err != nil {
			logger.Warnf("leaderboard update failed for user %s: %v", userID, err)
		}
	}
	if s.notifier == nil {
		return
	}
	for _, a := range outcome.NewAchievements {
		logger.Achievement(userID, a.ID, a.Points)
		s.notifier.NotifyAchievement(userID, a)
	}
	if outcome.UnlocksNext && idx+1 < len(missions) {
		s.notifier.NotifyMissionUnlocked(userID, mission.ChapterID, missions[idx+1].ID)
	}
}

// RecordPosition moves the user's navigation cursor within a book
func (s *progressService) RecordPosition(ctx context.Context, userID, bookID string, req models.RecordPositionRequest) error {
	if req.ChapterID == "" || req.MissionID == "" {
		return fmt.Errorf("%w: chapter_id and mission_id are required", models.ErrInvalidInput)
	}
	chapter, err := s.bookRepo.GetChapter(ctx, req.ChapterID)
	if err != nil {
		return err
	}
	if chapter.BookID != bookID {
		return fmt.Errorf("%w: chapter does not belong to book", models.ErrInvalidInput)
	}
	return s.progressRepo.RecordPosition(ctx, userID, bookID, req.ChapterID, req.MissionID)
}

// GetMissionStatuses returns a chapter's missions with the caller's progress
// and unlock state, answer keys stripped.
func (s *progressService) GetMissionStatuses(ctx context.Context, userID, chapterID string) ([]models.MissionStatus, error) {
	if _, err := s.bookRepo.GetChapter(ctx, chapterID); err != nil {
		return nil, err
	}
	missions, err := s.bookRepo.ListMissions(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	progress, err := s.progressRepo.GetChapterMissionProgress(ctx, userID, chapterID)
	if err != nil {
		return nil, err
	}

	for i := range missions {
		missions[i].Data = missions[i].Data.PlayerView()
	}
	return MissionStatuses(missions, progress), nil
}

// GetChapterProgress returns the user's chapter record, nil when untouched
func (s *progressService) GetChapterProgress(ctx context.Context, userID, chapterID string) (*models.ChapterProgress, error) {
	return s.progressRepo.GetChapterProgress(ctx, userID, chapterID)
}

// GetBookProgress returns the user's navigation cursor, nil when untouched
func (s *progressService) GetBookProgress(ctx context.Context, userID, bookID string) (*models.BookProgress, error) {
	return s.progressRepo.GetBookProgress(ctx, userID, bookID)
}

// GetAchievements returns the user's achievements, most recent first
func (s *progressService) GetAchievements(ctx context.Context, userID string) ([]models.Achievement, error) {
	return s.achievementRepo.ListByUser(ctx, userID)
}

func missionIndex(missions []models.Mission, missionID string) int {
	for i, m := range missions {
		if m.ID == missionID {
			return i
		}
	}
	return -1
}
