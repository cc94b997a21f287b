// Leaderboard service. The Redis sorted set is a cache over the users table;
// when Redis is down or disabled the service falls back to Postgres.
package core

import (
	"context"

	"wordquest/internal/repository"
	"wordquest/pkg/logger"
	"wordquest/pkg/models"
)

// LeaderboardService exposes the points ranking
type LeaderboardService interface {
	Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	Rank(ctx context.Context, userID string) (*models.UserRank, error)
}

type leaderboardService struct {
	userRepo    repository.UserRepository
	leaderboard repository.LeaderboardRepository
}

// NewLeaderboardService creates a new leaderboard service. leaderboard may be
// nil, in which case every read goes to Postgres.
func NewLeaderboardService(userRepo repository.UserRepository, leaderboard repository.LeaderboardRepository) LeaderboardService {
	return &leaderboardService{userRepo: userRepo, leaderboard: leaderboard}
}

// Top returns the highest-scoring players with usernames resolved
func (s *leaderboardService) Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	if s.leaderboard != nil {
		entries, err := s.topFromCache(ctx, limit)
		if err == nil && len(entries) > 0 {
			return entries, nil
		}
		if err != nil {
			logger.Warnf("leaderboard cache read failed, falling back to database: %v", err)
		}
	}
	return s.topFromDB(ctx, limit)
}

func (s *leaderboardService) topFromCache(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	ranked, err := s.leaderboard.Top(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(ranked))
	for i, r := range ranked {
		username := r.UserID
		if user, err := s.userRepo.GetByID(ctx, r.UserID); err == nil {
			username = user.Username
		}
		entries = append(entries, models.LeaderboardEntry{
			Rank:     i + 1,
			UserID:   r.UserID,
			Username: username,
			Points:   r.Points,
		})
	}
	return entries, nil
}

func (s *leaderboardService) topFromDB(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	users, err := s.userRepo.TopByPoints(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, models.LeaderboardEntry{
			Rank:     i + 1,
			UserID:   u.ID,
			Username: u.Username,
			Points:   u.TotalPoints,
		})
	}
	return entries, nil
}

// Rank returns the caller's own standing. Users with no cache entry yet get
// rank 0 with their authoritative point total.
func (s *leaderboardService) Rank(ctx context.Context, userID string) (*models.UserRank, error) {
	if s.leaderboard != nil {
		rank, points, total, err := s.leaderboard.Rank(ctx, userID)
		if err == nil {
			if rank == 0 {
				// not cached yet; report the database total
				if dbPoints, dbErr := s.userRepo.GetTotalPoints(ctx, userID); dbErr == nil {
					points = dbPoints
				}
			}
			return &models.UserRank{Rank: rank, Points: points, TotalUsers: total}, nil
		}
		logger.Warnf("leaderboard cache rank failed, falling back to database: %v", err)
	}

	points, err := s.userRepo.GetTotalPoints(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.UserRank{Rank: 0, Points: points, TotalUsers: 0}, nil
}
