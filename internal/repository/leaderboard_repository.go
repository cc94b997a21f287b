package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// leaderboardKey is the sorted set of user id -> total points
const leaderboardKey = "wordquest:leaderboard:points"

// RankedUser is one member of the points ranking
type RankedUser struct {
	UserID string
	Points int
}

// LeaderboardRepository maintains the points ranking in Redis. It is a cache:
// Postgres total_points stays authoritative and entries are rewritten from it
// whenever the two disagree.
type LeaderboardRepository interface {
	SetScore(ctx context.Context, userID string, points int) error
	Top(ctx context.Context, limit int) ([]RankedUser, error)
	Rank(ctx context.Context, userID string) (rank, points, total int, err error)
	Remove(ctx context.Context, userID string) error
}

type leaderboardRepository struct {
	client *redis.Client
}

// NewLeaderboardRepository creates a Redis leaderboard repository
func NewLeaderboardRepository(client *redis.Client) LeaderboardRepository {
	return &leaderboardRepository{client: client}
}

// SetScore writes the authoritative total for a user. ZADD overwrites, so a
// missed earlier update heals on the next write.
func (r *leaderboardRepository) SetScore(ctx context.Context, userID string, points int) error {
	err := r.client.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(points),
		Member: userID,
	}).Err()
	if err != nil {
		return fmt.Errorf("leaderboard zadd: %w", err)
	}
	return nil
}

// Top returns the highest-scoring users
func (r *leaderboardRepository) Top(ctx context.Context, limit int) ([]RankedUser, error) {
	if limit <= 0 {
		limit = 10
	}
	entries, err := r.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("leaderboard zrevrange: %w", err)
	}

	ranked := make([]RankedUser, 0, len(entries))
	for _, e := range entries {
		userID, ok := e.Member.(string)
		if !ok {
			continue
		}
		ranked = append(ranked, RankedUser{UserID: userID, Points: int(e.Score)})
	}
	return ranked, nil
}

// Rank returns the 1-based rank and score for one user; rank 0 means the user
// is not on the board yet
func (r *leaderboardRepository) Rank(ctx context.Context, userID string) (int, int, int, error) {
	total, err := r.client.ZCard(ctx, leaderboardKey).Result()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("leaderboard zcard: %w", err)
	}

	rank, err := r.client.ZRevRank(ctx, leaderboardKey, userID).Result()
	if err == redis.Nil {
		return 0, 0, int(total), nil
	}
	if err != nil {
		return 0, 0, 0, fmt.Errorf("leaderboard zrevrank: %w", err)
	}

	score, err := r.client.ZScore(ctx, leaderboardKey, userID).Result()
	if err != nil && err != redis.Nil {
		return 0, 0, 0, fmt.Errorf("leaderboard zscore: %w", err)
	}

	return int(rank) + 1, int(score), int(total), nil
}

// Remove drops a user from the board (account deletion)
func (r *leaderboardRepository) Remove(ctx context.Context, userID string) error {
	if err := r.client.ZRem(ctx, leaderboardKey, userID).Err(); err != nil {
		return fmt.Errorf("leaderboard zrem: %w", err)
	}
	return nil
}
