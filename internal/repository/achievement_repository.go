package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"wordquest/pkg/models"
)

// AchievementRepository reads per-user achievement records. Awards are
// written by the submission transaction, never here.
type AchievementRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Achievement, error)
	Has(ctx context.Context, userID, achievementID string) (bool, error)
}

type achievementRepository struct {
	pool *pgxpool.Pool
}

// NewAchievementRepository creates a new PostgreSQL achievement repository
func NewAchievementRepository(pool *pgxpool.Pool) AchievementRepository {
	return &achievementRepository{pool: pool}
}

// ListByUser returns the user's achievements, most recent first
func (r *achievementRepository) ListByUser(ctx context.Context, userID string) ([]models.Achievement, error) {
	query := `
		SELECT user_id, id, title, description, category, points, unlocked_at
		FROM achievements
		WHERE user_id = $1
		ORDER BY unlocked_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapDBError(err, "list_achievements")
	}
	defer rows.Close()

	var achievements []models.Achievement
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(
			&a.UserID, &a.ID, &a.Title, &a.Description, &a.Category, &a.Points, &a.UnlockedAt,
		); err != nil {
			return nil, mapDBError(err, "list_achievements")
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

// Has checks whether the user already holds the given rule key
func (r *achievementRepository) Has(ctx context.Context, userID, achievementID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM achievements WHERE user_id = $1 AND id = $2)`,
		userID, achievementID,
	).Scan(&exists)
	if err != nil {
		return false, mapDBError(err, "check_achievement")
	}
	return exists, nil
}
