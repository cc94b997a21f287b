package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wordquest/pkg/models"
)

// SubmitParams is the input to the transactional mission submission
type SubmitParams struct {
	UserID    string
	BookID    string
	ChapterID string
	MissionID string
	Mode      string
	Score     int

	// Achievements fired by the evaluator for this outcome. Which of them
	// actually award is decided here: a rule key already held by the user
	// is a no-op.
	Fired []models.AchievementDef
}

// SubmitOutcome is the committed state after a submission
type SubmitOutcome struct {
	BestScore       int
	Attempts        int
	MissionPoints   int
	PointsAwarded   int
	TotalPoints     int
	UnlocksNext     bool
	NewAchievements []models.Achievement
}

// ProgressRepository handles per-user progress persistence
type ProgressRepository interface {
	// SubmitMission applies one scored submission atomically: mission
	// progress upsert with best-score semantics, chapter/book progress
	// upserts, insert-if-absent achievements, and a single aggregated
	// total_points increment. Either everything commits or nothing does.
	SubmitMission(ctx context.Context, params SubmitParams) (*SubmitOutcome, error)

	RecordPosition(ctx context.Context, userID, bookID, chapterID, missionID string) error

	GetMissionProgress(ctx context.Context, userID, missionID string) (*models.MissionProgress, error)
	GetChapterMissionProgress(ctx context.Context, userID, chapterID string) (map[string]*models.MissionProgress, error)
	GetChapterProgress(ctx context.Context, userID, chapterID string) (*models.ChapterProgress, error)
	GetBookProgress(ctx context.Context, userID, bookID string) (*models.BookProgress, error)
}

type progressRepository struct {
	pool *pgxpool.Pool
}

// NewProgressRepository creates a new PostgreSQL progress repository
func NewProgressRepository(pool *pgxpool.Pool) ProgressRepository {
	return &progressRepository{pool: pool}
}

// SubmitMission runs the whole submission inside one transaction. The
// mission_progress row is locked first so concurrent submissions for the same
// mission serialize instead of losing updates.
func (r *progressRepository) SubmitMission(ctx context.Context, params SubmitParams) (*SubmitOutcome, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, mapDBError(err, "begin_submit")
	}
	defer tx.Rollback(ctx)

	now := time.Now()

	// Read-modify-write under a row lock
	var prevBest, prevAttempts int
	err = tx.QueryRow(ctx, `
		SELECT best_score, attempts FROM mission_progress
		WHERE user_id = $1 AND mission_id = $2
		FOR UPDATE
	`, params.UserID, params.MissionID).Scan(&prevBest, &prevAttempts)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, mapDBError(err, "lock_mission_progress")
	}

	attempts := prevAttempts + 1
	bestScore := prevBest
	if params.Score > bestScore {
		bestScore = params.Score
	}
	missionPoints := params.Score * 10
	unlocksNext := bestScore >= models.UnlockThreshold

	_, err = tx.Exec(ctx, `
		INSERT INTO mission_progress
			(user_id, book_id, chapter_id, mission_id, completed, best_score,
			 current_score, attempts, mode, points, completed_at, unlocks_next)
		VALUES ($1, $2, $3, $4, TRUE, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, mission_id) DO UPDATE SET
			completed     = TRUE,
			best_score    = EXCLUDED.best_score,
			current_score = EXCLUDED.current_score,
			attempts      = EXCLUDED.attempts,
			mode          = EXCLUDED.mode,
			points        = EXCLUDED.points,
			completed_at  = EXCLUDED.completed_at,
			unlocks_next  = EXCLUDED.unlocks_next
	`, params.UserID, params.BookID, params.ChapterID, params.MissionID,
		bestScore, params.Score, attempts, params.Mode, missionPoints, now, unlocksNext)
	if err != nil {
		return nil, mapDBError(err, "upsert_mission_progress")
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO chapter_progress (user_id, book_id, chapter_id, missions_completed, last_access)
		VALUES ($1, $2, $3, ARRAY[$4], $5)
		ON CONFLICT (user_id, chapter_id) DO UPDATE SET
			missions_completed = (
				SELECT ARRAY(SELECT DISTINCT unnest(chapter_progress.missions_completed || $4))
			),
			last_access = EXCLUDED.last_access
	`, params.UserID, params.BookID, params.ChapterID, params.MissionID, now)
	if err != nil {
		return nil, mapDBError(err, "upsert_chapter_progress")
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO book_progress (user_id, book_id, last_access)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, book_id) DO UPDATE SET last_access = EXCLUDED.last_access
	`, params.UserID, params.BookID, now)
	if err != nil {
		return nil, mapDBError(err, "upsert_book_progress")
	}

	// Insert-if-absent achievement awards; the rule key is the idempotency
	// key, so repeat qualifying attempts award nothing
	var newAchievements []models.Achievement
	achievementPoints := 0
	for _, def := range params.Fired {
		var unlockedAt time.Time
		err = tx.QueryRow(ctx, `
			INSERT INTO achievements (user_id, id, title, description, category, points, unlocked_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (user_id, id) DO NOTHING
			RETURNING unlocked_at
		`, params.UserID, def.ID, def.Title, def.Description, def.Category, def.Points, now).Scan(&unlockedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			continue // already held
		}
		if err != nil {
			return nil, mapDBError(err, "insert_achievement")
		}
		achievementPoints += def.Points
		newAchievements = append(newAchievements, models.Achievement{
			ID:          def.ID,
			UserID:      params.UserID,
			Title:       def.Title,
			Description: def.Description,
			Category:    def.Category,
			Points:      def.Points,
			UnlockedAt:  unlockedAt,
		})
	}

	// One aggregated increment for mission points plus new achievements
	awarded := missionPoints + achievementPoints
	var totalPoints int
	err = tx.QueryRow(ctx, `
		UPDATE users SET total_points = total_points + $2
		WHERE id = $1
		RETURNING total_points
	`, params.UserID, awarded).Scan(&totalPoints)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewHTTPError(models.ErrCodeNotFound, "user not found", 404, err)
	}
	if err != nil {
		return nil, mapDBError(err, "increment_total_points")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapDBError(err, "commit_submit")
	}

	return &SubmitOutcome{
		BestScore:       bestScore,
		Attempts:        attempts,
		MissionPoints:   missionPoints,
		PointsAwarded:   awarded,
		TotalPoints:     totalPoints,
		UnlocksNext:     unlocksNext,
		NewAchievements: newAchievements,
	}, nil
}

// RecordPosition upserts the navigation cursor for a book
func (r *progressRepository) RecordPosition(ctx context.Context, userID, bookID, chapterID, missionID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO book_progress (user_id, book_id, current_chapter, current_mission, last_access)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, book_id) DO UPDATE SET
			current_chapter = EXCLUDED.current_chapter,
			current_mission = EXCLUDED.current_mission,
			last_access     = EXCLUDED.last_access
	`, userID, bookID, chapterID, missionID)
	if err != nil {
		return mapDBError(err, "record_position")
	}
	return nil
}

const missionProgressColumns = `user_id, book_id, chapter_id, mission_id, completed, best_score,
	current_score, attempts, mode, points, COALESCE(completed_at, 'epoch'::timestamptz), unlocks_next`

func scanMissionProgress(row pgx.Row) (*models.MissionProgress, error) {
	p := &models.MissionProgress{}
	err := row.Scan(
		&p.UserID, &p.BookID, &p.ChapterID, &p.MissionID, &p.Completed, &p.BestScore,
		&p.CurrentScore, &p.Attempts, &p.Mode, &p.Points, &p.CompletedAt, &p.UnlocksNext,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetMissionProgress returns nil without error when the user never attempted
// the mission - absence means "never attempted", not failure
func (r *progressRepository) GetMissionProgress(ctx context.Context, userID, missionID string) (*models.MissionProgress, error) {
	query := `SELECT ` + missionProgressColumns + ` FROM mission_progress WHERE user_id = $1 AND mission_id = $2`
	p, err := scanMissionProgress(r.pool.QueryRow(ctx, query, userID, missionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapDBError(err, "get_mission_progress")
	}
	return p, nil
}

// GetChapterMissionProgress returns the user's progress for every mission in
// a chapter, keyed by mission id
func (r *progressRepository) GetChapterMissionProgress(ctx context.Context, userID, chapterID string) (map[string]*models.MissionProgress, error) {
	query := `SELECT ` + missionProgressColumns + ` FROM mission_progress WHERE user_id = $1 AND chapter_id = $2`
	rows, err := r.pool.Query(ctx, query, userID, chapterID)
	if err != nil {
		return nil, mapDBError(err, "get_chapter_mission_progress")
	}
	defer rows.Close()

	progress := make(map[string]*models.MissionProgress)
	for rows.Next() {
		p, err := scanMissionProgress(rows)
		if err != nil {
			return nil, mapDBError(err, "get_chapter_mission_progress")
		}
		progress[p.MissionID] = p
	}
	return progress, rows.Err()
}

// GetChapterProgress returns nil without error when nothing is recorded yet
func (r *progressRepository) GetChapterProgress(ctx context.Context, userID, chapterID string) (*models.ChapterProgress, error) {
	p := &models.ChapterProgress{}
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, book_id, chapter_id, missions_completed, last_access
		FROM chapter_progress WHERE user_id = $1 AND chapter_id = $2
	`, userID, chapterID).Scan(&p.UserID, &p.BookID, &p.ChapterID, &p.MissionsCompleted, &p.LastAccess)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapDBError(err, "get_chapter_progress")
	}
	return p, nil
}

// GetBookProgress returns nil without error when nothing is recorded yet
func (r *progressRepository) GetBookProgress(ctx context.Context, userID, bookID string) (*models.BookProgress, error) {
	p := &models.BookProgress{}
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, book_id, current_chapter, current_mission, last_access
		FROM book_progress WHERE user_id = $1 AND book_id = $2
	`, userID, bookID).Scan(&p.UserID, &p.BookID, &p.CurrentChapter, &p.CurrentMission, &p.LastAccess)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapDBError(err, "get_book_progress")
	}
	return p, nil
}
