// Package models - Player Progress
// Per-user completion records at mission, chapter and book granularity, plus
// the result envelope returned by a mission submission.
package models

import "time"

// UnlockThreshold is the minimum best score that opens the next mission
const UnlockThreshold = 70

// MissionProgress is the per-user record for one mission
type MissionProgress struct {
	UserID       string    `json:"user_id" db:"user_id"`
	BookID       string    `json:"book_id" db:"book_id"`
	ChapterID    string    `json:"chapter_id" db:"chapter_id"`
	MissionID    string    `json:"mission_id" db:"mission_id"`
	Completed    bool      `json:"completed" db:"completed"`
	BestScore    int       `json:"best_score" db:"best_score"`       // 0-100, never decreases
	CurrentScore int       `json:"current_score" db:"current_score"` // most recent attempt
	Attempts     int       `json:"attempts" db:"attempts"`
	Mode         string    `json:"mode" db:"mode"`
	Points       int       `json:"points" db:"points"` // points granted for this mission
	CompletedAt  time.Time `json:"completed_at" db:"completed_at"`
	UnlocksNext  bool      `json:"unlocks_next" db:"unlocks_next"` // best_score >= 70
}

// ChapterProgress is the per-user record for one chapter
type ChapterProgress struct {
	UserID            string    `json:"user_id" db:"user_id"`
	BookID            string    `json:"book_id" db:"book_id"`
	ChapterID         string    `json:"chapter_id" db:"chapter_id"`
	MissionsCompleted []string  `json:"missions_completed" db:"missions_completed"`
	LastAccess        time.Time `json:"last_access" db:"last_access"`
}

// BookProgress is the per-user navigation cursor for one book
type BookProgress struct {
	UserID         string    `json:"user_id" db:"user_id"`
	BookID         string    `json:"book_id" db:"book_id"`
	CurrentChapter string    `json:"current_chapter" db:"current_chapter"`
	CurrentMission string    `json:"current_mission" db:"current_mission"`
	LastAccess     time.Time `json:"last_access" db:"last_access"`
}

// SubmitResult is returned to the caller after a mission submission.
// Every field reflects committed state; a submission either fully applies
// or the caller gets an error.
type SubmitResult struct {
	Score           int           `json:"score"`
	BestScore       int           `json:"best_score"`
	Attempts        int           `json:"attempts"`
	MissionPoints   int           `json:"mission_points"`
	PointsAwarded   int           `json:"points_awarded"` // mission + new achievements
	TotalPoints     int           `json:"total_points"`
	UnlocksNext     bool          `json:"unlocks_next"`
	NewAchievements []Achievement `json:"new_achievements,omitempty"`
}

// MissionStatus pairs a mission with the caller's progress and unlock state
type MissionStatus struct {
	Mission   Mission          `json:"mission"`
	Progress  *MissionProgress `json:"progress,omitempty"`
	Unlocked  bool             `json:"unlocked"`
	Completed bool             `json:"completed"`
}

// RecordPositionRequest updates the navigation cursor
type RecordPositionRequest struct {
	ChapterID string `json:"chapter_id" validate:"required"`
	MissionID string `json:"mission_id" validate:"required"`
}

// LeaderboardEntry is one row of the points leaderboard
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Points   int    `json:"points"`
}

// UserRank is the caller's own standing
type UserRank struct {
	Rank       int `json:"rank"`
	Points     int `json:"points"`
	TotalUsers int `json:"total_users"`
}
