// Package models - Achievements
// One-time bonus awards triggered by qualifying mission performances.
// The rule key doubles as the idempotency key: a user holds each
// achievement at most once.
package models

import "time"

// Achievement rule keys
const (
	AchievementPerfectFirstTry  = "perfect_first_try"
	AchievementKeywordMaster    = "keyword_master"
	AchievementSentenceExpert   = "sentence_expert"
	AchievementSequenceMaster   = "sequence_master"
	AchievementPerfectSequencer = "perfect_sequencer"
)

// Achievement categories
const (
	AchievementCategoryPerformance = "performance"
	AchievementCategorySkill       = "skill"
)

// Achievement is a per-user unlocked award
type Achievement struct {
	ID          string    `json:"id" db:"id"` // stable rule key
	UserID      string    `json:"user_id,omitempty" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	Points      int       `json:"points" db:"points"`
	UnlockedAt  time.Time `json:"unlocked_at" db:"unlocked_at"`
}

// AchievementDef is the static definition behind a rule key
type AchievementDef struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Points      int    `json:"points"`
}
