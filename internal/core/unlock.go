package core

import "wordquest/pkg/models"

// MissionUnlocked decides whether the mission at index idx in an ordered
// mission list is playable for the user whose progress is given.
//
// The first mission is always open. Later missions open when the previous
// mission's best score reaches the unlock threshold. A previous mission marked
// completed without any recorded score also unlocks - progress records written
// before scores were tracked have no best score to check.
func MissionUnlocked(idx int, missions []models.Mission, progress map[string]*models.MissionProgress) bool {
	if idx <= 0 {
		return true
	}
	if idx >= len(missions) {
		return false
	}

	prev := progress[missions[idx-1].ID]
	if prev == nil {
		return false
	}
	if prev.BestScore >= models.UnlockThreshold {
		return true
	}
	return prev.Completed && prev.BestScore == 0 && prev.Attempts == 0
}

// MissionStatuses pairs every mission with the caller's progress and unlock
// state, for rendering a chapter's mission list.
func MissionStatuses(missions []models.Mission, progress map[string]*models.MissionProgress) []models.MissionStatus {
	statuses := make([]models.MissionStatus, len(missions))
	for i, m := range missions {
		p := progress[m.ID]
		statuses[i] = models.MissionStatus{
			Mission:   m,
			Progress:  p,
			Unlocked:  MissionUnlocked(i, missions, progress),
			Completed: p != nil && p.Completed,
		}
	}
	return statuses
}
