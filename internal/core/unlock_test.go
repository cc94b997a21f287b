package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wordquest/pkg/models"
)

func chapterMissions(n int) []models.Mission {
	missions := make([]models.Mission, n)
	for i := range missions {
		missions[i] = models.Mission{ID: string(rune('a' + i)), Position: i + 1}
	}
	return missions
}

func TestMissionUnlocked(t *testing.T) {
	missions := chapterMissions(3)

	tests := []struct {
		name     string
		idx      int
		progress map[string]*models.MissionProgress
		want     bool
	}{
		{"first mission always open", 0, nil, true},
		{"second locked with no progress", 1, nil, false},
		{
			"second locked at 69",
			1,
			map[string]*models.MissionProgress{"a": {Completed: true, BestScore: 69, Attempts: 2}},
			false,
		},
		{
			"second open at exactly 70",
			1,
			map[string]*models.MissionProgress{"a": {Completed: true, BestScore: 70, Attempts: 1}},
			true,
		},
		{
			"second open at 100",
			1,
			map[string]*models.MissionProgress{"a": {Completed: true, BestScore: 100, Attempts: 1}},
			true,
		},
		{
			"legacy record without score unlocks",
			1,
			map[string]*models.MissionProgress{"a": {Completed: true, BestScore: 0, Attempts: 0}},
			true,
		},
		{
			"zero score with attempts stays locked",
			1,
			map[string]*models.MissionProgress{"a": {Completed: true, BestScore: 0, Attempts: 3}},
			false,
		},
		{
			"third needs second, not first",
			2,
			map[string]*models.MissionProgress{"a": {Completed: true, BestScore: 100, Attempts: 1}},
			false,
		},
		{
			"third open when second passed",
			2,
			map[string]*models.MissionProgress{
				"a": {Completed: true, BestScore: 100, Attempts: 1},
				"b": {Completed: true, BestScore: 85, Attempts: 2},
			},
			true,
		},
		{"index out of range", 3, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MissionUnlocked(tt.idx, missions, tt.progress))
		})
	}
}

func TestMissionStatuses(t *testing.T) {
	missions := chapterMissions(3)
	progress := map[string]*models.MissionProgress{
		"a": {MissionID: "a", Completed: true, BestScore: 80, Attempts: 1},
	}

	statuses := MissionStatuses(missions, progress)
	assert.Len(t, statuses, 3)

	assert.True(t, statuses[0].Unlocked)
	assert.True(t, statuses[0].Completed)
	assert.Equal(t, 80, statuses[0].Progress.BestScore)

	assert.True(t, statuses[1].Unlocked)
	assert.False(t, statuses[1].Completed)
	assert.Nil(t, statuses[1].Progress)

	assert.False(t, statuses[2].Unlocked)
	assert.False(t, statuses[2].Completed)
}
