package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordquest/pkg/models"
)

func firedIDs(defs []models.AchievementDef) []string {
	var ids []string
	for _, d := range defs {
		ids = append(ids, d.ID)
	}
	return ids
}

func TestEvaluateAchievements(t *testing.T) {
	tests := []struct {
		name    string
		outcome MissionOutcome
		want    []string
	}{
		{
			"perfect first try on keywords fires both",
			MissionOutcome{Score: 100, Mode: models.ModeKeywords, Attempts: 1},
			[]string{models.AchievementPerfectFirstTry, models.AchievementKeywordMaster},
		},
		{
			"perfect on second try is not first-try",
			MissionOutcome{Score: 100, Mode: models.ModeKeywords, Attempts: 2},
			[]string{models.AchievementKeywordMaster},
		},
		{
			"keyword master at exactly 90",
			MissionOutcome{Score: 90, Mode: models.ModeKeywords, Attempts: 3},
			[]string{models.AchievementKeywordMaster},
		},
		{
			"89 fires nothing",
			MissionOutcome{Score: 89, Mode: models.ModeKeywords, Attempts: 1},
			nil,
		},
		{
			"sentence expert on completarFrase",
			MissionOutcome{Score: 95, Mode: models.ModeCompletePhrase, Attempts: 2},
			[]string{models.AchievementSentenceExpert},
		},
		{
			"perfect sequence first try stacks three rules",
			MissionOutcome{Score: 100, Mode: models.ModeOrderSequence, Attempts: 1},
			[]string{
				models.AchievementPerfectFirstTry,
				models.AchievementSequenceMaster,
				models.AchievementPerfectSequencer,
			},
		},
		{
			"sequence at 90 fires master only",
			MissionOutcome{Score: 90, Mode: models.ModeOrderSequence, Attempts: 4},
			[]string{models.AchievementSequenceMaster},
		},
		{
			"zero score fires nothing",
			MissionOutcome{Score: 0, Mode: models.ModeCompletePhrase, Attempts: 1},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateAchievements(tt.outcome)
			assert.Equal(t, tt.want, firedIDs(got))
		})
	}
}

func TestAchievementCatalogPoints(t *testing.T) {
	tests := []struct {
		id     string
		points int
	}{
		{models.AchievementPerfectFirstTry, 500},
		{models.AchievementPerfectSequencer, 300},
		{models.AchievementKeywordMaster, 200},
		{models.AchievementSentenceExpert, 200},
		{models.AchievementSequenceMaster, 200},
	}

	for _, tt := range tests {
		def, ok := AchievementDef(tt.id)
		require.True(t, ok, tt.id)
		assert.Equal(t, tt.points, def.Points)
		assert.NotEmpty(t, def.Title)
		assert.NotEmpty(t, def.Description)
	}

	_, ok := AchievementDef("no_such_rule")
	assert.False(t, ok)
}
