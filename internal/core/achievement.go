package core

import "wordquest/pkg/models"

// achievementCatalog holds the static definition behind each rule key.
var achievementCatalog = map[string]models.AchievementDef{
	models.AchievementPerfectFirstTry: {
		ID:          models.AchievementPerfectFirstTry,
		Title:       "Perfección al Primer Intento",
		Description: "Completaste una misión con 100% en el primer intento",
		Category:    models.AchievementCategoryPerformance,
		Points:      500,
	},
	models.AchievementKeywordMaster: {
		ID:          models.AchievementKeywordMaster,
		Title:       "Maestro de Palabras Clave",
		Description: "Obtuviste 90% o más en una misión de palabras clave",
		Category:    models.AchievementCategorySkill,
		Points:      200,
	},
	models.AchievementSentenceExpert: {
		ID:          models.AchievementSentenceExpert,
		Title:       "Experto en Oraciones",
		Description: "Obtuviste 90% o más en una misión de completar frases",
		Category:    models.AchievementCategorySkill,
		Points:      200,
	},
	models.AchievementSequenceMaster: {
		ID:          models.AchievementSequenceMaster,
		Title:       "Maestro del Orden",
		Description: "Obtuviste 90% o más en una misión de ordenar secuencias",
		Category:    models.AchievementCategorySkill,
		Points:      200,
	},
	models.AchievementPerfectSequencer: {
		ID:          models.AchievementPerfectSequencer,
		Title:       "Secuenciador Perfecto",
		Description: "Ordenaste una secuencia perfectamente",
		Category:    models.AchievementCategoryPerformance,
		Points:      300,
	},
}

// AchievementDef looks up the static definition for a rule key
func AchievementDef(id string) (models.AchievementDef, bool) {
	def, ok := achievementCatalog[id]
	return def, ok
}

// MissionOutcome is the input to achievement evaluation: one just-scored
// submission.
type MissionOutcome struct {
	Score    int
	Mode     string
	Attempts int
}

// EvaluateAchievements returns the rule definitions satisfied by the outcome.
// Rules are independent; several may fire on the same submission
// (perfect_sequencer stacks with sequence_master). Whether a fired rule
// actually awards anything is decided at persistence time - each user holds a
// rule key at most once.
func EvaluateAchievements(outcome MissionOutcome) []models.AchievementDef {
	var fired []models.AchievementDef

	if outcome.Score == 100 && outcome.Attempts == 1 {
		fired = append(fired, achievementCatalog[models.AchievementPerfectFirstTry])
	}
	if outcome.Mode == models.ModeKeywords && outcome.Score >= 90 {
		fired = append(fired, achievementCatalog[models.AchievementKeywordMaster])
	}
	if outcome.Mode == models.ModeCompletePhrase && outcome.Score >= 90 {
		fired = append(fired, achievementCatalog[models.AchievementSentenceExpert])
	}
	if outcome.Mode == models.ModeOrderSequence && outcome.Score >= 90 {
		fired = append(fired, achievementCatalog[models.AchievementSequenceMaster])
	}
	if outcome.Mode == models.ModeOrderSequence && outcome.Score == 100 {
		fired = append(fired, achievementCatalog[models.AchievementPerfectSequencer])
	}

	return fired
}
