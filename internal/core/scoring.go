// Package core - Core Business Logic
// Score calculators for the three mission minigames. All scores are integer
// percentages in [0, 100].
package core

import (
	"math"

	"wordquest/pkg/models"
)

// HintPenalty is deducted from a sequence score per hint consumed
const HintPenalty = 10

// ScoreKeywords scores a keyword-selection attempt: the fraction of correct
// words the player found. Selecting distractors does not reduce the score.
func ScoreKeywords(selected, correctWords []string) (int, error) {
	if len(correctWords) == 0 {
		return 0, models.ErrInvalidMissionData
	}

	correctSet := make(map[string]struct{}, len(correctWords))
	for _, w := range correctWords {
		correctSet[w] = struct{}{}
	}

	found := 0
	seen := make(map[string]struct{}, len(selected))
	for _, w := range selected {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := correctSet[w]; ok {
			found++
		}
	}

	return roundPercent(found, len(correctWords)), nil
}

// ScoreCompletePhrase scores a fill-in-the-blank attempt: the fraction of
// blanks answered with the correct option. Unanswered blanks count as wrong.
func ScoreCompletePhrase(answers map[string]string, blanks []models.Blank) (int, error) {
	if len(blanks) == 0 {
		return 0, models.ErrInvalidMissionData
	}

	correct := 0
	for _, blank := range blanks {
		if answers[blank.ID] == blank.CorrectAnswer {
			correct++
		}
	}

	return roundPercent(correct, len(blanks)), nil
}

// ScoreSequence scores an ordering attempt by positional match: position i
// counts only when the player's step i equals the correct step i. A single
// early transposition therefore costs every shifted position. Each hint
// consumed deducts HintPenalty, floored at 0.
func ScoreSequence(userOrder []string, correctOrder []models.SequenceStep, hintsUsed int) (int, error) {
	if len(correctOrder) == 0 {
		return 0, models.ErrInvalidMissionData
	}

	matches := 0
	for i, step := range correctOrder {
		if i < len(userOrder) && userOrder[i] == step.ID {
			matches++
		}
	}

	score := roundPercent(matches, len(correctOrder))
	if hintsUsed > 0 {
		score -= hintsUsed * HintPenalty
	}
	if score < 0 {
		score = 0
	}
	return score, nil
}

// ScoreSubmission dispatches on the mission's mode and scores the raw answers
// in req against the mission's answer key.
func ScoreSubmission(mission *models.Mission, req models.SubmitMissionRequest) (int, error) {
	switch mission.Mode {
	case models.ModeKeywords:
		return ScoreKeywords(req.SelectedWords, mission.Data.CorrectWords)
	case models.ModeCompletePhrase:
		return ScoreCompletePhrase(req.Answers, mission.Data.Blanks)
	case models.ModeOrderSequence:
		return ScoreSequence(req.Order, mission.Data.Sequence, req.HintsUsed)
	default:
		return 0, models.ErrInvalidMissionData
	}
}

// MissionPoints converts a score into points: a full-marks run is worth 1000
func MissionPoints(score int) int {
	return score * 10
}

func roundPercent(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}
