package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordquest/pkg/models"
)

func TestScoreKeywords(t *testing.T) {
	correct := []string{"sol", "luna", "estrella"}

	tests := []struct {
		name     string
		selected []string
		correct  []string
		want     int
		wantErr  error
	}{
		{"all found", []string{"sol", "luna", "estrella"}, correct, 100, nil},
		{"two of three", []string{"sol", "luna"}, correct, 67, nil},
		{"one of three", []string{"estrella"}, correct, 33, nil},
		{"nothing selected", nil, correct, 0, nil},
		{"distractors do not count against", []string{"sol", "luna", "nube", "rio"}, correct, 67, nil},
		{"duplicates count once", []string{"sol", "sol", "sol"}, correct, 33, nil},
		{"only distractors", []string{"nube", "rio"}, correct, 0, nil},
		{"empty answer key", []string{"sol"}, nil, 0, models.ErrInvalidMissionData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScoreKeywords(tt.selected, tt.correct)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScoreCompletePhrase(t *testing.T) {
	blanks := []models.Blank{
		{ID: "b1", Options: []string{"era", "fue"}, CorrectAnswer: "era"},
		{ID: "b2", Options: []string{"casa", "bosque"}, CorrectAnswer: "bosque"},
	}

	tests := []struct {
		name    string
		answers map[string]string
		blanks  []models.Blank
		want    int
		wantErr error
	}{
		{"all correct", map[string]string{"b1": "era", "b2": "bosque"}, blanks, 100, nil},
		{"one of two", map[string]string{"b1": "era", "b2": "casa"}, blanks, 50, nil},
		{"unanswered blank is wrong", map[string]string{"b1": "era"}, blanks, 50, nil},
		{"no answers", nil, blanks, 0, nil},
		{"unknown blank id ignored", map[string]string{"b9": "era"}, blanks, 0, nil},
		{"empty answer key", map[string]string{"b1": "era"}, nil, 0, models.ErrInvalidMissionData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScoreCompletePhrase(tt.answers, tt.blanks)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScoreSequence(t *testing.T) {
	steps := []models.SequenceStep{
		{ID: "s1"}, {ID: "s2"}, {ID: "s3"}, {ID: "s4"}, {ID: "s5"},
	}

	tests := []struct {
		name      string
		order     []string
		steps     []models.SequenceStep
		hintsUsed int
		want      int
		wantErr   error
	}{
		{"perfect order", []string{"s1", "s2", "s3", "s4", "s5"}, steps, 0, 100, nil},
		{"four of five in place", []string{"s1", "s2", "s3", "s5", "s4"}, steps, 0, 60, nil},
		{"one early swap shifts everything", []string{"s2", "s1", "s3", "s4", "s5"}, steps, 0, 60, nil},
		{"reverse order middle match only", []string{"s5", "s4", "s3", "s2", "s1"}, steps, 0, 20, nil},
		{"short submission", []string{"s1", "s2"}, steps, 0, 40, nil},
		{"empty submission", nil, steps, 0, 0, nil},
		{"perfect with one hint", []string{"s1", "s2", "s3", "s4", "s5"}, steps, 1, 90, nil},
		{"perfect with two hints", []string{"s1", "s2", "s3", "s4", "s5"}, steps, 2, 80, nil},
		{"penalty floors at zero", nil, steps, 3, 0, nil},
		{"empty answer key", []string{"s1"}, nil, 0, 0, models.ErrInvalidMissionData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScoreSequence(tt.order, tt.steps, tt.hintsUsed)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScoreSubmissionDispatch(t *testing.T) {
	tests := []struct {
		name    string
		mission *models.Mission
		req     models.SubmitMissionRequest
		want    int
		wantErr error
	}{
		{
			name: "keywords",
			mission: &models.Mission{
				Mode: models.ModeKeywords,
				Data: models.MissionData{CorrectWords: []string{"a", "b"}},
			},
			req:  models.SubmitMissionRequest{SelectedWords: []string{"a"}},
			want: 50,
		},
		{
			name: "completarFrase",
			mission: &models.Mission{
				Mode: models.ModeCompletePhrase,
				Data: models.MissionData{Blanks: []models.Blank{{ID: "b1", CorrectAnswer: "x"}}},
			},
			req:  models.SubmitMissionRequest{Answers: map[string]string{"b1": "x"}},
			want: 100,
		},
		{
			name: "ordenar-secuencia",
			mission: &models.Mission{
				Mode: models.ModeOrderSequence,
				Data: models.MissionData{Sequence: []models.SequenceStep{{ID: "s1"}, {ID: "s2"}}},
			},
			req:  models.SubmitMissionRequest{Order: []string{"s1", "s2"}, HintsUsed: 1},
			want: 90,
		},
		{
			name:    "unknown mode",
			mission: &models.Mission{Mode: "charades"},
			req:     models.SubmitMissionRequest{},
			wantErr: models.ErrInvalidMissionData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScoreSubmission(tt.mission, tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMissionPoints(t *testing.T) {
	assert.Equal(t, 0, MissionPoints(0))
	assert.Equal(t, 700, MissionPoints(70))
	assert.Equal(t, 1000, MissionPoints(100))
}
