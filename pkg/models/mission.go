// Package models - Missions
// A mission is one playable minigame inside a chapter. The mode decides which
// part of the Data payload is meaningful; the payload is stored as JSONB.
package models

import "time"

// Mission modes (minigame types)
const (
	ModeKeywords       = "keywords"
	ModeCompletePhrase = "completarFrase"
	ModeOrderSequence  = "ordenar-secuencia"
)

// ValidMode reports whether mode names a known minigame
func ValidMode(mode string) bool {
	return mode == ModeKeywords || mode == ModeCompletePhrase || mode == ModeOrderSequence
}

// Mission is one playable activity within a chapter
type Mission struct {
	ID          string      `json:"id" db:"id"`
	ChapterID   string      `json:"chapter_id" db:"chapter_id"`
	Position    int         `json:"position" db:"position"` // 1-based order within the chapter
	Mode        string      `json:"mode" db:"mode"`
	Difficulty  string      `json:"difficulty" db:"difficulty"`
	Title       string      `json:"title" db:"title"`
	Description string      `json:"description" db:"description"`
	Data        MissionData `json:"data" db:"data"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
}

// MissionData holds the mode-specific payload. Only the fields for the
// mission's mode are populated.
type MissionData struct {
	// keywords
	Text         string   `json:"text,omitempty"`
	CorrectWords []string `json:"correct_words,omitempty"`
	Distractors  []string `json:"distractors,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`

	// completarFrase
	BaseText string  `json:"base_text,omitempty"`
	Blanks   []Blank `json:"blanks,omitempty"`

	// ordenar-secuencia
	Sequence   []SequenceStep `json:"sequence,omitempty"`
	Hints      []string       `json:"hints,omitempty"`
	HintBudget int            `json:"hint_budget,omitempty"`
}

// Blank is one fill-in slot in a completarFrase mission
type Blank struct {
	ID            string   `json:"id"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// SequenceStep is one orderable step in an ordenar-secuencia mission
type SequenceStep struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Hint string `json:"hint,omitempty"`
}

// PlayerView strips answer keys so the payload can be sent to clients.
// Options stay visible for completarFrase; correct answers and hints do not.
func (d MissionData) PlayerView() MissionData {
	view := d
	view.CorrectWords = nil
	blanks := make([]Blank, len(d.Blanks))
	for i, b := range d.Blanks {
		blanks[i] = Blank{ID: b.ID, Options: b.Options}
	}
	if len(blanks) > 0 {
		view.Blanks = blanks
	}
	steps := make([]SequenceStep, len(d.Sequence))
	for i, s := range d.Sequence {
		steps[i] = SequenceStep{ID: s.ID, Text: s.Text}
	}
	if len(steps) > 0 {
		view.Sequence = steps
	}
	view.Hints = nil
	return view
}

// CreateMissionRequest
type CreateMissionRequest struct {
	Position    int         `json:"position"`
	Mode        string      `json:"mode" validate:"required"`
	Difficulty  string      `json:"difficulty"`
	Title       string      `json:"title" validate:"required"`
	Description string      `json:"description"`
	Data        MissionData `json:"data"`
}

// UpdateMissionRequest
type UpdateMissionRequest struct {
	Position    *int         `json:"position,omitempty"`
	Difficulty  *string      `json:"difficulty,omitempty"`
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	Data        *MissionData `json:"data,omitempty"`
}

// SubmitMissionRequest carries a player's raw answers. The server scores them
// against the stored answer key; clients never compute their own score.
type SubmitMissionRequest struct {
	// keywords: words the player selected
	SelectedWords []string `json:"selected_words,omitempty"`

	// completarFrase: blank id -> chosen option
	Answers map[string]string `json:"answers,omitempty"`

	// ordenar-secuencia: step ids in the player's order
	Order     []string `json:"order,omitempty"`
	HintsUsed int      `json:"hints_used,omitempty"`
}
