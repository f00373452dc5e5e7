package models

import "time"

// ProgressRecord tracks scheduling state for a single radical
type ProgressRecord struct {
	Box          int        `json:"box"`     // Leitner box, 1..5
	Learned      bool       `json:"learned"` // Set once a card is graded Good or better
	Correct      int        `json:"correct"`
	Wrong        int        `json:"wrong"`
	LastReviewed *time.Time `json:"lastReviewed"` // Nil until the first grading event
	Due          time.Time  `json:"due"`          // Moment the card becomes eligible for review
}

// Settings holds the user's display and behavior toggles
type Settings struct {
	ShowExamples      bool `json:"showExamples"`
	ShowMnemonic      bool `json:"showMnemonic"`
	ToneMarks         bool `json:"toneMarks"`
	ShuffleLearn      bool `json:"shuffleLearn"`
	KeyboardShortcuts bool `json:"keyboardShortcuts"`
}

// DefaultSettings returns the settings a fresh progress state starts with
func DefaultSettings() Settings {
	return Settings{
		ShowExamples:      true,
		ShowMnemonic:      true,
		ToneMarks:         true,
		ShuffleLearn:      false,
		KeyboardShortcuts: true,
	}
}

// ProgressState is the unit of persistence: one record per radical plus settings.
// The json layout matches the blob the original web client stored, so an
// existing blob keeps working.
type ProgressState struct {
	ByID     map[int]ProgressRecord `json:"byId"`
	Settings Settings               `json:"settings"`
}
