// Package leitner implements the box-based spaced repetition scheme:
// five boxes, review intervals growing with the box number. Everything
// here is pure computation; callers persist the results.
package leitner

import "time"

// Box bounds
const (
	MinBox = 1
	MaxBox = 5
)

// Grade is the four-level outcome of reviewing one card
type Grade int

const (
	// GradeAgain resets the card to the first box
	GradeAgain Grade = 1
	// GradeHard keeps the card in its current box
	GradeHard Grade = 2
	// GradeGood advances the card one box
	GradeGood Grade = 3
	// GradeEasy advances the card two boxes
	GradeEasy Grade = 4
)

// Valid reports whether g is one of the four defined grades
func (g Grade) Valid() bool {
	return g >= GradeAgain && g <= GradeEasy
}

// Correct reports whether the grade counts as a successful recall
func (g Grade) Correct() bool {
	return g >= GradeGood
}

// NextBox computes the box a card moves to after being graded.
// The result is always within [MinBox, MaxBox]; a grade outside the
// defined four leaves the box where it is.
func NextBox(currentBox int, grade Grade) int {
	switch grade {
	case GradeAgain:
		return MinBox
	case GradeHard:
		return clampBox(currentBox)
	case GradeGood:
		return clampBox(currentBox + 1)
	case GradeEasy:
		return clampBox(currentBox + 2)
	default:
		return clampBox(currentBox)
	}
}

func clampBox(box int) int {
	if box < MinBox {
		return MinBox
	}
	if box > MaxBox {
		return MaxBox
	}
	return box
}

// IntervalDays returns how many days after a review a card in the given
// box becomes due again
func IntervalDays(box int) int {
	switch {
	case box <= 1:
		return 0
	case box == 2:
		return 1
	case box == 3:
		return 3
	case box == 4:
		return 7
	default:
		return 14
	}
}

// NextDue computes the due date for a card that landed in box, counted
// from the supplied start-of-day instant
func NextDue(dayStart time.Time, box int) time.Time {
	return dayStart.AddDate(0, 0, IntervalDays(box))
}

// DayStart truncates t to local midnight
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
