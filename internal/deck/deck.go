// Package deck selects and orders the card ids for one study session.
package deck

import (
	"math/rand"
	"time"

	"github.com/example/radbot/internal/catalog"
	"github.com/example/radbot/internal/leitner"
	"github.com/example/radbot/pkg/models"
)

// Mode selects how the deck is built
type Mode string

const (
	// ModeLearn walks the whole catalog, optionally shuffled
	ModeLearn Mode = "learn"
	// ModeReview studies the cards that are due
	ModeReview Mode = "review"
	// ModeQuiz asks multiple-choice questions over a shuffled catalog
	ModeQuiz Mode = "quiz"
)

// Build returns the ordered ids for a session. The deck is never empty and
// contains each id at most once.
//
// learn: catalog order, or a uniform random permutation when shuffleLearn.
// review: cards due at or before today's start; when nothing is due the
// whole catalog is studied instead. Any other mode, quiz included, gets a
// random permutation of the catalog.
func Build(mode Mode, state models.ProgressState, shuffleLearn bool, rng *rand.Rand) []int {
	return BuildAt(mode, state, shuffleLearn, rng, time.Now())
}

// BuildAt is Build with an explicit "now", for tests
func BuildAt(mode Mode, state models.ProgressState, shuffleLearn bool, rng *rand.Rand, now time.Time) []int {
	ids := catalog.IDs()

	switch mode {
	case ModeLearn:
		if shuffleLearn {
			shuffle(ids, rng)
		}
		return ids
	case ModeReview:
		today := leitner.DayStart(now)
		var due []int
		for _, id := range ids {
			// A card without a record has never been scheduled and counts as due
			rec, ok := state.ByID[id]
			if !ok || !rec.Due.After(today) {
				due = append(due, id)
			}
		}
		if len(due) > 0 {
			return due
		}
		// Nothing due: fall back to the full catalog
		return ids
	default:
		shuffle(ids, rng)
		return ids
	}
}

func shuffle(ids []int, rng *rand.Rand) {
	rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
}
