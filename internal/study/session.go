// Package study drives a single study session: the deck cursor, flip and
// quiz state, grading write-back and the elapsed timer. A session loops
// over its deck forever; it ends only when the caller stops it.
package study

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/example/radbot/internal/catalog"
	"github.com/example/radbot/internal/deck"
	"github.com/example/radbot/internal/leitner"
	"github.com/example/radbot/internal/progress"
	"github.com/example/radbot/pkg/models"
)

// Action is what a handled key press asks the surrounding UI to do
type Action int

const (
	// ActionNone means the key was consumed (or ignored) in place
	ActionNone Action = iota
	// ActionExit means the user asked to leave the session
	ActionExit
)

// Quiz is one multiple-choice question: the true meaning of the current
// card plus three distractor meanings, in random order
type Quiz struct {
	Answer  string
	Options []string
}

// Session is the state of one study run. It is driven by one goroutine at
// a time; only the elapsed-seconds counter is touched by the timer.
type Session struct {
	mode  deck.Mode
	store *progress.Store
	rng   *rand.Rand

	deck     []int
	index    int
	flipped  bool
	quiz     *Quiz
	choice   int // selected quiz option index, -1 when none
	revealed bool

	seconds  int64
	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

// New starts a session in the given mode: deck built from the current
// progress state, cursor at the first card, timer running
func New(store *progress.Store, mode deck.Mode) *Session {
	return NewWithRand(store, mode, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand is New with an injected randomness source, for deterministic
// shuffling and quiz options in tests
func NewWithRand(store *progress.Store, mode deck.Mode, rng *rand.Rand) *Session {
	s := &Session{
		store:  store,
		rng:    rng,
		choice: -1,
		ticker: time.NewTicker(time.Second),
		done:   make(chan struct{}),
	}
	s.rebuild(mode)

	go func() {
		for {
			select {
			case <-s.ticker.C:
				atomic.AddInt64(&s.seconds, 1)
			case <-s.done:
				return
			}
		}
	}()

	return s
}

// Stop releases the session's timer. Safe to call more than once.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		s.ticker.Stop()
		close(s.done)
	})
}

func (s *Session) rebuild(mode deck.Mode) {
	s.mode = mode
	s.deck = deck.BuildAt(mode, s.store.State(), s.store.Settings().ShuffleLearn, s.rng, s.store.Now())
	s.index = 0
	s.resetCard()
}

// Rebuild switches the session to a new mode (or picks up a changed
// shuffle setting), resetting the deck and position
func (s *Session) Rebuild(mode deck.Mode) {
	s.rebuild(mode)
}

// resetCard clears per-card state and regenerates the quiz question for
// the card now under the cursor
func (s *Session) resetCard() {
	s.flipped = false
	s.choice = -1
	s.revealed = false
	s.generateQuiz()
}

// Mode returns the session's current mode
func (s *Session) Mode() deck.Mode {
	return s.mode
}

// Deck returns a copy of the session's deck
func (s *Session) Deck() []int {
	out := make([]int, len(s.deck))
	copy(out, s.deck)
	return out
}

// Position returns the 1-based cursor position and the deck length
func (s *Session) Position() (int, int) {
	return s.index + 1, len(s.deck)
}

// Current returns the card under the cursor
func (s *Session) Current() models.Radical {
	id := s.deck[0]
	if s.index < len(s.deck) {
		id = s.deck[s.index]
	}
	r, _ := catalog.ByID(id)
	return r
}

// CurrentRecord returns the progress record of the card under the cursor
func (s *Session) CurrentRecord() models.ProgressRecord {
	return s.store.Record(s.Current().ID)
}

// Flipped reports whether the back face is showing
func (s *Session) Flipped() bool {
	return s.flipped
}

// Flip toggles the back face. Quiz mode has no flip.
func (s *Session) Flip() {
	if s.mode == deck.ModeQuiz {
		return
	}
	s.flipped = !s.flipped
}

// Reveal shows the back face without toggling
func (s *Session) Reveal() {
	if s.mode == deck.ModeQuiz {
		return
	}
	s.flipped = true
}

// Grade applies a grading outcome to the current card and advances to the
// next one, wrapping to the first card after the last. A grade outside
// 1..4 changes nothing.
func (s *Session) Grade(g leitner.Grade) {
	if !g.Valid() {
		return
	}

	card := s.Current()
	rec := s.store.Record(card.ID)
	now := s.store.Now()

	box := leitner.NextBox(rec.Box, g)
	due := leitner.NextDue(leitner.DayStart(now), box)
	learned := rec.Learned || g.Correct()
	correct := rec.Correct
	wrong := rec.Wrong
	if g.Correct() {
		correct++
	} else {
		wrong++
	}

	s.store.PatchRecord(card.ID, progress.RecordPatch{
		Box:          &box,
		Learned:      &learned,
		Correct:      &correct,
		Wrong:        &wrong,
		LastReviewed: &now,
		Due:          &due,
	})

	s.index = (s.index + 1) % len(s.deck)
	s.resetCard()
}

// generateQuiz builds the multiple-choice question for the current card.
// Distractors come from a single random permutation of the other cards,
// so the current card can never be its own distractor and no retries are
// needed.
func (s *Session) generateQuiz() {
	if s.mode != deck.ModeQuiz {
		s.quiz = nil
		return
	}

	card := s.Current()
	pool := make([]models.Radical, 0, catalog.Size()-1)
	for _, r := range catalog.All() {
		if r.ID != card.ID {
			pool = append(pool, r)
		}
	}
	s.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	options := []string{card.Meaning}
	for _, r := range pool[:3] {
		options = append(options, r.Meaning)
	}
	s.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	s.quiz = &Quiz{Answer: card.Meaning, Options: options}
}

// Quiz returns the question for the current card, or nil outside quiz mode
func (s *Session) Quiz() *Quiz {
	return s.quiz
}

// Choice returns the selected option index, -1 when nothing is selected
func (s *Session) Choice() int {
	return s.choice
}

// QuizRevealed reports whether the answer has been revealed
func (s *Session) QuizRevealed() bool {
	return s.revealed
}

// SelectOption picks a quiz option. Selection is locked once the answer
// is revealed.
func (s *Session) SelectOption(i int) {
	if s.quiz == nil || s.revealed || i < 0 || i >= len(s.quiz.Options) {
		return
	}
	s.choice = i
}

// SubmitQuiz locks in the chosen option and reveals correctness. Progress
// is not touched until ProceedQuiz.
func (s *Session) SubmitQuiz() {
	if s.quiz == nil || s.choice < 0 {
		return
	}
	s.revealed = true
}

// QuizCorrect reports whether the revealed choice matches the answer
func (s *Session) QuizCorrect() bool {
	return s.revealed && s.choice >= 0 && s.quiz.Options[s.choice] == s.quiz.Answer
}

// ProceedQuiz grades the current card from the revealed quiz outcome:
// Good when the choice was right, Again when it was wrong. This is the
// only path by which quiz answers affect scheduling.
func (s *Session) ProceedQuiz() {
	if s.quiz == nil || !s.revealed {
		return
	}
	if s.QuizCorrect() {
		s.Grade(leitner.GradeGood)
	} else {
		s.Grade(leitner.GradeAgain)
	}
}

// HandleKey maps a key press onto session operations, honoring the
// keyboard-shortcuts setting: space reveals, 1-4 grade a revealed card,
// escape asks to exit
func (s *Session) HandleKey(key string) Action {
	if !s.store.Settings().KeyboardShortcuts {
		return ActionNone
	}

	switch key {
	case "esc", "escape":
		return ActionExit
	case " ", "space":
		s.Reveal()
		return ActionNone
	case "1", "2", "3", "4":
		if s.mode == deck.ModeQuiz || !s.flipped {
			return ActionNone
		}
		s.Grade(leitner.Grade(key[0] - '0'))
		return ActionNone
	default:
		return ActionNone
	}
}

// Elapsed returns the seconds this session has been running
func (s *Session) Elapsed() int {
	return int(atomic.LoadInt64(&s.seconds))
}

// ElapsedString formats the elapsed time as m:ss
func (s *Session) ElapsedString() string {
	sec := s.Elapsed()
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}
