// Package progress owns the persisted study state: one scheduling record
// per radical plus the user's settings. All mutations go through the
// store's patch and reset operations, and every mutation is written back
// to durable storage.
package progress

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/example/radbot/internal/catalog"
	"github.com/example/radbot/internal/leitner"
	"github.com/example/radbot/internal/storage"
	"github.com/example/radbot/pkg/models"
)

// BlobKey is the fixed storage key the whole state is persisted under.
// It matches the key the original web client used, so an exported blob
// can be carried over.
const BlobKey = "radicals60_progress_v2"

// Store holds the authoritative in-memory progress state and mirrors
// every change to the blob store. Write failures are logged and swallowed:
// the in-memory state stays valid for the rest of the process.
//
// Safe for concurrent use: the reminder job reads counts from its own
// goroutine while the bot goroutine patches records.
type Store struct {
	blobs storage.BlobStore

	mu    sync.RWMutex
	state models.ProgressState

	now func() time.Time
}

// New loads previously persisted state from blobs, or initializes fresh
// state when nothing valid is stored
func New(blobs storage.BlobStore) *Store {
	return newStore(blobs, time.Now)
}

// NewWithClock is New with an injected clock, for tests
func NewWithClock(blobs storage.BlobStore, now func() time.Time) *Store {
	return newStore(blobs, now)
}

func newStore(blobs storage.BlobStore, now func() time.Time) *Store {
	s := &Store{blobs: blobs, now: now}
	if state, ok := s.load(); ok {
		s.state = state
	} else {
		s.state = s.freshState()
		s.persist()
	}
	return s
}

// load reads and parses the persisted blob. Corruption of any kind is
// reported as absence, never as an error.
func (s *Store) load() (models.ProgressState, bool) {
	raw, ok := s.blobs.Read(BlobKey)
	if !ok {
		return models.ProgressState{}, false
	}
	var state models.ProgressState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		log.Printf("Stored progress is unreadable, starting fresh: %v", err)
		return models.ProgressState{}, false
	}
	if state.ByID == nil {
		return models.ProgressState{}, false
	}
	return state, true
}

// freshState builds the initial state: every radical in box 1, due today,
// settings at defaults
func (s *Store) freshState() models.ProgressState {
	today := leitner.DayStart(s.now())
	byID := make(map[int]models.ProgressRecord, catalog.Size())
	for _, id := range catalog.IDs() {
		byID[id] = models.ProgressRecord{
			Box: leitner.MinBox,
			Due: today,
		}
	}
	return models.ProgressState{ByID: byID, Settings: models.DefaultSettings()}
}

func (s *Store) persist() {
	raw, err := json.Marshal(s.state)
	if err != nil {
		log.Printf("Failed to encode progress state: %v", err)
		return
	}
	if err := s.blobs.Write(BlobKey, string(raw)); err != nil {
		log.Printf("Failed to persist progress state: %v", err)
	}
}

// State returns a snapshot of the current state. The byId map is copied
// so callers cannot mutate the store's copy.
func (s *Store) State() models.ProgressState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byID := make(map[int]models.ProgressRecord, len(s.state.ByID))
	for id, rec := range s.state.ByID {
		byID[id] = rec
	}
	return models.ProgressState{ByID: byID, Settings: s.state.Settings}
}

// Settings returns the current settings
func (s *Store) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Settings
}

// Record returns the record for id. A missing id yields the sane default
// a never-studied card would have: box 1, due today.
func (s *Store) Record(id int) models.ProgressRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record(id)
}

// record is Record without locking, for callers already holding mu
func (s *Store) record(id int) models.ProgressRecord {
	if rec, ok := s.state.ByID[id]; ok {
		return rec
	}
	return models.ProgressRecord{Box: leitner.MinBox, Due: leitner.DayStart(s.now())}
}

// RecordPatch names the record fields to replace; nil fields are left as
// they are
type RecordPatch struct {
	Box          *int
	Learned      *bool
	Correct      *int
	Wrong        *int
	LastReviewed *time.Time
	Due          *time.Time
}

// PatchRecord merges the named fields into the record for id and persists.
// All other records are untouched.
func (s *Store) PatchRecord(id int, patch RecordPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.record(id)
	if patch.Box != nil {
		rec.Box = *patch.Box
	}
	if patch.Learned != nil {
		rec.Learned = *patch.Learned
	}
	if patch.Correct != nil {
		rec.Correct = *patch.Correct
	}
	if patch.Wrong != nil {
		rec.Wrong = *patch.Wrong
	}
	if patch.LastReviewed != nil {
		t := *patch.LastReviewed
		rec.LastReviewed = &t
	}
	if patch.Due != nil {
		rec.Due = *patch.Due
	}
	s.setRecord(id, rec)
}

// SetRecord replaces the whole record for id and persists
func (s *Store) SetRecord(id int, rec models.ProgressRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setRecord(id, rec)
}

// setRecord expects mu to be held
func (s *Store) setRecord(id int, rec models.ProgressRecord) {
	byID := make(map[int]models.ProgressRecord, len(s.state.ByID)+1)
	for k, v := range s.state.ByID {
		byID[k] = v
	}
	byID[id] = rec
	s.state.ByID = byID
	s.persist()
}

// SettingsPatch names the settings fields to replace
type SettingsPatch struct {
	ShowExamples      *bool
	ShowMnemonic      *bool
	ToneMarks         *bool
	ShuffleLearn      *bool
	KeyboardShortcuts *bool
}

// PatchSettings merges the named fields into the settings and persists
func (s *Store) PatchSettings(patch SettingsPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state.Settings
	if patch.ShowExamples != nil {
		st.ShowExamples = *patch.ShowExamples
	}
	if patch.ShowMnemonic != nil {
		st.ShowMnemonic = *patch.ShowMnemonic
	}
	if patch.ToneMarks != nil {
		st.ToneMarks = *patch.ToneMarks
	}
	if patch.ShuffleLearn != nil {
		st.ShuffleLearn = *patch.ShuffleLearn
	}
	if patch.KeyboardShortcuts != nil {
		st.KeyboardShortcuts = *patch.KeyboardShortcuts
	}
	s.state.Settings = st
	s.persist()
}

// ResetAll discards every record and the settings, replacing the state
// with a freshly initialized one
func (s *Store) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.freshState()
	s.persist()
}

// DueCount returns how many cards are due at or before today's start
func (s *Store) DueCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	today := leitner.DayStart(s.now())
	count := 0
	for _, id := range catalog.IDs() {
		if !s.record(id).Due.After(today) {
			count++
		}
	}
	return count
}

// LearnedCount returns how many cards have been learned
func (s *Store) LearnedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, rec := range s.state.ByID {
		if rec.Learned {
			count++
		}
	}
	return count
}

// Now returns the store's current time, through the injected clock
func (s *Store) Now() time.Time {
	return s.now()
}
