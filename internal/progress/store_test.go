package progress

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/example/radbot/internal/catalog"
	"github.com/example/radbot/internal/storage"
	"github.com/example/radbot/pkg/models"
)

var testNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.Local)

func testClock() time.Time { return testNow }

func newTestStore(t *testing.T) (*Store, *storage.MemoryStore) {
	t.Helper()
	blobs := storage.NewMemoryStore()
	return NewWithClock(blobs, testClock), blobs
}

func TestFreshInitialization(t *testing.T) {
	s, blobs := newTestStore(t)

	state := s.State()
	if len(state.ByID) != catalog.Size() {
		t.Fatalf("fresh state has %d records, want %d", len(state.ByID), catalog.Size())
	}

	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	for _, id := range catalog.IDs() {
		rec, ok := state.ByID[id]
		if !ok {
			t.Fatalf("no record for id %d", id)
		}
		if rec.Box != 1 || rec.Learned || rec.Correct != 0 || rec.Wrong != 0 {
			t.Errorf("record %d = %+v, want box 1 and zeroed counters", id, rec)
		}
		if rec.LastReviewed != nil {
			t.Errorf("record %d has lastReviewed before any grading", id)
		}
		if !rec.Due.Equal(today) {
			t.Errorf("record %d due = %v, want start of today %v", id, rec.Due, today)
		}
	}

	if state.Settings != models.DefaultSettings() {
		t.Errorf("fresh settings = %+v, want defaults", state.Settings)
	}

	// Fresh state is persisted right away
	if _, ok := blobs.Read(BlobKey); !ok {
		t.Error("fresh state was not persisted")
	}
}

func TestCorruptBlobYieldsFreshState(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{name: "unparsable text", blob: "{not json at all"},
		{name: "wrong shape", blob: `"just a string"`},
		{name: "missing byId", blob: `{"settings":{}}`},
		{name: "null byId", blob: `{"byId":null,"settings":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blobs := storage.NewMemoryStore()
			blobs.Seed(BlobKey, tt.blob)

			s := NewWithClock(blobs, testClock)
			state := s.State()
			if len(state.ByID) != catalog.Size() {
				t.Fatalf("state has %d records, want fresh %d", len(state.ByID), catalog.Size())
			}
			for _, rec := range state.ByID {
				if rec.Box != 1 {
					t.Fatalf("corrupt blob did not reset to box 1: %+v", rec)
				}
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	blobs := storage.NewMemoryStore()
	s := NewWithClock(blobs, testClock)

	box := 4
	learned := true
	correct := 7
	due := time.Date(2024, 3, 22, 0, 0, 0, 0, time.Local)
	s.PatchRecord(12, RecordPatch{Box: &box, Learned: &learned, Correct: &correct, Due: &due, LastReviewed: &testNow})

	off := false
	s.PatchSettings(SettingsPatch{ToneMarks: &off})

	// A second store over the same blobs sees the identical state
	reloaded := NewWithClock(blobs, testClock)
	got := reloaded.State()
	want := s.State()

	if len(got.ByID) != len(want.ByID) {
		t.Fatalf("reloaded %d records, want %d", len(got.ByID), len(want.ByID))
	}
	for id, w := range want.ByID {
		g := got.ByID[id]
		if g.Box != w.Box || g.Learned != w.Learned || g.Correct != w.Correct || g.Wrong != w.Wrong {
			t.Errorf("record %d = %+v, want %+v", id, g, w)
		}
		if !g.Due.Equal(w.Due) {
			t.Errorf("record %d due = %v, want %v", id, g.Due, w.Due)
		}
		if (g.LastReviewed == nil) != (w.LastReviewed == nil) {
			t.Errorf("record %d lastReviewed nilness differs", id)
		} else if g.LastReviewed != nil && !g.LastReviewed.Equal(*w.LastReviewed) {
			t.Errorf("record %d lastReviewed = %v, want %v", id, g.LastReviewed, w.LastReviewed)
		}
	}
	if got.Settings != want.Settings {
		t.Errorf("reloaded settings = %+v, want %+v", got.Settings, want.Settings)
	}
}

func TestPatchRecordLeavesOthersUntouched(t *testing.T) {
	s, blobs := newTestStore(t)
	before := s.State()

	box := 3
	wrong := 2
	s.PatchRecord(5, RecordPatch{Box: &box, Wrong: &wrong})

	after := s.State()
	rec := after.ByID[5]
	if rec.Box != 3 || rec.Wrong != 2 {
		t.Fatalf("patched record = %+v", rec)
	}
	// Unnamed fields keep their values
	if rec.Learned || rec.Correct != 0 || rec.LastReviewed != nil {
		t.Errorf("patch touched fields it should not have: %+v", rec)
	}

	for id, b := range before.ByID {
		if id == 5 {
			continue
		}
		a := after.ByID[id]
		if a.Box != b.Box || a.Learned != b.Learned || a.Correct != b.Correct || a.Wrong != b.Wrong || !a.Due.Equal(b.Due) {
			t.Errorf("record %d changed from %+v to %+v", id, b, a)
		}
	}

	// The persisted blob tracks the mutation
	raw, ok := blobs.Read(BlobKey)
	if !ok {
		t.Fatal("nothing persisted after patch")
	}
	var persisted models.ProgressState
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		t.Fatalf("persisted blob is not valid json: %v", err)
	}
	if persisted.ByID[5].Box != 3 {
		t.Errorf("persisted record 5 box = %d, want 3", persisted.ByID[5].Box)
	}
}

func TestPatchSettings(t *testing.T) {
	s, _ := newTestStore(t)

	off := false
	s.PatchSettings(SettingsPatch{ShowMnemonic: &off})

	got := s.Settings()
	if got.ShowMnemonic {
		t.Error("showMnemonic still on after patch")
	}
	// Untouched toggles stay at their defaults
	if !got.ShowExamples || !got.ToneMarks || got.ShuffleLearn || !got.KeyboardShortcuts {
		t.Errorf("patch touched settings it should not have: %+v", got)
	}
}

func TestResetAll(t *testing.T) {
	s, _ := newTestStore(t)

	box := 5
	learned := true
	s.PatchRecord(1, RecordPatch{Box: &box, Learned: &learned})
	off := false
	s.PatchSettings(SettingsPatch{ShowExamples: &off})

	s.ResetAll()

	state := s.State()
	if state.ByID[1].Box != 1 || state.ByID[1].Learned {
		t.Errorf("record 1 survived reset: %+v", state.ByID[1])
	}
	if state.Settings != models.DefaultSettings() {
		t.Errorf("settings survived reset: %+v", state.Settings)
	}
}

func TestWriteFailureIsSwallowed(t *testing.T) {
	blobs := storage.NewMemoryStore()
	blobs.FailWrites = true

	s := NewWithClock(blobs, testClock)

	box := 2
	s.PatchRecord(1, RecordPatch{Box: &box})

	// In-memory state stays authoritative despite the failed write
	if got := s.Record(1).Box; got != 2 {
		t.Errorf("record 1 box = %d, want 2", got)
	}
	if _, ok := blobs.Read(BlobKey); ok {
		t.Error("blob written despite write failures")
	}
}

func TestRecordDefaultsForUnknownID(t *testing.T) {
	s, _ := newTestStore(t)

	rec := s.Record(9999)
	if rec.Box != 1 || rec.Correct != 0 || rec.Wrong != 0 {
		t.Errorf("default record = %+v, want box 1 and zeroed counters", rec)
	}
}

// The reminder job counts due cards from its own goroutine while the
// bot goroutine grades cards, so reads and patches must be safe to
// interleave. Run with -race.
func TestConcurrentCountsAndPatches(t *testing.T) {
	s, _ := newTestStore(t)

	const iterations = 500
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			s.DueCount()
			s.LearnedCount()
			s.State()
			s.Record(14)
		}
	}()

	learned := true
	for i := 0; i < iterations; i++ {
		box := i%5 + 1
		s.PatchRecord(i%catalog.Size()+1, RecordPatch{Box: &box, Learned: &learned})
	}
	wg.Wait()

	if got := s.LearnedCount(); got != catalog.Size() {
		t.Errorf("LearnedCount after patching every card = %d, want %d", got, catalog.Size())
	}
}

func TestDueAndLearnedCounts(t *testing.T) {
	s, _ := newTestStore(t)

	// Everything starts due today
	if got := s.DueCount(); got != catalog.Size() {
		t.Fatalf("fresh DueCount = %d, want %d", got, catalog.Size())
	}
	if got := s.LearnedCount(); got != 0 {
		t.Fatalf("fresh LearnedCount = %d, want 0", got)
	}

	future := time.Date(2024, 3, 22, 0, 0, 0, 0, time.Local)
	learned := true
	for _, id := range catalog.IDs() {
		s.PatchRecord(id, RecordPatch{Due: &future})
	}
	s.PatchRecord(7, RecordPatch{Learned: &learned})

	if got := s.DueCount(); got != 0 {
		t.Errorf("DueCount = %d, want 0 after pushing everything out", got)
	}
	if got := s.LearnedCount(); got != 1 {
		t.Errorf("LearnedCount = %d, want 1", got)
	}
}
