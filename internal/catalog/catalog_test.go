package catalog

import "testing"

func TestCatalogShape(t *testing.T) {
	if Size() != 60 {
		t.Fatalf("catalog has %d radicals, want 60", Size())
	}

	seen := make(map[int]bool)
	for i, r := range All() {
		if r.ID != i+1 {
			t.Errorf("radical at position %d has id %d, want %d", i, r.ID, i+1)
		}
		if seen[r.ID] {
			t.Errorf("duplicate id %d", r.ID)
		}
		seen[r.ID] = true

		if r.Name == "" || r.Radical == "" || r.Pinyin == "" || r.Meaning == "" || r.Mnemonic == "" {
			t.Errorf("radical %d has an empty field: %+v", r.ID, r)
		}
		if len(r.Examples) == 0 {
			t.Errorf("radical %d has no examples", r.ID)
		}
	}
}

// Quiz distractor selection relies on meanings being distinct
func TestMeaningsAreUnique(t *testing.T) {
	seen := make(map[string]int)
	for _, r := range All() {
		if other, ok := seen[r.Meaning]; ok {
			t.Errorf("radicals %d and %d share the meaning %q", other, r.ID, r.Meaning)
		}
		seen[r.Meaning] = r.ID
	}
}

func TestByID(t *testing.T) {
	r, ok := ByID(14)
	if !ok || r.Name != "Thủy" {
		t.Errorf("ByID(14) = %+v, %v; want Thủy", r, ok)
	}
	if _, ok := ByID(0); ok {
		t.Error("ByID(0) found a radical")
	}
	if _, ok := ByID(61); ok {
		t.Error("ByID(61) found a radical")
	}
}

func TestIDsMatchCatalogOrder(t *testing.T) {
	ids := IDs()
	if len(ids) != Size() {
		t.Fatalf("IDs returned %d entries", len(ids))
	}
	for i, id := range ids {
		if id != i+1 {
			t.Errorf("IDs()[%d] = %d, want %d", i, id, i+1)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{in: "shuǐ", expected: "shui"},
		{in: "RÉN", expected: "ren"},
		{in: "nǚ", expected: "nu"},
		{in: "  kǒu  ", expected: "kou"},
		{in: "plain", expected: "plain"},
		{in: "", expected: ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}

func TestPinyinToneSetting(t *testing.T) {
	r, _ := ByID(14)
	if got := Pinyin(r, true); got != "shuǐ" {
		t.Errorf("Pinyin with tone marks = %q", got)
	}
	if got := Pinyin(r, false); got != "shui" {
		t.Errorf("Pinyin without tone marks = %q", got)
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantIDs []int
	}{
		{name: "by toneless pinyin", query: "shui", wantIDs: []int{14}},
		{name: "by glyph", query: "水", wantIDs: []int{14}},
		{name: "by example character", query: "路", wantIDs: []int{30}},
		{name: "no match", query: "zzzzz", wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(tt.query)
			var ids []int
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			if len(ids) != len(tt.wantIDs) {
				t.Fatalf("Search(%q) = %v, want %v", tt.query, ids, tt.wantIDs)
			}
			for i := range ids {
				if ids[i] != tt.wantIDs[i] {
					t.Fatalf("Search(%q) = %v, want %v", tt.query, ids, tt.wantIDs)
				}
			}
		})
	}

	if got := Search(""); len(got) != Size() {
		t.Errorf("empty query matched %d radicals, want all %d", len(got), Size())
	}
	if got := Search("   "); len(got) != Size() {
		t.Errorf("blank query matched %d radicals, want all %d", len(got), Size())
	}
}
