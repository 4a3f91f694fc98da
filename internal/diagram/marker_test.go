package diagram

import (
	"errors"
	"testing"
)

func TestParseMarker(t *testing.T) {
	tests := []struct {
		stem string
		kind MarkerKind
	}{
		{"empty", NoMarker},
		{"full2", BarreMarker},
		{"full", Occupied},
		{"0", Occupied},
		{"12", Occupied},
		{"string_top", Occupied},
		{"dot-1", Occupied},
	}
	for _, tt := range tests {
		m, err := ParseMarker(tt.stem)
		if err != nil {
			t.Fatalf("ParseMarker(%q) failed: %v", tt.stem, err)
		}
		if m.Kind != tt.kind {
			t.Errorf("ParseMarker(%q).Kind = %v, want %v", tt.stem, m.Kind, tt.kind)
		}
		if m.Stem != tt.stem {
			t.Errorf("ParseMarker(%q).Stem = %q", tt.stem, m.Stem)
		}
	}
}

func TestParseMarker_Rejects(t *testing.T) {
	for _, stem := range []string{"", "a b", "../x", "dot.1", "é"} {
		_, err := ParseMarker(stem)
		var malformed *MalformedDiagramError
		if !errors.As(err, &malformed) {
			t.Errorf("ParseMarker(%q) error = %v, want MalformedDiagramError", stem, err)
		}
	}
}

func TestGridFromStems_StopsOnBadStem(t *testing.T) {
	_, err := GridFromStems([][]string{{"0"}, {"1", "bad stem"}})
	if err == nil {
		t.Fatal("expected error for bad stem")
	}
}
