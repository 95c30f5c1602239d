package palette

import "testing"

func TestPaletteIsDistinctAndExcludesHighlight(t *testing.T) {
	seen := map[Color]bool{}
	for _, e := range Palette() {
		if seen[e.Color] {
			t.Fatalf("duplicate color %v (%s)", e.Color, e.Name)
		}
		if e.Color == Highlight {
			t.Fatalf("highlight color must not be a target")
		}
		seen[e.Color] = true
	}
	if len(seen) != 15 {
		t.Fatalf("expected 15 colors, got %d", len(seen))
	}
}

func TestSequenceAdvancesToExhaustion(t *testing.T) {
	seq := NewSequence()
	first, ok := seq.Current()
	if !ok || first.Name != "Black" {
		t.Fatalf("expected Black first, got %+v ok=%v", first, ok)
	}
	for i := 0; i < Size; i++ {
		if !seq.HasNext() {
			t.Fatalf("sequence exhausted early at %d", i)
		}
		seq.Advance()
	}
	if seq.HasNext() {
		t.Fatalf("expected sequence to be exhausted")
	}
	if _, ok := seq.Current(); ok {
		t.Fatalf("expected no current entry after exhaustion")
	}
	seq.Advance()
	if seq.Index() != Size {
		t.Fatalf("advance past end moved cursor to %d", seq.Index())
	}
}

func TestColorHexAndContrast(t *testing.T) {
	if got := (Color{R: 0, G: 170, B: 255}).Hex(); got != "#00AAFF" {
		t.Fatalf("unexpected hex %q", got)
	}
	if !(Color{}).IsDark() {
		t.Fatalf("black should be dark")
	}
	if (Color{R: 255, G: 255, B: 255}).IsDark() {
		t.Fatalf("white should not be dark")
	}
	if name, ok := NameOf(Color{R: 170, G: 85, B: 0}); !ok || name != "Brown" {
		t.Fatalf("unexpected name %q ok=%v", name, ok)
	}
}
