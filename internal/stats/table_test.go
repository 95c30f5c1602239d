package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Color", "Per Tile", "Misses"}
	rows := [][]string{
		{"Red", "812", "12"},
		{"Light Cyan", "95", "3"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Color      Per Tile Misses" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Red             812     12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Light Cyan       95      3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}
