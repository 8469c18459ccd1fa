package fuzzy

import "testing"

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"multiple", "multipel", 2},
		{"gumbo", "gambol", 2},
		{"a", "b", 1},
	}
	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"", "word"},
		{"short", "a much longer string"},
	}
	for _, p := range pairs {
		if Distance(p[0], p[1]) != Distance(p[1], p[0]) {
			t.Errorf("Distance(%q, %q) not symmetric", p[0], p[1])
		}
	}
}

func TestDistance_Runes(t *testing.T) {
	// One substitution, not a byte-level diff.
	if got := Distance("мир", "пир"); got != 1 {
		t.Errorf("Distance(мир, пир) = %d, want 1", got)
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1},
		{"abc", "abc", 1},
		{"abc", "xyz", 0},
		{"multiple", "multipel", 0.75},
		{"abcd", "abc", 0.75},
	}
	for _, tt := range tests {
		if got := Similarity(tt.a, tt.b); got != tt.want {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSimilarity_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"a", "completely different"},
		{"almost", "almos"},
		{"", "x"},
	}
	for _, p := range pairs {
		s := Similarity(p[0], p[1])
		if s < 0 || s > 1 {
			t.Errorf("Similarity(%q, %q) = %v, out of [0,1]", p[0], p[1], s)
		}
	}
}
