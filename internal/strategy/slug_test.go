package strategy

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple title",
			input: "Front Door",
			want:  "front-door",
		},
		{
			name:  "diacritics fold to ascii",
			input: "Café de Paris",
			want:  "cafe-de-paris",
		},
		{
			name:  "punctuation collapses to one delimiter",
			input: "Front -- Door!!",
			want:  "front-door",
		},
		{
			name:  "leading and trailing junk stripped",
			input: "  ~Front Door~  ",
			want:  "front-door",
		},
		{
			name:  "thousand separators removed between digits",
			input: "1,000,000",
			want:  "1000000",
		},
		{
			name:  "comma not between digits still delimits",
			input: "a,b",
			want:  "a-b",
		},
		{
			name:  "no alphanumeric content",
			input: "!!!",
			want:  "unknown",
		},
		{
			name:  "empty input stays empty",
			input: "",
			want:  "",
		},
		{
			name:  "mixed case lowered",
			input: "Garage DOOR 2",
			want:  "garage-door-2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"Front Door", "Café de Paris", "1,000,000", "!!!", "", "already-a-slug"}
	for _, input := range inputs {
		once := Slugify(input)
		twice := Slugify(once)
		if once != twice {
			t.Errorf("Slugify not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestSlugifyWithDelimiter(t *testing.T) {
	if got := SlugifyWith("Front Door", "_"); got != "front_door" {
		t.Errorf("SlugifyWith(%q, %q) = %q, want %q", "Front Door", "_", got, "front_door")
	}
}
