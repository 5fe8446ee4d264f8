package textproc

import (
	"strings"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "basic",
			in:   "First sentence. Second one! Third?",
			want: []string{"First sentence.", "Second one!", "Third?"},
		},
		{
			name: "trailing fragment without punctuation",
			in:   "Complete sentence. Trailing fragment",
			want: []string{"Complete sentence.", "Trailing fragment"},
		},
		{
			name: "punctuation run stays together",
			in:   "Really?! Yes.",
			want: []string{"Really?!", "Yes."},
		},
		{
			name: "empty",
			in:   "   ",
			want: nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitSentences(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d sentences %q, want %d", len(got), got, len(tc.want))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("sentence %d: got %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestTruncateShortTextUnchanged(t *testing.T) {
	in := "Fits fine."
	if got := Truncate(in, 50); got != in {
		t.Errorf("got %q, want input unchanged", got)
	}
	if got := Truncate(in, len(in)); got != in {
		t.Errorf("exact-length input modified: %q", got)
	}
}

func TestTruncatePrefersSentenceBoundary(t *testing.T) {
	in := "First sentence here. Second sentence follows after it."
	got := Truncate(in, 30)
	if got != "First sentence here."+Ellipsis {
		t.Errorf("got %q, want first sentence plus marker", got)
	}
	if len(got) > 30 {
		t.Errorf("result length %d exceeds limit 30", len(got))
	}
}

func TestTruncateMidSentenceFallback(t *testing.T) {
	in := strings.Repeat("x", 100)
	got := Truncate(in, 20)
	if len(got) != 20 {
		t.Errorf("got length %d, want 20", len(got))
	}
	if !strings.HasSuffix(got, Ellipsis) {
		t.Errorf("got %q, want ellipsis suffix", got)
	}
}

func TestTruncateNeverExceedsLimit(t *testing.T) {
	in := strings.Repeat("Some words in a sentence. ", 40)
	for _, limit := range []int{5, 10, 50, 200, 500} {
		got := Truncate(in, limit)
		if len(got) > limit {
			t.Errorf("limit %d: result length %d", limit, len(got))
		}
	}
}

func TestTruncateTinyLimit(t *testing.T) {
	got := Truncate("abcdef", 3)
	if got != "abc" {
		t.Errorf("got %q, want hard slice without marker", got)
	}
}

func TestCleanBullet(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  hello   world  ", "Hello world."},
		{"already Done!", "Already Done!"},
		{"ends with question?", "Ends with question?"},
		{"multi\n line\ttext", "Multi line text."},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := CleanBullet(tc.in); got != tc.want {
			t.Errorf("CleanBullet(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
