package allocate

import (
	"strings"
	"testing"
)

func TestRunIDFormat(t *testing.T) {
	id := newRunID()
	if len(id) != 26 {
		t.Fatalf("length %d, want 26", len(id))
	}
	for i, c := range id {
		if !strings.ContainsRune(crockford, c) {
			t.Errorf("char %d %q outside Base32 alphabet", i, c)
		}
	}
}

func TestRunIDsSortChronologically(t *testing.T) {
	a := newRunID()
	b := newRunID()
	if a == b {
		t.Fatal("consecutive run IDs identical")
	}
	if a >= b {
		t.Errorf("later ID does not sort after earlier: %q >= %q", a, b)
	}
}
