package idgen

import "testing"

func TestAllocateUnique(t *testing.T) {
	a := New()
	seen := make(map[string]bool)

	for i := 0; i < 500; i++ {
		id := a.Allocate(DefaultSize)
		if len(id) != DefaultSize {
			t.Fatalf("len(id)=%d want=%d", len(id), DefaultSize)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}

	if a.Len() != 500 {
		t.Fatalf("Len=%d want=500", a.Len())
	}
}

func TestAllocateSizeHint(t *testing.T) {
	a := New()

	cases := []struct {
		hint int
		want int
	}{
		{hint: 12, want: 12},
		{hint: 0, want: DefaultSize},
		{hint: 100, want: DefaultSize},
		{hint: 3, want: 8},
	}
	for _, tc := range cases {
		if got := len(a.Allocate(tc.hint)); got != tc.want {
			t.Fatalf("hint=%d len=%d want=%d", tc.hint, got, tc.want)
		}
	}
}

func TestRelease(t *testing.T) {
	a := New()
	id := a.Allocate(16)

	if !a.InUse(id) {
		t.Fatalf("%q should be in use", id)
	}
	a.Release(id)
	if a.InUse(id) {
		t.Fatalf("%q should be released", id)
	}

	a.Release("never-allocated")
	if a.Len() != 0 {
		t.Fatalf("Len=%d want=0", a.Len())
	}
}
