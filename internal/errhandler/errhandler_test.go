package errhandler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
)

func TestIsCancelled(t *testing.T) {
	if !IsCancelled(fmt.Errorf("prompt: %w", huh.ErrUserAborted)) {
		t.Fatalf("huh abort not detected")
	}
	if !IsCancelled(terminal.InterruptErr) {
		t.Fatalf("survey interrupt not detected")
	}
	if IsCancelled(errors.New("boom")) {
		t.Fatalf("plain error treated as cancel")
	}
}

func TestReport(t *testing.T) {
	if code := Report(nil); code != 0 {
		t.Fatalf("nil code=%d", code)
	}
	if code := Report(huh.ErrUserAborted); code != 0 {
		t.Fatalf("cancel code=%d", code)
	}
	if code := Report(errors.New("bad")); code != 1 {
		t.Fatalf("error code=%d", code)
	}
}

func TestCapitalize(t *testing.T) {
	cases := map[string]string{"": "", "insufficient funds": "Insufficient funds", "élan": "Élan"}
	for in, want := range cases {
		if got := Capitalize(in); got != want {
			t.Errorf("Capitalize(%q)=%q want %q", in, got, want)
		}
	}
}
