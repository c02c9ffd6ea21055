package validation

import (
	"strings"
	"testing"
)

type fakeBanks []string

func (f fakeBanks) Names() []string { return f }

func TestValidateName(t *testing.T) {
	if err := ValidateName("name", "  "); err == nil {
		t.Fatalf("blank name should fail")
	}
	if err := ValidateName("name", strings.Repeat("x", 101)); err == nil {
		t.Fatalf("long name should fail")
	}
	if err := ValidateName("name", "Alpha"); err != nil {
		t.Fatal(err)
	}
}

func TestBankNames(t *testing.T) {
	v := NewValidator(fakeBanks{"Alpha"})

	if err := v.ValidateNewBankName("alpha"); err == nil {
		t.Fatalf("name clash should fail")
	}
	if err := v.ValidateNewBankName("Beta"); err != nil {
		t.Fatal(err)
	}
}

func TestAmounts(t *testing.T) {
	for _, s := range []string{"0", "-1", "abc"} {
		if err := ValidatePositiveAmount(s); err == nil {
			t.Fatalf("ValidatePositiveAmount(%q) should fail", s)
		}
	}
	if err := ValidatePositiveAmount("0.01"); err != nil {
		t.Fatal(err)
	}
	if err := ValidateRate("0"); err != nil {
		t.Fatal(err)
	}
	if err := ValidateRate("-0.1"); err == nil {
		t.Fatalf("negative rate should fail")
	}
}
