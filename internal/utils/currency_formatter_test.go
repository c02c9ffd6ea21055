package utils

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "150", want: "150"},
		{in: " 10.5 ", want: "10.5"},
		{in: "-3.25", want: "-3.25"},
		{in: "", wantErr: true},
		{in: "1.2.3", wantErr: true},
		{in: "ten", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseAmount(%q) should fail, got %s", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseAmount(%q) err=%v", tc.in, err)
		}
		if got.String() != tc.want {
			t.Fatalf("ParseAmount(%q)=%s want=%s", tc.in, got, tc.want)
		}
	}
}

func TestFormatAmountAndShortID(t *testing.T) {
	d, _ := ParseAmount("5.5")
	if got := FormatAmount(d); got != "5.50" {
		t.Fatalf("FormatAmount=%s want=5.50", got)
	}
	if got := ShortID("abcdefghijkl"); got != "abcdefgh" {
		t.Fatalf("ShortID=%s", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Fatalf("ShortID=%s", got)
	}
}
