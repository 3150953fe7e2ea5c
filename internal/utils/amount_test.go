package utils

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"0.01", 1, false},
		{"1.00", 100, false},
		{"12.34", 1234, false},
		{"999999.99", 99999999, false},
		{"1000000.00", 0, true},
		{"0.00", 0, true},
		{"0.001", 0, true},
		{"-1.00", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, c := range cases {
		got, err := ParseAmount(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseAmount(%q) expected error, got %d", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAmount(%q) unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseAmount(%q)=%d, want %d", c.in, got, c.want)
		}
	}
}

func TestFormatMinor(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{1, "0.01"},
		{100, "1.00"},
		{1234, "12.34"},
		{99999999, "999999.99"},
	}
	for _, c := range cases {
		if got := FormatMinor(c.in); got != c.want {
			t.Errorf("FormatMinor(%d)=%s, want %s", c.in, got, c.want)
		}
	}
}
