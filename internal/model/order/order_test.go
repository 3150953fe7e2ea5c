package ordermodel

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to int8
		want     bool
	}{
		{StatusPending, StatusPaying, true},
		{StatusPending, StatusSuccess, true},
		{StatusPending, StatusFailed, true},
		{StatusPending, StatusClosed, true},
		{StatusPaying, StatusSuccess, true},
		{StatusPaying, StatusFailed, true},
		{StatusPaying, StatusClosed, true},
		{StatusSuccess, StatusRefunded, true},

		{StatusSuccess, StatusPending, false},
		{StatusSuccess, StatusPaying, false},
		{StatusSuccess, StatusClosed, false},
		{StatusFailed, StatusSuccess, false},
		{StatusFailed, StatusPending, false},
		{StatusClosed, StatusSuccess, false},
		{StatusClosed, StatusPaying, false},
		{StatusRefunded, StatusSuccess, false},
		{StatusPaying, StatusPending, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%d,%d)=%v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []int8{StatusSuccess, StatusFailed, StatusRefunded, StatusClosed} {
		if !IsTerminal(s) {
			t.Errorf("status %d should be terminal", s)
		}
	}
	for _, s := range []int8{StatusPending, StatusPaying} {
		if IsTerminal(s) {
			t.Errorf("status %d should not be terminal", s)
		}
	}
}
