package util

import "testing"

func TestDurationToMinutes(t *testing.T) {
	tests := []struct {
		seconds float64
		want    int
	}{
		{0, 0},
		{-5, 0},
		{1, 1},
		{59.9, 1},
		{60, 1},
		{60.5, 2},
		{61, 2},
		{3600, 60},
		{3600.1, 61},
	}

	for _, tt := range tests {
		if got := DurationToMinutes(tt.seconds); got != tt.want {
			t.Errorf("DurationToMinutes(%v) = %d, want %d", tt.seconds, got, tt.want)
		}
	}
}
