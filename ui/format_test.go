package ui

import "testing"

func TestFormatStock(t *testing.T) {
	tests := []struct {
		value, max float64
		want       string
	}{
		{10, 20, "10 / 20"},
		{3.19, 20, "3.1 / 20"},
		{0.05, 1.99, "0 / 1.9"},
		{12.5, 12.5, "12.5 / 12.5"},
	}
	for _, tt := range tests {
		if got := FormatStock(tt.value, tt.max); got != tt.want {
			t.Errorf("FormatStock(%v, %v) = %q, want %q", tt.value, tt.max, got, tt.want)
		}
	}
}

func TestFormatGain(t *testing.T) {
	tests := []struct {
		gain float64
		want string
	}{
		{1, "+1"},
		{0.66, "+0.6"},
		{0, "+0"},
		{-0.4, "-0.4"},
	}
	for _, tt := range tests {
		if got := FormatGain(tt.gain); got != tt.want {
			t.Errorf("FormatGain(%v) = %q, want %q", tt.gain, got, tt.want)
		}
	}
}
