package helpers

import (
	"testing"
	"time"
)

func TestFormatDisplayTime(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	if got := FormatDisplayTime(ts); got != "2025-03-14 09:26" {
		t.Errorf("FormatDisplayTime = %q", got)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Duration
	}{
		{name: "valid duration", input: "90m", want: 90 * time.Minute},
		{name: "invalid falls back to default", input: "not-a-duration", want: time.Hour},
		{name: "empty falls back to default", input: "", want: time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDuration(tt.input, time.Hour); got != tt.want {
				t.Errorf("ParseDuration(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
