package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// DisplayTimeFormat is the format used for timestamps sent to the portal.
// The portal treats these as opaque display strings and never parses them.
const DisplayTimeFormat = "2006-01-02 15:04"

// FormatDisplayTime renders a timestamp in the portal's display format
func FormatDisplayTime(t time.Time) string {
	return t.Format(DisplayTimeFormat)
}

// ParseDuration parses a duration string, returns the default on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}
