package config

import (
	"fmt"
	"time"
)

// Duration wraps time.Duration with YAML-friendly string parsing.
// Supports standard Go duration strings: "500ms", "2s", "30s", "5m", etc.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for YAML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := parseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler for YAML serialization.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if parsed < 0 {
		return 0, fmt.Errorf("negative duration %q not allowed", s)
	}
	return parsed, nil
}
