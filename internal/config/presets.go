package config

import (
	"fmt"
	"strings"
)

// TextSpeed is a named dialogue reveal rate.
type TextSpeed string

const (
	TextSpeedSlow    TextSpeed = "slow"
	TextSpeedNormal  TextSpeed = "normal"
	TextSpeedFast    TextSpeed = "fast"
	TextSpeedInstant TextSpeed = "instant"
)

// TextSpeeds lists the presets in menu order.
func TextSpeeds() []TextSpeed {
	return []TextSpeed{TextSpeedSlow, TextSpeedNormal, TextSpeedFast, TextSpeedInstant}
}

// CharsPerSecond returns the reveal rate for a preset. Instant is zero,
// which reveals each page whole.
func (s TextSpeed) CharsPerSecond() float64 {
	switch s {
	case TextSpeedSlow:
		return 10
	case TextSpeedFast:
		return 40
	case TextSpeedInstant:
		return 0
	default:
		return 20
	}
}

// ParseTextSpeed validates a preset name.
func ParseTextSpeed(name string) (TextSpeed, error) {
	s := TextSpeed(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range TextSpeeds() {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown text speed %q (want slow, normal, fast or instant)", name)
}

// ApplyTextSpeed sets the dialogue reveal rate from a preset.
func ApplyTextSpeed(cfg *Config, s TextSpeed) {
	cfg.Dialogue.CharsPerSecond = s.CharsPerSecond()
}
