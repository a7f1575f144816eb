package render

import (
	"fmt"
	"strings"
)

// Mode selects the evaluation contract of a render call. Production output is
// wrapped in tag templates for a downstream templating language; testing
// output repeats raw content so editors can preview mock iterations.
type Mode string

const (
	ModeProduction Mode = "production"
	ModeTesting    Mode = "testing"
)

// ParseMode accepts the mode names case-insensitively. An empty value selects
// production.
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(ModeProduction):
		return ModeProduction, nil
	case string(ModeTesting):
		return ModeTesting, nil
	default:
		return "", fmt.Errorf("render: unknown mode %q", raw)
	}
}

// Testing reports whether m is the testing mode.
func (m Mode) Testing() bool {
	return m == ModeTesting
}
