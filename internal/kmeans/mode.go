package kmeans

import (
	"fmt"
	"strings"
)

// Mode selects the clustering strategy.
type Mode int

const (
	ModeHard Mode = iota
	ModeSoft
	// ModeGMM fits 2-D Gaussians on the first two coordinates and needs
	// dim >= 2. With one coordinate every covariance is singular and each
	// update falls back to the round-robin assignment.
	ModeGMM
)

func (m Mode) String() string {
	switch m {
	case ModeHard:
		return "hard"
	case ModeSoft:
		return "soft"
	case ModeGMM:
		return "gmm"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ParseMode parses a mode name. It accepts the String forms plus a few aliases.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hard", "kmeans", "k-means":
		return ModeHard, true
	case "soft", "soft-kmeans", "soft-k-means":
		return ModeSoft, true
	case "gmm", "em":
		return ModeGMM, true
	default:
		return ModeHard, false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	switch m {
	case ModeHard, ModeSoft, ModeGMM:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("kmeans: invalid mode %d", int(m))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, ok := ParseMode(string(text))
	if !ok {
		return fmt.Errorf("kmeans: unknown mode %q", string(text))
	}
	*m = parsed
	return nil
}

const (
	// DefaultMaxSweeps bounds the hard-mode Lloyd loop.
	DefaultMaxSweeps = 1000
	// MinBeta is the floor applied to non-positive stiffness values.
	MinBeta = 0.01
)

// Config holds the strategy parameters of an Engine.
type Config struct {
	// Mode selects hard, soft or GMM clustering.
	Mode Mode `json:"mode"`
	// Beta is the soft-assignment stiffness (1/σ). Soft mode only.
	Beta float64 `json:"beta"`
	// Power selects the distance metric. Hard mode only.
	Power int `json:"power"`
	// PlusPlus enables K-Means++ seeding.
	PlusPlus bool `json:"plus_plus"`
	// MaxSweeps caps the assignment sweeps of one hard-mode Update.
	MaxSweeps int `json:"max_sweeps"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		Mode:      ModeHard,
		Beta:      1,
		Power:     2,
		PlusPlus:  true,
		MaxSweeps: DefaultMaxSweeps,
	}
}

func (c Config) normalized() Config {
	switch c.Mode {
	case ModeHard, ModeSoft, ModeGMM:
	default:
		c.Mode = ModeHard
	}
	if !(c.Beta > 0) {
		c.Beta = MinBeta
	}
	if c.Power < 0 {
		c.Power = 2
	}
	if c.MaxSweeps <= 0 {
		c.MaxSweeps = DefaultMaxSweeps
	}
	return c
}
