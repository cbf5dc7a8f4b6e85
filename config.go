package absa

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownStrategy is wrapped by the ConfigError returned for an
	// unregistered strategy key.
	ErrUnknownStrategy = errors.New("unknown strategy")
	// ErrInvalidConfig is wrapped by ConfigErrors raised by Config.Validate.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ConfigError reports a configuration value the engine cannot run with.
type ConfigError struct {
	Field string
	Value string
	Valid []string
	Err   error
}

func (e *ConfigError) Error() string {
	if len(e.Valid) > 0 {
		return fmt.Sprintf("absa: %s: %s %q (valid: %s)",
			e.Err, e.Field, e.Value, strings.Join(e.Valid, ", "))
	}
	return fmt.Sprintf("absa: %s: %s %q", e.Err, e.Field, e.Value)
}

// Unwrap returns the sentinel for errors.Is support.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Decay attenuates opinion strength with token distance from the anchor.
type Decay struct {
	Floor float64 // Lower bound of the factor
	Rate  float64 // Loss per token of distance
}

// Factor returns max(Floor, 1 - Rate*distance).
func (d Decay) Factor(distance int) float64 {
	if distance < 0 {
		distance = -distance
	}
	f := 1 - d.Rate*float64(distance)
	if f < d.Floor {
		return d.Floor
	}
	return f
}

// Thresholds are the score cut-offs used for labeling.
type Thresholds struct {
	Positive float64 // score > Positive is positive
	Negative float64 // score < -Negative is negative
}

// Config tunes the association strategies.
type Config struct {
	ProximityWindow          int // Max anchor distance for proximity evidence
	DependencyFallbackWindow int // Window used when no dependency link exists
	ContextWindow            int // Left tokens checked for negation/intensifiers

	ProximityDecay  Decay
	DependencyDecay Decay
	ContrastDecay   Decay

	Thresholds      Thresholds
	ContrastMarkers []string
	OpinionTags     []string // Accepted tags; Penn tags match by prefix
	MaxAspectWords  int

	ScoreScale         float64 // |score| treated as full-strength for confidence
	SufficientEvidence int     // Evidence count treated as full support
}

// DefaultConfig returns standard configuration
func DefaultConfig() Config {
	return Config{
		ProximityWindow:          7,
		DependencyFallbackWindow: 5,
		ContextWindow:            3,
		ProximityDecay:           Decay{Floor: 0.35, Rate: 0.08},
		DependencyDecay:          Decay{Floor: 0.40, Rate: 0.10},
		ContrastDecay:            Decay{Floor: 0.35, Rate: 0.08},
		Thresholds:               Thresholds{Positive: 0.35, Negative: 0.35},
		ContrastMarkers:          []string{"but", "however", "although", "though", "while", "yet"},
		OpinionTags:              []string{"ADJ", "VERB", "ADV", "JJ", "VB", "RB"},
		MaxAspectWords:           4,
		ScoreScale:               2.0,
		SufficientEvidence:       3,
	}
}

// Validate checks that every window and decay parameter is usable.
func (c Config) Validate() error {
	invalid := func(field string, value any) error {
		return &ConfigError{Field: field, Value: fmt.Sprint(value), Err: ErrInvalidConfig}
	}

	switch {
	case c.ProximityWindow < 0:
		return invalid("proximity window", c.ProximityWindow)
	case c.DependencyFallbackWindow < 0:
		return invalid("dependency fallback window", c.DependencyFallbackWindow)
	case c.ContextWindow < 0:
		return invalid("context window", c.ContextWindow)
	case c.Thresholds.Positive < 0:
		return invalid("positive threshold", c.Thresholds.Positive)
	case c.Thresholds.Negative < 0:
		return invalid("negative threshold", c.Thresholds.Negative)
	case c.MaxAspectWords < 1:
		return invalid("max aspect words", c.MaxAspectWords)
	case c.ScoreScale <= 0:
		return invalid("score scale", c.ScoreScale)
	case c.SufficientEvidence < 1:
		return invalid("sufficient evidence", c.SufficientEvidence)
	}

	decays := []struct {
		name  string
		decay Decay
	}{
		{"proximity decay", c.ProximityDecay},
		{"dependency decay", c.DependencyDecay},
		{"contrast decay", c.ContrastDecay},
	}
	for _, d := range decays {
		if d.decay.Floor < 0 || d.decay.Floor > 1 || d.decay.Rate < 0 {
			return invalid(d.name, fmt.Sprintf("floor=%g rate=%g", d.decay.Floor, d.decay.Rate))
		}
	}
	return nil
}

// isOpinionTag reports whether a POS tag may carry opinion polarity.
func (c Config) isOpinionTag(tag string) bool {
	upper := strings.ToUpper(tag)
	for _, t := range c.OpinionTags {
		if upper == t {
			return true
		}
		// Penn tags (JJ, JJR, VBD, ...) are matched by their two-letter prefix.
		if len(t) == 2 && strings.HasPrefix(upper, t) && len(upper) <= 3 {
			return true
		}
	}
	return false
}

// isContrastMarker reports whether the token key marks a contrast.
func (c Config) isContrastMarker(key string) bool {
	for _, m := range c.ContrastMarkers {
		if key == m {
			return true
		}
	}
	return false
}
