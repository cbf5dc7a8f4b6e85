package absa

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// PolarityResource holds the static tables every strategy consults: base
// polarity per lemma, negation markers, intensifier factors and generic nouns.
//
// A PolarityResource is read-only once built and may be shared freely between
// goroutines.
type PolarityResource struct {
	polarity     map[string]float64
	negations    map[string]struct{}
	intensifiers map[string]float64
	generic      map[string]struct{}
}

// LexiconData is the serializable form of a PolarityResource.
type LexiconData struct {
	Polarity     map[string]float64 `json:"polarity" yaml:"polarity"`
	Negations    []string           `json:"negations" yaml:"negations"`
	Intensifiers map[string]float64 `json:"intensifiers" yaml:"intensifiers"`
	Generic      []string           `json:"generic" yaml:"generic"`
}

// DefaultLexiconData returns the built-in product review tables.
func DefaultLexiconData() LexiconData {
	return LexiconData{
		Polarity: map[string]float64{
			// Positive
			"amazing":     2.5,
			"awesome":     2.3,
			"excellent":   2.4,
			"great":       2.0,
			"love":        2.3,
			"durable":     1.8,
			"reliable":    1.7,
			"good":        1.6,
			"responsive":  1.4,
			"smooth":      1.3,
			"sharp":       1.3,
			"fast":        1.2,
			"nice":        1.2,
			"clear":       1.2,
			"bright":      1.1,
			"comfortable": 1.4,
			"decent":      0.8,

			// Negative
			"terrible":      -2.6,
			"awful":         -2.5,
			"disappointing": -2.2,
			"laggy":         -2.1,
			"hate":          -2.0,
			"poor":          -1.9,
			"bad":           -1.8,
			"blurry":        -1.6,
			"slow":          -1.4,
			"weak":          -1.2,
			"noisy":         -1.2,
			"dim":           -1.2,
			"expensive":     -1.0,
			"heavy":         -0.8,
		},
		Negations: []string{
			"not", "n't", "no", "never", "hardly", "rarely", "without",
			"cannot", "isn't", "wasn't", "aren't", "don't", "doesn't",
			"didn't", "can't", "won't",
		},
		Intensifiers: map[string]float64{
			"extremely": 1.9,
			"very":      1.5,
			"really":    1.4,
			"super":     1.35,
			"too":       1.3,
			"quite":     1.2,
			"somewhat":  0.8,
			"slightly":  0.7,
			"barely":    0.6,
		},
		Generic: []string{
			"thing", "things", "item", "product", "stuff", "time", "day",
			"issue", "problem", "experience", "one", "anything", "everything",
		},
	}
}

// LoadLexiconData reads a JSON or YAML lexicon file and merges it over the
// built-in tables. Entries in the file win over the defaults.
func LoadLexiconData(path string) (LexiconData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return LexiconData{}, fmt.Errorf("error reading lexicon file: %w", err)
	}

	var external LexiconData
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &external); err != nil {
			return LexiconData{}, fmt.Errorf("error parsing lexicon YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(raw, &external); err != nil {
			return LexiconData{}, fmt.Errorf("error parsing lexicon JSON: %w", err)
		}
	}

	return DefaultLexiconData().Merge(external), nil
}

// Merge returns a copy of ld extended with the entries of other.
func (ld LexiconData) Merge(other LexiconData) LexiconData {
	merged := LexiconData{
		Polarity:     make(map[string]float64, len(ld.Polarity)+len(other.Polarity)),
		Intensifiers: make(map[string]float64, len(ld.Intensifiers)+len(other.Intensifiers)),
	}
	for _, src := range []map[string]float64{ld.Polarity, other.Polarity} {
		for word, score := range src {
			merged.Polarity[strings.ToLower(word)] = score
		}
	}
	for _, src := range []map[string]float64{ld.Intensifiers, other.Intensifiers} {
		for word, factor := range src {
			merged.Intensifiers[strings.ToLower(word)] = factor
		}
	}
	merged.Negations = appendUnique(ld.Negations, other.Negations)
	merged.Generic = appendUnique(ld.Generic, other.Generic)
	return merged
}

func appendUnique(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, word := range list {
			word = strings.ToLower(word)
			if word == "" || seen[word] {
				continue
			}
			seen[word] = true
			out = append(out, word)
		}
	}
	return out
}

// DefaultPolarityResource builds a resource from the built-in tables.
func DefaultPolarityResource() *PolarityResource {
	return NewPolarityResource(DefaultLexiconData())
}

// LoadPolarityResource builds a resource from a lexicon file merged over the
// built-in tables.
func LoadPolarityResource(path string) (*PolarityResource, error) {
	data, err := LoadLexiconData(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load external lexicon: %w", err)
	}
	return NewPolarityResource(data), nil
}

// NewPolarityResource copies data into a new read-only resource.
func NewPolarityResource(data LexiconData) *PolarityResource {
	pr := &PolarityResource{
		polarity:     make(map[string]float64, len(data.Polarity)),
		negations:    make(map[string]struct{}, len(data.Negations)),
		intensifiers: make(map[string]float64, len(data.Intensifiers)),
		generic:      make(map[string]struct{}, len(data.Generic)),
	}
	for word, score := range data.Polarity {
		pr.polarity[strings.ToLower(word)] = score
	}
	for _, word := range data.Negations {
		pr.negations[strings.ToLower(word)] = struct{}{}
	}
	for word, factor := range data.Intensifiers {
		pr.intensifiers[strings.ToLower(word)] = factor
	}
	for _, word := range data.Generic {
		pr.generic[strings.ToLower(word)] = struct{}{}
	}
	return pr
}

// Polarity returns the base score for a lemma.
func (pr *PolarityResource) Polarity(lemma string) (float64, bool) {
	score, ok := pr.polarity[strings.ToLower(lemma)]
	return score, ok
}

// IsOpinion reports whether the lemma carries polarity.
func (pr *PolarityResource) IsOpinion(lemma string) bool {
	_, ok := pr.polarity[strings.ToLower(lemma)]
	return ok
}

// IsNegation reports whether the lemma is a negation marker.
func (pr *PolarityResource) IsNegation(lemma string) bool {
	_, ok := pr.negations[strings.ToLower(lemma)]
	return ok
}

// Intensifier returns the multiplier for an intensifier lemma.
func (pr *PolarityResource) Intensifier(lemma string) (float64, bool) {
	factor, ok := pr.intensifiers[strings.ToLower(lemma)]
	return factor, ok
}

// IsGeneric reports whether a noun lemma is too generic to be an aspect.
func (pr *PolarityResource) IsGeneric(lemma string) bool {
	_, ok := pr.generic[strings.ToLower(lemma)]
	return ok
}

// Size returns the number of polarity entries.
func (pr *PolarityResource) Size() int {
	return len(pr.polarity)
}
