package absa

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"
)

// ensemble runs proximity, dependency and contrast over the same input and
// averages their scores per (aspect, sentence).
type ensemble struct {
	*engine
	members []Strategy
}

func newEnsemble(e *engine) *ensemble {
	return &ensemble{
		engine:  e,
		members: []Strategy{newProximity(e), newDependency(e), newContrast(e)},
	}
}

func (en *ensemble) Name() string { return EnsembleKey }

type ensembleKey struct {
	aspect   string
	sentence int
}

type ensembleEntry struct {
	first    AspectSentiment
	scores   []float64
	evidence []OpinionEvidence
}

func (en *ensemble) Associate(doc *Document, aspects []AspectCandidate) []AspectSentiment {
	var order []ensembleKey
	entries := make(map[ensembleKey]*ensembleEntry)

	for _, member := range en.members {
		for _, rec := range member.Associate(doc, aspects) {
			key := ensembleKey{aspect: strings.ToLower(rec.Aspect), sentence: rec.SentenceIndex()}
			entry, ok := entries[key]
			if !ok {
				entry = &ensembleEntry{first: rec}
				entries[key] = entry
				order = append(order, key)
			}
			entry.scores = append(entry.scores, rec.Score)
			entry.evidence = append(entry.evidence, rec.Evidences...)
		}
	}

	results := make([]AspectSentiment, 0, len(order))
	for _, key := range order {
		entry := entries[key]
		score := scalar.Round(stat.Mean(entry.scores, nil), 3)
		results = append(results, en.agg.build(
			entry.first.Aspect,
			key.sentence,
			entry.first.Sentence,
			score,
			mergeEvidence(entry.evidence),
			en.Name(),
		))
	}
	return results
}

// mergeEvidence de-duplicates evidence by (lowercased word, distance). Among
// duplicates the one with the largest |adjusted score| is kept; the result
// is ordered by distance, then word.
func mergeEvidence(evidence []OpinionEvidence) []OpinionEvidence {
	ordered := make([]OpinionEvidence, len(evidence))
	copy(ordered, evidence)
	sort.SliceStable(ordered, func(i, j int) bool {
		wi, wj := strings.ToLower(ordered[i].Word), strings.ToLower(ordered[j].Word)
		if wi != wj {
			return wi < wj
		}
		if ordered[i].Distance != ordered[j].Distance {
			return ordered[i].Distance < ordered[j].Distance
		}
		return math.Abs(ordered[i].AdjustedScore) > math.Abs(ordered[j].AdjustedScore)
	})

	type dedupKey struct {
		word     string
		distance int
	}
	seen := make(map[dedupKey]bool, len(ordered))
	merged := ordered[:0]
	for _, ev := range ordered {
		k := dedupKey{strings.ToLower(ev.Word), ev.Distance}
		if seen[k] {
			continue
		}
		seen[k] = true
		merged = append(merged, ev)
	}
	return merged
}
