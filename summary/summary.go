// Package summary rolls per-sentence aspect records up into one line per
// aspect across a whole review set.
package summary

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"

	"github.com/tsawler/absa"
)

// AspectSummary counts how an aspect was judged across all its mentions.
type AspectSummary struct {
	Aspect            string     `json:"aspect"`
	Frequency         int        `json:"frequency"`
	Positive          int        `json:"positive"`
	Negative          int        `json:"negative"`
	Neutral           int        `json:"neutral"`
	AvgScore          float64    `json:"avg_score"`
	DominantSentiment absa.Label `json:"dominant_sentiment"`
}

// Summarize groups results by lowercased aspect text. The output is ordered
// by frequency, most frequent first, then by aspect.
func Summarize(results []absa.AspectSentiment) []AspectSummary {
	index := make(map[string]int)
	var out []AspectSummary
	var scores [][]float64

	for _, rec := range results {
		key := strings.ToLower(rec.Aspect)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, AspectSummary{Aspect: rec.Aspect})
			scores = append(scores, nil)
		}

		out[i].Aspect = rec.Aspect
		out[i].Frequency++
		switch rec.Sentiment {
		case absa.Positive:
			out[i].Positive++
		case absa.Negative:
			out[i].Negative++
		default:
			out[i].Neutral++
		}
		scores[i] = append(scores[i], rec.Score)
	}

	for i := range out {
		out[i].AvgScore = scalar.Round(stat.Mean(scores[i], nil), 3)
		out[i].DominantSentiment = dominant(out[i])
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return strings.ToLower(out[i].Aspect) < strings.ToLower(out[j].Aspect)
	})
	return out
}

// dominant returns the most frequent label; ties favor positive, then
// negative.
func dominant(s AspectSummary) absa.Label {
	label, best := absa.Positive, s.Positive
	if s.Negative > best {
		label, best = absa.Negative, s.Negative
	}
	if s.Neutral > best {
		label = absa.Neutral
	}
	return label
}
