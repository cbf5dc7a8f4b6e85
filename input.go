package absa

import (
	"encoding/json"
	"fmt"
	"io"
)

// Input is the JSON document handed over by an annotation service. Aspects
// are optional; when absent the caller is expected to extract them.
type Input struct {
	Text      string            `json:"text"`
	Sentences []Sentence        `json:"sentences"`
	Aspects   []AspectCandidate `json:"aspects,omitempty"`
}

// DecodeInput reads one annotated Input from r and validates it into a
// Document.
func DecodeInput(r io.Reader) (*Document, []AspectCandidate, error) {
	var in Input
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, nil, fmt.Errorf("error decoding annotated input: %w", err)
	}

	doc, err := NewDocument(in.Text, in.Sentences)
	if err != nil {
		return nil, nil, err
	}
	return doc, in.Aspects, nil
}
