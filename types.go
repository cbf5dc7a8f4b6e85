package absa

import (
	"encoding/json"
	"strings"
)

// NoHead marks a token whose dependency head is unknown.
const NoHead = -1

// A Token represents an individual annotated token handed over by the
// annotation service.
type Token struct {
	Text  string `json:"text"`             // The token's actual content.
	Lemma string `json:"lemma"`            // Dictionary form.
	Tag   string `json:"pos_tag"`          // Coarse part-of-speech tag.
	Dep   string `json:"dependency_label"` // Dependency relation to Head.
	Head  int    `json:"head_index"`       // Doc index of the head, or NoHead.
	Index int    `json:"doc_index"`        // Absolute position in the document.
	Start int    `json:"start,omitempty"`  // Start position in original text
	End   int    `json:"end,omitempty"`    // End position in original text
}

// UnmarshalJSON decodes a token, treating an absent head_index as NoHead.
func (t *Token) UnmarshalJSON(data []byte) error {
	type plain Token
	aux := struct {
		*plain
		Head *int `json:"head_index"`
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.Head = NoHead
	if aux.Head != nil {
		t.Head = *aux.Head
	}
	return nil
}

// Key returns the lowercased lemma, or the lowercased text when the
// annotator supplied no lemma.
func (t Token) Key() string {
	if t.Lemma != "" {
		return strings.ToLower(t.Lemma)
	}
	return strings.ToLower(t.Text)
}

// HasTag reports whether the token carries a part-of-speech tag.
func (t Token) HasTag() bool {
	return t.Tag != ""
}

// HasDependency reports whether the token carries usable dependency
// information.
func (t Token) HasDependency() bool {
	return t.Head != NoHead
}

// A Sentence represents a segmented portion of text together with its tokens.
type Sentence struct {
	Text   string  `json:"text"`
	Tokens []Token `json:"tokens"`

	// Doc-index span [Start, End) filled in by NewDocument.
	Start int `json:"-"`
	End   int `json:"-"`
}

// String returns the text content of the sentence
func (s Sentence) String() string {
	return s.Text
}

// Contains reports whether the doc index falls inside the sentence.
func (s Sentence) Contains(index int) bool {
	return index >= s.Start && index < s.End
}

// position returns the slice position of the token with the given doc index.
func (s Sentence) position(index int) int {
	if !s.Contains(index) {
		return -1
	}
	if p := index - s.Start; p < len(s.Tokens) && s.Tokens[p].Index == index {
		return p
	}
	for p := range s.Tokens {
		if s.Tokens[p].Index == index {
			return p
		}
	}
	return -1
}

// token returns the token with the given doc index.
func (s Sentence) token(index int) (Token, bool) {
	p := s.position(index)
	if p < 0 {
		return Token{}, false
	}
	return s.Tokens[p], true
}

// An AspectCandidate is a noun phrase under discussion, produced by the
// extraction step.
type AspectCandidate struct {
	Text     string `json:"text"`
	Anchor   int    `json:"anchor"` // Doc index of the phrase head.
	Start    int    `json:"start"`  // Doc-index span [Start, End).
	End      int    `json:"end"`
	Sentence int    `json:"sentence"` // Index into Document.Sentences.
}

// Label is the sentiment class assigned to an aspect.
type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
)

// OpinionEvidence is one scored opinion token contributing to an aspect.
type OpinionEvidence struct {
	Word          string  `json:"word"`
	Lemma         string  `json:"-"`
	BaseScore     float64 `json:"base_score"`
	AdjustedScore float64 `json:"adjusted_score"`
	Negated       bool    `json:"negated"`
	Intensifier   string  `json:"intensifier"`
	Distance      int     `json:"distance"`
	Index         int     `json:"-"`
}

// AspectSentiment is the scored result for one aspect in one sentence.
type AspectSentiment struct {
	Aspect     string            `json:"aspect"`
	Sentiment  Label             `json:"sentiment"`
	Score      float64           `json:"score"`
	Confidence float64           `json:"confidence"`
	Sentence   string            `json:"sentence"`
	Evidences  []OpinionEvidence `json:"evidences"`
	Approach   string            `json:"approach"`

	sentence int
}

// SentenceIndex returns the index of the sentence the record belongs to, or
// -1 when the aspect could not be placed in any sentence.
func (as AspectSentiment) SentenceIndex() int {
	return as.sentence
}
