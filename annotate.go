package absa

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// LexicalAnnotator is an offline Annotator: it segments and tokenizes text
// but supplies no POS tags or dependency heads. Lemmas are lowercased
// surface forms.
type LexicalAnnotator struct {
	segmenter *sentences.DefaultSentenceTokenizer
	tokenizer Tokenizer
}

// NewLexicalAnnotator loads the English sentence model.
func NewLexicalAnnotator() (*LexicalAnnotator, error) {
	segmenter, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load sentence model: %w", err)
	}
	return &LexicalAnnotator{segmenter: segmenter, tokenizer: NewIterTokenizer()}, nil
}

// Annotate implements Annotator.
func (a *LexicalAnnotator) Annotate(ctx context.Context, text string) ([]Sentence, error) {
	var out []Sentence
	index := 0
	for _, s := range a.segmenter.Tokenize(text) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		trimmed := strings.TrimSpace(s.Text)
		if trimmed == "" {
			continue
		}
		lead := strings.Index(s.Text, trimmed)

		tokens := a.tokenizer.Tokenize(trimmed)
		for i := range tokens {
			tokens[i].Index = index
			tokens[i].Lemma = lexicalLemma(tokens[i].Text)
			tokens[i].Start += s.Start + lead
			tokens[i].End += s.Start + lead
			index++
		}
		out = append(out, Sentence{Text: trimmed, Tokens: tokens})
	}
	return out, nil
}

func lexicalLemma(text string) string {
	lower := strings.ToLower(text)
	if lower == "n't" {
		return "not"
	}
	return lower
}
