package absa

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDocument is returned when annotated input breaks the token
// ordering contract.
var ErrInvalidDocument = errors.New("invalid document")

// An Annotator segments, tokenizes and tags raw text. Full annotators fill in
// lemma, POS and dependency fields; degraded ones may leave them empty.
type Annotator interface {
	Annotate(ctx context.Context, text string) ([]Sentence, error)
}

// A DocOpt represents a setting that changes the document creation process.
//
// For example, it might bound annotation time:
//
//	doc, err := absa.AnnotateDocument("...", absa.WithTimeout(time.Second))
type DocOpt func(opts *DocOpts)

// DocOpts controls the Document creation process:
type DocOpts struct {
	Annotator Annotator       // Annotator to use
	Context   context.Context // Context for cancellation and timeouts
	Timeout   time.Duration   // Processing timeout
}

// UsingAnnotator specifies the Annotator to use.
func UsingAnnotator(a Annotator) DocOpt {
	return func(opts *DocOpts) {
		opts.Annotator = a
	}
}

// WithContext sets the context for document processing
func WithContext(ctx context.Context) DocOpt {
	return func(opts *DocOpts) {
		opts.Context = ctx
	}
}

// WithTimeout sets a timeout for document processing
func WithTimeout(timeout time.Duration) DocOpt {
	return func(opts *DocOpts) {
		opts.Timeout = timeout
	}
}

// A Document represents an annotated body of text.
type Document struct {
	Text string

	sentences []Sentence
}

// Sentences returns `doc`'s sentences.
func (doc *Document) Sentences() []Sentence {
	return doc.sentences
}

// Tokens returns `doc`'s tokens in document order.
func (doc *Document) Tokens() []Token {
	var tokens []Token
	for _, sent := range doc.sentences {
		tokens = append(tokens, sent.Tokens...)
	}
	return tokens
}

// NewDocument builds a Document from annotated sentences. Doc indices must
// increase strictly across the document; a document whose tokens all carry
// index 0 is numbered sequentially. Head references that point outside the
// document are dropped to NoHead.
func NewDocument(text string, sentences []Sentence) (*Document, error) {
	doc := &Document{Text: text, sentences: make([]Sentence, len(sentences))}

	unnumbered := true
	count := 0
	for _, sent := range sentences {
		for _, tok := range sent.Tokens {
			count++
			if tok.Index != 0 {
				unnumbered = false
			}
		}
	}
	if count <= 1 {
		unnumbered = false
	}

	known := make(map[int]bool, count)
	next, last := 0, -1
	for i, sent := range sentences {
		tokens := make([]Token, len(sent.Tokens))
		copy(tokens, sent.Tokens)
		for j := range tokens {
			if unnumbered {
				tokens[j].Index = next
				next++
			}
			if tokens[j].Index <= last {
				return nil, fmt.Errorf("%w: token %q at index %d follows index %d",
					ErrInvalidDocument, tokens[j].Text, tokens[j].Index, last)
			}
			last = tokens[j].Index
			known[last] = true
		}

		sent.Tokens = tokens
		if sent.Text == "" {
			sent.Text = joinTokens(tokens)
		}
		if len(tokens) > 0 {
			sent.Start = tokens[0].Index
			sent.End = tokens[len(tokens)-1].Index + 1
		} else {
			sent.Start = last + 1
			sent.End = last + 1
		}
		doc.sentences[i] = sent
	}

	for i := range doc.sentences {
		for j := range doc.sentences[i].Tokens {
			if !known[doc.sentences[i].Tokens[j].Head] {
				doc.sentences[i].Tokens[j].Head = NoHead
			}
		}
	}

	return doc, nil
}

// AnnotateDocument runs an annotator over text and builds a Document.
//
// For example,
//
//	doc, err := absa.AnnotateDocument("Battery life is great.")
func AnnotateDocument(text string, opts ...DocOpt) (*Document, error) {
	base := DocOpts{
		Context: context.Background(),
		Timeout: 30 * time.Second,
	}
	for _, applyOpt := range opts {
		applyOpt(&base)
	}
	if base.Annotator == nil {
		annotator, err := NewLexicalAnnotator()
		if err != nil {
			return nil, err
		}
		base.Annotator = annotator
	}

	// Set up context with timeout
	ctx := base.Context
	if base.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, base.Timeout)
		defer cancel()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	sentences, err := base.Annotator.Annotate(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("annotating text: %w", err)
	}
	return NewDocument(text, sentences)
}

// joinTokens rebuilds sentence text for input that arrived without it.
func joinTokens(tokens []Token) string {
	var sb strings.Builder
	for i, tok := range tokens {
		if i > 0 && !isPunct(tok.Text) && !strings.HasPrefix(tok.Text, "'") {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

// sentenceOf returns the index of the sentence holding the aspect anchor, or
// -1 when no sentence contains it. The candidate's own sentence index is
// trusted when it agrees with the anchor.
func (doc *Document) sentenceOf(aspect AspectCandidate) int {
	if aspect.Sentence >= 0 && aspect.Sentence < len(doc.sentences) &&
		doc.sentences[aspect.Sentence].Contains(aspect.Anchor) {
		return aspect.Sentence
	}
	for i, sent := range doc.sentences {
		if sent.Contains(aspect.Anchor) {
			return i
		}
	}
	return -1
}
