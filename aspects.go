package absa

import (
	"strings"
	"unicode"

	"github.com/bbalet/stopwords"
	"github.com/kljensen/snowball"
)

// An Extractor proposes aspect candidates for a document.
type Extractor interface {
	Extract(doc *Document) []AspectCandidate
}

// AspectExtractor finds aspect candidates with simple filtering rules. Tagged
// sentences yield runs of nouns; untagged ones fall back to runs of content
// words of at most two tokens. Within a sentence, phrases that stem to the
// same key are reported once.
type AspectExtractor struct {
	resource *PolarityResource
	cfg      Config
}

// NewAspectExtractor creates an extractor that filters generic nouns and
// opinion words through resource. A MaxAspectWords below 1 selects the
// default.
func NewAspectExtractor(resource *PolarityResource, cfg Config) *AspectExtractor {
	if resource == nil {
		resource = DefaultPolarityResource()
	}
	if cfg.MaxAspectWords < 1 {
		cfg.MaxAspectWords = DefaultConfig().MaxAspectWords
	}
	return &AspectExtractor{resource: resource, cfg: cfg}
}

// Extract implements Extractor.
func (x *AspectExtractor) Extract(doc *Document) []AspectCandidate {
	var out []AspectCandidate
	for i, sent := range doc.Sentences() {
		var runs [][]Token
		if isTagged(sent) {
			runs = x.nounRuns(sent)
		} else {
			runs = x.contentRuns(sent)
		}

		seen := make(map[string]bool)
		for _, run := range runs {
			key := stemKey(run)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, newCandidate(run, i))
		}
	}
	return out
}

func isTagged(sent Sentence) bool {
	for _, tok := range sent.Tokens {
		if tok.HasTag() {
			return true
		}
	}
	return false
}

func isNounTag(tag string) bool {
	upper := strings.ToUpper(tag)
	return upper == "NOUN" || upper == "PROPN" || strings.HasPrefix(upper, "NN")
}

// nounRuns returns maximal runs of nouns, cut to the last MaxAspectWords
// tokens. Runs whose head noun is generic are dropped.
func (x *AspectExtractor) nounRuns(sent Sentence) [][]Token {
	var runs [][]Token
	var run []Token
	flush := func() {
		if len(run) == 0 {
			return
		}
		if len(run) > x.cfg.MaxAspectWords {
			run = run[len(run)-x.cfg.MaxAspectWords:]
		}
		if !x.resource.IsGeneric(run[len(run)-1].Key()) {
			runs = append(runs, run)
		}
		run = nil
	}

	for _, tok := range sent.Tokens {
		if isNounTag(tok.Tag) && isWord(tok.Text) {
			run = append(run, tok)
			continue
		}
		flush()
	}
	flush()
	return runs
}

// contentRuns is the untagged heuristic: consecutive content words, split
// into phrases of at most two tokens.
func (x *AspectExtractor) contentRuns(sent Sentence) [][]Token {
	var runs [][]Token
	var run []Token
	for _, tok := range sent.Tokens {
		if x.isContent(tok) {
			run = append(run, tok)
			if len(run) == 2 {
				runs = append(runs, run)
				run = nil
			}
			continue
		}
		if len(run) > 0 {
			runs = append(runs, run)
			run = nil
		}
	}
	if len(run) > 0 {
		runs = append(runs, run)
	}
	return runs
}

func (x *AspectExtractor) isContent(tok Token) bool {
	key := tok.Key()
	if len(key) < 3 || !isWord(key) || isStopword(key) {
		return false
	}
	if _, ok := x.resource.Intensifier(key); ok {
		return false
	}
	return !x.resource.IsOpinion(key) &&
		!x.resource.IsNegation(key) &&
		!x.resource.IsGeneric(key) &&
		!x.cfg.isContrastMarker(key)
}

func isStopword(word string) bool {
	return strings.TrimSpace(stopwords.CleanString(word, "en", false)) == ""
}

func isWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// stemKey normalizes a phrase so that "screens" and "screen" collide.
func stemKey(run []Token) string {
	words := make([]string, 0, len(run))
	for _, tok := range run {
		word := strings.ToLower(tok.Text)
		stemmed, err := snowball.Stem(word, "english", true)
		if err != nil {
			stemmed = word
		}
		words = append(words, stemmed)
	}
	return strings.Join(words, " ")
}

func newCandidate(run []Token, sentence int) AspectCandidate {
	words := make([]string, len(run))
	for i, tok := range run {
		words[i] = strings.ToLower(tok.Text)
	}
	return AspectCandidate{
		Text:     strings.Join(words, " "),
		Anchor:   run[len(run)-1].Index,
		Start:    run[0].Index,
		End:      run[len(run)-1].Index + 1,
		Sentence: sentence,
	}
}
