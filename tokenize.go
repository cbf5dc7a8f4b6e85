package absa

import (
	"regexp"
	"strings"
	"unicode"
)

// Tokenizer splits a sentence into tokens carrying byte offsets into the
// text it was given.
type Tokenizer interface {
	Tokenize(string) []Token
}

type TokenTester func(string) bool

// iterTokenizer splits a sentence into words.
type iterTokenizer struct {
	specialRE      *regexp.Regexp
	sanitizer      *strings.Replacer
	contractions   []string
	suffixes       []string
	prefixes       []string
	emoticons      map[string]bool
	isUnsplittable TokenTester
}

type TokenizerOptFunc func(*iterTokenizer)

// UsingIsUnsplittable gives a function that tests whether a token is splittable or not.
func UsingIsUnsplittable(x TokenTester) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.isUnsplittable = x
	}
}

// Use the provided special regex for unsplittable tokens.
func UsingSpecialRE(x *regexp.Regexp) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.specialRE = x
	}
}

// Use the provided contractions.
func UsingContractions(x []string) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.contractions = x
	}
}

// Constructor for default iterTokenizer
func NewIterTokenizer(opts ...TokenizerOptFunc) *iterTokenizer {
	tok := &iterTokenizer{
		specialRE:      internalRE,
		sanitizer:      sanitizer,
		contractions:   contractions,
		suffixes:       suffixes,
		prefixes:       prefixes,
		emoticons:      emoticons,
		isUnsplittable: func(_ string) bool { return false },
	}
	for _, applyOpt := range opts {
		applyOpt(tok)
	}
	return tok
}

// Tokenize splits text on whitespace and then peels prefixes, contractions
// and trailing punctuation off each span. Offsets refer to text as given;
// token text has curly quotes normalized.
func (t *iterTokenizer) Tokenize(text string) []Token {
	var tokens []Token
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, t.split(text[start:i], start)...)
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, t.split(text[start:], start)...)
	}
	return tokens
}

func (t *iterTokenizer) isSpecial(token string) bool {
	return t.emoticons[token] || t.specialRE.MatchString(token) || t.isUnsplittable(token)
}

func (t *iterTokenizer) split(span string, offset int) []Token {
	var head, tail []Token
	for span != "" {
		if t.isSpecial(span) {
			// A special case (e.g., an emoticon) is kept whole.
			head = append(head, t.token(span, offset))
			break
		}
		if n := matchPrefix(span, t.prefixes); n > 0 && n < len(span) {
			// $100 -> [$, 100].
			head = append(head, t.token(span[:n], offset))
			span, offset = span[n:], offset+n
			continue
		}
		if cut := contractionCut(span, t.contractions); cut > 0 {
			// don't -> [do, n't]; n't. -> [n't, .].
			head = append(head, t.token(span[:cut], offset))
			span, offset = span[cut:], offset+cut
			continue
		}
		if n := matchSuffix(span, t.suffixes); n > 0 && n < len(span) {
			// Well) -> [Well, )].
			end := len(span) - n
			tail = append([]Token{t.token(span[end:], offset+end)}, tail...)
			span = span[:end]
			continue
		}
		head = append(head, t.token(span, offset))
		break
	}
	return append(head, tail...)
}

func (t *iterTokenizer) token(raw string, offset int) Token {
	return Token{
		Text:  t.sanitizer.Replace(raw),
		Head:  NoHead,
		Start: offset,
		End:   offset + len(raw),
	}
}

func matchPrefix(s string, prefixes []string) int {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return len(p)
		}
	}
	return 0
}

func matchSuffix(s string, suffixes []string) int {
	for _, x := range suffixes {
		if strings.HasSuffix(s, x) {
			return len(x)
		}
	}
	return 0
}

// contractionCut returns where to split s around its leftmost contraction, or
// 0 when s holds none or is exactly one.
func contractionCut(s string, cases []string) int {
	lower := strings.ToLower(s)
	if len(lower) != len(s) {
		lower = s
	}
	best, size := -1, 0
	for _, c := range cases {
		idx := strings.Index(lower, c)
		if idx < 0 || len(lower) == len(c) {
			continue
		}
		if best < 0 || idx < best {
			best, size = idx, len(c)
		}
	}
	switch {
	case best > 0:
		return best
	case best == 0:
		return size
	}
	return 0
}

// isPunct reports whether s consists only of punctuation.
func isPunct(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

var internalRE = regexp.MustCompile(`^(?:[A-Za-z]\.){2,}$|^[A-Z][a-z]{1,2}\.$`)
var sanitizer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"&rsquo;", "'")
var contractions = []string{
	"'ll", "'s", "'re", "'m", "'ve", "'d", "n't",
	"’ll", "’s", "’re", "’m", "’ve", "’d", "n’t",
}
var suffixes = []string{",", ")", `"`, "]", "!", ";", ".", "?", ":", "'", "”", "’"}
var prefixes = []string{"$", "(", `"`, "[", "“", "‘"}
var emoticons = map[string]bool{
	":(":  true,
	":)":  true,
	":-(": true,
	":-)": true,
	":-/": true,
	":/":  true,
	":D":  true,
	":P":  true,
	";)":  true,
	";-)": true,
	"<3":  true,
	"=(":  true,
	"=)":  true,
	"xD":  true,
}
