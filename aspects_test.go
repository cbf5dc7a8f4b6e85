package absa

import (
	"context"
	"testing"
)

func TestExtractTaggedNounRuns(t *testing.T) {
	doc, want := reviewDoc(t)
	got := NewAspectExtractor(nil, DefaultConfig()).Extract(doc)

	if len(got) != len(want) {
		t.Fatalf("expected %d aspects, got %+v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("aspect %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestExtractZeroConfigUsesDefaultPhraseLength(t *testing.T) {
	doc, want := reviewDoc(t)
	got := NewAspectExtractor(nil, Config{}).Extract(doc)

	if len(got) != len(want) {
		t.Fatalf("expected %d aspects, got %+v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("aspect %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestExtractFiltersAndDeduplicates(t *testing.T) {
	tokens := []Token{
		{Text: "This", Tag: "DET", Index: 0, Head: NoHead},
		{Text: "product", Tag: "NN", Index: 1, Head: NoHead},
		{Text: "has", Tag: "VBZ", Index: 2, Head: NoHead},
		{Text: "screens", Tag: "NNS", Index: 3, Head: NoHead},
		{Text: "and", Tag: "CC", Index: 4, Head: NoHead},
		{Text: "a", Tag: "DT", Index: 5, Head: NoHead},
		{Text: "screen", Tag: "NN", Index: 6, Head: NoHead},
		{Text: "with", Tag: "IN", Index: 7, Head: NoHead},
		{Text: "USB", Tag: "NNP", Index: 8, Head: NoHead},
		{Text: "C", Tag: "NNP", Index: 9, Head: NoHead},
		{Text: "charging", Tag: "NN", Index: 10, Head: NoHead},
		{Text: "port", Tag: "NN", Index: 11, Head: NoHead},
		{Text: "cable", Tag: "NN", Index: 12, Head: NoHead},
	}
	doc, err := NewDocument("", []Sentence{{Tokens: tokens}})
	if err != nil {
		t.Fatalf("Failed to create document: %v", err)
	}

	got := NewAspectExtractor(nil, DefaultConfig()).Extract(doc)
	if len(got) != 2 {
		t.Fatalf("expected 2 aspects, got %+v", got)
	}
	if got[0].Text != "screens" || got[0].Anchor != 3 {
		t.Errorf("expected 'screens' first, got %+v", got[0])
	}
	if got[1].Text != "c charging port cable" || got[1].Anchor != 12 || got[1].Start != 9 {
		t.Errorf("expected run cut to four words, got %+v", got[1])
	}
}

func TestExtractUntagged(t *testing.T) {
	doc, err := AnnotateDocument("Battery life is great but camera quality is not good.")
	if err != nil {
		t.Fatalf("AnnotateDocument: %v", err)
	}

	got := NewAspectExtractor(nil, DefaultConfig()).Extract(doc)
	var texts []string
	for _, a := range got {
		texts = append(texts, a.Text)
	}
	if len(texts) != 2 || texts[0] != "battery life" || texts[1] != "camera quality" {
		t.Fatalf("expected [battery life camera quality], got %q", texts)
	}
	if got[0].Anchor != 1 || got[1].Anchor != 6 {
		t.Errorf("unexpected anchors %d, %d", got[0].Anchor, got[1].Anchor)
	}
}

func TestAnalyzeTextMixedReview(t *testing.T) {
	analyzer, err := NewAnalyzer(nil)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	for _, key := range StrategyKeys() {
		t.Run(key, func(t *testing.T) {
			results, err := analyzer.AnalyzeText(context.Background(),
				"Battery life is great but camera quality is not good.", key)
			if err != nil {
				t.Fatalf("AnalyzeText: %v", err)
			}
			if len(results) != 2 {
				t.Fatalf("expected 2 records, got %+v", results)
			}
			if results[0].Sentiment != Positive || results[1].Sentiment != Negative {
				t.Errorf("expected positive/negative, got %s/%s", results[0].Sentiment, results[1].Sentiment)
			}
		})
	}
}

func TestAnalyzerReusesDefaultAnnotator(t *testing.T) {
	analyzer, err := NewAnalyzer(nil)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	annotator, ok := analyzer.annotator.(*LexicalAnnotator)
	if !ok || annotator == nil {
		t.Fatalf("expected a LexicalAnnotator, got %T", analyzer.annotator)
	}

	for i := 0; i < 2; i++ {
		if _, err := analyzer.AnalyzeText(context.Background(), "Battery life is great.", ProximityKey); err != nil {
			t.Fatalf("AnalyzeText: %v", err)
		}
		if analyzer.annotator != Annotator(annotator) {
			t.Fatalf("annotator replaced after call %d", i)
		}
	}
}

func TestAnalyzerRejectsUnknownStrategy(t *testing.T) {
	analyzer, err := NewAnalyzer(nil)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	if _, err := analyzer.AnalyzeText(context.Background(), "Nice.", "v9"); err == nil {
		t.Errorf("expected an error for an unknown strategy")
	}

	cfg := DefaultConfig()
	cfg.ContextWindow = -2
	if _, err := NewAnalyzer(nil, WithConfig(cfg)); err == nil {
		t.Errorf("expected an error for an invalid configuration")
	}
}
