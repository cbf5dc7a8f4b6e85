package absa

// dependency takes the opinion tokens syntactically attached to the anchor:
// its children, its head, and its siblings under the same head. With no such
// link it falls back to a narrower proximity window.
type dependency struct {
	*engine
	scorer *Scorer
}

func newDependency(e *engine) *dependency {
	return &dependency{
		engine: e,
		scorer: NewScorer(e.resource, e.cfg.DependencyDecay, e.cfg.ContextWindow),
	}
}

func (d *dependency) Name() string { return DependencyKey }

func (d *dependency) Associate(doc *Document, aspects []AspectCandidate) []AspectSentiment {
	return d.associate(doc, aspects, d.Name(), d.evidence)
}

func (d *dependency) evidence(group sentenceGroup, aspect AspectCandidate) []OpinionEvidence {
	if evidence := d.linked(group.sent, aspect); len(evidence) > 0 {
		return evidence
	}

	d.logger.Debug("no dependency link, using window",
		"aspect", aspect.Text,
		"sentence", group.index,
		"window", d.cfg.DependencyFallbackWindow)
	return d.windowEvidence(d.scorer, group.sent, aspect, group.anchors, d.cfg.DependencyFallbackWindow, nil)
}

// linked scores the opinion tokens sharing a dependency edge with the anchor.
// Tokens without dependency information never link.
func (d *dependency) linked(sent Sentence, aspect AspectCandidate) []OpinionEvidence {
	anchor, ok := sent.token(aspect.Anchor)
	if !ok || !anchor.HasDependency() {
		return nil
	}

	var evidence []OpinionEvidence
	for _, tok := range d.opinionTokens(sent) {
		if covers(aspect, tok.Index) || !tok.HasDependency() {
			continue
		}
		if isLinked(anchor, tok) {
			evidence = append(evidence, d.scorer.Score(sent, tok, aspect.Anchor))
		}
	}
	return evidence
}

// isLinked reports whether tok is a child of anchor, its head, or a sibling.
func isLinked(anchor, tok Token) bool {
	switch {
	case tok.Head == anchor.Index:
		return true
	case tok.Index == anchor.Head:
		return true
	case anchor.Head != NoHead && tok.Head == anchor.Head:
		return true
	}
	return false
}
