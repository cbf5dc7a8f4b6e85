package absa

// contrast splits a sentence at its first contrast marker and only lets an
// aspect take opinion tokens from its own side. Sentences without a marker,
// aspects anchored on the marker, and sides with no opinion tokens fall back
// to proximity evidence.
type contrast struct {
	*engine
	scorer *Scorer
}

func newContrast(e *engine) *contrast {
	return &contrast{
		engine: e,
		scorer: NewScorer(e.resource, e.cfg.ContrastDecay, e.cfg.ContextWindow),
	}
}

func (c *contrast) Name() string { return ContrastKey }

func (c *contrast) Associate(doc *Document, aspects []AspectCandidate) []AspectSentiment {
	return c.associate(doc, aspects, c.Name(), c.evidence)
}

func (c *contrast) evidence(group sentenceGroup, aspect AspectCandidate) []OpinionEvidence {
	marker, ok := c.firstMarker(group.sent)
	switch {
	case !ok:
		return c.fallback(group, aspect, "no contrast marker")
	case aspect.Anchor == marker:
		return c.fallback(group, aspect, "anchor is the contrast marker")
	}

	side := sideOf(aspect.Anchor, marker)
	var anchors []int
	for _, a := range group.anchors {
		if a != marker && sideOf(a, marker) == side {
			anchors = append(anchors, a)
		}
	}

	evidence := c.windowEvidence(c.scorer, group.sent, aspect, anchors, c.cfg.ProximityWindow, func(tok Token) bool {
		return tok.Index != marker && sideOf(tok.Index, marker) == side
	})
	if len(evidence) == 0 {
		return c.fallback(group, aspect, "no opinion on aspect side")
	}
	return evidence
}

func (c *contrast) fallback(group sentenceGroup, aspect AspectCandidate, reason string) []OpinionEvidence {
	c.logger.Debug("contrast fallback to proximity",
		"aspect", aspect.Text,
		"sentence", group.index,
		"reason", reason)
	return c.windowEvidence(c.scorer, group.sent, aspect, group.anchors, c.cfg.ProximityWindow, nil)
}

// firstMarker returns the doc index of the first contrast marker in sent.
func (c *contrast) firstMarker(sent Sentence) (int, bool) {
	for _, tok := range sent.Tokens {
		if c.cfg.isContrastMarker(tok.Key()) {
			return tok.Index, true
		}
	}
	return 0, false
}

// sideOf returns -1 left of the marker and 1 right of it.
func sideOf(index, marker int) int {
	if index < marker {
		return -1
	}
	return 1
}
