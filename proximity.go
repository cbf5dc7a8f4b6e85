package absa

// proximity takes every opinion token within a fixed window of the anchor.
// When several aspects share a sentence, each opinion token goes to the
// aspect with the nearest anchor, the left one on a tie.
type proximity struct {
	*engine
	scorer *Scorer
}

func newProximity(e *engine) *proximity {
	return &proximity{
		engine: e,
		scorer: NewScorer(e.resource, e.cfg.ProximityDecay, e.cfg.ContextWindow),
	}
}

func (p *proximity) Name() string { return ProximityKey }

func (p *proximity) Associate(doc *Document, aspects []AspectCandidate) []AspectSentiment {
	return p.associate(doc, aspects, p.Name(), p.evidence)
}

func (p *proximity) evidence(group sentenceGroup, aspect AspectCandidate) []OpinionEvidence {
	return p.windowEvidence(p.scorer, group.sent, aspect, group.anchors, p.cfg.ProximityWindow, nil)
}
