package smartscore

// narrativeKind routes a triggered rule to one of the three text lists.
type narrativeKind int

const (
	narrativeOpportunity narrativeKind = iota
	narrativeRisk
	narrativeRecommendation
)

// comparator compares a sub-score against a rule threshold.
type comparator int

const (
	atLeast comparator = iota
	below
)

// narrativeRule maps a (component, comparator, threshold) triple to a
// message. The threshold/message pairs are part of each module's contract;
// keeping them as data separates the narrative logic from score computation
// and makes both independently testable.
type narrativeRule struct {
	key       ComponentKey
	cmp       comparator
	threshold float64
	kind      narrativeKind
	message   string
}

func (r narrativeRule) matches(score float64) bool {
	if r.cmp == atLeast {
		return score >= r.threshold
	}
	return score < r.threshold
}

// buildNarrative evaluates the rules against the computed sub-scores and
// collects the triggered messages in rule order.
func buildNarrative(rules []narrativeRule, scores map[ComponentKey]float64) (opportunities, risks, recommendations []string) {
	for _, r := range rules {
		score, ok := scores[r.key]
		if !ok || !r.matches(score) {
			continue
		}
		switch r.kind {
		case narrativeOpportunity:
			opportunities = append(opportunities, r.message)
		case narrativeRisk:
			risks = append(risks, r.message)
		case narrativeRecommendation:
			recommendations = append(recommendations, r.message)
		}
	}
	return opportunities, risks, recommendations
}
