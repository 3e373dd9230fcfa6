package reasoner

// Additive scorer thresholds. Each signal contributes a fixed amount to
// one or more recommendations; the highest total wins.
const (
	highDanger     = 0.6
	lowDanger      = 0.2
	richValue      = 0.3
	goodEfficiency = 0.2
)

// recommend combines the profile's signals into one discrete action.
// Ties resolve toward the safer choice: retreat over push_deeper over
// explore over continue.
func recommend(p *AreaProfile) Recommendation {
	scores := map[Recommendation]float64{}

	if p.AreaDanger >= highDanger {
		scores[RecommendRetreat] += 2
	}
	if p.DangerTrend == TrendIncreasing {
		scores[RecommendRetreat] += 1
	}
	if p.Difficulty == DifficultyLethal {
		scores[RecommendRetreat] += 2
	}
	for _, a := range p.Anomalies {
		if a == AnomalyHealthDrop {
			scores[RecommendRetreat] += 2
		}
		if a == AnomalyMovementStall {
			scores[RecommendExplore] += 1
		}
	}

	// A depleted, safe area means the interesting ground is below.
	if p.AreaDanger < lowDanger && p.AreaValue < richValue && p.Difficulty != DifficultyLethal {
		scores[RecommendPushDeeper] += 2
	}
	if p.Difficulty == DifficultyEmpty {
		scores[RecommendPushDeeper] += 1
	}

	if p.Efficiency >= goodEfficiency && p.DangerTrend != TrendIncreasing {
		scores[RecommendContinue] += 2
	}
	if p.AreaValue >= richValue {
		scores[RecommendContinue] += 1
	}

	if p.Topology == TopologyUnknown {
		scores[RecommendExplore] += 2
	}
	if p.DangerTrend == TrendUnknown {
		scores[RecommendExplore] += 1
	}

	order := []Recommendation{RecommendRetreat, RecommendPushDeeper, RecommendExplore, RecommendContinue}
	best := RecommendContinue
	bestScore := -1.0
	for _, rec := range order {
		if scores[rec] > bestScore {
			best = rec
			bestScore = scores[rec]
		}
	}
	return best
}
