package assessment

import "math"

// Breakdown exposes the intermediate terms of a score.
type Breakdown struct {
	Linear        float64 `json:"linear"`
	Interaction   float64 `json:"interaction"`
	AgeMultiplier float64 `json:"ageMultiplier"`
	Total         float64 `json:"total"`
	Score         float64 `json:"score"`
}

// Score returns the full-precision risk score in (0,1).
func (m *Model) Score(f Features, in Input) float64 {
	return m.Explain(f, in).Score
}

// Explain computes the score and keeps every intermediate term.
func (m *Model) Explain(f Features, in Input) Breakdown {
	p := m.params
	b := Breakdown{
		Linear:        m.linear(f),
		Interaction:   m.interaction(f),
		AgeMultiplier: m.ageMultiplier(in.Age),
	}
	b.Total = (b.Linear*p.LinearShare + b.Interaction*p.InteractionShare) * b.AgeMultiplier
	b.Score = 1 / (1 + math.Exp(-p.Logistic.Steepness*(b.Total-p.Logistic.Midpoint)))
	return b
}

func (m *Model) linear(f Features) float64 {
	var sum float64
	for _, w := range m.params.Weights {
		sum += f[w.Feature] * w.Weight
	}
	return sum
}

func (m *Model) interaction(f Features) float64 {
	var sum float64
	for _, ix := range m.params.Interactions {
		if ix.holds(f) {
			sum += ix.Bonus
		}
	}
	return sum
}

func (ix Interaction) holds(f Features) bool {
	for _, th := range ix.Thresholds {
		if !(f[th.Feature] > th.Above) {
			return false
		}
	}
	return true
}

// ageMultiplier works on raw age in years, not the normalized feature.
func (m *Model) ageMultiplier(age float64) float64 {
	a := m.params.Age
	switch {
	case age < a.YoungBelow:
		return a.YoungFactor
	case age > a.OlderAbove:
		return a.OlderFactor
	default:
		return 1
	}
}
