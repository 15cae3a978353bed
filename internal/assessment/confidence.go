package assessment

// Confidence starts at the base value and loses one penalty for every feature
// sitting at an edge of its clamped range. It never drops below the floor.
func (m *Model) Confidence(f Features) float64 {
	c := m.params.Confidence
	confidence := c.Base
	for _, v := range f {
		if v < c.LowEdge || v > c.HighEdge {
			confidence -= c.Penalty
		}
	}
	if confidence < c.Floor {
		confidence = c.Floor
	}
	return confidence
}

// RiskLevel is the ordinal risk category.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

// RiskLevels lists the categories from lowest to highest.
var RiskLevels = []RiskLevel{RiskLow, RiskModerate, RiskHigh}

// Classify maps an unrounded score to a level. Thresholds belong to the
// higher bucket.
func (m *Model) Classify(score float64) RiskLevel {
	switch {
	case score < m.params.Tiers.Moderate:
		return RiskLow
	case score < m.params.Tiers.High:
		return RiskModerate
	default:
		return RiskHigh
	}
}
