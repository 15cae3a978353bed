package assessment

var universal = []string{
	"Maintain regular exercise routine (150 minutes moderate activity per week)",
	"Follow a balanced, low glycemic index diet rich in whole foods",
	"Schedule regular check-ups with your gynecologist",
}

// UniversalRecommendations returns the items that open every list, in order.
func UniversalRecommendations() []string {
	return append([]string(nil), universal...)
}

// Recommend builds the advisory list in construction order and keeps the first
// MaxRecommendations entries. score is the unrounded risk score.
func (m *Model) Recommend(in Input, score float64) []string {
	recs := UniversalRecommendations()

	if in.BMI > 25 {
		recs = append(recs,
			"Consider a structured weight management program with healthcare supervision",
			"Focus on portion control and mindful eating practices",
		)
	}
	if in.Irregular() {
		recs = append(recs,
			"Track menstrual cycles and symptoms using a health app or diary",
			"Discuss hormonal evaluation with your healthcare provider",
		)
	}
	if in.BloodSugar > 140 || in.BMI > 30 {
		recs = append(recs,
			"Consider metabolic screening including glucose tolerance test",
			"Incorporate strength training to improve insulin sensitivity",
		)
	}
	if in.AMH > 7 || in.FSHLHRatio < 1 {
		recs = append(recs, "Consult with a reproductive endocrinologist for specialized care")
	}
	if in.VitaminD3 < 20 {
		recs = append(recs, "Consider vitamin D supplementation under medical guidance")
	}

	switch tiers := m.params.Tiers; {
	case score > tiers.High:
		recs = append(recs,
			"Seek comprehensive PCOS evaluation including ultrasound and hormone panel",
			"Consider consultation with a registered dietitian specializing in PCOS",
			"Explore stress management techniques such as yoga or meditation",
		)
	case score > tiers.Moderate:
		recs = append(recs,
			"Monitor symptoms and maintain healthy lifestyle habits",
			"Consider annual health screenings for early detection",
		)
	}

	if len(recs) > m.params.MaxRecommendations {
		recs = recs[:m.params.MaxRecommendations]
	}
	return recs
}
