package assessment

import "sort"

// Severity ranks a risk factor.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

var severityRank = map[Severity]int{
	SeverityHigh:   3,
	SeverityMedium: 2,
	SeverityLow:    1,
}

// Rank orders severities: high=3, medium=2, low=1, unknown=0.
func (s Severity) Rank() int {
	return severityRank[s]
}

// RiskFactor explains one raw measurement that crossed a clinical threshold.
type RiskFactor struct {
	Name        string   `json:"factor"`
	Severity    Severity `json:"impact"`
	Value       float64  `json:"value"`
	NormalRange string   `json:"normalRange"`
	Description string   `json:"description"`
}

// ExtractRiskFactors evaluates the raw input against fixed clinical
// thresholds. The result is sorted by severity, highest first; equal
// severities keep rule order (BMI, irregularity, waist-hip ratio, FSH/LH,
// AMH, blood sugar, vitamin D3).
func ExtractRiskFactors(in Input) []RiskFactor {
	factors := []RiskFactor{}

	if in.BMI > 30 {
		factors = append(factors, RiskFactor{
			Name:        "Body Mass Index",
			Severity:    SeverityHigh,
			Value:       in.BMI,
			NormalRange: "18.5-24.9",
			Description: "Obesity increases PCOS risk significantly",
		})
	} else if in.BMI > 25 {
		factors = append(factors, RiskFactor{
			Name:        "Body Mass Index",
			Severity:    SeverityMedium,
			Value:       in.BMI,
			NormalRange: "18.5-24.9",
			Description: "Overweight status may contribute to PCOS symptoms",
		})
	}
	if in.Irregular() {
		factors = append(factors, RiskFactor{
			Name:        "Menstrual Irregularity",
			Severity:    SeverityHigh,
			Value:       1,
			NormalRange: "Regular cycles (21-35 days)",
			Description: "Irregular menstrual cycles are a key indicator of PCOS",
		})
	}
	if in.WaistHipRatio > 0.85 {
		factors = append(factors, RiskFactor{
			Name:        "Waist-Hip Ratio",
			Severity:    SeverityMedium,
			Value:       in.WaistHipRatio,
			NormalRange: "< 0.85",
			Description: "Central obesity pattern associated with insulin resistance",
		})
	}
	if in.FSHLHRatio < 1 {
		factors = append(factors, RiskFactor{
			Name:        "FSH/LH Ratio",
			Severity:    SeverityMedium,
			Value:       in.FSHLHRatio,
			NormalRange: "1.0-2.0",
			Description: "Reversed FSH/LH ratio suggests hormonal imbalance",
		})
	}
	if in.AMH > 7 {
		factors = append(factors, RiskFactor{
			Name:        "Anti-Müllerian Hormone",
			Severity:    SeverityHigh,
			Value:       in.AMH,
			NormalRange: "1.0-7.0 ng/mL",
			Description: "Elevated AMH indicates polycystic ovarian morphology",
		})
	}
	if in.BloodSugar > 140 {
		factors = append(factors, RiskFactor{
			Name:        "Blood Sugar",
			Severity:    SeverityHigh,
			Value:       in.BloodSugar,
			NormalRange: "< 140 mg/dL",
			Description: "Elevated glucose suggests insulin resistance",
		})
	}
	if in.VitaminD3 < 20 {
		factors = append(factors, RiskFactor{
			Name:        "Vitamin D3",
			Severity:    SeverityLow,
			Value:       in.VitaminD3,
			NormalRange: "30-100 ng/mL",
			Description: "Vitamin D deficiency is common in PCOS",
		})
	}

	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Severity.Rank() > factors[j].Severity.Rank()
	})
	return factors
}
