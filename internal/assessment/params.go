package assessment

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameters is returned by Parameters.Validate.
var ErrInvalidParameters = errors.New("invalid model parameters")

// Feature names a normalized model input.
type Feature string

const (
	FeatureBMI               Feature = "bmi"
	FeatureWaistHipRatio     Feature = "waistHipRatio"
	FeatureAge               Feature = "age"
	FeatureCycleIrregularity Feature = "cycleIrregularity"
	FeatureCycleLength       Feature = "cycleLength"
	FeatureFSHLHRatio        Feature = "fshLhRatio"
	FeatureAMH               Feature = "amh"
	FeatureTSH               Feature = "tsh"
	FeatureProlactin         Feature = "prolactin"
	FeatureBloodSugar        Feature = "bloodSugar"
	FeatureHemoglobin        Feature = "hemoglobin"
	FeatureVitaminD3         Feature = "vitaminD3"
	FeaturePulseRate         Feature = "pulseRate"
	FeatureRespiratoryRate   Feature = "respiratoryRate"
)

// ScaleKind selects how a raw measurement is mapped onto [0,1].
type ScaleKind int

const (
	// ScaleLinear maps From to 0 and To to 1. A To below From inverts the map.
	ScaleLinear ScaleKind = iota
	// ScaleDeviation maps |x - Ideal| / Span.
	ScaleDeviation
	// ScaleBinary yields 1 when the cycle is irregular, 0 otherwise.
	ScaleBinary
)

// Scale is a clinical reference mapping for one feature.
type Scale struct {
	Kind  ScaleKind
	From  float64
	To    float64
	Ideal float64
	Span  float64
}

// FeatureWeight is one row of the linear weight table.
type FeatureWeight struct {
	Feature Feature
	Weight  float64
}

// Threshold holds when the normalized feature is strictly above Above.
type Threshold struct {
	Feature Feature
	Above   float64
}

// Interaction adds Bonus when every threshold holds.
type Interaction struct {
	Name       string
	Bonus      float64
	Thresholds []Threshold
}

// AgeAdjustment scales the combined risk on raw age in years.
type AgeAdjustment struct {
	YoungBelow  float64
	YoungFactor float64
	OlderAbove  float64
	OlderFactor float64
}

// Logistic shapes the final squashing: 1 / (1 + e^(-Steepness*(x-Midpoint))).
type Logistic struct {
	Steepness float64
	Midpoint  float64
}

// ConfidenceSettings drive the confidence estimate.
type ConfidenceSettings struct {
	Base     float64
	Penalty  float64
	LowEdge  float64
	HighEdge float64
	Floor    float64
}

// Tiers are the inclusive lower bounds of the Moderate and High levels.
type Tiers struct {
	Moderate float64
	High     float64
}

// Parameters is the complete, reparametrizable configuration of the model.
type Parameters struct {
	ModelVersion       string
	Scales             map[Feature]Scale
	Weights            []FeatureWeight
	Interactions       []Interaction
	Age                AgeAdjustment
	LinearShare        float64
	InteractionShare   float64
	Logistic           Logistic
	Confidence         ConfidenceSettings
	Tiers              Tiers
	MaxRecommendations int
}

// DefaultParameters returns the reference heuristic.
func DefaultParameters() Parameters {
	return Parameters{
		ModelVersion: "v2.1.0",
		Scales: map[Feature]Scale{
			FeatureBMI:               {Kind: ScaleLinear, From: 18.5, To: 35},
			FeatureWaistHipRatio:     {Kind: ScaleLinear, From: 0.7, To: 1.0},
			FeatureAge:               {Kind: ScaleLinear, From: 15, To: 45},
			FeatureCycleIrregularity: {Kind: ScaleBinary},
			FeatureCycleLength:       {Kind: ScaleDeviation, Ideal: 28, Span: 14},
			FeatureFSHLHRatio:        {Kind: ScaleLinear, From: 2, To: 0},
			FeatureAMH:               {Kind: ScaleLinear, From: 1, To: 15},
			FeatureTSH:               {Kind: ScaleLinear, From: 0.5, To: 10},
			FeatureProlactin:         {Kind: ScaleLinear, From: 5, To: 25},
			FeatureBloodSugar:        {Kind: ScaleLinear, From: 70, To: 200},
			FeatureHemoglobin:        {Kind: ScaleLinear, From: 12, To: 8},
			FeatureVitaminD3:         {Kind: ScaleLinear, From: 30, To: 10},
			FeaturePulseRate:         {Kind: ScaleDeviation, Ideal: 70, Span: 30},
			FeatureRespiratoryRate:   {Kind: ScaleDeviation, Ideal: 16, Span: 8},
		},
		Weights: []FeatureWeight{
			// anthropometric
			{FeatureBMI, 0.15},
			{FeatureWaistHipRatio, 0.12},
			{FeatureAge, 0.08},
			// menstrual
			{FeatureCycleIrregularity, 0.18},
			{FeatureCycleLength, 0.10},
			// hormonal
			{FeatureFSHLHRatio, 0.14},
			{FeatureAMH, 0.16},
			{FeatureTSH, 0.09},
			{FeatureProlactin, 0.07},
			// metabolic
			{FeatureBloodSugar, 0.13},
			{FeatureHemoglobin, 0.06},
			{FeatureVitaminD3, 0.08},
			// vital signs
			{FeaturePulseRate, 0.04},
			{FeatureRespiratoryRate, 0.03},
		},
		Interactions: []Interaction{
			{
				Name:  "adiposity+irregularity",
				Bonus: 0.15,
				Thresholds: []Threshold{
					{FeatureBMI, 0.6},
					// binary feature: above 0.5 means the flag is set
					{FeatureCycleIrregularity, 0.5},
				},
			},
			{
				Name:  "amh+fshLh",
				Bonus: 0.12,
				Thresholds: []Threshold{
					{FeatureAMH, 0.7},
					{FeatureFSHLHRatio, 0.6},
				},
			},
			{
				Name:  "metabolic",
				Bonus: 0.10,
				Thresholds: []Threshold{
					{FeatureBMI, 0.6},
					{FeatureBloodSugar, 0.5},
					{FeatureWaistHipRatio, 0.6},
				},
			},
		},
		Age: AgeAdjustment{
			YoungBelow:  20,
			YoungFactor: 0.8,
			OlderAbove:  35,
			OlderFactor: 1.2,
		},
		LinearShare:      0.7,
		InteractionShare: 0.3,
		Logistic:         Logistic{Steepness: 6, Midpoint: 0.5},
		Confidence: ConfidenceSettings{
			Base:     0.85,
			Penalty:  0.05,
			LowEdge:  0.05,
			HighEdge: 0.95,
			Floor:    0.6,
		},
		Tiers:              Tiers{Moderate: 0.3, High: 0.65},
		MaxRecommendations: 8,
	}
}

// Validate reports configuration defects. A zero-width scale is the main one:
// it would turn every score into NaN.
func (p Parameters) Validate() error {
	if p.ModelVersion == "" {
		return fmt.Errorf("%w: model version is empty", ErrInvalidParameters)
	}
	for f, s := range p.Scales {
		if err := s.validate(); err != nil {
			return fmt.Errorf("%w: scale %q: %v", ErrInvalidParameters, f, err)
		}
	}
	for _, w := range p.Weights {
		if _, ok := p.Scales[w.Feature]; !ok {
			return fmt.Errorf("%w: weight references unknown feature %q", ErrInvalidParameters, w.Feature)
		}
		if !finite(w.Weight) {
			return fmt.Errorf("%w: weight for %q is not finite", ErrInvalidParameters, w.Feature)
		}
	}
	for _, ix := range p.Interactions {
		if len(ix.Thresholds) == 0 {
			return fmt.Errorf("%w: interaction %q has no thresholds", ErrInvalidParameters, ix.Name)
		}
		for _, th := range ix.Thresholds {
			if _, ok := p.Scales[th.Feature]; !ok {
				return fmt.Errorf("%w: interaction %q references unknown feature %q", ErrInvalidParameters, ix.Name, th.Feature)
			}
		}
	}
	if p.Age.YoungBelow > p.Age.OlderAbove {
		return fmt.Errorf("%w: age adjustment bounds are inverted", ErrInvalidParameters)
	}
	if !finite(p.Logistic.Steepness) || p.Logistic.Steepness <= 0 {
		return fmt.Errorf("%w: logistic steepness must be positive", ErrInvalidParameters)
	}
	c := p.Confidence
	if c.Floor > c.Base || c.LowEdge >= c.HighEdge {
		return fmt.Errorf("%w: confidence settings are inconsistent", ErrInvalidParameters)
	}
	if p.Tiers.Moderate >= p.Tiers.High {
		return fmt.Errorf("%w: tier thresholds must increase", ErrInvalidParameters)
	}
	if p.MaxRecommendations <= 0 {
		return fmt.Errorf("%w: max recommendations must be positive", ErrInvalidParameters)
	}
	return nil
}

func (s Scale) validate() error {
	switch s.Kind {
	case ScaleLinear:
		if !finite(s.From) || !finite(s.To) {
			return errors.New("bounds must be finite")
		}
		if s.From == s.To {
			return errors.New("zero-width range")
		}
	case ScaleDeviation:
		if !finite(s.Ideal) || !finite(s.Span) {
			return errors.New("ideal and span must be finite")
		}
		if s.Span <= 0 {
			return errors.New("span must be positive")
		}
	case ScaleBinary:
	default:
		return fmt.Errorf("unknown scale kind %d", s.Kind)
	}
	return nil
}

// clone deep-copies the maps and slices so a Model never shares them.
func (p Parameters) clone() Parameters {
	out := p
	out.Scales = make(map[Feature]Scale, len(p.Scales))
	for k, v := range p.Scales {
		out.Scales[k] = v
	}
	out.Weights = append([]FeatureWeight(nil), p.Weights...)
	out.Interactions = make([]Interaction, len(p.Interactions))
	for i, ix := range p.Interactions {
		ix.Thresholds = append([]Threshold(nil), ix.Thresholds...)
		out.Interactions[i] = ix
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
