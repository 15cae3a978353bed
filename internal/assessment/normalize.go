package assessment

import "math"

// Features maps each model feature to its normalized value in [0,1].
type Features map[Feature]float64

// Normalize maps the raw measurements onto the configured reference scales.
// Every value is clamped to [0,1].
func (m *Model) Normalize(in Input) Features {
	out := make(Features, len(m.params.Scales))
	for f, s := range m.params.Scales {
		out[f] = s.apply(rawValue(in, f), in.Irregular())
	}
	return out
}

func (s Scale) apply(x float64, irregular bool) float64 {
	var v float64
	switch s.Kind {
	case ScaleLinear:
		v = (x - s.From) / (s.To - s.From)
	case ScaleDeviation:
		v = math.Abs(x-s.Ideal) / s.Span
	case ScaleBinary:
		if irregular {
			return 1
		}
		return 0
	}
	return clamp01(v)
}

func rawValue(in Input, f Feature) float64 {
	switch f {
	case FeatureBMI:
		return in.BMI
	case FeatureWaistHipRatio:
		return in.WaistHipRatio
	case FeatureAge:
		return in.Age
	case FeatureCycleLength:
		return in.CycleLength
	case FeatureFSHLHRatio:
		return in.FSHLHRatio
	case FeatureAMH:
		return in.AMH
	case FeatureTSH:
		return in.TSH
	case FeatureProlactin:
		return in.Prolactin
	case FeatureBloodSugar:
		return in.BloodSugar
	case FeatureHemoglobin:
		return in.Hemoglobin
	case FeatureVitaminD3:
		return in.VitaminD3
	case FeaturePulseRate:
		return in.PulseRate
	case FeatureRespiratoryRate:
		return in.RespiratoryRate
	}
	return 0
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(math.Max(v, 0), 1)
}
