package assessment

import (
	"math"
	"sort"
	"testing"
)

func featureNames(f Features) []Feature {
	names := make([]Feature, 0, len(f))
	for k := range f {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

func TestNormalize_ReferenceMaps(t *testing.T) {
	m := testModel(t)

	in := healthyInput()
	in.BMI = 26.75
	in.WaistHipRatio = 0.85
	in.Age = 30
	in.CycleRegularity = CycleIrregular
	in.CycleLength = 35
	in.FSHLHRatio = 1
	in.AMH = 8
	in.TSH = 5.25
	in.Prolactin = 15
	in.BloodSugar = 135
	in.Hemoglobin = 10
	in.VitaminD3 = 20
	in.PulseRate = 55
	in.RespiratoryRate = 20

	got := m.Normalize(in)
	for _, f := range featureNames(got) {
		v := got[f]
		want := 0.5
		if f == FeatureCycleIrregularity {
			want = 1
		}
		if math.Abs(v-want) > 1e-9 {
			t.Errorf("%s: expected %v, got %v", f, want, v)
		}
	}
	if len(got) != 14 {
		t.Errorf("expected 14 features, got %d", len(got))
	}
}

func TestNormalize_Inverted(t *testing.T) {
	m := testModel(t)
	cases := []struct {
		name    string
		mutate  func(*Input)
		feature Feature
		want    float64
	}{
		{"hemoglobin normal", func(in *Input) { in.Hemoglobin = 12 }, FeatureHemoglobin, 0},
		{"hemoglobin severe", func(in *Input) { in.Hemoglobin = 8 }, FeatureHemoglobin, 1},
		{"hemoglobin beyond", func(in *Input) { in.Hemoglobin = 2 }, FeatureHemoglobin, 1},
		{"vitamin d3 sufficient", func(in *Input) { in.VitaminD3 = 60 }, FeatureVitaminD3, 0},
		{"vitamin d3 deficient", func(in *Input) { in.VitaminD3 = 10 }, FeatureVitaminD3, 1},
		{"fsh/lh zero", func(in *Input) { in.FSHLHRatio = 0 }, FeatureFSHLHRatio, 1},
		{"fsh/lh high", func(in *Input) { in.FSHLHRatio = 3 }, FeatureFSHLHRatio, 0},
		{"short cycle", func(in *Input) { in.CycleLength = 14 }, FeatureCycleLength, 1},
		{"long cycle", func(in *Input) { in.CycleLength = 90 }, FeatureCycleLength, 1},
		{"regular cycle", func(in *Input) { in.CycleRegularity = CycleRegular }, FeatureCycleIrregularity, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := healthyInput()
			tc.mutate(&in)
			if got := m.Normalize(in)[tc.feature]; math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestNormalize_Clamped(t *testing.T) {
	m := testModel(t)
	extremes := []Input{
		{CycleRegularity: CycleRegular},
		{
			Age: 1e9, BMI: 1e9, WaistHipRatio: 1e9, CycleLength: 1e9,
			CycleRegularity: CycleIrregular, PulseRate: 1e9, RespiratoryRate: 1e9,
			Hemoglobin: 1e9, FSHLHRatio: 1e9, TSH: 1e9, AMH: 1e9,
			Prolactin: 1e9, VitaminD3: 1e9, BloodSugar: 1e9,
		},
	}
	for _, in := range extremes {
		for f, v := range m.Normalize(in) {
			if math.IsNaN(v) || v < 0 || v > 1 {
				t.Fatalf("%s out of range for %+v: %v", f, in, v)
			}
		}
	}
}

func TestNormalize_DerivedFieldsNotRecomputed(t *testing.T) {
	m := testModel(t)
	in := healthyInput()
	// weight and height imply a BMI near 38; the supplied BMI wins
	in.Weight = 100
	in.Height = 162
	in.BMI = 22

	if got := m.Normalize(in)[FeatureBMI]; math.Abs(got-(22-18.5)/(35-18.5)) > 1e-9 {
		t.Fatalf("expected supplied BMI to drive the feature, got %v", got)
	}
}

func TestNormalize_ShortIrregularCode(t *testing.T) {
	m := testModel(t)
	for _, code := range []CycleRegularity{"I", "i", "irregular", "IRREGULAR"} {
		in := healthyInput()
		in.CycleRegularity = code
		if err := in.Validate(); err != nil {
			t.Fatalf("%q: unexpected validation error: %v", code, err)
		}
		if !in.Irregular() {
			t.Errorf("%q: expected Irregular to be true", code)
		}
		if got := m.Normalize(in)[FeatureCycleIrregularity]; got != 1 {
			t.Errorf("%q: expected irregularity feature 1, got %v", code, got)
		}
	}

	in := healthyInput()
	in.CycleRegularity = "r"
	if in.Irregular() {
		t.Error("expected short regular code to be regular")
	}
}
