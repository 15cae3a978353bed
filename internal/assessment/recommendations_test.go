package assessment

import (
	"reflect"
	"testing"
)

func TestRecommend(t *testing.T) {
	m := testModel(t)

	cases := []struct {
		name   string
		mutate func(*Input)
		score  float64
		want   []string
	}{
		{
			name:  "healthy low tier",
			score: 0.1,
			want:  nil,
		},
		{
			name:   "overweight",
			mutate: func(in *Input) { in.BMI = 27 },
			score:  0.1,
			want: []string{
				"Consider a structured weight management program with healthcare supervision",
				"Focus on portion control and mindful eating practices",
			},
		},
		{
			name:   "high blood sugar without high bmi",
			mutate: func(in *Input) { in.BloodSugar = 160 },
			score:  0.1,
			want: []string{
				"Consider metabolic screening including glucose tolerance test",
				"Incorporate strength training to improve insulin sensitivity",
			},
		},
		{
			name:   "reversed ratio and low vitamin d3",
			mutate: func(in *Input) { in.FSHLHRatio = 0.5; in.VitaminD3 = 10 },
			score:  0.1,
			want: []string{
				"Consult with a reproductive endocrinologist for specialized care",
				"Consider vitamin D supplementation under medical guidance",
			},
		},
		{
			name:  "tier boundary 0.3 adds nothing",
			score: 0.3,
			want:  nil,
		},
		{
			name:  "moderate tier",
			score: 0.31,
			want: []string{
				"Monitor symptoms and maintain healthy lifestyle habits",
				"Consider annual health screenings for early detection",
			},
		},
		{
			name:  "tier boundary 0.65 stays moderate",
			score: 0.65,
			want: []string{
				"Monitor symptoms and maintain healthy lifestyle habits",
				"Consider annual health screenings for early detection",
			},
		},
		{
			name:  "high tier",
			score: 0.9,
			want: []string{
				"Seek comprehensive PCOS evaluation including ultrasound and hormone panel",
				"Consider consultation with a registered dietitian specializing in PCOS",
				"Explore stress management techniques such as yoga or meditation",
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := healthyInput()
			if tc.mutate != nil {
				tc.mutate(&in)
			}
			got := m.Recommend(in, tc.score)
			want := append(UniversalRecommendations(), tc.want...)
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("expected %v, got %v", want, got)
			}
		})
	}
}

func TestRecommend_TruncatesInConstructionOrder(t *testing.T) {
	m := testModel(t)
	in := highRiskInput()

	got := m.Recommend(in, 0.95)
	if len(got) != 8 {
		t.Fatalf("expected 8 recommendations, got %d", len(got))
	}
	want := append(UniversalRecommendations(),
		"Consider a structured weight management program with healthcare supervision",
		"Focus on portion control and mindful eating practices",
		"Track menstrual cycles and symptoms using a health app or diary",
		"Discuss hormonal evaluation with your healthcare provider",
		"Consider metabolic screening including glucose tolerance test",
	)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestUniversalRecommendations_ReturnsCopy(t *testing.T) {
	first := UniversalRecommendations()
	first[0] = "changed"
	if UniversalRecommendations()[0] == "changed" {
		t.Fatal("universal recommendations leaked a shared slice")
	}
}

func TestRecommend_ShortIrregularCode(t *testing.T) {
	m := testModel(t)
	in := healthyInput()
	in.CycleRegularity = "I"

	found := false
	for _, r := range m.Recommend(in, 0.1) {
		if r == "Track menstrual cycles and symptoms using a health app or diary" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected cycle tracking recommendation for short irregular code")
	}
}
