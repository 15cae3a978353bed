// Package assessment scores PCOS risk from a fixed set of clinical and
// anthropometric measurements.
//
// The model is a deterministic weighted sum with hand-specified interaction
// terms and a logistic squash. It is not trained. A Model is immutable after
// construction and safe for concurrent use.
package assessment

import (
	"fmt"
	"math"
)

// Result is the outcome of one assessment.
type Result struct {
	RiskScore       float64      `json:"riskScore"`
	RiskLevel       RiskLevel    `json:"riskLevel"`
	Confidence      float64      `json:"confidence"`
	Recommendations []string     `json:"recommendations"`
	RiskFactors     []RiskFactor `json:"riskFactors"`
	ModelVersion    string       `json:"modelVersion"`
}

// Model runs the scoring pipeline with a frozen set of parameters.
type Model struct {
	params Parameters
}

// NewModel validates p and returns a model holding a private copy of it.
func NewModel(p Parameters) (*Model, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Model{params: p.clone()}, nil
}

// MustNewModel is NewModel for constant parameters. A configuration error is a
// programming defect, so it panics.
func MustNewModel(p Parameters) *Model {
	m, err := NewModel(p)
	if err != nil {
		panic(fmt.Sprintf("assessment: %v", err))
	}
	return m
}

// Parameters returns a copy of the model's configuration.
func (m *Model) Parameters() Parameters {
	return m.params.clone()
}

// Version is the model version tag reported with every result.
func (m *Model) Version() string {
	return m.params.ModelVersion
}

// Assess runs the whole pipeline. It returns either a complete result or an
// error wrapping ErrInvalidInput; there are no partial results.
func (m *Model) Assess(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	in.CycleRegularity, _ = ParseCycleRegularity(string(in.CycleRegularity))

	features := m.Normalize(in)
	score := m.Score(features, in)

	return Result{
		RiskScore:       round2(score),
		RiskLevel:       m.Classify(score),
		Confidence:      round2(m.Confidence(features)),
		Recommendations: m.Recommend(in, score),
		RiskFactors:     ExtractRiskFactors(in),
		ModelVersion:    m.params.ModelVersion,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
