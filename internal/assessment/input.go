package assessment

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidInput is wrapped by every FieldError.
var ErrInvalidInput = errors.New("invalid input")

// FieldError identifies the measurement that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidInput
}

// CycleRegularity is the two-valued menstrual cycle category.
type CycleRegularity string

const (
	CycleRegular   CycleRegularity = "Regular"
	CycleIrregular CycleRegularity = "Irregular"
)

// ParseCycleRegularity accepts the long and the single-letter form ("R", "I").
func ParseCycleRegularity(s string) (CycleRegularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "regular", "r":
		return CycleRegular, nil
	case "irregular", "i":
		return CycleIrregular, nil
	}
	return "", &FieldError{Field: "cycleRegularity", Reason: fmt.Sprintf("must be Regular or Irregular, got %q", s)}
}

// Input is one individual's measurements. Derived fields (BMI, WaistHipRatio,
// FSHLHRatio) are taken as supplied and never recomputed from their parts.
type Input struct {
	Age             float64         `json:"age"`
	Weight          float64         `json:"weight"`
	Height          float64         `json:"height"`
	BMI             float64         `json:"bmi"`
	Waist           float64         `json:"waist"`
	Hip             float64         `json:"hip"`
	WaistHipRatio   float64         `json:"waistHipRatio"`
	CycleLength     float64         `json:"cycleLength"`
	CycleRegularity CycleRegularity `json:"cycleRegularity"`
	PulseRate       float64         `json:"pulseRate"`
	RespiratoryRate float64         `json:"respiratoryRate"`
	Hemoglobin      float64         `json:"hemoglobin"`
	FSH             float64         `json:"fsh"`
	LH              float64         `json:"lh"`
	FSHLHRatio      float64         `json:"fshLhRatio"`
	TSH             float64         `json:"tsh"`
	AMH             float64         `json:"amh"`
	Prolactin       float64         `json:"prolactin"`
	VitaminD3       float64         `json:"vitaminD3"`
	BloodSugar      float64         `json:"bloodSugar"`
}

// Irregular reports whether the cycle is irregular. Short codes and any
// letter case are understood.
func (in Input) Irregular() bool {
	r, _ := ParseCycleRegularity(string(in.CycleRegularity))
	return r == CycleIrregular
}

func (in Input) numericFields() []namedValue {
	return []namedValue{
		{"age", in.Age},
		{"weight", in.Weight},
		{"height", in.Height},
		{"bmi", in.BMI},
		{"waist", in.Waist},
		{"hip", in.Hip},
		{"waistHipRatio", in.WaistHipRatio},
		{"cycleLength", in.CycleLength},
		{"pulseRate", in.PulseRate},
		{"respiratoryRate", in.RespiratoryRate},
		{"hemoglobin", in.Hemoglobin},
		{"fsh", in.FSH},
		{"lh", in.LH},
		{"fshLhRatio", in.FSHLHRatio},
		{"tsh", in.TSH},
		{"amh", in.AMH},
		{"prolactin", in.Prolactin},
		{"vitaminD3", in.VitaminD3},
		{"bloodSugar", in.BloodSugar},
	}
}

type namedValue struct {
	name  string
	value float64
}

// Validate checks numeric well-formedness only; presence is the caller's job.
// The first offending field is returned as a *FieldError.
func (in Input) Validate() error {
	for _, f := range in.numericFields() {
		switch {
		case math.IsNaN(f.value) || math.IsInf(f.value, 0):
			return &FieldError{Field: f.name, Reason: "must be a finite number"}
		case f.value < 0:
			return &FieldError{Field: f.name, Reason: "must not be negative"}
		}
	}
	if _, err := ParseCycleRegularity(string(in.CycleRegularity)); err != nil {
		return err
	}
	return nil
}
