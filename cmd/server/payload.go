package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Skufu/pcos-risk/internal/assessment"
)

// Measurement is a number that may arrive as a JSON number or a numeric
// string, which is what HTML form inputs produce.
type Measurement float64

var float64Type = reflect.TypeOf(float64(0))

func (m *Measurement) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	kind := "number"
	if strings.HasPrefix(text, `"`) {
		unquoted, err := strconv.Unquote(text)
		if err != nil {
			return &json.UnmarshalTypeError{Value: "string", Type: float64Type}
		}
		text = strings.TrimSpace(unquoted)
		kind = "string"
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		if kind == "number" {
			kind = "value " + text
		}
		return &json.UnmarshalTypeError{Value: kind, Type: float64Type}
	}
	*m = Measurement(v)
	return nil
}

// assessmentRequest is the wire form of assessment.Input. Every field is
// required; a zero value is allowed.
type assessmentRequest struct {
	Age             *Measurement `json:"age" binding:"required"`
	Weight          *Measurement `json:"weight" binding:"required"`
	Height          *Measurement `json:"height" binding:"required"`
	BMI             *Measurement `json:"bmi" binding:"required"`
	Waist           *Measurement `json:"waist" binding:"required"`
	Hip             *Measurement `json:"hip" binding:"required"`
	WaistHipRatio   *Measurement `json:"waistHipRatio" binding:"required"`
	CycleLength     *Measurement `json:"cycleLength" binding:"required"`
	CycleRegularity *string      `json:"cycleRegularity" binding:"required"`
	PulseRate       *Measurement `json:"pulseRate" binding:"required"`
	RespiratoryRate *Measurement `json:"respiratoryRate" binding:"required"`
	Hemoglobin      *Measurement `json:"hemoglobin" binding:"required"`
	FSH             *Measurement `json:"fsh" binding:"required"`
	LH              *Measurement `json:"lh" binding:"required"`
	FSHLHRatio      *Measurement `json:"fshLhRatio" binding:"required"`
	TSH             *Measurement `json:"tsh" binding:"required"`
	AMH             *Measurement `json:"amh" binding:"required"`
	Prolactin       *Measurement `json:"prolactin" binding:"required"`
	VitaminD3       *Measurement `json:"vitaminD3" binding:"required"`
	BloodSugar      *Measurement `json:"bloodSugar" binding:"required"`
}

// toInput must only be called after binding validation succeeded.
func (r assessmentRequest) toInput() assessment.Input {
	f := func(m *Measurement) float64 { return float64(*m) }
	return assessment.Input{
		Age:             f(r.Age),
		Weight:          f(r.Weight),
		Height:          f(r.Height),
		BMI:             f(r.BMI),
		Waist:           f(r.Waist),
		Hip:             f(r.Hip),
		WaistHipRatio:   f(r.WaistHipRatio),
		CycleLength:     f(r.CycleLength),
		CycleRegularity: assessment.CycleRegularity(*r.CycleRegularity),
		PulseRate:       f(r.PulseRate),
		RespiratoryRate: f(r.RespiratoryRate),
		Hemoglobin:      f(r.Hemoglobin),
		FSH:             f(r.FSH),
		LH:              f(r.LH),
		FSHLHRatio:      f(r.FSHLHRatio),
		TSH:             f(r.TSH),
		AMH:             f(r.AMH),
		Prolactin:       f(r.Prolactin),
		VitaminD3:       f(r.VitaminD3),
		BloodSugar:      f(r.BloodSugar),
	}
}

var registerOnce sync.Once

// registerValidation makes validator report JSON field names.
func registerValidation() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

func respondBindError(c *gin.Context, deps routerDeps, err error) {
	var (
		verrs   validator.ValidationErrors
		typeErr *json.UnmarshalTypeError
		tooBig  *http.MaxBytesError
	)
	switch {
	case errors.As(err, &verrs) && len(verrs) > 0:
		fe := verrs[0]
		reason := fmt.Sprintf("failed %q validation", fe.Tag())
		if fe.Tag() == "required" {
			reason = "is required"
		}
		respondValidation(c, deps, fe.Field(), reason)
	case errors.As(err, &typeErr) && typeErr.Field != "":
		want := "a number"
		if typeErr.Type != float64Type {
			want = "a " + typeErr.Type.String()
		}
		respondValidation(c, deps, typeErr.Field, fmt.Sprintf("must be %s, got %s", want, typeErr.Value))
	case errors.As(err, &tooBig):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "payload_too_large"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
	}
}
