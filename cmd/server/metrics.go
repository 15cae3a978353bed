package main

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Skufu/pcos-risk/internal/assessment"
)

// assessmentMetrics holds the instruments recorded by the assessment handler.
type assessmentMetrics struct {
	assessments metric.Int64Counter
	scores      metric.Float64Histogram
	rejected    metric.Int64Counter
}

func newAssessmentMetrics(meter metric.Meter) (*assessmentMetrics, error) {
	assessments, err := meter.Int64Counter("pcos_assessments_total",
		metric.WithDescription("Completed assessments by risk level"))
	if err != nil {
		return nil, fmt.Errorf("assessments counter: %w", err)
	}
	scores, err := meter.Float64Histogram("pcos_risk_score",
		metric.WithDescription("Rounded risk scores"),
		metric.WithExplicitBucketBoundaries(0.1, 0.2, 0.3, 0.4, 0.5, 0.65, 0.8, 0.9, 1))
	if err != nil {
		return nil, fmt.Errorf("score histogram: %w", err)
	}
	rejected, err := meter.Int64Counter("pcos_assessments_rejected_total",
		metric.WithDescription("Assessment requests rejected by field validation"))
	if err != nil {
		return nil, fmt.Errorf("rejected counter: %w", err)
	}
	return &assessmentMetrics{assessments: assessments, scores: scores, rejected: rejected}, nil
}

func (m *assessmentMetrics) record(ctx context.Context, result assessment.Result) {
	attrs := metric.WithAttributes(
		attribute.String("risk_level", string(result.RiskLevel)),
		attribute.String("model_version", result.ModelVersion),
	)
	m.assessments.Add(ctx, 1, attrs)
	m.scores.Record(ctx, result.RiskScore, attrs)
}

func (m *assessmentMetrics) reject(ctx context.Context, field string) {
	m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("field", field)))
}
