package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds OTel metric instruments for the wizard service.
type Metrics struct {
	CasesStarted      metric.Int64Counter
	AnswersSubmitted  metric.Int64Counter
	IssuesRaised      metric.Int64Counter
	GenerationLatency metric.Float64Histogram
}

// NewMetrics creates the wizard metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter("wizard")

	casesStarted, err := meter.Int64Counter("wizard.cases.started",
		metric.WithDescription("Number of cases started"),
	)
	if err != nil {
		return nil, err
	}

	answersSubmitted, err := meter.Int64Counter("wizard.answers.submitted",
		metric.WithDescription("Number of answers frozen into cases"),
	)
	if err != nil {
		return nil, err
	}

	issuesRaised, err := meter.Int64Counter("wizard.issues.raised",
		metric.WithDescription("Number of compliance issues raised"),
	)
	if err != nil {
		return nil, err
	}

	generationLatency, err := meter.Float64Histogram("wizard.generation.latency_seconds",
		metric.WithDescription("Time from generation start to delivery"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		CasesStarted:      casesStarted,
		AnswersSubmitted:  answersSubmitted,
		IssuesRaised:      issuesRaised,
		GenerationLatency: generationLatency,
	}, nil
}

// RecordCaseStarted records a new case.
func (m *Metrics) RecordCaseStarted(ctx context.Context, product, jurisdiction string) {
	m.CasesStarted.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("product", product),
			attribute.String("jurisdiction", jurisdiction),
		),
	)
}

// RecordAnswer records a frozen answer.
func (m *Metrics) RecordAnswer(ctx context.Context, questionID string) {
	m.AnswersSubmitted.Add(ctx, 1,
		metric.WithAttributes(attribute.String("question", questionID)),
	)
}

// RecordIssue records one raised compliance issue.
func (m *Metrics) RecordIssue(ctx context.Context, code, severity string) {
	m.IssuesRaised.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("code", code),
			attribute.String("severity", severity),
		),
	)
}

// RecordGenerationLatency records end-to-end generation time.
func (m *Metrics) RecordGenerationLatency(ctx context.Context, d time.Duration) {
	m.GenerationLatency.Record(ctx, d.Seconds())
}
