// Package versioning defines workflow versions and task queue names.
package versioning

const (
	// Workflow versions for determinism tracking.
	CaseGenerationV1 = "case-generation-v1"

	// Task queues. Rendering is CPU-bound and parallel; delivery does the
	// writes (document store, presigned links) on a tighter queue.
	QueueGeneration = "wizard-generation"
	QueueDelivery   = "wizard-delivery"
)
