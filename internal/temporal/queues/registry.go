// Package queues defines per-queue worker configuration for task-queue partitioning.
package queues

import (
	"fmt"
	"strings"

	"go.temporal.io/sdk/worker"

	"github.com/landlord-heaven/wizard-go/internal/temporal/versioning"
)

// QueueConfig holds worker options for a single task queue.
type QueueConfig struct {
	Name    string
	Options worker.Options
}

// DefaultConfigs returns the standard per-queue worker options.
//
//   - QueueGeneration: analysis + rendering, generous concurrency
//   - QueueDelivery: storage writes and delivery links, tight concurrency
func DefaultConfigs() map[string]QueueConfig {
	return map[string]QueueConfig{
		versioning.QueueGeneration: {
			Name: versioning.QueueGeneration,
			Options: worker.Options{
				MaxConcurrentActivityExecutionSize:     10,
				MaxConcurrentWorkflowTaskExecutionSize: 10,
			},
		},
		versioning.QueueDelivery: {
			Name: versioning.QueueDelivery,
			Options: worker.Options{
				MaxConcurrentActivityExecutionSize:     3,
				MaxConcurrentWorkflowTaskExecutionSize: 1,
			},
		},
	}
}

// ParseQueues parses a comma-separated queue list (e.g. "generation,delivery")
// into a set of queue names. Accepts both short names ("generation") and
// full names ("wizard-generation"). Returns an error for unknown queues.
func ParseQueues(raw string) ([]string, error) {
	if raw == "" {
		return []string{versioning.QueueGeneration}, nil
	}

	shortNames := map[string]string{
		"generation": versioning.QueueGeneration,
		"delivery":   versioning.QueueDelivery,
	}
	fullNames := map[string]bool{
		versioning.QueueGeneration: true,
		versioning.QueueDelivery:   true,
	}

	seen := make(map[string]bool)
	var result []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		// Resolve short name to full name.
		if full, ok := shortNames[name]; ok {
			name = full
		}
		if !fullNames[name] {
			return nil, fmt.Errorf("unknown queue %q", name)
		}
		if !seen[name] {
			seen[name] = true
			result = append(result, name)
		}
	}
	if len(result) == 0 {
		return []string{versioning.QueueGeneration}, nil
	}
	return result, nil
}
