package queues

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landlord-heaven/wizard-go/internal/temporal/versioning"
)

func TestDefaultConfigs(t *testing.T) {
	configs := DefaultConfigs()
	assert.Len(t, configs, 2)
	assert.Contains(t, configs, versioning.QueueGeneration)
	assert.Contains(t, configs, versioning.QueueDelivery)

	// Delivery queue should have tightest concurrency.
	deliveryCfg := configs[versioning.QueueDelivery]
	assert.Equal(t, 3, deliveryCfg.Options.MaxConcurrentActivityExecutionSize)
}

func TestParseQueues(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr string
	}{
		{"empty defaults to generation", "", []string{versioning.QueueGeneration}, ""},
		{"short name generation", "generation", []string{versioning.QueueGeneration}, ""},
		{"short name delivery", "delivery", []string{versioning.QueueDelivery}, ""},
		{"full name", "wizard-generation", []string{versioning.QueueGeneration}, ""},
		{"multiple", "generation,delivery", []string{versioning.QueueGeneration, versioning.QueueDelivery}, ""},
		{"deduplicate", "generation,generation", []string{versioning.QueueGeneration}, ""},
		{"spaces trimmed", " generation , delivery ", []string{versioning.QueueGeneration, versioning.QueueDelivery}, ""},
		{"unknown queue", "bogus", nil, `unknown queue "bogus"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQueues(tt.raw)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
