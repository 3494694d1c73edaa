package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaseBudget_UnderLimit(t *testing.T) {
	b := NewCaseBudget(5, time.Minute)

	err := b.Check("case-1", "SubmitAnswer")
	require.NoError(t, err)

	b.Record("case-1", "SubmitAnswer")
	b.Record("case-1", "SubmitAnswer")

	err = b.Check("case-1", "SubmitAnswer")
	assert.NoError(t, err)
}

func TestCaseBudget_ExceedsLimit(t *testing.T) {
	b := NewCaseBudget(2, time.Minute)

	b.Record("case-1", "SubmitAnswer")
	b.Record("case-1", "SubmitAnswer")

	err := b.Check("case-1", "SubmitAnswer")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "budget exceeded")
}

func TestCaseBudget_WindowReset(t *testing.T) {
	b := NewCaseBudget(2, time.Minute)

	now := time.Now()
	b.now = func() time.Time { return now }

	b.Record("case-1", "UploadEvidence")
	b.Record("case-1", "UploadEvidence")
	err := b.Check("case-1", "UploadEvidence")
	assert.Error(t, err)

	// Advance time past window.
	b.now = func() time.Time { return now.Add(2 * time.Minute) }
	err = b.Check("case-1", "UploadEvidence")
	assert.NoError(t, err)
}

func TestCaseBudget_DifferentCases(t *testing.T) {
	b := NewCaseBudget(1, time.Minute)

	b.Record("case-1", "SubmitAnswer")
	err := b.Check("case-1", "SubmitAnswer")
	assert.Error(t, err)

	// A different case has its own budget.
	err = b.Check("case-2", "SubmitAnswer")
	assert.NoError(t, err)
}
