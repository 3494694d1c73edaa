package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// CaseBudget caps how often one case may perform a wizard operation
// within a time window. It exists to stop scripted clients hammering
// answer submission or evidence upload on a single case.
type CaseBudget struct {
	mu     sync.Mutex
	counts map[string]*windowCounter

	maxPerWindow int
	windowSize   time.Duration
	now          func() time.Time
}

type windowCounter struct {
	count     int
	windowEnd time.Time
}

// NewCaseBudget creates a budget limiter. maxPerWindow limits calls per
// (caseID, operation) within windowSize.
func NewCaseBudget(maxPerWindow int, windowSize time.Duration) *CaseBudget {
	return &CaseBudget{
		counts:       make(map[string]*windowCounter),
		maxPerWindow: maxPerWindow,
		windowSize:   windowSize,
		now:          time.Now,
	}
}

func budgetKey(caseID, operation string) string {
	return caseID + "|" + operation
}

// Check returns an error if the case has exhausted its budget for the
// operation in the current window.
func (b *CaseBudget) Check(caseID, operation string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := budgetKey(caseID, operation)
	wc, ok := b.counts[key]
	if !ok || b.now().After(wc.windowEnd) {
		return nil // no window or expired window
	}
	if wc.count >= b.maxPerWindow {
		return fmt.Errorf("case budget exceeded: case %s operation %s (%d/%d in window)",
			caseID, operation, wc.count, b.maxPerWindow)
	}
	return nil
}

// Record counts one operation against the case.
func (b *CaseBudget) Record(caseID, operation string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := budgetKey(caseID, operation)
	wc, ok := b.counts[key]
	if !ok || b.now().After(wc.windowEnd) {
		b.counts[key] = &windowCounter{
			count:     1,
			windowEnd: b.now().Add(b.windowSize),
		}
		return
	}
	wc.count++
}
