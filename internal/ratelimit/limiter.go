// Package ratelimit provides token-bucket limiters for outbound service
// calls and windowed per-case budgets for wizard operations.
package ratelimit

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"
)

// ServiceRates configures per-service request rates (requests per second)
// for the service's outbound dependencies.
type ServiceRates struct {
	S3       float64
	Temporal float64
}

// DefaultServiceRates returns conservative outbound rate limits.
func DefaultServiceRates() ServiceRates {
	return ServiceRates{
		S3:       25,
		Temporal: 50,
	}
}

// ServiceLimiter rate-limits outbound calls per service using token buckets.
type ServiceLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
}

// NewServiceLimiter creates a limiter with the given per-service rates.
func NewServiceLimiter(rates ServiceRates) *ServiceLimiter {
	limiters := map[string]*rate.Limiter{
		"s3":       rate.NewLimiter(rate.Limit(rates.S3), int(rates.S3)),
		"temporal": rate.NewLimiter(rate.Limit(rates.Temporal), int(rates.Temporal)),
	}
	return &ServiceLimiter{limiters: limiters}
}

// Wait blocks until a token is available for the named service, or ctx is
// cancelled.
func (sl *ServiceLimiter) Wait(ctx context.Context, service string) error {
	sl.mu.RLock()
	limiter, ok := sl.limiters[service]
	sl.mu.RUnlock()
	if !ok {
		return nil // unknown service = no limit
	}
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit %s: %w", service, err)
	}
	return nil
}
