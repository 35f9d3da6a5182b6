package repository

import (
	"context"
	"time"

	"shareit/internal/domain"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// FailoverRateLimiter sends calls to primary through a circuit breaker and
// answers from fallback while the breaker is open or primary errors.
type FailoverRateLimiter struct {
	primary  domain.RateLimiter
	fallback domain.RateLimiter
	cb       *gobreaker.CircuitBreaker
	logger   *zerolog.Logger
}

func NewFailoverRateLimiter(primary, fallback domain.RateLimiter, logger *zerolog.Logger) *FailoverRateLimiter {
	return newFailoverRateLimiter(primary, fallback, logger, time.Minute)
}

func newFailoverRateLimiter(primary, fallback domain.RateLimiter, logger *zerolog.Logger, retryAfter time.Duration) *FailoverRateLimiter {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "rate_limiter_primary",
		MaxRequests: 1,
		Timeout:     retryAfter,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 2
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state changed")
		},
	})
	return &FailoverRateLimiter{primary: primary, fallback: fallback, cb: cb, logger: logger}
}

func (r *FailoverRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	res, err := r.cb.Execute(func() (interface{}, error) {
		return r.primary.Allow(ctx, key, limit, window)
	})
	if err == nil {
		return res.(bool), nil
	}

	if err != gobreaker.ErrOpenState && err != gobreaker.ErrTooManyRequests {
		r.logger.Error().Err(err).Msg("Primary rate limiter failed, falling back to memory")
	}
	return r.fallback.Allow(ctx, key, limit, window)
}

func (r *FailoverRateLimiter) State() gobreaker.State {
	return r.cb.State()
}
