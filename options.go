package lumen

import (
	"context"
	"time"

	"github.com/zoobzio/pipz"
)

// Option configures the request pipeline of an Image. Pipeline options wrap
// the request callback with middleware executed when the gate opens and the
// full-quality request is issued.
//
// Instance configuration (observer, dimensions, visibility options, clock,
// metrics) is handled via chainable methods on the Image before Bind.
type Option func(pipz.Chainable[*Update]) pipz.Chainable[*Update]

// buildPipeline wraps a terminal with pipeline options.
func buildPipeline(terminal pipz.Chainable[*Update], opts []Option) pipz.Chainable[*Update] {
	pipeline := terminal
	for _, opt := range opts {
		pipeline = opt(pipeline)
	}
	return pipeline
}

// WithTimeout wraps the pipeline with a timeout.
// If issuing the request takes longer than the specified duration, the
// operation fails; the image stays on its placeholder.
func WithTimeout(d time.Duration) Option {
	return func(p pipz.Chainable[*Update]) pipz.Chainable[*Update] {
		return pipz.NewTimeout("timeout", p, d)
	}
}

// WithRetry retries a failed request up to the specified number of
// attempts.
//
// Retries are immediate without delay. For exponential backoff between
// attempts, use WithBackoff instead. Retries stop immediately if the
// context is canceled.
func WithRetry(attempts int) Option {
	return func(p pipz.Chainable[*Update]) pipz.Chainable[*Update] {
		return pipz.NewRetry("retry", p, attempts)
	}
}

// WithBackoff retries a failed request with exponentially increasing
// delays between attempts, starting at baseDelay.
//
// Preferred over WithRetry when requests fail due to temporary overload
// or rate limiting on the asset host.
func WithBackoff(attempts int, baseDelay time.Duration) Option {
	return func(p pipz.Chainable[*Update]) pipz.Chainable[*Update] {
		return pipz.NewBackoff("backoff", p, attempts, baseDelay)
	}
}

// WithFallback attempts the fallback processor when the primary request
// fails. Useful for serving from a mirror host when the primary CDN is
// unreachable.
func WithFallback(fallback pipz.Chainable[*Update]) Option {
	return func(p pipz.Chainable[*Update]) pipz.Chainable[*Update] {
		return pipz.NewFallback("fallback", p, fallback)
	}
}

// WithCircuitBreaker stops issuing requests after the threshold number of
// consecutive failures. The circuit stays open for the timeout period,
// then half-opens to test whether the asset host has recovered.
//
// Useful for a gallery sharing one host: one broken origin should not
// stall every image that scrolls into view.
func WithCircuitBreaker(threshold int, timeout time.Duration) Option {
	return func(p pipz.Chainable[*Update]) pipz.Chainable[*Update] {
		return pipz.NewCircuitBreaker("circuit-breaker", p, threshold, timeout)
	}
}

// WithRateLimit limits request issuance to rps requests per second with
// the given burst capacity, waiting for available capacity.
//
// This bounds request spikes when a fast scroll brings many images into
// view at once.
func WithRateLimit(rps float64, burst int) Option {
	return func(p pipz.Chainable[*Update]) pipz.Chainable[*Update] {
		limiter := pipz.NewRateLimiter[*Update]("rate-limit", rps, burst)
		return pipz.NewSequence("rate-limited", limiter, p)
	}
}

// WithErrorHandler adds error observation to the pipeline.
// Errors are passed to the handler for logging, metrics, or alerting,
// but the error still propagates. Use this for observability, not recovery.
func WithErrorHandler(handler pipz.Chainable[*pipz.Error[*Update]]) Option {
	return func(p pipz.Chainable[*Update]) pipz.Chainable[*Update] {
		return pipz.NewHandle("error-handler", p, handler)
	}
}

// WithMiddleware wraps the pipeline with a sequence of processors.
// Processors execute in order, with the wrapped request callback last.
//
// Use the Use* functions to create processors for common patterns,
// or provide custom pipz.Chainable implementations directly.
//
// Example:
//
//	lumen.New("low.jpg", "high.jpg",
//	    lumen.WithMiddleware(
//	        lumen.UseEffect("log", logFn),
//	        lumen.UseTransform("rewrite-cdn", rewriteFn),
//	    ),
//	).Observer(observer)
func WithMiddleware(processors ...pipz.Chainable[*Update]) Option {
	return func(p pipz.Chainable[*Update]) pipz.Chainable[*Update] {
		all := make([]pipz.Chainable[*Update], 0, len(processors)+1)
		all = append(all, processors...)
		all = append(all, p)
		return pipz.NewSequence("middleware", all...)
	}
}

// UseTransform creates a processor that transforms the update.
// Cannot fail. Use for pure transformations like source rewriting.
func UseTransform(name string, fn func(context.Context, *Update) *Update) pipz.Chainable[*Update] {
	return pipz.Transform(pipz.Name(name), fn)
}

// UseApply creates a processor that can transform the update and fail.
func UseApply(name string, fn func(context.Context, *Update) (*Update, error)) pipz.Chainable[*Update] {
	return pipz.Apply(pipz.Name(name), fn)
}

// UseEffect creates a processor that performs a side effect.
// The update passes through unchanged. Use for logging, metrics, or
// notifications that should not affect the request.
func UseEffect(name string, fn func(context.Context, *Update) error) pipz.Chainable[*Update] {
	return pipz.Effect(pipz.Name(name), fn)
}

// UseFilter wraps a processor with a condition.
// If the condition returns false, the update passes through unchanged.
func UseFilter(name string, condition func(context.Context, *Update) bool, processor pipz.Chainable[*Update]) pipz.Chainable[*Update] {
	return pipz.NewFilter(pipz.Name(name), condition, processor)
}
