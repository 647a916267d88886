// internal/generation/chain.go
package generation

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"sanctra-backend/internal/metrics"
)

// Chain runs providers strictly in order, one try each, and stops at the
// first usable result. Sequential on purpose: never pay two providers for
// the same request.
type Chain struct {
	kind      Kind
	providers []Provider
	logger    *zap.Logger
}

func NewChain(kind Kind, logger *zap.Logger, providers ...Provider) *Chain {
	return &Chain{
		kind:      kind,
		providers: providers,
		logger:    logger,
	}
}

func (c *Chain) Kind() Kind {
	return c.kind
}

// qualityFor labels a result by the chain position that produced it. The
// label reflects tier, not measured output quality.
func qualityFor(position int) string {
	switch position {
	case 0:
		return "high"
	case 1:
		return "standard"
	default:
		return "basic"
	}
}

// Run attempts each provider in turn. A fallback-class failure (transient,
// unconfigured, empty result) advances the chain; a permanent failure
// surfaces as-is. All tiers declining yields an ExhaustedError.
func (c *Chain) Run(ctx context.Context, prompt string) (*Result, string, error) {
	for i, p := range c.providers {
		result, err := p.Generate(ctx, prompt)
		if err == nil {
			if i > 0 {
				c.logger.Info("generation fell back",
					zap.String("kind", string(c.kind)),
					zap.String("provider", p.Name()),
					zap.String("quality", qualityFor(i)))
			}
			return result, qualityFor(i), nil
		}

		var attempt *AttemptError
		if errors.As(err, &attempt) && attempt.Fallback() {
			metrics.Global().GenerationFallbacks.WithLabelValues(string(c.kind), p.Name()).Inc()
			c.logger.Warn("provider declined, advancing chain",
				zap.String("kind", string(c.kind)),
				zap.String("provider", p.Name()),
				zap.String("class", attempt.Class.String()),
				zap.Int("status", attempt.Status))
			continue
		}

		c.logger.Error("provider failed hard",
			zap.String("kind", string(c.kind)),
			zap.String("provider", p.Name()),
			zap.Error(err))
		return nil, "", err
	}

	c.logger.Error("all providers declined", zap.String("kind", string(c.kind)))
	return nil, "", NewExhaustedError(c.kind)
}
