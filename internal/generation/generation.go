// internal/generation/generation.go
package generation

import "context"

// Kind identifies which media chain a request belongs to.
type Kind string

const (
	KindImage  Kind = "image"
	KindSound  Kind = "sound"
	KindLiving Kind = "living"
)

// Result is one provider's successful output: either a remote URL or an
// inline data URI, plus the provider that produced it.
type Result struct {
	URL      string
	Provider string
}

// Provider is a single generation backend. Generate gets exactly one try
// per request; classification of its failure decides whether the chain
// advances.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (*Result, error)
}
