// internal/generation/errors.go
package generation

import "fmt"

// Class is the closed set of provider failure classes. Adapters map their
// vendor's raw HTTP errors into one of these; nothing downstream ever
// re-inspects error text.
type Class int

const (
	// ClassTransient covers rate limits, quota, timeouts and 5xx; the chain
	// advances to the next tier.
	ClassTransient Class = iota
	// ClassPermanent stops the chain; the error surfaces to the caller.
	ClassPermanent
	// ClassUnconfigured means the provider has no API key. Treated like a
	// transient failure so partial deployments still serve requests.
	ClassUnconfigured
)

func (c Class) String() string {
	switch c {
	case ClassTransient:
		return "transient"
	case ClassPermanent:
		return "permanent"
	case ClassUnconfigured:
		return "unconfigured"
	default:
		return "unknown"
	}
}

// AttemptError is one provider's classified failure.
type AttemptError struct {
	Provider string
	Class    Class
	Status   int
	Reason   string
}

func (e *AttemptError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s failure (status %d): %s", e.Provider, e.Class, e.Status, e.Reason)
	}
	return fmt.Sprintf("%s: %s failure: %s", e.Provider, e.Class, e.Reason)
}

// Fallback reports whether the chain should advance past this failure.
func (e *AttemptError) Fallback() bool {
	return e.Class != ClassPermanent
}

func Transient(provider string, status int, reason string) *AttemptError {
	return &AttemptError{Provider: provider, Class: ClassTransient, Status: status, Reason: reason}
}

func Permanent(provider string, status int, reason string) *AttemptError {
	return &AttemptError{Provider: provider, Class: ClassPermanent, Status: status, Reason: reason}
}

func Unconfigured(provider, envKey string) *AttemptError {
	return &AttemptError{Provider: provider, Class: ClassUnconfigured, Reason: envKey + " not configured"}
}

// ExhaustedError is the terminal "all providers resting" failure, kept
// distinct from per-provider errors so the caller can show a calm message.
type ExhaustedError struct {
	Kind               Kind
	Message            string
	FallbackAudio      string
	SuggestAlternative string
}

func (e *ExhaustedError) Error() string {
	return e.Message
}

func NewExhaustedError(kind Kind) *ExhaustedError {
	switch kind {
	case KindSound:
		return &ExhaustedError{
			Kind:          kind,
			Message:       "AI music is resting. Enjoy the ambient garden sound instead.",
			FallbackAudio: "/audio/hidden-garden.mp3",
		}
	case KindLiving:
		return &ExhaustedError{
			Kind:               kind,
			Message:            "Video generation is temporarily resting. Try creating an AI image instead.",
			SuggestAlternative: "image",
		}
	default:
		return &ExhaustedError{
			Kind:    kind,
			Message: "All generation providers are currently resting. Please try again later.",
		}
	}
}
