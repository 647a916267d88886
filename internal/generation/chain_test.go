package generation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubProvider counts calls and returns a scripted result or error.
type stubProvider struct {
	name   string
	result *Result
	err    error
	calls  int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Generate(ctx context.Context, prompt string) (*Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestChain_PrimarySucceeds(t *testing.T) {
	primary := &stubProvider{name: "a", result: &Result{URL: "https://cdn/a.png", Provider: "a"}}
	secondary := &stubProvider{name: "b", result: &Result{URL: "https://cdn/b.png", Provider: "b"}}

	chain := NewChain(KindImage, zap.NewNop(), primary, secondary)
	result, quality, err := chain.Run(context.Background(), "a quiet meadow")

	require.NoError(t, err)
	assert.Equal(t, "https://cdn/a.png", result.URL)
	assert.Equal(t, "high", quality)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, secondary.calls, "secondary must not run when primary succeeds")
}

func TestChain_TransientFailureAdvances(t *testing.T) {
	primary := &stubProvider{name: "a", err: Transient("a", 429, "rate limit")}
	secondary := &stubProvider{name: "b", result: &Result{URL: "https://cdn/b.png", Provider: "b"}}

	chain := NewChain(KindImage, zap.NewNop(), primary, secondary)
	result, quality, err := chain.Run(context.Background(), "a quiet meadow")

	require.NoError(t, err)
	assert.Equal(t, "https://cdn/b.png", result.URL)
	assert.Equal(t, "standard", quality)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestChain_UnconfiguredSkipsTier(t *testing.T) {
	primary := &stubProvider{name: "a", err: Unconfigured("a", "A_API_KEY")}
	secondary := &stubProvider{name: "b", err: Transient("b", 503, "service unavailable")}
	tertiary := &stubProvider{name: "c", result: &Result{URL: "https://cdn/c.png", Provider: "c"}}

	chain := NewChain(KindImage, zap.NewNop(), primary, secondary, tertiary)
	result, quality, err := chain.Run(context.Background(), "a quiet meadow")

	require.NoError(t, err)
	assert.Equal(t, "c", result.Provider)
	assert.Equal(t, "basic", quality)
}

func TestChain_PermanentFailureStopsChain(t *testing.T) {
	primary := &stubProvider{name: "a", err: Permanent("a", 400, "invalid parameter")}
	secondary := &stubProvider{name: "b", result: &Result{URL: "https://cdn/b.png", Provider: "b"}}

	chain := NewChain(KindImage, zap.NewNop(), primary, secondary)
	_, _, err := chain.Run(context.Background(), "a quiet meadow")

	require.Error(t, err)
	var attempt *AttemptError
	require.ErrorAs(t, err, &attempt)
	assert.Equal(t, ClassPermanent, attempt.Class)
	assert.Equal(t, 0, secondary.calls, "a permanent failure must not fall through")
}

func TestChain_AllDeclinedIsExhausted(t *testing.T) {
	primary := &stubProvider{name: "a", err: Transient("a", 429, "rate limit")}
	secondary := &stubProvider{name: "b", err: Transient("b", 503, "service unavailable")}

	chain := NewChain(KindSound, zap.NewNop(), primary, secondary)
	_, _, err := chain.Run(context.Background(), "gentle rain")

	require.Error(t, err)
	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, KindSound, exhausted.Kind)
	assert.Equal(t, "/audio/hidden-garden.mp3", exhausted.FallbackAudio)
}

func TestChain_EachRunStartsFromPrimary(t *testing.T) {
	primary := &stubProvider{name: "a", err: Transient("a", 429, "rate limit")}
	secondary := &stubProvider{name: "b", result: &Result{URL: "https://cdn/b.png", Provider: "b"}}
	chain := NewChain(KindImage, zap.NewNop(), primary, secondary)

	for i := 0; i < 3; i++ {
		_, _, err := chain.Run(context.Background(), "a quiet meadow")
		require.NoError(t, err)
	}

	// No memory of previous failures: the primary gets retried every run.
	assert.Equal(t, 3, primary.calls)
	assert.Equal(t, 3, secondary.calls)
}
