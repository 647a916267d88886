package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransientStatus(t *testing.T) {
	for _, status := range []int{402, 403, 429, 500, 502, 503, 504} {
		assert.True(t, TransientStatus(status), "status %d should be transient", status)
	}
	for _, status := range []int{400, 401, 404, 409, 422} {
		assert.False(t, TransientStatus(status), "status %d should not be transient", status)
	}
}

func TestTransientMessage(t *testing.T) {
	transient := []string{
		"Quota Exceeded for this project",
		"rate limit hit, slow down",
		"the model unavailable right now",
		"insufficient credits remaining",
		"Too Many Requests",
		"upstream timeout",
	}
	for _, msg := range transient {
		assert.True(t, TransientMessage(msg), "%q should read as transient", msg)
	}

	assert.False(t, TransientMessage("invalid prompt parameter"))
	assert.False(t, TransientMessage(""))
}

func TestClassifyHTTP(t *testing.T) {
	// Transient status wins regardless of body.
	err := classifyHTTP("fal", 429, "whatever")
	assert.Equal(t, ClassTransient, err.Class)
	assert.Equal(t, 429, err.Status)

	// Non-transient status with a transient-sounding body still falls back.
	err = classifyHTTP("fal", 400, "quota exceeded")
	assert.Equal(t, ClassTransient, err.Class)

	// Neither: permanent.
	err = classifyHTTP("fal", 400, "invalid image_size")
	assert.Equal(t, ClassPermanent, err.Class)
}

func TestAttemptError_Fallback(t *testing.T) {
	assert.True(t, Transient("fal", 429, "rate limit").Fallback())
	assert.True(t, Unconfigured("gemini", "GEMINI_API_KEY").Fallback())
	assert.False(t, Permanent("fal", 400, "bad request").Fallback())
}

func TestNewExhaustedError_PerKind(t *testing.T) {
	img := NewExhaustedError(KindImage)
	assert.Equal(t, "All generation providers are currently resting. Please try again later.", img.Message)
	assert.Empty(t, img.FallbackAudio)
	assert.Empty(t, img.SuggestAlternative)

	sound := NewExhaustedError(KindSound)
	assert.Equal(t, "AI music is resting. Enjoy the ambient garden sound instead.", sound.Message)
	assert.Equal(t, "/audio/hidden-garden.mp3", sound.FallbackAudio)

	living := NewExhaustedError(KindLiving)
	require.Equal(t, "Video generation is temporarily resting. Try creating an AI image instead.", living.Message)
	assert.Equal(t, "image", living.SuggestAlternative)
}
