package generation

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFalImage_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fal-ai/flux/schnell", r.URL.Path)
		assert.Equal(t, "Key test-key", r.Header.Get("Authorization"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "a quiet meadow", payload["prompt"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"images": []map[string]string{{"url": "https://fal.cdn/img.png"}},
		})
	}))
	defer srv.Close()

	p := NewFalImage("test-key")
	p.baseURL = srv.URL

	result, err := p.Generate(context.Background(), "a quiet meadow")
	require.NoError(t, err)
	assert.Equal(t, "https://fal.cdn/img.png", result.URL)
	assert.Equal(t, "fal", result.Provider)
}

func TestFalImage_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewFalImage("test-key")
	p.baseURL = srv.URL

	_, err := p.Generate(context.Background(), "a quiet meadow")
	var attempt *AttemptError
	require.ErrorAs(t, err, &attempt)
	assert.Equal(t, ClassTransient, attempt.Class)
	assert.Equal(t, 429, attempt.Status)
	assert.True(t, attempt.Fallback())
}

func TestFalImage_EmptyResultFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"images": []interface{}{}})
	}))
	defer srv.Close()

	p := NewFalImage("test-key")
	p.baseURL = srv.URL

	_, err := p.Generate(context.Background(), "a quiet meadow")
	var attempt *AttemptError
	require.ErrorAs(t, err, &attempt)
	assert.Equal(t, ClassTransient, attempt.Class)
}

func TestFalImage_NoKeyIsUnconfigured(t *testing.T) {
	p := NewFalImage("")
	_, err := p.Generate(context.Background(), "a quiet meadow")

	var attempt *AttemptError
	require.ErrorAs(t, err, &attempt)
	assert.Equal(t, ClassUnconfigured, attempt.Class)
	assert.True(t, attempt.Fallback())
}

func TestFalSound_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fal-ai/stable-audio", r.URL.Path)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.EqualValues(t, 15, payload["seconds_total"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"audio_file": map[string]string{"url": "https://fal.cdn/clip.mp3"},
		})
	}))
	defer srv.Close()

	p := NewFalSound("test-key")
	p.baseURL = srv.URL

	result, err := p.Generate(context.Background(), "gentle rain")
	require.NoError(t, err)
	assert.Equal(t, "https://fal.cdn/clip.mp3", result.URL)
}

func TestGemini_InlineImageBecomesDataURI(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-2.0-flash-exp")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{
					"content": map[string]interface{}{
						"parts": []map[string]interface{}{
							{"inlineData": map[string]string{"mimeType": "image/png", "data": encoded}},
						},
					},
				},
			},
		})
	}))
	defer srv.Close()

	p := NewGemini("test-key")
	p.baseURL = srv.URL

	result, err := p.Generate(context.Background(), "a quiet meadow")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,"+encoded, result.URL)
	assert.Equal(t, "gemini", result.Provider)
}

func TestGemini_TextOnlyResponseFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{},
		})
	}))
	defer srv.Close()

	p := NewGemini("test-key")
	p.baseURL = srv.URL

	_, err := p.Generate(context.Background(), "a quiet meadow")
	var attempt *AttemptError
	require.ErrorAs(t, err, &attempt)
	assert.Equal(t, ClassTransient, attempt.Class)
}

func TestPollinations_ReturnsPromptURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewPollinations()
	p.baseURL = srv.URL

	result, err := p.Generate(context.Background(), "a quiet meadow")
	require.NoError(t, err)
	assert.Contains(t, result.URL, srv.URL+"/prompt/")
	assert.Contains(t, result.URL, "nologo=true")
}

func TestPollinations_AnyFailureIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewPollinations()
	p.baseURL = srv.URL

	_, err := p.Generate(context.Background(), "a quiet meadow")
	var attempt *AttemptError
	require.ErrorAs(t, err, &attempt)
	// 404 is not on the transient status list, but the last tier never
	// fails hard.
	assert.Equal(t, ClassTransient, attempt.Class)
}

func TestElevenLabs_BytesBecomeDataURI(t *testing.T) {
	audio := []byte("mp3-bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/sound-generation", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("xi-api-key"))
		w.Write(audio)
	}))
	defer srv.Close()

	p := NewElevenLabs("test-key")
	p.baseURL = srv.URL

	result, err := p.Generate(context.Background(), "gentle rain")
	require.NoError(t, err)
	assert.Equal(t, "data:audio/mpeg;base64,"+base64.StdEncoding.EncodeToString(audio), result.URL)
}

func TestReplicate_SubmitAndPoll(t *testing.T) {
	polls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			assert.Equal(t, "/v1/predictions", r.URL.Path)
			assert.Equal(t, "Token test-key", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id": "pred-1", "status": "processing",
			})
		default:
			assert.Equal(t, "/v1/predictions/pred-1", r.URL.Path)
			polls++
			if polls < 2 {
				json.NewEncoder(w).Encode(map[string]interface{}{
					"id": "pred-1", "status": "processing",
				})
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id": "pred-1", "status": "succeeded",
				"output": []string{"https://replicate.cdn/clip.mp4"},
			})
		}
	}))
	defer srv.Close()

	p := NewReplicate("test-key")
	p.baseURL = srv.URL
	p.pollInterval = time.Millisecond

	result, err := p.Generate(context.Background(), "a quiet meadow")
	require.NoError(t, err)
	assert.Equal(t, "https://replicate.cdn/clip.mp4", result.URL)
	assert.Equal(t, 2, polls)
}

func TestReplicate_FailedPredictionFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": "pred-1", "status": "failed",
		})
	}))
	defer srv.Close()

	p := NewReplicate("test-key")
	p.baseURL = srv.URL
	p.pollInterval = time.Millisecond

	_, err := p.Generate(context.Background(), "a quiet meadow")
	var attempt *AttemptError
	require.ErrorAs(t, err, &attempt)
	assert.Equal(t, ClassTransient, attempt.Class)
	assert.Contains(t, attempt.Reason, "video generation failed")
}

func TestReplicate_StringOutputShape(t *testing.T) {
	pred := replicatePrediction{Output: json.RawMessage(`"https://replicate.cdn/one.mp4"`)}
	assert.Equal(t, "https://replicate.cdn/one.mp4", pred.outputURL())

	pred = replicatePrediction{Output: json.RawMessage(`["https://replicate.cdn/a.mp4","https://replicate.cdn/b.mp4"]`)}
	assert.Equal(t, "https://replicate.cdn/a.mp4", pred.outputURL())

	pred = replicatePrediction{Output: json.RawMessage(`[]`)}
	assert.Equal(t, "", pred.outputURL())
}
