// internal/generation/elevenlabs.go
package generation

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"
)

const defaultElevenLabsBaseURL = "https://api.elevenlabs.io"

// ElevenLabs is the standard-tier sound fallback. The API answers with raw
// audio bytes, which are carried forward as a data URI.
type ElevenLabs struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewElevenLabs(apiKey string) *ElevenLabs {
	return &ElevenLabs{apiKey: apiKey, baseURL: defaultElevenLabsBaseURL, client: &http.Client{}}
}

func (p *ElevenLabs) Name() string { return "elevenlabs" }

func (p *ElevenLabs) Generate(ctx context.Context, prompt string) (*Result, error) {
	if p.apiKey == "" {
		return nil, Unconfigured("elevenlabs", "ELEVENLABS_API_KEY")
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	payload := map[string]interface{}{
		"text":             prompt,
		"duration_seconds": 15,
		"prompt_influence": 0.3,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, Permanent("elevenlabs", 0, "marshal request: "+err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/sound-generation", bytes.NewReader(body))
	if err != nil {
		return nil, Permanent("elevenlabs", 0, err.Error())
	}
	req.Header.Set("xi-api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	raw, err := send(p.client, "elevenlabs", req)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, Transient("elevenlabs", 0, "empty result: no audio generated")
	}

	dataURL := "data:audio/mpeg;base64," + base64.StdEncoding.EncodeToString(raw)
	return &Result{URL: dataURL, Provider: "elevenlabs"}, nil
}
