// internal/generation/replicate.go
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const (
	defaultReplicateBaseURL = "https://api.replicate.com"

	// animatediff text-to-video model pinned by version hash
	replicateModelVersion = "db21e45d3f7023abc2a46ee38a23973f6dce16bb082a930b0c49861f96d1e5bf"

	replicateMaxPolls = 60
)

// Replicate is the standard-tier video fallback. Its API is asynchronous:
// submit a prediction, then poll until it settles.
type Replicate struct {
	apiKey       string
	baseURL      string
	client       *http.Client
	pollInterval time.Duration
}

func NewReplicate(apiKey string) *Replicate {
	return &Replicate{
		apiKey:       apiKey,
		baseURL:      defaultReplicateBaseURL,
		client:       &http.Client{},
		pollInterval: 2 * time.Second,
	}
}

func (p *Replicate) Name() string { return "replicate" }

type replicatePrediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
}

// outputURL handles both output shapes replicate models use: a bare URL
// string or a list of them.
func (pred *replicatePrediction) outputURL() string {
	var single string
	if err := json.Unmarshal(pred.Output, &single); err == nil {
		return single
	}
	var many []string
	if err := json.Unmarshal(pred.Output, &many); err == nil && len(many) > 0 {
		return many[0]
	}
	return ""
}

func (p *Replicate) Generate(ctx context.Context, prompt string) (*Result, error) {
	if p.apiKey == "" {
		return nil, Unconfigured("replicate", "REPLICATE_API_KEY")
	}

	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	payload := map[string]interface{}{
		"version": replicateModelVersion,
		"input": map[string]interface{}{
			"prompt":     prompt,
			"num_frames": 16,
			"fps":        8,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, Permanent("replicate", 0, "marshal request: "+err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/predictions", bytes.NewReader(body))
	if err != nil {
		return nil, Permanent("replicate", 0, err.Error())
	}
	req.Header.Set("Authorization", "Token "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	raw, err := send(p.client, "replicate", req)
	if err != nil {
		return nil, err
	}

	var pred replicatePrediction
	if err := json.Unmarshal(raw, &pred); err != nil {
		return nil, Transient("replicate", 0, "malformed response: "+err.Error())
	}

	for attempts := 0; attempts < replicateMaxPolls; attempts++ {
		if pred.Status == "succeeded" {
			if url := pred.outputURL(); url != "" {
				return &Result{URL: url, Provider: "replicate"}, nil
			}
			return nil, Transient("replicate", 0, "empty result: prediction has no output")
		}
		if pred.Status == "failed" {
			return nil, Transient("replicate", 0, "video generation failed")
		}

		select {
		case <-ctx.Done():
			return nil, Transient("replicate", 0, "timeout: request timed out")
		case <-time.After(p.pollInterval):
		}

		pollReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/v1/predictions/"+pred.ID, nil)
		if err != nil {
			return nil, Permanent("replicate", 0, err.Error())
		}
		pollReq.Header.Set("Authorization", "Token "+p.apiKey)

		raw, err := send(p.client, "replicate", pollReq)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &pred); err != nil {
			return nil, Transient("replicate", 0, "malformed response: "+err.Error())
		}
	}

	return nil, Transient("replicate", 0, "video generation failed: polling gave up")
}
