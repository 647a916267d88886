// internal/generation/fal.go
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const defaultFalBaseURL = "https://queue.fal.run"

// falProvider holds what the three fal-hosted primaries share: key, base
// URL and the authenticated POST.
type falProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func (f *falProvider) post(ctx context.Context, path string, payload interface{}, timeout time.Duration) ([]byte, error) {
	if f.apiKey == "" {
		return nil, Unconfigured("fal", "FAL_API_KEY")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, Permanent("fal", 0, "marshal request: "+err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, Permanent("fal", 0, err.Error())
	}
	req.Header.Set("Authorization", "Key "+f.apiKey)
	req.Header.Set("Content-Type", "application/json")

	return send(f.client, "fal", req)
}

// FalImage generates images with fal.ai flux/schnell.
type FalImage struct {
	falProvider
}

func NewFalImage(apiKey string) *FalImage {
	return &FalImage{falProvider{apiKey: apiKey, baseURL: defaultFalBaseURL, client: &http.Client{}}}
}

func (p *FalImage) Name() string { return "fal" }

func (p *FalImage) Generate(ctx context.Context, prompt string) (*Result, error) {
	raw, err := p.post(ctx, "/fal-ai/flux/schnell", map[string]interface{}{
		"prompt":                prompt,
		"image_size":            "square_hd",
		"num_images":            1,
		"enable_safety_checker": true,
	}, 60*time.Second)
	if err != nil {
		return nil, err
	}

	var out struct {
		Images []struct {
			URL string `json:"url"`
		} `json:"images"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, Transient("fal", 0, "malformed response: "+err.Error())
	}
	if len(out.Images) == 0 || out.Images[0].URL == "" {
		return nil, Transient("fal", 0, "empty result: no image generated")
	}

	return &Result{URL: out.Images[0].URL, Provider: "fal"}, nil
}

// FalSound generates 15-second audio clips with fal.ai stable-audio.
type FalSound struct {
	falProvider
}

func NewFalSound(apiKey string) *FalSound {
	return &FalSound{falProvider{apiKey: apiKey, baseURL: defaultFalBaseURL, client: &http.Client{}}}
}

func (p *FalSound) Name() string { return "fal" }

func (p *FalSound) Generate(ctx context.Context, prompt string) (*Result, error) {
	raw, err := p.post(ctx, "/fal-ai/stable-audio", map[string]interface{}{
		"prompt":        prompt,
		"seconds_total": 15,
		"steps":         100,
	}, 90*time.Second)
	if err != nil {
		return nil, err
	}

	var out struct {
		AudioFile struct {
			URL string `json:"url"`
		} `json:"audio_file"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, Transient("fal", 0, "malformed response: "+err.Error())
	}
	if out.AudioFile.URL == "" {
		return nil, Transient("fal", 0, "empty result: no audio generated")
	}

	return &Result{URL: out.AudioFile.URL, Provider: "fal"}, nil
}

// FalVideo generates short looping clips with fal.ai fast-animatediff.
type FalVideo struct {
	falProvider
}

func NewFalVideo(apiKey string) *FalVideo {
	return &FalVideo{falProvider{apiKey: apiKey, baseURL: defaultFalBaseURL, client: &http.Client{}}}
}

func (p *FalVideo) Name() string { return "fal" }

func (p *FalVideo) Generate(ctx context.Context, prompt string) (*Result, error) {
	raw, err := p.post(ctx, "/fal-ai/fast-animatediff/text-to-video", map[string]interface{}{
		"prompt":              prompt,
		"num_frames":          16,
		"num_inference_steps": 4,
		"guidance_scale":      1.0,
		"fps":                 8,
		"video_size":          "square",
	}, 120*time.Second)
	if err != nil {
		return nil, err
	}

	var out struct {
		Video struct {
			URL string `json:"url"`
		} `json:"video"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, Transient("fal", 0, "malformed response: "+err.Error())
	}
	if out.Video.URL == "" {
		return nil, Transient("fal", 0, "empty result: no video generated")
	}

	return &Result{URL: out.Video.URL, Provider: "fal"}, nil
}
