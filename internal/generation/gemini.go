// internal/generation/gemini.go
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// Gemini is the standard-tier image fallback. It returns its image inline,
// so the result is a data URI rather than a remote URL.
type Gemini struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewGemini(apiKey string) *Gemini {
	return &Gemini{apiKey: apiKey, baseURL: defaultGeminiBaseURL, client: &http.Client{}}
}

func (p *Gemini) Name() string { return "gemini" }

func (p *Gemini) Generate(ctx context.Context, prompt string) (*Result, error) {
	if p.apiKey == "" {
		return nil, Unconfigured("gemini", "GEMINI_API_KEY")
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": fmt.Sprintf("Generate an artistic, beautiful image of: %s. Make it serene, calming, and visually appealing.", prompt)},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseModalities": []string{"image", "text"},
			"responseMimeType":   "text/plain",
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, Permanent("gemini", 0, "marshal request: "+err.Error())
	}

	url := fmt.Sprintf("%s/v1beta/models/gemini-2.0-flash-exp:generateContent?key=%s", p.baseURL, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, Permanent("gemini", 0, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	raw, err := send(p.client, "gemini", req)
	if err != nil {
		return nil, err
	}

	var out struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					InlineData struct {
						MimeType string `json:"mimeType"`
						Data     string `json:"data"`
					} `json:"inlineData"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, Transient("gemini", 0, "malformed response: "+err.Error())
	}

	for _, candidate := range out.Candidates {
		for _, part := range candidate.Content.Parts {
			if strings.HasPrefix(part.InlineData.MimeType, "image/") && part.InlineData.Data != "" {
				dataURL := fmt.Sprintf("data:%s;base64,%s", part.InlineData.MimeType, part.InlineData.Data)
				return &Result{URL: dataURL, Provider: "gemini"}, nil
			}
		}
	}

	return nil, Transient("gemini", 0, "empty result: no image in response")
}
