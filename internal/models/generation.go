// internal/models/generation.go
package models

import "errors"

type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

func (r *GenerateRequest) Validate() error {
	if r.Prompt == "" {
		return errors.New("prompt is required")
	}
	return nil
}

type GenerateResponse struct {
	URL      string `json:"url"`
	Prompt   string `json:"prompt"`
	Type     string `json:"type"`
	Provider string `json:"provider"`
	Quality  string `json:"quality"`
	Duration int    `json:"duration,omitempty"`
}

// CostsResponse is the authoritative CTY price list. Clients must read it
// from the server instead of keeping their own copy.
type CostsResponse struct {
	Image  int `json:"image"`
	Sound  int `json:"sound"`
	Living int `json:"living"`
}
