// internal/generation/pollinations.go
package generation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"time"
)

const defaultPollinationsBaseURL = "https://image.pollinations.ai"

// Pollinations is the free, keyless image fallback of last resort. Any
// failure here is transient by definition: there is nothing below it, so a
// hard error would just replace the calm "resting" message with an alarming
// one.
type Pollinations struct {
	baseURL string
	client  *http.Client
}

func NewPollinations() *Pollinations {
	return &Pollinations{baseURL: defaultPollinationsBaseURL, client: &http.Client{}}
}

func (p *Pollinations) Name() string { return "pollinations" }

func (p *Pollinations) Generate(ctx context.Context, prompt string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, 45*time.Second)
	defer cancel()

	seed := rand.Intn(1000000)
	imageURL := fmt.Sprintf("%s/prompt/%s?width=512&height=512&seed=%d&nologo=true",
		p.baseURL, url.PathEscape(prompt), seed)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, Transient("pollinations", 0, err.Error())
	}

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, Transient("pollinations", 0, "timeout: request timed out")
		}
		return nil, Transient("pollinations", 0, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, Transient("pollinations", resp.StatusCode, "pollinations error")
	}

	// The generated image lives at the prompt URL itself; persistence
	// re-fetches it.
	return &Result{URL: imageURL, Provider: "pollinations"}, nil
}
