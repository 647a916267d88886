// internal/generation/http.go
package generation

import (
	"context"
	"errors"
	"io"
	"net/http"
)

// send executes a provider request and classifies the failure modes shared
// by every adapter: timeouts and network errors are transient, non-2xx
// responses go through the status/phrase classifier.
func send(client *http.Client, provider string, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, Transient(provider, 0, "timeout: request timed out")
		}
		return nil, Transient(provider, 0, err.Error())
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, Transient(provider, resp.StatusCode, "read response: "+readErr.Error())
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classifyHTTP(provider, resp.StatusCode, string(body))
	}
	return body, nil
}
