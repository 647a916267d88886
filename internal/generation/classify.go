// internal/generation/classify.go
package generation

import "strings"

var transientStatuses = map[int]bool{
	402: true,
	403: true,
	429: true,
	500: true,
	502: true,
	503: true,
	504: true,
}

var transientPhrases = []string{
	"quota exceeded", "rate limit", "model unavailable", "insufficient",
	"payment required", "forbidden", "too many requests", "timeout",
	"service unavailable", "internal server error", "bad gateway",
}

// TransientStatus reports whether an HTTP status is a likely-temporary
// provider failure.
func TransientStatus(status int) bool {
	return transientStatuses[status]
}

// TransientMessage reports whether an error body reads like a
// likely-temporary failure. Case-insensitive substring containment, blunt on
// purpose, same as the status check it complements.
func TransientMessage(msg string) bool {
	lower := strings.ToLower(msg)
	for _, phrase := range transientPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// classifyHTTP maps a non-2xx provider response into a typed attempt error.
func classifyHTTP(provider string, status int, body string) *AttemptError {
	if TransientStatus(status) || TransientMessage(body) {
		return Transient(provider, status, body)
	}
	return Permanent(provider, status, body)
}
