// internal/models/response.go
package models

type ErrorResponse struct {
	Error string `json:"error"`
	// Resting marks a soft outage: all generation providers declined and
	// the client should show a calm retry message, not a hard failure.
	Resting            bool   `json:"resting,omitempty"`
	FallbackAudio      string `json:"fallbackAudio,omitempty"`
	SuggestAlternative string `json:"suggestAlternative,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type BalanceResponse struct {
	UserID  string `json:"userId"`
	Balance int    `json:"balance"`
}

type ClaimResponse struct {
	Message string `json:"message"`
	Amount  int    `json:"amount"`
	Balance int    `json:"balance"`
}
