// Package response defines the API's response envelopes.
package response

import (
	"net/http"

	"pustaka/internal/domain/entity"
)

// Envelope statuses: "fail" marks a client-side problem (4xx), "error" a
// server-side one (5xx).
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// Envelope is the generic body for flows that only report an outcome.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Registered is the body of a successful registration.
type Registered struct {
	Status      string                   `json:"status"`
	Message     string                   `json:"message"`
	Principal   *entity.PrincipalSummary `json:"principal"`
	AccessToken string                   `json:"accessToken"`
}

// AccessToken is the body of a successful login or token refresh.
type AccessToken struct {
	AccessToken string `json:"accessToken"`
}

// Message is the body of operations that confirm with a bare message.
type Message struct {
	Message string `json:"message"`
}

// StatusFor picks the envelope status for an HTTP status code.
func StatusFor(code int) string {
	if code >= http.StatusInternalServerError {
		return StatusError
	}

	return StatusFail
}
