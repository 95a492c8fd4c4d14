package llm

import (
	"errors"
	"fmt"
)

// ErrRemoteUnavailable is matched by every *RemoteError
var ErrRemoteUnavailable = errors.New("remote analysis unavailable")

// Reason classifies a remote failure
type Reason string

// Failure reasons
const (
	ReasonMissingCredentials Reason = "missing_credentials"
	ReasonHTTPStatus         Reason = "http_status"
	ReasonNetwork            Reason = "network"
	ReasonMalformedResponse  Reason = "malformed_response"
	ReasonEmptyResponse      Reason = "empty_response"
)

// RemoteError describes why remote enrichment produced no feedback
type RemoteError struct {
	Provider   Provider `json:"provider"`
	Reason     Reason   `json:"reason"`
	StatusCode int      `json:"status_code,omitempty"`
	Message    string   `json:"message"`
	Cause      error    `json:"-"`
}

func (e *RemoteError) Error() string {
	msg := fmt.Sprintf("%s %s", e.Provider, e.Reason)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *RemoteError) Unwrap() error {
	return e.Cause
}

// Is reports ErrRemoteUnavailable as a match for every RemoteError
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteUnavailable
}

func newRemoteError(provider Provider, reason Reason, message string, cause error) *RemoteError {
	return &RemoteError{Provider: provider, Reason: reason, Message: message, Cause: cause}
}

func statusError(provider Provider, status int, body []byte) *RemoteError {
	return &RemoteError{
		Provider:   provider,
		Reason:     ReasonHTTPStatus,
		StatusCode: status,
		Message:    truncateBody(body),
	}
}

// truncateBody keeps error bodies readable in logs
func truncateBody(body []byte) string {
	const limit = 200
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}

// asRemoteError converts any client error into a RemoteError. Errors that are
// not already classified are treated as transport failures.
func asRemoteError(provider Provider, err error) *RemoteError {
	var re *RemoteError
	if errors.As(err, &re) {
		return re
	}
	return newRemoteError(provider, ReasonNetwork, "request failed", err)
}
