package api

import (
	"fmt"

	appErrors "civiceye/internal/errors"
)

// Operation names double as keys for fallback messages.
const (
	OpCreateIssue    = "create_issue"
	OpListIssues     = "list_issues"
	OpListResolved   = "list_resolved"
	OpListUnresolved = "list_unresolved"
	OpResolveIssue   = "resolve_issue"
	OpTestStorage    = "test_storage"
	OpHealth         = "health"
)

var fallbackMessages = map[string]string{
	OpCreateIssue:    "Failed to submit issue",
	OpListIssues:     "Failed to fetch issues",
	OpListResolved:   "Failed to fetch resolved issues",
	OpListUnresolved: "Failed to fetch unresolved issues",
	OpResolveIssue:   "Failed to resolve issue",
	OpTestStorage:    "Failed to test Cloudinary connection",
	OpHealth:         "Backend server is not responding",
}

// FallbackMessage returns the message used when the server supplies none.
func FallbackMessage(op string) string {
	if msg, ok := fallbackMessages[op]; ok {
		return msg
	}
	return "Request failed"
}

// Error is returned for every failed request: transport failures, timeouts,
// non-2xx statuses and undecodable bodies.
type Error struct {
	Op string
	// Status is the HTTP status, or 0 when no response was received.
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Code reports the structured code shared by all remote failures.
func (e *Error) Code() appErrors.Code {
	return appErrors.CodeNetworkOrServer
}

// Detail renders the message with operation and status for logs.
func (e *Error) Detail() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
}

func newError(op string, status int, serverMessage string, cause error) *Error {
	msg := serverMessage
	// Health always reports its fixed message.
	if msg == "" || op == OpHealth {
		msg = FallbackMessage(op)
	}
	return &Error{Op: op, Status: status, Message: msg, Err: cause}
}
