package errors

import (
	"errors"
	"fmt"
	"testing"
)

type codedErr struct{}

func (codedErr) Error() string { return "coded" }
func (codedErr) Code() Code    { return CodeNetworkOrServer }

func TestCodeOfWalksWrappedChain(t *testing.T) {
	base := New(CodeImageTooLarge, "too big", nil)
	wrapped := fmt.Errorf("validate: %w", base)

	if got := CodeOf(wrapped); got != CodeImageTooLarge {
		t.Fatalf("CodeOf = %q, want %q", got, CodeImageTooLarge)
	}
	if !IsCode(wrapped, CodeImageTooLarge) {
		t.Fatalf("expected IsCode to match wrapped error")
	}
	if IsCode(errors.New("plain"), CodeImageTooLarge) {
		t.Fatalf("plain errors must not match a code")
	}
}

func TestCodeOfHonoursCodeMethod(t *testing.T) {
	err := fmt.Errorf("list: %w", codedErr{})
	if got := CodeOf(err); got != CodeNetworkOrServer {
		t.Fatalf("CodeOf = %q, want %q", got, CodeNetworkOrServer)
	}
}

func TestErrorStringPrecedence(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	tests := []struct {
		name string
		err  Error
		want string
	}{
		{name: "message wins", err: New(CodeNetworkOrServer, "Failed to fetch issues", cause), want: "Failed to fetch issues"},
		{name: "cause when no message", err: New(CodeNetworkOrServer, "", cause), want: "dial tcp: refused"},
		{name: "code as last resort", err: New(CodeNoResult, "", nil), want: "no_result"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
	if !errors.Is(New(CodeUnknown, "x", cause), cause) {
		t.Fatalf("expected Unwrap to expose the cause")
	}
}

func TestMessageFallback(t *testing.T) {
	if got := Message(nil, "fallback"); got != "fallback" {
		t.Fatalf("Message(nil) = %q", got)
	}
	if got := Message(fmt.Errorf("ctx: %w", New(CodeValidationFailed, "Please fill in all required fields", nil)), "x"); got != "Please fill in all required fields" {
		t.Fatalf("Message(structured) = %q", got)
	}
}
