package llm

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestProviderError_Classification(t *testing.T) {
	tests := []struct {
		status    int
		transient bool
	}{
		{429, true},
		{500, true},
		{502, true},
		{503, true},
		{400, false},
		{401, false},
		{403, false},
		{404, false},
		{422, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			e := &ProviderError{Provider: "fast", Status: tt.status, Err: errors.New("boom")}
			if got := e.Transient(); got != tt.transient {
				t.Errorf("Transient() with status %d = %v, want %v", tt.status, got, tt.transient)
			}
		})
	}
}

func TestProviderError_TransportFailureIsTransient(t *testing.T) {
	e := &ProviderError{Provider: "fast", Err: errors.New("connection refused")}
	if !e.Transient() {
		t.Error("failure without an HTTP status should be transient")
	}
}

func TestProviderError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	e := &ProviderError{Provider: "fast", Status: 500, Err: inner}

	if !errors.Is(e, inner) {
		t.Error("ProviderError should unwrap to its cause")
	}
}

func TestAsProviderError(t *testing.T) {
	pe := &ProviderError{Provider: "fast", Status: 429, Err: errors.New("rate limited")}
	wrapped := fmt.Errorf("attempt failed: %w", pe)

	got, ok := AsProviderError(wrapped)
	if !ok {
		t.Fatal("AsProviderError should find the error in the chain")
	}
	if got.Status != 429 {
		t.Errorf("Status = %d, want 429", got.Status)
	}

	if _, ok := AsProviderError(errors.New("plain")); ok {
		t.Error("AsProviderError should not match unrelated errors")
	}
}

func TestProviderError_Message(t *testing.T) {
	e := &ProviderError{Provider: "strong", Status: 503, Err: errors.New("overloaded")}
	msg := e.Error()
	for _, want := range []string{"strong", "503", "overloaded"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, want it to contain %q", msg, want)
		}
	}
}
