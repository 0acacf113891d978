package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestClassify_APIError(t *testing.T) {
	err := classify(&openai.APIError{HTTPStatusCode: 429, Message: "rate limit exceeded"})
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %T", err)
	}
	if statusErr.Code != 429 {
		t.Errorf("Code=%d", statusErr.Code)
	}
	if !IsServiceError(err) {
		t.Error("StatusError should be a service error")
	}
}

func TestClassify_TransportError(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := classify(cause)
	var connErr *ConnectivityError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected ConnectivityError, got %T", err)
	}
	if !errors.Is(err, cause) {
		t.Error("ConnectivityError should unwrap to the cause")
	}
	if !IsServiceError(err) {
		t.Error("ConnectivityError should be a service error")
	}
}

func TestIsServiceError_Plain(t *testing.T) {
	if IsServiceError(errors.New("some other failure")) {
		t.Error("plain error should not be a service error")
	}
	if IsServiceError(nil) {
		t.Error("nil should not be a service error")
	}
}

func TestMockClient(t *testing.T) {
	m := &MockClient{Responses: []string{"one", "two"}}
	ctx := context.Background()

	got, err := m.Complete(ctx, "p1")
	if err != nil || got != "one" {
		t.Errorf("got %q, %v", got, err)
	}
	got, _ = m.Complete(ctx, "p2")
	if got != "two" {
		t.Errorf("got %q", got)
	}
	// Last response repeats
	got, _ = m.Complete(ctx, "p3")
	if got != "two" {
		t.Errorf("got %q", got)
	}
	if m.Calls() != 3 || m.Prompts[0] != "p1" {
		t.Errorf("calls=%d prompts=%v", m.Calls(), m.Prompts)
	}
}

func TestMockClient_ErrAt(t *testing.T) {
	m := &MockClient{Responses: []string{"ok"}, Err: &StatusError{Code: 500, Message: "boom"}, ErrAt: 1}
	ctx := context.Background()
	if _, err := m.Complete(ctx, "first"); err != nil {
		t.Fatalf("first call should succeed: %v", err)
	}
	if _, err := m.Complete(ctx, "second"); err == nil {
		t.Fatal("second call should fail")
	}
}
