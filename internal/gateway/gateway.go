// Package gateway abstracts the remote language model behind a small
// vendor-agnostic interface. Any error or blank completion routes the
// responder onto the deterministic fallback path.
package gateway

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned when the model answered with no usable text.
var ErrEmptyCompletion = errors.New("gateway: empty completion")

// ErrDisabled is returned by the Disabled gateway.
var ErrDisabled = errors.New("gateway: model gateway disabled")

// Message is one chat message sent to the model.
type Message struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is a bounded completion request.
type ChatRequest struct {
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// Gateway is the model collaborator consumed by the response generator.
type Gateway interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// Disabled is a Gateway for deployments without a configured model; every
// call fails immediately so answers come from the deterministic fallback.
type Disabled struct{}

func (Disabled) Complete(context.Context, ChatRequest) (string, error) {
	return "", ErrDisabled
}
