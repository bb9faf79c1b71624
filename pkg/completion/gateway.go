package completion

import (
	"context"
	"fmt"
)

// Message roles accepted by completion gateways
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is a single role-tagged entry in a completion request
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request contains the parameters for one completion call
type Request struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Response contains the generated text from a completion call
type Response struct {
	Content string
	Usage   *Usage
}

// Gateway is the boundary to an external text-generation service
type Gateway interface {
	// Complete makes a completion call
	Complete(ctx context.Context, request Request) (*Response, error)

	// Provider returns the provider name
	Provider() string
}

// Factory creates completion gateways
type Factory struct{}

// NewGateway creates a new gateway for the given provider
func (f *Factory) NewGateway(provider, apiKey string) (Gateway, error) {
	switch provider {
	case "openai":
		return NewOpenAIGateway(apiKey), nil
	case "anthropic":
		return NewAnthropicGateway(apiKey), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
