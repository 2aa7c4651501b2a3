package llm

import "context"

// Provider is the gateway to the assessment oracle. Consumers send an
// instruction text and receive the oracle's raw text back. The oracle is
// untrusted: callers must run the response through the contract layer
// before using it.
type Provider interface {
	// Generate sends one instruction to the oracle and blocks until a raw
	// text response or a transport failure arrives. There is no streaming;
	// the round trip is the sole suspension point in a request.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes one oracle round trip.
type Request struct {
	// System sets the oracle's role and constraints.
	System string

	// Prompt is the instruction text built by the prompt builder. The
	// oracle sees exactly this text; nothing is appended or truncated.
	Prompt string

	// MaxTokens is the token budget for the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Response holds the oracle's output.
type Response struct {
	// Text is the raw response text. May be fenced, prefixed with prose,
	// or not JSON at all; the contract layer sorts that out.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
