package providers

import "context"

type Message struct {
	Role    string
	Content string
}

// Provider is the model gateway: one outbound call per Chat invocation,
// raw text back. Retry policy, if any, belongs to the caller.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
	Name() string
}
