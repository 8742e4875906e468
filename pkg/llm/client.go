package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var ErrNoCompletion = errors.New("no completion in response")

type Message struct {
	Role    string
	Content string
}

// Invoker sends an ordered list of messages to a chat model and returns the
// trimmed content of the first completion.
type Invoker interface {
	Complete(ctx context.Context, model string, messages []Message) (string, error)
	Name() string
}

// InvocationError is returned for every failed model call: transport, auth,
// service-side errors and replies without a completion.
type InvocationError struct {
	Provider string
	Model    string
	Err      error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("%s API error (model %s): %v", e.Provider, e.Model, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

func firstCompletion(contents []string) (string, error) {
	if len(contents) == 0 {
		return "", ErrNoCompletion
	}
	return strings.TrimSpace(contents[0]), nil
}
