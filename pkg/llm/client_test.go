package llm

import (
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestFirstCompletion(t *testing.T) {
	tests := []struct {
		name     string
		contents []string
		want     string
		wantErr  error
	}{
		{
			name:     "trims surrounding whitespace",
			contents: []string{"  Positive overall.\n"},
			want:     "Positive overall.",
		},
		{
			name:     "uses only the first completion",
			contents: []string{"first", "second"},
			want:     "first",
		},
		{
			name:     "no completions",
			contents: nil,
			wantErr:  ErrNoCompletion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := firstCompletion(tt.contents)
			if tt.wantErr != nil {
				assert.Equal(t, true, errors.Is(err, tt.wantErr))
				return
			}
			assert.Equal(t, nil, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInvocationErrorUnwrap(t *testing.T) {
	err := error(&InvocationError{Provider: "openai", Model: "model-x", Err: ErrNoCompletion})

	assert.Equal(t, true, errors.Is(err, ErrNoCompletion))
	assert.Equal(t, "openai API error (model model-x): no completion in response", err.Error())
}
