// Package llm defines the provider-neutral model client used by the planner,
// the course catalog and the chat assistant.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

// ErrMalformedOutput marks a structured-output response that could not be
// decoded as JSON. Callers may treat it as a soft failure.
var ErrMalformedOutput = errors.New("malformed structured output")

// ErrEmptyOutput marks a response that carried no text at all.
var ErrEmptyOutput = errors.New("empty model output")

type Client interface {
	// Plain text (no schema)
	GenerateText(ctx context.Context, system string, user string) (string, error)

	// Structured outputs; schema is a JSON schema object.
	GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema map[string]any) (map[string]any, error)

	Embed(ctx context.Context, inputs []string) ([][]float32, error)
}

// Tunable is implemented by clients that can be cloned with per-use overrides.
type Tunable interface {
	WithModel(model string) Client
	WithTemperature(temp float64) Client
}

// WithModel returns base using model for generation, or base unchanged when it
// cannot be tuned.
func WithModel(base Client, model string) Client {
	model = strings.TrimSpace(model)
	if t, ok := base.(Tunable); ok && model != "" {
		return t.WithModel(model)
	}
	return base
}

// WithTemperature returns base sampling at temp, or base unchanged when it
// cannot be tuned.
func WithTemperature(base Client, temp float64) Client {
	if t, ok := base.(Tunable); ok && temp >= 0 {
		return t.WithTemperature(temp)
	}
	return base
}

// Factory builds a client for a named provider.
type Factory func(log *logger.Logger) (Client, error)

// New picks a provider by name. Unknown names are an error.
func New(log *logger.Logger, provider string, factories map[string]Factory) (Client, error) {
	name := strings.ToLower(strings.TrimSpace(provider))
	if name == "" {
		name = "openai"
	}
	f, ok := factories[name]
	if !ok || f == nil {
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", provider)
	}
	return f(log)
}
