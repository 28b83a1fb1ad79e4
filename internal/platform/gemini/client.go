package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/yungbote/careercompass-backend/internal/platform/httpx"
	"github.com/yungbote/careercompass-backend/internal/platform/llm"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
	"github.com/yungbote/careercompass-backend/internal/platform/promptstyle"
)

type client struct {
	log         *logger.Logger
	models      *genai.Models
	model       string
	embedModel  string
	maxRetries  int
	temperature *float32
}

func NewClient(log *logger.Logger) (llm.Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}
	model := strings.TrimSpace(os.Getenv("GEMINI_MODEL"))
	if model == "" {
		model = "gemini-2.5-flash"
	}
	embed := strings.TrimSpace(os.Getenv("GEMINI_EMBED_MODEL"))
	if embed == "" {
		embed = "text-embedding-004"
	}
	maxRetries := 3
	if v := strings.TrimSpace(os.Getenv("GEMINI_MAX_RETRIES")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			maxRetries = parsed
		}
	}

	gc, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &client{
		log:        log.With("service", "GeminiClient"),
		models:     gc.Models,
		model:      model,
		embedModel: embed,
		maxRetries: maxRetries,
	}, nil
}

func (c *client) WithModel(model string) llm.Client {
	clone := *c
	clone.model = strings.TrimSpace(model)
	return &clone
}

func (c *client) WithTemperature(temp float64) llm.Client {
	clone := *c
	t := float32(temp)
	clone.temperature = &t
	return &clone
}

func exponentialBackoff(attempt int) time.Duration {
	d := time.Duration(1<<attempt) * 500 * time.Millisecond
	if d > 8*time.Second {
		d = 8 * time.Second
	}
	return httpx.JitterSleep(d)
}

func (c *client) generate(ctx context.Context, system, user string, cfg *genai.GenerateContentConfig) (string, error) {
	cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	if c.temperature != nil {
		cfg.Temperature = c.temperature
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(user), cfg)
		if err == nil {
			text := ""
			if resp != nil {
				text = resp.Text()
			}
			if strings.TrimSpace(text) != "" {
				return text, nil
			}
			lastErr = llm.ErrEmptyOutput
		} else {
			if errors.Is(err, context.Canceled) {
				return "", err
			}
			lastErr = err
		}
		if attempt == c.maxRetries {
			break
		}
		delay := exponentialBackoff(attempt)
		c.log.Warn("Gemini request retrying",
			"model", c.model,
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", delay.String(),
			"error", lastErr.Error(),
		)
		if err := httpx.Sleep(ctx, delay); err != nil {
			return "", err
		}
	}
	return "", lastErr
}

func (c *client) GenerateText(ctx context.Context, system string, user string) (string, error) {
	return c.generate(ctx, promptstyle.ApplySystem(system, "text"), user, &genai.GenerateContentConfig{})
}

// GenerateJSON asks for application/json output and spells the schema out in the
// system instruction; the response is checked only for being a JSON object.
func (c *client) GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema map[string]any) (map[string]any, error) {
	if schemaName == "" {
		return nil, errors.New("schemaName required")
	}
	if schema == nil {
		return nil, errors.New("schema required")
	}
	rawSchema, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("encode schema %s: %w", schemaName, err)
	}
	sys := promptstyle.ApplySystem(system, "json") +
		"\n\nRespond with a single JSON object named " + schemaName + " matching this JSON schema:\n" + string(rawSchema)

	text, err := c.generate(ctx, sys, user, &genai.GenerateContentConfig{ResponseMIMEType: "application/json"})
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrMalformedOutput, err)
	}
	return obj, nil
}

func (c *client) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	if len(inputs) == 0 {
		return [][]float32{}, nil
	}
	contents := make([]*genai.Content, 0, len(inputs))
	for _, in := range inputs {
		s := strings.TrimSpace(in)
		if s == "" {
			s = " "
		}
		contents = append(contents, genai.NewContentFromText(s, genai.RoleUser))
	}
	resp, err := c.models.EmbedContent(ctx, c.embedModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	if resp == nil || len(resp.Embeddings) != len(inputs) {
		got := 0
		if resp != nil {
			got = len(resp.Embeddings)
		}
		return nil, fmt.Errorf("gemini embeddings: requested=%d returned=%d model=%s", len(inputs), got, c.embedModel)
	}
	out := make([][]float32, len(inputs))
	for i, e := range resp.Embeddings {
		if e == nil || len(e.Values) == 0 {
			return nil, fmt.Errorf("gemini embeddings missing index %d", i)
		}
		out[i] = e.Values
	}
	return out, nil
}
