package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"health-dashboard-be/internal/entities"
)

// Client builds prompts, calls the active backend and decodes its output.
type Client struct {
	primary  Backend
	fallback Backend
	prompts  *Prompts
	schemas  outputSchemas
	logger   zerolog.Logger

	once   sync.Once
	active Backend
}

// NewClient creates a client. primary may be nil, in which case the
// fallback is used directly.
func NewClient(primary, fallback Backend, logger zerolog.Logger) (*Client, error) {
	if fallback == nil {
		return nil, errors.New("fallback backend is required")
	}
	prompts, err := DefaultPrompts()
	if err != nil {
		return nil, err
	}
	schemas, err := loadSchemas()
	if err != nil {
		return nil, err
	}

	return &Client{
		primary:  primary,
		fallback: fallback,
		prompts:  prompts,
		schemas:  schemas,
		logger:   logger.With().Str("component", "ai").Logger(),
	}, nil
}

// Init selects the backend. Only the first call probes; later calls are no-ops.
func (c *Client) Init(ctx context.Context) {
	c.once.Do(func() {
		if c.primary == nil {
			c.active = c.fallback
			c.logger.Info().Str("backend", c.fallback.Name()).Msg("AI client initialized")
			return
		}
		if err := c.primary.Ping(ctx); err != nil {
			c.logger.Warn().Err(err).Str("backend", c.primary.Name()).
				Str("fallback", c.fallback.Name()).Msg("AI backend unavailable, using fallback")
			c.active = c.fallback
			return
		}
		c.active = c.primary
		c.logger.Info().Str("backend", c.primary.Name()).Msg("AI client initialized")
	})
}

// BackendName reports the backend in use after Init.
func (c *Client) BackendName() string {
	c.Init(context.Background())
	return c.active.Name()
}

// GenerateHealthAdvice asks for structured advice on the given metrics.
func (c *Client) GenerateHealthAdvice(ctx context.Context, metrics []entities.HealthMetric) (*HealthAdvice, error) {
	metricsJSON, err := indentJSON(Summarize(metrics))
	if err != nil {
		return nil, err
	}

	var advice HealthAdvice
	if err := c.structured(ctx, TaskHealthAdvice, promptData{MetricsJSON: metricsJSON}, &advice); err != nil {
		return nil, fmt.Errorf("failed to generate health advice: %w", err)
	}
	if advice.Recommendations == nil {
		advice.Recommendations = []string{}
	}
	if advice.Alerts == nil {
		advice.Alerts = []Alert{}
	}
	return &advice, nil
}

// PredictRisk asks for a structured risk prediction over a metric history.
func (c *Client) PredictRisk(ctx context.Context, history []entities.HealthMetric) (*RiskPrediction, error) {
	metricsJSON, err := indentJSON(Summarize(history))
	if err != nil {
		return nil, err
	}

	var prediction RiskPrediction
	if err := c.structured(ctx, TaskRiskPrediction, promptData{MetricsJSON: metricsJSON}, &prediction); err != nil {
		return nil, fmt.Errorf("failed to predict health risks: %w", err)
	}
	if prediction.RiskFactors == nil {
		prediction.RiskFactors = []RiskFactor{}
	}
	if prediction.PreventiveActions == nil {
		prediction.PreventiveActions = []string{}
	}
	return &prediction, nil
}

// Chat answers a free-text question. uc may be nil for anonymous users.
func (c *Client) Chat(ctx context.Context, query string, uc *ChatContext) (string, error) {
	data := promptData{Query: query}
	if uc != nil {
		contextJSON, err := indentJSON(uc)
		if err != nil {
			return "", err
		}
		data.ContextJSON = contextJSON
	}

	resp, err := c.generate(ctx, TaskChat, data, false)
	if err != nil {
		return "", fmt.Errorf("failed to process chat request: %w", err)
	}

	// Plain-text answers arrive as a JSON string; anything else is passed through.
	var text string
	if err := json.Unmarshal(resp.Output, &text); err == nil {
		return text, nil
	}
	return string(resp.Output), nil
}

func (c *Client) structured(ctx context.Context, task Task, data promptData, dest any) error {
	resp, err := c.generate(ctx, task, data, true)
	if err != nil {
		return err
	}
	if err := c.schemas.validate(task, resp.Output); err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Output, dest); err != nil {
		return fmt.Errorf("failed to decode output: %w", err)
	}
	return nil
}

func (c *Client) generate(ctx context.Context, task Task, data promptData, structured bool) (*GenerateResponse, error) {
	c.Init(ctx)

	prompt, err := c.prompts.render(task, data)
	if err != nil {
		return nil, err
	}

	resp, err := c.active.Generate(ctx, GenerateRequest{Task: task, Prompt: prompt, Structured: structured})
	if err != nil {
		c.logger.Error().Err(err).Str("task", string(task)).Msg("AI generation failed")
		return nil, err
	}
	return resp, nil
}

func indentJSON(v any) (string, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode prompt data: %w", err)
	}
	return string(raw), nil
}
