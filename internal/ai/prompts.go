package ai

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultPrompts []byte

type promptFile struct {
	HealthAdvice   string `yaml:"health_advice"`
	Chat           string `yaml:"chat"`
	RiskPrediction string `yaml:"risk_prediction"`
}

// Prompts renders the prompt template for each task.
type Prompts struct {
	templates map[Task]*template.Template
}

// promptData is the value every template is executed with.
type promptData struct {
	Query       string
	MetricsJSON string
	ContextJSON string
}

// LoadPrompts parses a prompt file. Unknown keys and missing tasks are errors.
func LoadPrompts(data []byte) (*Prompts, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f promptFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse prompts: %w", err)
	}

	sources := map[Task]string{
		TaskHealthAdvice:   f.HealthAdvice,
		TaskChat:           f.Chat,
		TaskRiskPrediction: f.RiskPrediction,
	}

	p := &Prompts{templates: make(map[Task]*template.Template, len(sources))}
	for task, src := range sources {
		if src == "" {
			return nil, fmt.Errorf("prompt for %s is missing", task)
		}
		tmpl, err := template.New(string(task)).Option("missingkey=error").Parse(src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s prompt: %w", task, err)
		}
		p.templates[task] = tmpl
	}
	return p, nil
}

// DefaultPrompts returns the prompts compiled into the binary.
func DefaultPrompts() (*Prompts, error) {
	return LoadPrompts(defaultPrompts)
}

func (p *Prompts) render(task Task, data promptData) (string, error) {
	tmpl, ok := p.templates[task]
	if !ok {
		return "", errors.New("no prompt for task " + string(task))
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", task, err)
	}
	return buf.String(), nil
}
