package ai

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/kaptinlin/jsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// outputSchemas validates structured model output per task.
type outputSchemas map[Task]*jsonschema.Schema

func loadSchemas() (outputSchemas, error) {
	compiler := jsonschema.NewCompiler()
	out := outputSchemas{}

	for _, task := range []Task{TaskHealthAdvice, TaskRiskPrediction} {
		data, err := schemaFS.ReadFile("schemas/" + string(task) + ".json")
		if err != nil {
			return nil, fmt.Errorf("failed to read %s schema: %w", task, err)
		}
		schema, err := compiler.Compile(data)
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s schema: %w", task, err)
		}
		out[task] = schema
	}
	return out, nil
}

// validate checks raw output against the task schema, if there is one.
func (s outputSchemas) validate(task Task, raw json.RawMessage) error {
	schema, ok := s[task]
	if !ok {
		return nil
	}

	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return fmt.Errorf("output is not valid JSON: %w", err)
	}

	result := schema.Validate(instance)
	if result.IsValid() {
		return nil
	}

	var msgs []string
	for field, evalErr := range result.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, evalErr.Error()))
	}
	sort.Strings(msgs)
	return fmt.Errorf("output validation failed: %s", strings.Join(msgs, "; "))
}
