package assessment

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// payloadSchema names a compiled JSON schema for one oracle operation.
type payloadSchema struct {
	Name       string
	Definition map[string]any
}

// questionProperties is the shared item shape for mcqs, saqs, and case.
// question, correct_answer, question_type, and skill are structurally
// required; the rest is advisory.
func questionProperties(required ...string) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question":       map[string]any{"type": "string"},
			"options":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"correct_answer": map[string]any{"type": "string"},
			"question_type":  map[string]any{"type": "string"},
			"skill":          map[string]any{"type": "string"},
			"difficulty":     map[string]any{"type": "string"},
		},
		"required": toAnySlice(required),
	}
}

// generationSchema is the canonical shape of a generation payload. The
// top-level sections and per-item fields are required: a payload missing
// any of them cannot be assembled into an assessment.
var generationSchema = &payloadSchema{
	Name: "assessment-generation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"mcqs": map[string]any{
				"type":  "array",
				"items": questionProperties("question", "options", "correct_answer", "question_type", "skill"),
			},
			"saqs": map[string]any{
				"type":  "array",
				"items": questionProperties("question", "correct_answer", "question_type", "skill"),
			},
			"case": questionProperties("question", "correct_answer", "question_type", "skill"),
		},
		"required": []any{"mcqs", "saqs", "case"},
	},
}

// evaluationSchema is the canonical shape of an evaluation payload. No
// key is required (missing fields get documented defaults) but a key
// that is present must have the right type.
var evaluationSchema = &payloadSchema{
	Name: "assessment-evaluation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score":        map[string]any{"type": "integer"},
			"actual_level": map[string]any{"type": "string"},
			"message":      map[string]any{"type": "string"},
			"skill_breakdown": map[string]any{
				"type": "object",
				"additionalProperties": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"score":           map[string]any{"type": "integer"},
						"total_possible":  map[string]any{"type": "integer"},
						"percentage":      map[string]any{"type": "integer"},
						"level":           map[string]any{"type": "string"},
						"weak_areas":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"recommendations": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					},
				},
			},
			"recommendations":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"should_demote":        map[string]any{"type": "boolean"},
			"suggested_assessment": map[string]any{"type": []any{"string", "null"}},
		},
	},
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validatePayload validates parsed JSON against the operation's schema.
// Failures are AggregationErrors: the text was JSON, but not JSON this
// service can aggregate.
func validatePayload(op string, schema *payloadSchema, payload json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return &AggregationError{Op: op, Reason: "reparse payload", Err: err}
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return &AggregationError{Op: op, Reason: fmt.Sprintf("compile schema %q", schema.Name), Err: err}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &AggregationError{Op: op, Reason: "payload does not match contract", Err: err}
	}
	return nil
}

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(schema *payloadSchema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value (any), not raw bytes.
	// Marshal then unmarshal to get a clean any representation.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
