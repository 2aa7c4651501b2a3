package assessment

import (
	"encoding/json"
	"fmt"
	"strings"
)

// extractPayload locates the JSON payload in the oracle's raw text.
// Extraction precedence:
//  1. a fenced block explicitly marked as JSON
//  2. any fenced block
//  3. the full text trimmed of surrounding whitespace
//
// The first candidate that parses wins. If none parses, the caller gets
// an OracleContractViolation carrying the full raw text.
func extractPayload(op, raw string) (json.RawMessage, error) {
	var lastErr error

	for _, candidate := range extractionCandidates(raw) {
		if candidate == "" {
			continue
		}
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}
		lastErr = json.Unmarshal([]byte(candidate), &struct{}{})
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no JSON payload found")
	}
	return nil, &OracleContractViolation{Op: op, RawText: raw, Err: lastErr}
}

// extractionCandidates returns the payload candidates in precedence order.
func extractionCandidates(raw string) []string {
	return []string{
		fencedBlock(raw, "```json"),
		fencedBlock(raw, "```"),
		strings.TrimSpace(raw),
	}
}

// fencedBlock returns the text between the first fence with the given
// opener and the next closing fence, or "" if no such block exists.
func fencedBlock(raw, opener string) string {
	start := strings.Index(raw, opener)
	if start < 0 {
		return ""
	}
	start += len(opener)

	end := strings.Index(raw[start:], "```")
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(raw[start : start+end])
}

// decodeGeneration parses and structurally validates a generation payload.
func decodeGeneration(op, raw string) (*generationPayload, error) {
	payload, err := extractPayload(op, raw)
	if err != nil {
		return nil, err
	}
	if err := validatePayload(op, generationSchema, payload); err != nil {
		return nil, err
	}

	var out generationPayload
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, &AggregationError{Op: op, Reason: "decode generation payload", Err: err}
	}
	return &out, nil
}

// decodeEvaluation parses an evaluation payload. The schema is lenient on
// missing keys (defaults are applied downstream) but strict on the types
// of keys that are present.
func decodeEvaluation(op, raw string) (*evaluationPayload, error) {
	payload, err := extractPayload(op, raw)
	if err != nil {
		return nil, err
	}
	if err := validatePayload(op, evaluationSchema, payload); err != nil {
		return nil, err
	}

	var out evaluationPayload
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, &AggregationError{Op: op, Reason: "decode evaluation payload", Err: err}
	}
	return &out, nil
}

// generationPayload is the raw oracle output for a generation request
// before assembly.
type generationPayload struct {
	MCQs []questionPayload `json:"mcqs"`
	SAQs []questionPayload `json:"saqs"`
	Case questionPayload   `json:"case"`
}

type questionPayload struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	QuestionType  string   `json:"question_type"`
	Skill         string   `json:"skill"`
	Difficulty    string   `json:"difficulty"`
}

// evaluationPayload is the raw oracle output for an evaluation request
// before aggregation. Pointer fields distinguish "absent" from zero so
// documented defaults can be applied.
type evaluationPayload struct {
	Score           *int                         `json:"score"`
	ActualLevel     string                       `json:"actual_level"`
	Message         string                       `json:"message"`
	SkillBreakdown  map[string]skillEntryPayload `json:"skill_breakdown"`
	Recommendations []string                     `json:"recommendations"`
	ShouldDemote    *bool                        `json:"should_demote"`
}

type skillEntryPayload struct {
	Score           int      `json:"score"`
	TotalPossible   int      `json:"total_possible"`
	Percentage      int      `json:"percentage"`
	Level           string   `json:"level"`
	WeakAreas       []string `json:"weak_areas"`
	Recommendations []string `json:"recommendations"`
}
