package assessment

import (
	"encoding/json"
	"fmt"
	"testing"
)

// testSpec is the canonical spec used across tests.
func testSpec() Spec {
	return Spec{
		Role:       "Data Analyst",
		Skills:     []string{"SQL", "Python"},
		Difficulty: Beginner,
	}
}

// generationJSON builds a well-formed generation payload matching the
// plan's counts, cycling through the given skills.
func generationJSON(t *testing.T, plan Plan, difficulty Difficulty, skills []string) string {
	t.Helper()

	item := func(i int, qt QuestionType) map[string]any {
		m := map[string]any{
			"question":       fmt.Sprintf("%s question %d?", qt, i),
			"correct_answer": fmt.Sprintf("answer %d", i),
			"question_type":  string(qt),
			"skill":          skills[i%len(skills)],
			"difficulty":     string(difficulty),
		}
		if qt == MCQ {
			m["options"] = []string{"Option A", "Option B", "Option C", "Option D"}
		}
		return m
	}

	mcqs := make([]map[string]any, plan.MCQs)
	for i := range mcqs {
		mcqs[i] = item(i, MCQ)
	}
	saqs := make([]map[string]any, plan.SAQs)
	for i := range saqs {
		saqs[i] = item(i, SAQ)
	}

	out, err := json.Marshal(map[string]any{
		"mcqs": mcqs,
		"saqs": saqs,
		"case": item(0, Case),
	})
	if err != nil {
		t.Fatalf("marshal generation payload: %v", err)
	}
	return string(out)
}

// evaluationJSON builds a minimal evaluation payload with the given score.
func evaluationJSON(t *testing.T, score int, shouldDemote bool) string {
	t.Helper()

	out, err := json.Marshal(map[string]any{
		"score":        score,
		"actual_level": "Beginner",
		"message":      "Keep practicing.",
		"skill_breakdown": map[string]any{
			"SQL": map[string]any{
				"score":           score / 2,
				"total_possible":  15,
				"percentage":      50,
				"level":           "Beginner",
				"weak_areas":      []string{"joins"},
				"recommendations": []string{"practice joins"},
			},
		},
		"recommendations": []string{"review fundamentals"},
		"should_demote":   shouldDemote,
	})
	if err != nil {
		t.Fatalf("marshal evaluation payload: %v", err)
	}
	return string(out)
}

// testBatch builds a submission with the standard 21 answers.
func testBatch(difficulty Difficulty) SubmissionBatch {
	batch := SubmissionBatch{
		Role:       "Data Analyst",
		Skills:     []string{"SQL", "Python"},
		Difficulty: difficulty,
	}
	for i := 0; i < StandardPlan.MCQs; i++ {
		batch.Responses = append(batch.Responses, AnswerRecord{
			Question:     fmt.Sprintf("MCQ question %d?", i),
			UserAnswer:   "Option A",
			QuestionType: MCQ,
			Skill:        "SQL",
			Difficulty:   difficulty,
		})
	}
	for i := 0; i < StandardPlan.SAQs; i++ {
		batch.Responses = append(batch.Responses, AnswerRecord{
			Question:     fmt.Sprintf("SAQ question %d?", i),
			UserAnswer:   "short answer",
			QuestionType: SAQ,
			Skill:        "Python",
			Difficulty:   difficulty,
		})
	}
	batch.Responses = append(batch.Responses, AnswerRecord{
		Question:     "Case question 0?",
		UserAnswer:   "case answer",
		QuestionType: Case,
		Skill:        "SQL",
		Difficulty:   difficulty,
	})
	return batch
}

// mustDecodeGeneration decodes or fails the test.
func mustDecodeGeneration(t *testing.T, raw string) *generationPayload {
	t.Helper()
	payload, err := decodeGeneration("generate", raw)
	if err != nil {
		t.Fatalf("decode generation: %v", err)
	}
	return payload
}
