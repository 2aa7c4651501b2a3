package assessment

import (
	"errors"
	"sort"
	"strings"
	"testing"
)

func TestAssemble_StandardCounts(t *testing.T) {
	spec := testSpec()
	payload := mustDecodeGeneration(t, generationJSON(t, StandardPlan, spec.Difficulty, spec.Skills))

	set, err := assemble("generate", payload, spec, StandardPlan)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if set.TotalQuestions != 21 {
		t.Errorf("total_questions = %d, want 21", set.TotalQuestions)
	}
	if len(set.MCQs) != 15 || len(set.SAQs) != 5 {
		t.Errorf("got %d mcqs and %d saqs, want 15 and 5", len(set.MCQs), len(set.SAQs))
	}
	if set.ID == "" {
		t.Error("set has no ID")
	}
	if set.Case.Points != 5 {
		t.Errorf("case points = %d, want 5", set.Case.Points)
	}
	if set.Difficulty != spec.Difficulty {
		t.Errorf("difficulty = %s, want %s", set.Difficulty, spec.Difficulty)
	}
}

func TestAssemble_DemotionCounts(t *testing.T) {
	spec := testSpec()
	payload := mustDecodeGeneration(t, generationJSON(t, DemotionPlan, spec.Difficulty, spec.Skills))

	set, err := assemble("demote", payload, spec, DemotionPlan)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if set.TotalQuestions != 14 {
		t.Errorf("total_questions = %d, want 14", set.TotalQuestions)
	}
	if set.Case.Points != 1 {
		t.Errorf("simplified case points = %d, want 1", set.Case.Points)
	}
}

func TestAssemble_SkillsCoveredSortedAndDeduped(t *testing.T) {
	spec := Spec{Role: "Data Analyst", Skills: []string{"Python", "SQL"}, Difficulty: Beginner}
	payload := mustDecodeGeneration(t, generationJSON(t, StandardPlan, spec.Difficulty, spec.Skills))

	set, err := assemble("generate", payload, spec, StandardPlan)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if !sort.StringsAreSorted(set.SkillsCovered) {
		t.Errorf("skills_covered %v is not sorted", set.SkillsCovered)
	}
	seen := make(map[string]bool)
	for _, s := range set.SkillsCovered {
		if seen[s] {
			t.Errorf("skills_covered has duplicate %q", s)
		}
		seen[s] = true
		if s != "SQL" && s != "Python" {
			t.Errorf("skills_covered contains %q, not in the requested set", s)
		}
	}
}

func TestAssemble_CountMismatch(t *testing.T) {
	spec := testSpec()
	// 10/3/1 payload against the standard plan.
	payload := mustDecodeGeneration(t, generationJSON(t, DemotionPlan, spec.Difficulty, spec.Skills))

	_, err := assemble("generate", payload, spec, StandardPlan)

	var ae *AggregationError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AggregationError, got %T: %v", err, err)
	}
	if !strings.Contains(ae.Reason, "15") {
		t.Errorf("reason %q does not name the expected count", ae.Reason)
	}
}

func TestAssemble_MCQOptionCount(t *testing.T) {
	spec := testSpec()
	payload := mustDecodeGeneration(t, generationJSON(t, StandardPlan, spec.Difficulty, spec.Skills))
	payload.MCQs[3].Options = []string{"only", "three", "options"}

	_, err := assemble("generate", payload, spec, StandardPlan)

	var ae *AggregationError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AggregationError, got %T: %v", err, err)
	}
	if !strings.Contains(ae.Reason, "options") {
		t.Errorf("reason %q does not mention options", ae.Reason)
	}
}

func TestAssemble_MissingFields(t *testing.T) {
	spec := testSpec()

	mutations := []struct {
		name   string
		mutate func(p *generationPayload)
	}{
		{"empty question", func(p *generationPayload) { p.SAQs[0].Question = "" }},
		{"empty correct answer", func(p *generationPayload) { p.MCQs[0].CorrectAnswer = "" }},
		{"empty skill", func(p *generationPayload) { p.Case.Skill = "" }},
	}

	for _, tc := range mutations {
		t.Run(tc.name, func(t *testing.T) {
			payload := mustDecodeGeneration(t, generationJSON(t, StandardPlan, spec.Difficulty, spec.Skills))
			tc.mutate(payload)

			_, err := assemble("generate", payload, spec, StandardPlan)

			var ae *AggregationError
			if !errors.As(err, &ae) {
				t.Fatalf("expected AggregationError, got %T: %v", err, err)
			}
		})
	}
}

func TestAssemble_UnknownSkillRejected(t *testing.T) {
	spec := testSpec()
	payload := mustDecodeGeneration(t, generationJSON(t, StandardPlan, spec.Difficulty, spec.Skills))
	payload.MCQs[0].Skill = "Excel"

	_, err := assemble("generate", payload, spec, StandardPlan)

	var ae *AggregationError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AggregationError, got %T: %v", err, err)
	}
	if !strings.Contains(ae.Reason, "Excel") {
		t.Errorf("reason %q does not name the offending skill", ae.Reason)
	}
}

func TestAssemble_SkillMatchIsCaseInsensitive(t *testing.T) {
	spec := testSpec()
	payload := mustDecodeGeneration(t, generationJSON(t, StandardPlan, spec.Difficulty, spec.Skills))
	payload.MCQs[0].Skill = "sql"

	set, err := assemble("generate", payload, spec, StandardPlan)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if set.MCQs[0].Skill != "SQL" {
		t.Errorf("skill normalized to %q, want the requested spelling SQL", set.MCQs[0].Skill)
	}
}

func TestAssemble_DifficultyForcedToSpec(t *testing.T) {
	spec := testSpec()
	// Oracle claims Advanced; the spec says Beginner.
	payload := mustDecodeGeneration(t, generationJSON(t, StandardPlan, Advanced, spec.Skills))

	set, err := assemble("generate", payload, spec, StandardPlan)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	for _, q := range set.MCQs {
		if q.Difficulty != Beginner {
			t.Fatalf("item difficulty = %s, want the spec's Beginner", q.Difficulty)
		}
	}
}
