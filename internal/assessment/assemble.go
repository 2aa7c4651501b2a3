package assessment

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// assemble builds a normalized Set from a validated generation payload.
// Counts are enforced against the plan, item skills must belong to the
// originating spec, and the total_questions postcondition always holds.
func assemble(op string, payload *generationPayload, spec Spec, plan Plan) (*Set, error) {
	if len(payload.MCQs) != plan.MCQs {
		return nil, &AggregationError{Op: op, Reason: fmt.Sprintf("expected %d mcqs, got %d", plan.MCQs, len(payload.MCQs))}
	}
	if len(payload.SAQs) != plan.SAQs {
		return nil, &AggregationError{Op: op, Reason: fmt.Sprintf("expected %d saqs, got %d", plan.SAQs, len(payload.SAQs))}
	}

	mcqs, err := assembleItems(op, "mcqs", payload.MCQs, MCQ, spec, MCQ.Points())
	if err != nil {
		return nil, err
	}
	saqs, err := assembleItems(op, "saqs", payload.SAQs, SAQ, spec, SAQ.Points())
	if err != nil {
		return nil, err
	}
	caseItems, err := assembleItems(op, "case", []questionPayload{payload.Case}, Case, spec, plan.CasePoints)
	if err != nil {
		return nil, err
	}

	all := make([]QuestionItem, 0, len(mcqs)+len(saqs)+1)
	all = append(all, mcqs...)
	all = append(all, saqs...)
	all = append(all, caseItems...)

	set := &Set{
		ID:             uuid.NewString(),
		MCQs:           mcqs,
		SAQs:           saqs,
		Case:           caseItems[0],
		TotalQuestions: len(mcqs) + len(saqs) + 1,
		Difficulty:     spec.Difficulty,
		SkillsCovered:  dedupSkills(all),
	}

	// Postcondition from the data model; a violation here is a bug, not
	// bad oracle output.
	if set.TotalQuestions != plan.TotalQuestions() {
		return nil, &AggregationError{Op: op, Reason: fmt.Sprintf("assembled %d questions, plan calls for %d", set.TotalQuestions, plan.TotalQuestions())}
	}

	return set, nil
}

// assembleItems converts one payload section into typed question items.
// Any entry missing a required field fails assembly; questions are never
// silently invented.
func assembleItems(op, section string, entries []questionPayload, qt QuestionType, spec Spec, points int) ([]QuestionItem, error) {
	items := make([]QuestionItem, 0, len(entries))
	for i, e := range entries {
		if e.Question == "" {
			return nil, &AggregationError{Op: op, Reason: fmt.Sprintf("%s[%d] has no question text", section, i)}
		}
		if e.CorrectAnswer == "" {
			return nil, &AggregationError{Op: op, Reason: fmt.Sprintf("%s[%d] has no correct answer", section, i)}
		}
		if e.Skill == "" {
			return nil, &AggregationError{Op: op, Reason: fmt.Sprintf("%s[%d] has no skill", section, i)}
		}

		skill, ok := matchSkill(e.Skill, spec.Skills)
		if !ok {
			return nil, &AggregationError{Op: op, Reason: fmt.Sprintf("%s[%d] skill %q is not in the requested skill set", section, i, e.Skill)}
		}

		if qt == MCQ && len(e.Options) != 4 {
			return nil, &AggregationError{Op: op, Reason: fmt.Sprintf("%s[%d] has %d options, MCQs need 4", section, i, len(e.Options))}
		}

		item := QuestionItem{
			Question:      e.Question,
			CorrectAnswer: e.CorrectAnswer,
			QuestionType:  qt,
			Skill:         skill,
			Difficulty:    spec.Difficulty,
			Points:        points,
		}
		if qt == MCQ {
			item.Options = e.Options
		}
		items = append(items, item)
	}
	return items, nil
}

// matchSkill normalizes an oracle-reported skill back to the requested
// spelling. Case-insensitive; anything else is a contract problem.
func matchSkill(skill string, requested []string) (string, bool) {
	for _, r := range requested {
		if strings.EqualFold(skill, r) {
			return r, true
		}
	}
	return "", false
}
