package assessment

import (
	"fmt"
	"sort"
)

// Difficulty is the tier an assessment is pitched at.
type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

// ParseDifficulty converts a string to a Difficulty, rejecting unknown values.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case Beginner, Intermediate, Advanced:
		return Difficulty(s), nil
	}
	return "", &ValidationError{Field: "difficulty", Reason: fmt.Sprintf("unknown difficulty %q", s)}
}

// NextLower returns the tier below d. ok is false for Beginner, which has
// no lower tier.
func (d Difficulty) NextLower() (Difficulty, bool) {
	switch d {
	case Advanced:
		return Intermediate, true
	case Intermediate:
		return Beginner, true
	}
	return "", false
}

// QuestionType is the kind of a generated question.
type QuestionType string

const (
	MCQ  QuestionType = "MCQ"  // multiple choice, 4 fixed options
	SAQ  QuestionType = "SAQ"  // short open-ended answer
	Case QuestionType = "Case" // scenario-based case study
)

// Points returns the score weight of one question of this type in a
// standard assessment.
func (t QuestionType) Points() int {
	switch t {
	case SAQ:
		return 2
	case Case:
		return 5
	}
	return 1
}

// Spec is the immutable input to assessment generation.
type Spec struct {
	Role       string     `json:"role"`
	Skills     []string   `json:"skills"`
	Difficulty Difficulty `json:"difficulty"`
}

// Validate checks the spec before any oracle call is made.
func (s Spec) Validate() error {
	if s.Role == "" {
		return &ValidationError{Field: "role", Reason: "role is required"}
	}
	if len(s.Skills) == 0 {
		return &ValidationError{Field: "skills", Reason: "at least one skill is required"}
	}
	for _, sk := range s.Skills {
		if sk == "" {
			return &ValidationError{Field: "skills", Reason: "skill names must be non-empty"}
		}
	}
	if _, err := ParseDifficulty(string(s.Difficulty)); err != nil {
		return err
	}
	return nil
}

// QuestionItem is one generated question.
type QuestionItem struct {
	Question string `json:"question"`
	// Options holds the 4 choices for MCQ items. Empty for SAQ and Case.
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer"`
	QuestionType  QuestionType `json:"question_type"`
	Skill         string       `json:"skill"`
	Difficulty    Difficulty   `json:"difficulty"`
	Points        int          `json:"points"`
}

// Set is a fully assembled assessment ready to hand to a candidate.
type Set struct {
	ID             string         `json:"id"`
	MCQs           []QuestionItem `json:"mcqs"`
	SAQs           []QuestionItem `json:"saqs"`
	Case           QuestionItem   `json:"case"`
	TotalQuestions int            `json:"total_questions"`
	Difficulty     Difficulty     `json:"difficulty"`
	// SkillsCovered is the deduplicated union of all item skills, sorted
	// so two assemblies of the same data always agree.
	SkillsCovered []string `json:"skills_covered"`
}

// AnswerRecord pairs one question with the candidate's answer.
type AnswerRecord struct {
	Question     string       `json:"question"`
	UserAnswer   string       `json:"user_answer"`
	QuestionType QuestionType `json:"question_type"`
	Skill        string       `json:"skill"`
	Difficulty   Difficulty   `json:"difficulty"`
}

// SubmissionBatch is one candidate's complete set of answers for an
// attempt. It is consumed once by evaluation and not retained.
type SubmissionBatch struct {
	Role       string         `json:"role"`
	Skills     []string       `json:"skills"`
	Difficulty Difficulty     `json:"difficulty"`
	Responses  []AnswerRecord `json:"responses"`
}

// Validate checks the batch before any oracle call is made.
func (b SubmissionBatch) Validate() error {
	if err := (Spec{Role: b.Role, Skills: b.Skills, Difficulty: b.Difficulty}).Validate(); err != nil {
		return err
	}
	if len(b.Responses) == 0 {
		return &ValidationError{Field: "responses", Reason: "at least one answer is required"}
	}
	for i, r := range b.Responses {
		if r.Question == "" {
			return &ValidationError{Field: "responses", Reason: fmt.Sprintf("response %d has no question text", i)}
		}
		switch r.QuestionType {
		case MCQ, SAQ, Case:
		default:
			return &ValidationError{Field: "responses", Reason: fmt.Sprintf("response %d has unknown question type %q", i, r.QuestionType)}
		}
	}
	return nil
}

// VerifyAgainst checks that every answered question exists in the given
// set. Used when the caller still holds the generated set for this attempt.
func (b SubmissionBatch) VerifyAgainst(set *Set) error {
	known := make(map[string]bool, set.TotalQuestions)
	for _, q := range set.MCQs {
		known[q.Question] = true
	}
	for _, q := range set.SAQs {
		known[q.Question] = true
	}
	known[set.Case.Question] = true

	for _, r := range b.Responses {
		if !known[r.Question] {
			return &ValidationError{Field: "responses", Reason: fmt.Sprintf("answer references unknown question %q", r.Question)}
		}
	}
	return nil
}

// SkillBreakdownEntry is the per-skill slice of an evaluation.
type SkillBreakdownEntry struct {
	Skill           string     `json:"skill"`
	Score           int        `json:"score"`
	TotalPossible   int        `json:"total_possible"`
	Percentage      int        `json:"percentage"`
	Level           Difficulty `json:"level"`
	WeakAreas       []string   `json:"weak_areas"`
	Recommendations []string   `json:"recommendations"`
}

// FeedbackReport is the outcome of evaluating one SubmissionBatch.
// Immutable after creation.
type FeedbackReport struct {
	Score               int                            `json:"score"`
	TotalPossible       int                            `json:"total_possible"`
	ActualLevel         Difficulty                     `json:"actual_level"`
	Message             string                         `json:"message"`
	SkillBreakdown      map[string]SkillBreakdownEntry `json:"skill_breakdown"`
	Recommendations     []string                       `json:"recommendations"`
	ShouldDemote        bool                           `json:"should_demote"`
	SuggestedAssessment string                         `json:"suggested_assessment,omitempty"`
}

// Plan fixes the question counts and score ceiling for one generation.
type Plan struct {
	MCQs  int
	SAQs  int
	Cases int
	// CasePoints is the weight of the single case study. The simplified
	// demotion case is worth 1 point instead of the standard 5.
	CasePoints int
}

// StandardPlan is the full 15/5/1 assessment worth 30 points.
var StandardPlan = Plan{MCQs: 15, SAQs: 5, Cases: 1, CasePoints: 5}

// DemotionPlan is the simplified 10/3/1 assessment worth 17 points.
var DemotionPlan = Plan{MCQs: 10, SAQs: 3, Cases: 1, CasePoints: 1}

// TotalQuestions returns the number of questions the plan calls for.
func (p Plan) TotalQuestions() int {
	return p.MCQs + p.SAQs + p.Cases
}

// MaxScore returns the highest achievable score under the plan.
func (p Plan) MaxScore() int {
	return p.MCQs*MCQ.Points() + p.SAQs*SAQ.Points() + p.Cases*p.CasePoints
}

// PlanFor returns the plan matching a submission's difficulty and answer
// count. A batch with a demotion-sized answer sheet is scored against the
// demotion ceiling.
func PlanFor(answerCount int) Plan {
	if answerCount == DemotionPlan.TotalQuestions() {
		return DemotionPlan
	}
	return StandardPlan
}

// dedupSkills returns the sorted deduplicated union of item skills.
func dedupSkills(items []QuestionItem) []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range items {
		if q.Skill == "" || seen[q.Skill] {
			continue
		}
		seen[q.Skill] = true
		out = append(out, q.Skill)
	}
	sort.Strings(out)
	return out
}
