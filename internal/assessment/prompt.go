package assessment

import (
	"encoding/json"
	"fmt"
	"strings"
)

const generateSystemPrompt = `You are an expert assessment generator for technical roles. You write practical questions that test actual knowledge rather than memorization, and you respond with valid JSON only.`

const evaluateSystemPrompt = `You are an expert assessment evaluator. You grade honestly, explain weaknesses constructively, and respond with valid JSON only.`

// buildGenerationPrompt produces the instruction text for one generation
// round trip. It is pure: the same spec and plan always yield the same
// text. Every requested skill appears verbatim.
func buildGenerationPrompt(spec Spec, plan Plan) string {
	skills := strings.Join(spec.Skills, ", ")

	var b strings.Builder

	b.WriteString("Generate a comprehensive assessment based on the following requirements:\n\n")
	fmt.Fprintf(&b, "ROLE: %s\n", spec.Role)
	fmt.Fprintf(&b, "SKILLS: %s\n", skills)
	fmt.Fprintf(&b, "DIFFICULTY LEVEL: %s\n", spec.Difficulty)

	b.WriteString("\nREQUIREMENTS:\n")
	fmt.Fprintf(&b, "1. Generate exactly %d Multiple Choice Questions (MCQs)\n", plan.MCQs)
	fmt.Fprintf(&b, "2. Generate exactly %d Short Answer Questions (SAQs)\n", plan.SAQs)
	fmt.Fprintf(&b, "3. Generate exactly %d Case Study/Scenario\n", plan.Cases)
	fmt.Fprintf(&b, "4. All questions must be appropriate for %s level\n", spec.Difficulty)
	fmt.Fprintf(&b, "5. Questions must cover all specified skills: %s\n", skills)
	b.WriteString("6. MCQs must have exactly 4 options with one correct answer\n")
	b.WriteString("7. SAQs should be open-ended but specific\n")
	b.WriteString("8. The case study should be realistic and comprehensive\n")

	if plan == DemotionPlan {
		b.WriteString("\nThis is a simplified assessment. Focus on foundational concepts and basic applications. Make questions straightforward and educational.\n")
	}

	b.WriteString("\nDIFFICULTY GUIDELINES:\n")
	b.WriteString("- Beginner: basic concepts, definitions, simple applications\n")
	b.WriteString("- Intermediate: practical scenarios, analysis, problem-solving\n")
	b.WriteString("- Advanced: complex scenarios, optimization, advanced concepts\n")

	b.WriteString("\nRESPONSE FORMAT (valid JSON, no other keys):\n")
	fmt.Fprintf(&b, `{
  "mcqs": [
    {
      "question": "Question text here",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correct_answer": "Option A",
      "question_type": "MCQ",
      "skill": "Skill name",
      "difficulty": "%[1]s"
    }
  ],
  "saqs": [
    {
      "question": "Question text here",
      "correct_answer": "Expected answer or key points",
      "question_type": "SAQ",
      "skill": "Skill name",
      "difficulty": "%[1]s"
    }
  ],
  "case": {
    "question": "Case study scenario and question",
    "correct_answer": "Expected approach and key points",
    "question_type": "Case",
    "skill": "Primary skill",
    "difficulty": "%[1]s"
  }
}`, spec.Difficulty)
	b.WriteString("\n\nIMPORTANT: respond with the JSON object only.")

	return b.String()
}

// buildEvaluationPrompt produces the instruction text for one evaluation
// round trip. Every submitted answer is enumerated verbatim; the
// aggregator can only assess what the oracle was shown.
func buildEvaluationPrompt(batch SubmissionBatch, plan Plan) string {
	var b strings.Builder

	b.WriteString("Analyze the following user responses and provide comprehensive feedback.\n\n")
	b.WriteString("ASSESSMENT DETAILS:\n")
	fmt.Fprintf(&b, "- Role: %s\n", batch.Role)
	fmt.Fprintf(&b, "- Skills Tested: %s\n", strings.Join(batch.Skills, ", "))
	fmt.Fprintf(&b, "- Difficulty Level: %s\n", batch.Difficulty)
	fmt.Fprintf(&b, "- Total Questions: %d\n", len(batch.Responses))

	b.WriteString("\nUSER RESPONSES:\n")
	b.WriteString(encodeResponses(batch.Responses))
	b.WriteString("\n")

	b.WriteString("\nEVALUATION REQUIREMENTS:\n")
	b.WriteString("1. Score each answer and report the total\n")
	b.WriteString("2. Analyze performance by skill area\n")
	b.WriteString("3. Determine actual competency level (Beginner/Intermediate/Advanced)\n")
	b.WriteString("4. Identify weak areas and provide specific recommendations\n")
	b.WriteString("5. Provide actionable feedback\n")

	b.WriteString("\nSCORING GUIDELINES:\n")
	fmt.Fprintf(&b, "- MCQs: %d point each (%d total)\n", MCQ.Points(), plan.MCQs*MCQ.Points())
	fmt.Fprintf(&b, "- SAQs: %d points each (%d total)\n", SAQ.Points(), plan.SAQs*SAQ.Points())
	fmt.Fprintf(&b, "- Case Study: %d points\n", plan.Cases*plan.CasePoints)
	fmt.Fprintf(&b, "- Total possible: %d points\n", plan.MaxScore())

	b.WriteString("\nRESPONSE FORMAT (valid JSON, no other keys):\n")
	b.WriteString(`{
  "score": 18,
  "actual_level": "Intermediate",
  "message": "Detailed feedback message",
  "skill_breakdown": {
    "SQL": {
      "score": 8,
      "total_possible": 10,
      "percentage": 80,
      "level": "Intermediate",
      "weak_areas": ["Complex joins", "Window functions"],
      "recommendations": ["Practice advanced SQL concepts"]
    }
  },
  "recommendations": [
    "Focus on data analysis fundamentals"
  ],
  "should_demote": false
}`)
	b.WriteString("\n\nProvide honest, constructive feedback that helps the user improve. Respond with the JSON object only.")

	return b.String()
}

// encodeResponses renders the full answer list as indented JSON, with no
// truncation.
func encodeResponses(responses []AnswerRecord) string {
	out, err := json.MarshalIndent(responses, "", "  ")
	if err != nil {
		// AnswerRecord contains only strings; marshal cannot fail in practice.
		return fmt.Sprintf("%+v", responses)
	}
	return string(out)
}
