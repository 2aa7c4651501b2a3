package assessment

import (
	"fmt"
	"log/slog"
)

// Leveling thresholds. Fixed policy, independent of oracle judgment,
// applied to the percentage score.
//
//	0-50    Beginner
//	51-80   Intermediate
//	81-100  Advanced
func levelFor(percentage float64) Difficulty {
	switch {
	case percentage > 80:
		return Advanced
	case percentage > 50:
		return Intermediate
	default:
		return Beginner
	}
}

// demotionTarget applies the fixed demotion thresholds: Intermediate
// below 40% drops to Beginner, Advanced below 60% drops to Intermediate,
// Beginner never demotes further.
func demotionTarget(tested Difficulty, percentage float64) (Difficulty, bool) {
	switch tested {
	case Intermediate:
		if percentage < 40 {
			return Beginner, true
		}
	case Advanced:
		if percentage < 60 {
			return Intermediate, true
		}
	}
	return "", false
}

// buildReport turns a validated evaluation payload into a FeedbackReport.
// The quantitative fields (level, demotion) come from fixed policy; the
// oracle contributes only the qualitative ones (message, breakdown,
// recommendations). An oracle-asserted should_demote that disagrees with
// the computed policy is logged and overridden.
func buildReport(payload *evaluationPayload, batch SubmissionBatch, plan Plan, log *slog.Logger) (*FeedbackReport, Difficulty, bool) {
	total := plan.MaxScore()

	score := 0
	if payload.Score != nil {
		score = *payload.Score
	}
	if score < 0 || score > total {
		log.Warn("oracle score out of range, clamping",
			"score", score, "total_possible", total)
		score = min(max(score, 0), total)
	}

	percentage := float64(score) * 100 / float64(total)
	level := levelFor(percentage)
	target, demote := demotionTarget(batch.Difficulty, percentage)

	if payload.ShouldDemote != nil && *payload.ShouldDemote != demote {
		log.Warn("oracle demotion flag disagrees with computed policy",
			"oracle", *payload.ShouldDemote,
			"computed", demote,
			"percentage", percentage,
			"difficulty", batch.Difficulty)
	}
	if payload.ActualLevel != "" && Difficulty(payload.ActualLevel) != level {
		log.Warn("oracle level disagrees with computed leveling table",
			"oracle", payload.ActualLevel,
			"computed", level,
			"percentage", percentage)
	}

	message := payload.Message
	if message == "" {
		message = "Assessment completed."
	}

	breakdown := make(map[string]SkillBreakdownEntry, len(payload.SkillBreakdown))
	for skill, e := range payload.SkillBreakdown {
		level := Beginner
		if parsed, err := ParseDifficulty(e.Level); err == nil {
			level = parsed
		}
		breakdown[skill] = SkillBreakdownEntry{
			Skill:           skill,
			Score:           e.Score,
			TotalPossible:   e.TotalPossible,
			Percentage:      e.Percentage,
			Level:           level,
			WeakAreas:       orEmpty(e.WeakAreas),
			Recommendations: orEmpty(e.Recommendations),
		}
	}

	report := &FeedbackReport{
		Score:           score,
		TotalPossible:   total,
		ActualLevel:     level,
		Message:         message,
		SkillBreakdown:  breakdown,
		Recommendations: orEmpty(payload.Recommendations),
		ShouldDemote:    demote,
	}
	if demote {
		report.SuggestedAssessment = fmt.Sprintf("%s assessment for %s", target, batch.Role)
	}

	return report, target, demote
}

func orEmpty(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
