package assessment

import (
	"io"
	"log/slog"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLevelFor(t *testing.T) {
	cases := []struct {
		percentage float64
		want       Difficulty
	}{
		{0, Beginner},
		{50, Beginner},
		{50.0001, Intermediate},
		{51, Intermediate},
		{80, Intermediate},
		{81, Advanced},
		{100, Advanced},
	}
	for _, tc := range cases {
		if got := levelFor(tc.percentage); got != tc.want {
			t.Errorf("levelFor(%v) = %s, want %s", tc.percentage, got, tc.want)
		}
	}
}

func TestDemotionTarget(t *testing.T) {
	cases := []struct {
		tested     Difficulty
		percentage float64
		wantTarget Difficulty
		wantDemote bool
	}{
		{Beginner, 0, "", false},
		{Beginner, 100, "", false},
		{Intermediate, 39.9, Beginner, true},
		{Intermediate, 40, "", false},
		{Advanced, 59.9, Intermediate, true},
		{Advanced, 60, "", false},
		{Advanced, 0, Intermediate, true},
	}
	for _, tc := range cases {
		target, demote := demotionTarget(tc.tested, tc.percentage)
		if target != tc.wantTarget || demote != tc.wantDemote {
			t.Errorf("demotionTarget(%s, %v) = (%s, %v), want (%s, %v)",
				tc.tested, tc.percentage, target, demote, tc.wantTarget, tc.wantDemote)
		}
	}
}

func evalPayload(score int) *evaluationPayload {
	return &evaluationPayload{Score: &score}
}

func TestBuildReport_LevelingBoundaries(t *testing.T) {
	batch := testBatch(Beginner)

	cases := []struct {
		score int
		want  Difficulty
	}{
		{15, Beginner},      // 50%
		{16, Intermediate},  // 53.3%
		{24, Intermediate},  // 80%
		{25, Advanced},      // 83.3%
	}
	for _, tc := range cases {
		report, _, _ := buildReport(evalPayload(tc.score), batch, StandardPlan, discardLogger())
		if report.ActualLevel != tc.want {
			t.Errorf("score %d/30: actual_level = %s, want %s", tc.score, report.ActualLevel, tc.want)
		}
		if report.TotalPossible != 30 {
			t.Errorf("total_possible = %d, want 30", report.TotalPossible)
		}
	}
}

func TestBuildReport_DemotionDecisionIsComputed(t *testing.T) {
	batch := testBatch(Advanced)
	// 16/30 is 53%, below the Advanced 60% line.
	payload := evalPayload(16)
	oracleSays := false
	payload.ShouldDemote = &oracleSays

	report, target, demote := buildReport(payload, batch, StandardPlan, discardLogger())

	if !demote || !report.ShouldDemote {
		t.Fatal("computed policy says demote; oracle flag must not override it")
	}
	if target != Intermediate {
		t.Errorf("target = %s, want Intermediate", target)
	}
	if report.SuggestedAssessment != "Intermediate assessment for Data Analyst" {
		t.Errorf("suggested_assessment = %q", report.SuggestedAssessment)
	}
}

func TestBuildReport_BeginnerNeverDemotes(t *testing.T) {
	batch := testBatch(Beginner)

	report, _, demote := buildReport(evalPayload(0), batch, StandardPlan, discardLogger())

	if demote || report.ShouldDemote {
		t.Error("Beginner demoted; Beginner is the floor")
	}
	if report.SuggestedAssessment != "" {
		t.Errorf("suggested_assessment = %q, want empty", report.SuggestedAssessment)
	}
}

func TestBuildReport_ScoreClamped(t *testing.T) {
	batch := testBatch(Beginner)

	report, _, _ := buildReport(evalPayload(90), batch, StandardPlan, discardLogger())
	if report.Score != 30 {
		t.Errorf("score = %d, want clamped to 30", report.Score)
	}

	report, _, _ = buildReport(evalPayload(-5), batch, StandardPlan, discardLogger())
	if report.Score != 0 {
		t.Errorf("score = %d, want clamped to 0", report.Score)
	}
}

func TestBuildReport_Defaults(t *testing.T) {
	batch := testBatch(Beginner)

	report, _, _ := buildReport(&evaluationPayload{}, batch, StandardPlan, discardLogger())

	if report.Score != 0 {
		t.Errorf("absent score = %d, want 0", report.Score)
	}
	if report.Message != "Assessment completed." {
		t.Errorf("message = %q", report.Message)
	}
	if report.Recommendations == nil || len(report.Recommendations) != 0 {
		t.Errorf("recommendations = %v, want empty non-nil slice", report.Recommendations)
	}
	if report.SkillBreakdown == nil {
		t.Error("skill_breakdown is nil, want empty map")
	}
}

func TestBuildReport_DemotionPlanCeiling(t *testing.T) {
	batch := testBatch(Intermediate)
	batch.Responses = batch.Responses[:DemotionPlan.TotalQuestions()]

	// 6/17 is 35%, below the Intermediate 40% line.
	report, target, demote := buildReport(evalPayload(6), batch, PlanFor(len(batch.Responses)), discardLogger())

	if report.TotalPossible != 17 {
		t.Errorf("total_possible = %d, want 17", report.TotalPossible)
	}
	if !demote || target != Beginner {
		t.Errorf("got (%s, %v), want (Beginner, true)", target, demote)
	}
}

func TestPlanMaxScores(t *testing.T) {
	if got := StandardPlan.MaxScore(); got != 30 {
		t.Errorf("standard max score = %d, want 30", got)
	}
	if got := DemotionPlan.MaxScore(); got != 17 {
		t.Errorf("demotion max score = %d, want 17", got)
	}
	if got := StandardPlan.TotalQuestions(); got != 21 {
		t.Errorf("standard total questions = %d, want 21", got)
	}
	if got := DemotionPlan.TotalQuestions(); got != 14 {
		t.Errorf("demotion total questions = %d, want 14", got)
	}
}
