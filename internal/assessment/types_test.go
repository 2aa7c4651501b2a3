package assessment

import (
	"errors"
	"strings"
	"testing"
)

func TestSubmissionBatch_VerifyAgainst(t *testing.T) {
	spec := testSpec()
	payload := mustDecodeGeneration(t, generationJSON(t, StandardPlan, spec.Difficulty, spec.Skills))
	set, err := assemble("generate", payload, spec, StandardPlan)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	batch := testBatch(spec.Difficulty)
	if err := batch.VerifyAgainst(set); err != nil {
		t.Fatalf("answers drawn from the set failed verification: %v", err)
	}
}

func TestSubmissionBatch_VerifyAgainst_UnknownQuestion(t *testing.T) {
	spec := testSpec()
	payload := mustDecodeGeneration(t, generationJSON(t, StandardPlan, spec.Difficulty, spec.Skills))
	set, err := assemble("generate", payload, spec, StandardPlan)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	batch := testBatch(spec.Difficulty)
	batch.Responses[0].Question = "What is the airspeed of an unladen swallow?"

	err = batch.VerifyAgainst(set)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if !strings.Contains(ve.Reason, "unladen swallow") {
		t.Errorf("reason %q does not name the unknown question", ve.Reason)
	}
}
