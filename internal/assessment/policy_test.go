package assessment

import "testing"

func TestAttempt_AcceptedPath(t *testing.T) {
	att := newAttempt()

	if err := att.submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := att.evaluated(); err != nil {
		t.Fatalf("evaluated: %v", err)
	}
	if err := att.finish(false); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if att.state != StateAccepted {
		t.Errorf("state = %s, want accepted", att.state)
	}
}

func TestAttempt_DemotedPath(t *testing.T) {
	att := newAttempt()

	if err := att.submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := att.evaluated(); err != nil {
		t.Fatalf("evaluated: %v", err)
	}
	if err := att.finish(true); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if att.state != StateDemoted {
		t.Errorf("state = %s, want demoted", att.state)
	}
}

func TestAttempt_IllegalTransitions(t *testing.T) {
	att := newAttempt()
	if err := att.evaluated(); err == nil {
		t.Error("evaluated before submit should fail")
	}
	if err := att.finish(false); err == nil {
		t.Error("finish before evaluation should fail")
	}

	if err := att.submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := att.submit(); err == nil {
		t.Error("double submit should fail")
	}

	if err := att.evaluated(); err != nil {
		t.Fatalf("evaluated: %v", err)
	}
	if err := att.finish(true); err != nil {
		t.Fatalf("finish: %v", err)
	}
	// Terminal states admit no further transitions.
	if err := att.finish(false); err == nil {
		t.Error("transition out of a terminal state should fail")
	}
}
