package assessment

import "fmt"

// ValidationError indicates a malformed Spec or SubmissionBatch. It is
// returned before any oracle call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// OracleCommunicationError indicates the oracle could not be reached or
// the round trip failed at the transport level. The core never retries;
// retry policy lives in the gateway.
type OracleCommunicationError struct {
	Op  string
	Err error
}

func (e *OracleCommunicationError) Error() string {
	return fmt.Sprintf("oracle call failed during %s: %v", e.Op, e.Err)
}

func (e *OracleCommunicationError) Unwrap() error { return e.Err }

// OracleContractViolation indicates the oracle's text could not be parsed
// as JSON under any extraction strategy. RawText preserves the full
// response for diagnosis.
type OracleContractViolation struct {
	Op      string
	RawText string
	Err     error
}

func (e *OracleContractViolation) Error() string {
	return fmt.Sprintf("oracle response is not JSON during %s: %v", e.Op, e.Err)
}

func (e *OracleContractViolation) Unwrap() error { return e.Err }

// AggregationError indicates parsed JSON is missing a structurally
// required field or has a value of the wrong type. Partial results are
// never returned.
type AggregationError struct {
	Op     string
	Reason string
	Err    error
}

func (e *AggregationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot aggregate %s payload: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot aggregate %s payload: %s", e.Op, e.Reason)
}

func (e *AggregationError) Unwrap() error { return e.Err }
