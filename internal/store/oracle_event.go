package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// OracleEventData is one oracle round trip as recorded by the gateway.
type OracleEventData struct {
	Purpose      string
	Provider     string
	Model        string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// OracleEvent is a stored event with its assigned ID and timestamp.
type OracleEvent struct {
	ID        int
	Timestamp time.Time
	OracleEventData
}

// EventLog is the write-side interface the oracle gateway logs through.
type EventLog interface {
	AppendOracleEvent(ctx context.Context, data OracleEventData) error
}

// QueryOpts limits event queries.
type QueryOpts struct {
	Limit   int
	Purpose string
}

// AppendOracleEvent records one oracle round trip.
func (s *Store) AppendOracleEvent(ctx context.Context, data OracleEventData) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO oracle_events
	(purpose, provider, model, input_tokens, output_tokens, latency_ms, success, error_message, request_body, response_body)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.Purpose, data.Provider, data.Model,
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("insert oracle event: %w", err)
	}
	return nil
}

// QueryOracleEvents returns recent events, newest first.
func (s *Store) QueryOracleEvents(ctx context.Context, opts QueryOpts) ([]OracleEvent, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `
SELECT id, timestamp, purpose, provider, model, input_tokens, output_tokens, latency_ms, success, error_message
FROM oracle_events`
	args := []any{}
	if opts.Purpose != "" {
		query += " WHERE purpose = ?"
		args = append(args, opts.Purpose)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query oracle events: %w", err)
	}
	defer rows.Close()

	var events []OracleEvent
	for rows.Next() {
		var e OracleEvent
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Purpose, &e.Provider, &e.Model,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success, &e.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan oracle event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetOracleEvent returns one event with full request/response bodies, or
// nil if no event has that ID.
func (s *Store) GetOracleEvent(ctx context.Context, id int) (*OracleEvent, error) {
	var e OracleEvent
	err := s.db.QueryRowContext(ctx, `
SELECT id, timestamp, purpose, provider, model, input_tokens, output_tokens, latency_ms, success, error_message, request_body, response_body
FROM oracle_events WHERE id = ?`, id).
		Scan(&e.ID, &e.Timestamp, &e.Purpose, &e.Provider, &e.Model,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success, &e.ErrorMessage,
			&e.RequestBody, &e.ResponseBody)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get oracle event: %w", err)
	}
	return &e, nil
}
