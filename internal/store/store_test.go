package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testEvent(purpose string, success bool) OracleEventData {
	return OracleEventData{
		Purpose:      purpose,
		Provider:     "openai",
		Model:        "gpt-4o-mini",
		InputTokens:  1200,
		OutputTokens: 900,
		LatencyMs:    1800,
		Success:      success,
		RequestBody:  `{"prompt":"..."}`,
		ResponseBody: `{"mcqs":[]}`,
	}
}

func TestAppendAndQueryOracleEvents(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AppendOracleEvent(ctx, testEvent("generate", true)))
	require.NoError(t, s.AppendOracleEvent(ctx, testEvent("evaluate", true)))
	require.NoError(t, s.AppendOracleEvent(ctx, testEvent("demote", false)))

	events, err := s.QueryOracleEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 3)

	// Newest first.
	assert.Equal(t, "demote", events[0].Purpose)
	assert.Equal(t, "generate", events[2].Purpose)
	assert.False(t, events[0].Success)
	assert.Equal(t, 1200, events[0].InputTokens)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestQueryOracleEvents_PurposeFilter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AppendOracleEvent(ctx, testEvent("generate", true)))
	require.NoError(t, s.AppendOracleEvent(ctx, testEvent("evaluate", true)))
	require.NoError(t, s.AppendOracleEvent(ctx, testEvent("generate", true)))

	events, err := s.QueryOracleEvents(ctx, QueryOpts{Purpose: "generate"})
	require.NoError(t, err)
	require.Len(t, events, 2)
	for _, e := range events {
		assert.Equal(t, "generate", e.Purpose)
	}
}

func TestQueryOracleEvents_Limit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.AppendOracleEvent(ctx, testEvent("generate", true)))
	}

	events, err := s.QueryOracleEvents(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestGetOracleEvent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AppendOracleEvent(ctx, testEvent("evaluate", true)))

	events, err := s.QueryOracleEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)

	// The list view omits bodies; the detail view carries them.
	assert.Empty(t, events[0].RequestBody)

	got, err := s.GetOracleEvent(ctx, events[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `{"prompt":"..."}`, got.RequestBody)
	assert.Equal(t, `{"mcqs":[]}`, got.ResponseBody)
}

func TestGetOracleEvent_NotFound(t *testing.T) {
	s := openTestStore(t)

	got, err := s.GetOracleEvent(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}
