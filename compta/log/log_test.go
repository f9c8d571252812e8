//go:build unit

package log

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		expected    Level
		expectError bool
	}{
		{name: "debug", input: "debug", expected: LevelDebug},
		{name: "info", input: "info", expected: LevelInfo},
		{name: "warn", input: "warn", expected: LevelWarn},
		{name: "warning alias", input: "warning", expected: LevelWarn},
		{name: "error", input: "error", expected: LevelError},
		{name: "uppercase with spaces", input: " INFO ", expected: LevelInfo},
		{name: "invalid", input: "loud", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLevel(tt.input)
			if tt.expectError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLevelString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "error", LevelError.String())
	assert.Equal(t, "warn", LevelWarn.String())
	assert.Equal(t, "info", LevelInfo.String())
	assert.Equal(t, "debug", LevelDebug.String())
	assert.Equal(t, "unknown", Level(42).String())
}

func TestDomainFields(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Field{Key: "reference", Value: "#1001"}, Reference("#1001"))
	assert.Equal(t, Field{Key: "channel", Value: "shopify"}, Channel("shopify"))
	assert.Equal(t, Field{Key: "account", Value: "411SHOP"}, Account("411SHOP"))
	assert.Equal(t, Field{Key: "debit", Value: "12.50"}, Amount("debit", decimal.RequireFromString("12.5")))

	err := errors.New("boom")
	assert.Equal(t, Field{Key: "error", Value: err}, Err(err))
}

func TestNopLogger(t *testing.T) {
	t.Parallel()

	logger := NewNop()

	assert.NotPanics(t, func() {
		logger.Log(context.Background(), LevelError, "dropped", String("k", "v"))
	})
	assert.False(t, logger.Enabled(LevelError))
	assert.Same(t, logger, logger.With(String("k", "v")))
	assert.Same(t, logger, logger.WithGroup("g"))
	assert.NoError(t, logger.Sync(context.Background()))
}

func TestRecorder(t *testing.T) {
	t.Parallel()

	rec := NewRecorder(LevelInfo)
	child := rec.With(Channel("amazon"))

	rec.Log(context.Background(), LevelDebug, "suppressed")
	rec.Log(context.Background(), LevelInfo, "kept", Reference("A-1"))
	child.Log(context.Background(), LevelWarn, "child", Reference("A-2"))

	events := rec.Events()
	require.Len(t, events, 2)

	assert.Equal(t, "kept", events[0].Message)
	ref, ok := events[0].Field("reference")
	require.True(t, ok)
	assert.Equal(t, "A-1", ref)

	channel, ok := events[1].Field("channel")
	require.True(t, ok)
	assert.Equal(t, "amazon", channel)

	warnings := rec.EventsAt(LevelWarn)
	require.Len(t, warnings, 1)
	assert.Equal(t, "child", warnings[0].Message)

	_, ok = warnings[0].Field("missing")
	assert.False(t, ok)
}
