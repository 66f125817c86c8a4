package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureOutput redirects the global logger into a buffer for the test.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	logger := GetLogger()
	var buf bytes.Buffer
	previous := logger.Out
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(previous) })
	return &buf
}

func singleLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	raw := strings.TrimSpace(buf.String())
	require.NotContains(t, raw, "\n", "Expected exactly one log line")
	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &fields))
	return fields
}

func TestCorrelationIDs(t *testing.T) {
	first := NewCorrelationID()
	second := NewCorrelationID()
	assert.NotEqual(t, first, second)

	fields := WithCorrelationID(first)
	assert.Equal(t, first, fields["correlation_id"])
}

func TestLogOrderRejected(t *testing.T) {
	buf := captureOutput(t)

	LogOrderRejected("BTC-USD", 7, "invalid_price")

	fields := singleLine(t, buf)
	assert.Equal(t, EventOrderRejected, fields["event"])
	assert.Equal(t, "warning", fields["level"])
	assert.Equal(t, "invalid_price", fields["reason"])
	assert.Equal(t, float64(7), fields["client_id"])
}

func TestLogInvariantViolation(t *testing.T) {
	buf := captureOutput(t)

	LogInvariantViolation("BTC-USD", "bid and ask share a client", 1, 2)

	fields := singleLine(t, buf)
	assert.Equal(t, EventInvariantViolation, fields["event"])
	assert.Equal(t, "error", fields["level"])
	assert.Equal(t, float64(1), fields["bid_order_id"])
	assert.Equal(t, float64(2), fields["ask_order_id"])
}

func TestLogWithFields(t *testing.T) {
	buf := captureOutput(t)

	LogWithFields(logrus.InfoLevel, "Order book started", logrus.Fields{
		"event":      EventBookStarted,
		"instrument": "BTC-USD",
	})

	fields := singleLine(t, buf)
	assert.Equal(t, EventBookStarted, fields["event"])
	assert.Equal(t, "Order book started", fields["message"])
}
