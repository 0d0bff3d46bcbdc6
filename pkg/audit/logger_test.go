package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordWritesPrefixedJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf)

	err := l.Record(context.Background(), EventEvaluation, "evaluate", "sys-001", map[string]any{
		"risk_level": "RiskHigh",
		"passes":     3,
	})
	require.NoError(t, err)

	line := buf.String()
	require.True(t, strings.HasPrefix(line, "AUDIT: "))
	require.True(t, strings.HasSuffix(line, "\n"))

	var event Event
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(line), "AUDIT: ")), &event))
	require.NotEmpty(t, event.ID)
	require.Equal(t, EventEvaluation, event.Type)
	require.Equal(t, "evaluate", event.Action)
	require.Equal(t, "sys-001", event.Resource)
	require.False(t, event.Timestamp.IsZero())
	require.Equal(t, "RiskHigh", event.Metadata["risk_level"])
}

func TestRecordDistinctIDs(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf)

	require.NoError(t, l.Record(context.Background(), EventCatalog, "load", "default", nil))
	require.NoError(t, l.Record(context.Background(), EventCatalog, "load", "default", nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var a, b Event
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(lines[0], "AUDIT: ")), &a))
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(lines[1], "AUDIT: ")), &b))
	require.NotEqual(t, a.ID, b.ID)
}

func TestNopDiscards(t *testing.T) {
	require.NoError(t, Nop().Record(context.Background(), EventSystem, "startup", "server", nil))
}

func TestNilWriterDefaultsToStdout(t *testing.T) {
	require.NotNil(t, NewLoggerWithWriter(nil))
}
