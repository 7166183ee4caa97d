package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		out = append(out, rec)
	}
	return out
}

func TestBaseLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "[Checkout]")

	log.Log("created %d", 3)
	log.Warn("slow")
	log.Error("failed: %v", "boom")

	recs := records(t, &buf)
	require.Len(t, recs, 3)
	assert.Equal(t, "INFO", recs[0]["level"])
	assert.Equal(t, "created 3", recs[0]["msg"])
	assert.Equal(t, "[Checkout]", recs[0]["component"])
	assert.Equal(t, "WARN", recs[1]["level"])
	assert.Equal(t, "ERROR", recs[2]["level"])
	assert.Equal(t, "failed: boom", recs[2]["msg"])
}

func TestBaseLogger_WithDoesNotLeakIntoParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger(&buf, "[HTTP]")

	parent.With("request_id", "abc").With("status", 201).Log("request")
	parent.Log("plain")

	recs := records(t, &buf)
	require.Len(t, recs, 2)
	assert.Equal(t, "abc", recs[0]["request_id"])
	assert.Equal(t, float64(201), recs[0]["status"])
	assert.Equal(t, "[HTTP]", recs[0]["component"])
	assert.NotContains(t, recs[1], "request_id")
}
