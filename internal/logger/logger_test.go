package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerCarriesServiceAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "homely-bites-api", "warn")

	log.Info("dropped")
	log.Warn("kept", "order_id", 7)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "homely-bites-api", rec["service"])
	assert.Contains(t, rec, "hostname")
	assert.EqualValues(t, 7, rec["order_id"])
}
