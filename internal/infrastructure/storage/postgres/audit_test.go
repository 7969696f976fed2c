package postgres

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	oldState := map[string]any{
		"quantity": "10",
		"note":     "first batch",
		"customer": int64(4),
	}
	newState := map[string]any{
		"quantity": "15",
		"note":     "first batch",
		"employee": int64(9),
	}

	changes := Diff(oldState, newState)

	require.Len(t, changes, 3)
	assert.Equal(t, map[string]any{"old": "10", "new": "15"}, changes["quantity"])
	assert.Equal(t, map[string]any{"old": nil, "new": int64(9)}, changes["employee"])
	assert.Equal(t, map[string]any{"old": int64(4), "new": nil}, changes["customer"])
	assert.NotContains(t, changes, "note")
}

func TestDiff_Identical(t *testing.T) {
	state := map[string]any{"quantity": "10"}
	assert.Empty(t, Diff(state, state))
}

// Large change sets go through zstd before storage and come back out
// on history reads; the pair must round-trip byte for byte.
func TestAuditCompressionRoundTrip(t *testing.T) {
	svc, err := NewAuditService(nil)
	require.NoError(t, err)

	payload := bytes.Repeat([]byte(`{"quantity":{"old":"10","new":"15"}}`), 1000)
	require.Greater(t, len(payload), svc.compressThreshold)

	compressed := svc.encoder.EncodeAll(payload, nil)
	assert.Less(t, len(compressed), len(payload))

	restored, err := svc.decoder.DecodeAll(compressed, nil)
	require.NoError(t, err)
	assert.Equal(t, payload, restored)
}
