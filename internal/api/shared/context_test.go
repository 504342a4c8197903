package shared

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetTraceID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	traced := SetTraceID(ctx)
	traceID := GetTraceID(traced)
	assert.Len(t, traceID, 32)
	assert.Empty(t, GetTraceID(ctx), "original context must be unchanged")
}

func TestGetTraceID_WrongType(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), TraceIDKey, 123)
	assert.Empty(t, GetTraceID(ctx))
}

func TestGenerateTraceID_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		id := generateTraceID()
		_, err := hex.DecodeString(id)
		require.NoError(t, err)
		assert.False(t, seen[id], "duplicate trace ID %s", id)
		seen[id] = true
	}
}

func TestGenerateFallbackTraceID_Unique(t *testing.T) {
	t.Parallel()

	a := generateFallbackTraceID()
	b := generateFallbackTraceID()
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
