package redis_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	redisstore "github.com/phrazzld/scry-notes/internal/platform/redis"
	"github.com/phrazzld/scry-notes/internal/store/storetest"
	"github.com/stretchr/testify/require"
)

// TestStore_Contract needs a live server; set SCRY_TEST_REDIS_ADDR to run it.
func TestStore_Contract(t *testing.T) {
	addr := os.Getenv("SCRY_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SCRY_TEST_REDIS_ADDR not set, skipping redis integration test")
	}

	// A unique prefix keeps runs from seeing each other's keys.
	prefix := "scry-notes-test:" + uuid.NewString() + ":"
	s, err := redisstore.New(context.Background(), addr, prefix)
	require.NoError(t, err)
	defer s.Close()

	storetest.Run(t, s)
}

func TestNew_UnreachableServer(t *testing.T) {
	// Port 1 on localhost is never a redis server.
	_, err := redisstore.New(context.Background(), "127.0.0.1:1", "")
	require.Error(t, err)
}
