package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EmptyAddrReturnsError(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis address is required")
}

func TestNew_CreatesClient(t *testing.T) {
	store, err := New(Config{Addr: "localhost:6379", DB: 1})
	require.NoError(t, err)
	defer store.Close()

	require.NotNil(t, store.client)
	assert.Equal(t, "localhost:6379", store.client.Options().Addr)
	assert.Equal(t, 1, store.client.Options().DB)
}
