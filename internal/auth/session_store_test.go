package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"secaware/internal/cache"
)

// A client pointed at a closed port behaves like Redis being down.
func deadCache() *cache.Client {
	return cache.New("127.0.0.1:1", "", 0)
}

func TestSessionStore_CreateFailsWhenUnacknowledged(t *testing.T) {
	store := NewSessionStore(deadCache())

	err := store.Create(context.Background(), "sess-1", 5, "test@example.com", time.Minute)
	assert.Error(t, err)
}

func TestSessionStore_ExistsFailsClosed(t *testing.T) {
	store := NewSessionStore(deadCache())

	alive, err := store.Exists(context.Background(), "sess-1")
	assert.NoError(t, err)
	assert.False(t, alive)
}

func TestSessionStore_DeleteIsIdempotent(t *testing.T) {
	store := NewSessionStore(deadCache())

	assert.NoError(t, store.Delete(context.Background(), "sess-1"))
}
