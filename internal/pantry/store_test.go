package pantry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/krisha-oswal/pantry-oracle/internal/logger"
)

func TestStoreCreateAndGet(t *testing.T) {
	store := NewStore(time.Hour, logger.New(logger.LevelOff, nil))

	sess := store.Create()
	assert.NotEmpty(t, sess.ID())

	got := store.Get(sess.ID())
	assert.Same(t, sess, got)

	assert.Nil(t, store.Get("nonexistent"))
}

func TestStoreDistinctSessions(t *testing.T) {
	store := NewStore(time.Hour, logger.New(logger.LevelOff, nil))

	a := store.Create()
	b := store.Create()
	assert.NotEqual(t, a.ID(), b.ID())

	a.AddIngredient("tomato")
	assert.Empty(t, b.Ingredients())
	assert.Equal(t, 2, store.Len())
}

func TestStoreExpiresIdleSessions(t *testing.T) {
	store := NewStore(10*time.Millisecond, logger.New(logger.LevelOff, nil))

	sess := store.Create()
	time.Sleep(25 * time.Millisecond)

	assert.Nil(t, store.Get(sess.ID()))
}

func TestStoreTouchKeepsSessionAlive(t *testing.T) {
	store := NewStore(50*time.Millisecond, logger.New(logger.LevelOff, nil))

	sess := store.Create()
	for i := 0; i < 3; i++ {
		time.Sleep(20 * time.Millisecond)
		sess.AddIngredient("tomato")
	}

	assert.NotNil(t, store.Get(sess.ID()))
}
