package inbox_test

import (
	"context"
	"testing"

	"villagecore/internal/inbox"
	"villagecore/internal/logger"

	"github.com/stretchr/testify/assert"
)

func init() {
	level := "error"
	_ = logger.Init(&level)
}

func TestDeliverAppendsInOrder(t *testing.T) {
	ib := inbox.NewMemoryInbox()
	ctx := context.Background()

	assert.NoError(t, ib.Deliver(ctx, "player-1", "first", "{}"))
	assert.NoError(t, ib.Deliver(ctx, "player-1", "second", "{}"))

	msgs := ib.List("player-1")
	assert.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Text)
	assert.Equal(t, "second", msgs[1].Text)
}

func TestDeliverBlankPlayerIDIsNoOp(t *testing.T) {
	ib := inbox.NewMemoryInbox()
	assert.NoError(t, ib.Deliver(context.Background(), "", "barbarian report", "{}"))
	assert.Empty(t, ib.List(""))
}

func TestTailReturnsMostRecentOldestFirst(t *testing.T) {
	ib := inbox.NewMemoryInbox()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_ = ib.Deliver(ctx, "player-1", string(rune('a'+i)), "{}")
	}

	tail := ib.Tail("player-1", 2)
	assert.Len(t, tail, 2)
	assert.Equal(t, "d", tail[0].Text)
	assert.Equal(t, "e", tail[1].Text)
}

func TestTailNRequestAboveTotalReturnsAll(t *testing.T) {
	ib := inbox.NewMemoryInbox()
	_ = ib.Deliver(context.Background(), "player-1", "only", "{}")

	tail := ib.Tail("player-1", 50)
	assert.Len(t, tail, 1)
}

func TestListReturnsIndependentCopy(t *testing.T) {
	ib := inbox.NewMemoryInbox()
	_ = ib.Deliver(context.Background(), "player-1", "one", "{}")

	msgs := ib.List("player-1")
	msgs[0].Text = "mutated"

	assert.Equal(t, "one", ib.List("player-1")[0].Text)
}
