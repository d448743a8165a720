// Package inbox provides the append-only message delivery collaborator
// consumed by the combat resolver and reporting path. Only the append
// interface is part of the core's contract — transport-level delivery
// (push, email, polling) lives outside it.
package inbox

import (
	"context"
	"sync"

	"villagecore/internal/logger"

	"go.uber.org/zap"
)

// Message is one delivered item: a player id, a short human-readable
// summary, and a JSON payload.
type Message struct {
	PlayerID    string
	Text        string
	PayloadJSON string
}

// Inbox is the append-only delivery collaborator.
type Inbox interface {
	Deliver(ctx context.Context, playerID, message, payloadJSON string) error
}

// MemoryInbox is an in-memory, per-player append-only log, grounded on the
// teacher's map+mutex repository pattern (internal/repository/
// game_repository.go) generalised from one entity per key to an append-only
// slice per key.
type MemoryInbox struct {
	mu       sync.RWMutex
	messages map[string][]Message
}

// NewMemoryInbox constructs an empty in-memory inbox.
func NewMemoryInbox() *MemoryInbox {
	return &MemoryInbox{messages: make(map[string][]Message)}
}

// Deliver appends a message to the named player's inbox. A blank playerID
// is a silent no-op, so a message addressed to no player is dropped.
func (i *MemoryInbox) Deliver(ctx context.Context, playerID, message, payloadJSON string) error {
	if playerID == "" {
		return nil
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	i.messages[playerID] = append(i.messages[playerID], Message{
		PlayerID:    playerID,
		Text:        message,
		PayloadJSON: payloadJSON,
	})

	logger.Debug("message delivered to inbox",
		zap.String("player_id", playerID),
		zap.Int("inbox_size", len(i.messages[playerID])))

	return nil
}

// List returns a copy of a player's messages, oldest first.
func (i *MemoryInbox) List(playerID string) []Message {
	i.mu.RLock()
	defer i.mu.RUnlock()

	msgs := i.messages[playerID]
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

// Tail returns up to n of a player's most recent messages, oldest first.
func (i *MemoryInbox) Tail(playerID string, n int) []Message {
	all := i.List(playerID)
	if n <= 0 || n >= len(all) {
		return all
	}
	return all[len(all)-n:]
}
