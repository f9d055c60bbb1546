// Package chat persists and renders the per-room message window.
package chat

import (
	"context"
	"fmt"
	"slices"
	"time"
)

// messageWindow caps retrieval to the most recent messages of a room.
const messageWindow = 100

// Message is one stored chat message. Immutable once persisted; ordered
// by timestamp.
type Message struct {
	SenderUID   string
	SenderName  string
	ReceiverUID string
	Content     string
	Timestamp   time.Time
}

// Backend is the room message subcollection in the store of record.
type Backend interface {
	// Add appends one message document to the room.
	Add(ctx context.Context, roomID string, m Message) error
	// Recent returns up to limit messages, newest first.
	Recent(ctx context.Context, roomID string, limit int) ([]Message, error)
}

// Store is the message store adapter.
type Store struct {
	backend Backend
}

func NewStore(b Backend) *Store {
	return &Store{backend: b}
}

// Append persists one message. An empty content, sender, or receiver is
// silently skipped; that is the guard against blank or malformed sends,
// not an error. A store failure is returned for the caller to report;
// the message is simply not persisted, there is no retry queue.
func (s *Store) Append(ctx context.Context, roomID, senderUID, senderName, receiverUID, content string) error {
	if content == "" || senderUID == "" || receiverUID == "" {
		return nil
	}
	m := Message{
		SenderUID:   senderUID,
		SenderName:  senderName,
		ReceiverUID: receiverUID,
		Content:     content,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.backend.Add(ctx, roomID, m); err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// List returns the most recent messages of the room, oldest first. The
// window is fetched newest-first from the store and reversed, so a room
// larger than the window still shows its latest traffic.
func (s *Store) List(ctx context.Context, roomID string) ([]Message, error) {
	msgs, err := s.backend.Recent(ctx, roomID, messageWindow)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	slices.Reverse(msgs)
	return msgs, nil
}
