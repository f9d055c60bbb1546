package chat

import (
	"context"
	"fmt"

	"cloud.google.com/go/compute/metadata"
	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/securechat/securechat/contract"
	"github.com/securechat/securechat/logger"
)

const (
	roomCollection    = "chat_rooms"
	messageCollection = "messages"
	timestampField    = "timestamp"
)

// Firestore is the Backend over chat_rooms/{roomId}/messages. Interleaved
// writes from both participants are serialized by Firestore itself; no
// client-side lock is held.
type Firestore struct{}

func (Firestore) Add(ctx context.Context, roomID string, m Message) error {
	client, err := newClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	_, err = client.Collection(roomCollection).
		Doc(roomID).
		Collection(messageCollection).
		Doc(uuid.NewString()).
		Set(ctx, contract.FirestoreMessage{
			SenderUID:   m.SenderUID,
			SenderName:  m.SenderName,
			ReceiverUID: m.ReceiverUID,
			Content:     m.Content,
			Timestamp:   m.Timestamp,
		})
	if err != nil {
		return fmt.Errorf("write message to room %s: %w", roomID, err)
	}
	return nil
}

func (Firestore) Recent(ctx context.Context, roomID string, limit int) ([]Message, error) {
	client, err := newClient(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	lg := logger.FromContext(ctx)

	var msgs []Message
	iter := client.Collection(roomCollection).
		Doc(roomID).
		Collection(messageCollection).
		OrderBy(timestampField, firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read messages of room %s: %w", roomID, err)
		}
		var fm contract.FirestoreMessage
		if err := doc.DataTo(&fm); err != nil {
			// quarantine malformed documents instead of failing the window
			lg.Printf("skipping malformed message doc %s in room %s: %v", doc.Ref.ID, roomID, err)
			continue
		}
		msgs = append(msgs, Message{
			SenderUID:   fm.SenderUID,
			SenderName:  fm.SenderName,
			ReceiverUID: fm.ReceiverUID,
			Content:     fm.Content,
			Timestamp:   fm.Timestamp,
		})
	}
	return msgs, nil
}

func newClient(ctx context.Context) (*firestore.Client, error) {
	projectID, err := metadata.ProjectIDWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve project ID: %w", err)
	}
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return client, nil
}
