package directory

import (
	"context"
	"fmt"

	"cloud.google.com/go/compute/metadata"
	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/securechat/securechat/contract"
	"github.com/securechat/securechat/logger"
)

const userCollection = "users"

// Firestore is the Store backed by the users collection.
type Firestore struct{}

func (Firestore) ListUsers(ctx context.Context) ([]Entry, error) {
	client, err := newClient(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	lg := logger.FromContext(ctx)

	var entries []Entry
	iter := client.Collection(userCollection).Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("stream users: %w", err)
		}
		var u contract.FirestoreIdentity
		if err := doc.DataTo(&u); err != nil {
			// quarantine malformed documents instead of failing the listing
			lg.Printf("skipping malformed user doc %s: %v", doc.Ref.ID, err)
			continue
		}
		entries = append(entries, Entry{
			UID:         u.UID,
			Email:       u.Email,
			DisplayName: u.DisplayName,
		})
	}
	return entries, nil
}

func (Firestore) UpsertIdentity(ctx context.Context, e Entry) error {
	client, err := newClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	_, err = client.Collection(userCollection).Doc(e.UID).Set(ctx, map[string]any{
		"uid":         e.UID,
		"email":       e.Email,
		"displayName": e.DisplayName,
		"lastLogin":   firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("upsert user %s: %w", e.UID, err)
	}
	return nil
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
