package contract

import "time"

// FirestoreIdentity is the users/{uid} document. Written with merge
// semantics on every successful login; never deleted.
type FirestoreIdentity struct {
	UID         string    `firestore:"uid"`
	Email       string    `firestore:"email"`
	DisplayName string    `firestore:"displayName"`
	LastLogin   time.Time `firestore:"lastLogin"`
}

// FirestoreMessage is a chat_rooms/{roomId}/messages/{id} document.
// Immutable once stored.
type FirestoreMessage struct {
	SenderUID   string    `firestore:"sender_uid"`
	SenderName  string    `firestore:"sender_name"`
	ReceiverUID string    `firestore:"receiver_uid"`
	Content     string    `firestore:"content"`
	Timestamp   time.Time `firestore:"timestamp"`
}
