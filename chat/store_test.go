package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	added     []Message
	addErr    error
	recent    []Message
	recentErr error
	lastLimit int
}

func (f *fakeBackend) Add(_ context.Context, _ string, m Message) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, m)
	return nil
}

func (f *fakeBackend) Recent(_ context.Context, _ string, limit int) ([]Message, error) {
	f.lastLimit = limit
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	return f.recent, nil
}

func TestAppend(t *testing.T) {
	b := &fakeBackend{}
	s := NewStore(b)

	err := s.Append(context.Background(), "1_2", "1", "Alice", "2", "hi")
	require.NoError(t, err)
	require.Len(t, b.added, 1)
	assert.Equal(t, "1", b.added[0].SenderUID)
	assert.Equal(t, "Alice", b.added[0].SenderName)
	assert.Equal(t, "2", b.added[0].ReceiverUID)
	assert.Equal(t, "hi", b.added[0].Content)
	assert.False(t, b.added[0].Timestamp.IsZero())
}

func TestAppendGuardSkipsSilently(t *testing.T) {
	tests := []struct {
		name                            string
		senderUID, receiverUID, content string
	}{
		{name: "empty content", senderUID: "1", receiverUID: "2", content: ""},
		{name: "empty sender", senderUID: "", receiverUID: "2", content: "hi"},
		{name: "empty receiver", senderUID: "1", receiverUID: "", content: "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeBackend{}
			s := NewStore(b)

			err := s.Append(context.Background(), "1_2", tt.senderUID, "Alice", tt.receiverUID, tt.content)
			require.NoError(t, err)
			assert.Empty(t, b.added, "guard must not reach the store")
		})
	}
}

func TestAppendStoreFailure(t *testing.T) {
	b := &fakeBackend{addErr: errors.New("firestore unavailable")}
	s := NewStore(b)

	err := s.Append(context.Background(), "1_2", "1", "Alice", "2", "hi")
	require.Error(t, err)
}

func TestListReturnsOldestFirst(t *testing.T) {
	t1 := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)
	b := &fakeBackend{recent: []Message{
		{SenderUID: "2", Content: "yo", Timestamp: t2},
		{SenderUID: "1", Content: "hi", Timestamp: t1},
	}}
	s := NewStore(b)

	got, err := s.List(context.Background(), "1_2")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "hi", got[0].Content)
	assert.Equal(t, "yo", got[1].Content)
	assert.False(t, got[1].Timestamp.Before(got[0].Timestamp))
}

func TestListRequestsTheWindowLimit(t *testing.T) {
	b := &fakeBackend{}
	s := NewStore(b)

	_, err := s.List(context.Background(), "1_2")
	require.NoError(t, err)
	assert.Equal(t, 100, b.lastLimit)
}

func TestListStoreFailure(t *testing.T) {
	b := &fakeBackend{recentErr: errors.New("firestore unavailable")}
	s := NewStore(b)

	got, err := s.List(context.Background(), "1_2")
	require.Error(t, err)
	assert.Empty(t, got)
}
