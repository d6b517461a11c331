package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/PaulBabatuyi/msgBoard-REST/internal/data"
)

type fakeMessageStore struct {
	messages []*data.Message
	failWith error
	calls    int
}

func (f *fakeMessageStore) SaveMessage(ctx context.Context, msg, msgFrom string, msgDateTime time.Time) (*data.Message, error) {
	f.calls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	m := &data.Message{
		ID:          bson.NewObjectID(),
		Msg:         msg,
		MsgFrom:     msgFrom,
		MsgDateTime: msgDateTime,
	}
	f.messages = append(f.messages, m)
	return m, nil
}

func (f *fakeMessageStore) GetMessages(ctx context.Context) ([]*data.Message, error) {
	f.calls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]*data.Message, len(f.messages))
	copy(out, f.messages)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MsgDateTime.Before(out[j].MsgDateTime)
	})
	return out, nil
}

func TestSaveMessage_TrimsAndDefaults(t *testing.T) {
	store := &fakeMessageStore{}
	svc := NewMessageService(store)
	fixed := time.Date(2024, 6, 4, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	res := svc.SaveMessage(context.Background(), MessageCandidate{Msg: "  hello ", MsgFrom: " User1 "})
	require.True(t, res.Ok(), "unexpected error: %s", res.Err())

	assert.Equal(t, "hello", res.Value().Msg)
	assert.Equal(t, "User1", res.Value().MsgFrom)
	assert.True(t, res.Value().MsgDateTime.Equal(fixed), "timestamp should default to the process clock")
}

func TestSaveMessage_SuppliedTimestamp(t *testing.T) {
	store := &fakeMessageStore{}
	svc := NewMessageService(store)

	res := svc.SaveMessage(context.Background(), MessageCandidate{
		Msg:         "hello",
		MsgFrom:     "User1",
		MsgDateTime: "2024-06-05T08:30:00Z",
	})
	require.True(t, res.Ok())
	assert.True(t, res.Value().MsgDateTime.Equal(time.Date(2024, 6, 5, 8, 30, 0, 0, time.UTC)))
}

func TestSaveMessage_InvalidTimestampAcceptedSilently(t *testing.T) {
	store := &fakeMessageStore{}
	svc := NewMessageService(store)

	res := svc.SaveMessage(context.Background(), MessageCandidate{
		Msg:         "hello",
		MsgFrom:     "User1",
		MsgDateTime: "not-a-date",
	})
	require.True(t, res.Ok(), "an insane date is stored, not rejected")
	assert.True(t, res.Value().MsgDateTime.IsZero())
}

func TestSaveMessage_InvalidBodyNeverReachesStore(t *testing.T) {
	store := &fakeMessageStore{}
	svc := NewMessageService(store)

	cases := []MessageCandidate{
		{Msg: "", MsgFrom: "User1"},
		{Msg: "   ", MsgFrom: "User1"},
		{Msg: "hello", MsgFrom: ""},
		{Msg: "hello", MsgFrom: " \t "},
	}
	for _, cand := range cases {
		res := svc.SaveMessage(context.Background(), cand)
		require.False(t, res.Ok())
		assert.Equal(t, "Invalid message body", res.Err())
	}
	assert.Zero(t, store.calls, "invalid bodies must not create records")
}

func TestSaveMessage_StoreFailure(t *testing.T) {
	store := &fakeMessageStore{failWith: errors.New("socket closed")}
	svc := NewMessageService(store)

	res := svc.SaveMessage(context.Background(), MessageCandidate{Msg: "hello", MsgFrom: "User1"})
	require.False(t, res.Ok())
	assert.Equal(t, "Failed to save message", res.Err())
}

func TestGetMessages_AscendingOrder(t *testing.T) {
	store := &fakeMessageStore{}
	svc := NewMessageService(store)

	// inserted newest-first; listing must come back oldest-first
	later := svc.SaveMessage(context.Background(), MessageCandidate{
		Msg: "second", MsgFrom: "User1", MsgDateTime: "2024-06-05T00:00:00Z",
	})
	earlier := svc.SaveMessage(context.Background(), MessageCandidate{
		Msg: "first", MsgFrom: "User1", MsgDateTime: "2024-06-04T00:00:00Z",
	})
	require.True(t, later.Ok())
	require.True(t, earlier.Ok())

	got := svc.GetMessages(context.Background())
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Msg)
	assert.Equal(t, "second", got[1].Msg)
}

func TestGetMessages_EmptyOnStoreFailure(t *testing.T) {
	store := &fakeMessageStore{failWith: errors.New("boom")}
	svc := NewMessageService(store)

	got := svc.GetMessages(context.Background())
	require.NotNil(t, got, "callers receive an empty slice, never nil or an error")
	assert.Empty(t, got)
}

func TestGetMessages_EmptyBoard(t *testing.T) {
	store := &fakeMessageStore{}
	svc := NewMessageService(store)

	got := svc.GetMessages(context.Background())
	require.NotNil(t, got)
	assert.Empty(t, got)
}
