package data

import (
	"context"
	"testing"
	"time"
)

func TestMessagesSaveAndList(t *testing.T) {
	c := setupDB(t)
	defer func() { _ = c.Close(context.Background()) }()

	msgs := NewMessagesStore(c.MessagesCollection())
	ctx := context.Background()

	// insert newest first; listing must come back oldest first
	later := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)

	if _, err := msgs.SaveMessage(ctx, "second", "User1", later); err != nil {
		t.Fatalf("SaveMessage failed: %v", err)
	}
	if _, err := msgs.SaveMessage(ctx, "first", "User2", earlier); err != nil {
		t.Fatalf("SaveMessage 2 failed: %v", err)
	}

	list, err := msgs.GetMessages(ctx)
	if err != nil {
		t.Fatalf("GetMessages failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(list))
	}
	if list[0].Msg != "first" || list[1].Msg != "second" {
		t.Fatalf("expected ascending timestamp order, got [%s %s]", list[0].Msg, list[1].Msg)
	}
}

func TestMessagesEqualTimestampsKeepInsertionOrder(t *testing.T) {
	c := setupDB(t)
	defer func() { _ = c.Close(context.Background()) }()

	msgs := NewMessagesStore(c.MessagesCollection())
	ctx := context.Background()

	at := time.Date(2024, 6, 4, 12, 0, 0, 0, time.UTC)
	for _, text := range []string{"a", "b", "c"} {
		if _, err := msgs.SaveMessage(ctx, text, "User1", at); err != nil {
			t.Fatalf("SaveMessage(%s) failed: %v", text, err)
		}
	}

	list, err := msgs.GetMessages(ctx)
	if err != nil {
		t.Fatalf("GetMessages failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(list))
	}
	for i, want := range []string{"a", "b", "c"} {
		if list[i].Msg != want {
			t.Fatalf("tie-break order broken at %d: got %s want %s", i, list[i].Msg, want)
		}
	}
}

func TestMessagesEmptyCollection(t *testing.T) {
	c := setupDB(t)
	defer func() { _ = c.Close(context.Background()) }()

	msgs := NewMessagesStore(c.MessagesCollection())

	list, err := msgs.GetMessages(context.Background())
	if err != nil {
		t.Fatalf("GetMessages failed: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty board, got %d messages", len(list))
	}
}
