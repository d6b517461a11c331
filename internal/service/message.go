package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/PaulBabatuyi/msgBoard-REST/internal/data"
	"github.com/PaulBabatuyi/msgBoard-REST/internal/normalize"
)

const (
	errInvalidMessage    = "Invalid message body"
	errSaveMessageFailed = "Failed to save message"
)

// MessageStore is the persistence port the message service depends on.
type MessageStore interface {
	SaveMessage(ctx context.Context, msg, msgFrom string, msgDateTime time.Time) (*data.Message, error)
	GetMessages(ctx context.Context) ([]*data.Message, error)
}

// MessageCandidate is an inbound message as received: text, author and
// an optional RFC3339 timestamp string.
type MessageCandidate struct {
	Msg         string
	MsgFrom     string
	MsgDateTime string
}

// MessageService implements the board operations over an injected store.
type MessageService struct {
	msgs MessageStore

	// now is the process clock; swapped out in tests
	now func() time.Time
}

// NewMessageService returns a MessageService backed by the given store.
func NewMessageService(msgs MessageStore) *MessageService {
	return &MessageService{msgs: msgs, now: time.Now}
}

// SaveMessage validates, normalizes and persists a candidate message,
// returning the full created record. The timestamp is the supplied
// value when present, the process clock otherwise. An empty msg or
// msgFrom after trimming fails without touching the store.
func (s *MessageService) SaveMessage(ctx context.Context, cand MessageCandidate) Result[data.Message] {
	msg := normalize.Field(cand.Msg)
	msgFrom := normalize.Field(cand.MsgFrom)

	if msg == "" || msgFrom == "" {
		return Fail[data.Message](errInvalidMessage)
	}

	msgDateTime := normalize.Timestamp(cand.MsgDateTime, s.now)

	saved, err := s.msgs.SaveMessage(ctx, msg, msgFrom, msgDateTime)
	if err != nil {
		log.Error().Err(err).Str("msgFrom", msgFrom).Msg("save message failed")
		return Fail[data.Message](errSaveMessageFailed)
	}

	return OK(*saved)
}

// GetMessages returns every message ordered ascending by timestamp.
// Any store failure is logged and reported as an empty board: callers
// cannot distinguish an empty collection from a failed fetch by the
// return value alone.
func (s *MessageService) GetMessages(ctx context.Context) []*data.Message {
	messages, err := s.msgs.GetMessages(ctx)
	if err != nil {
		log.Error().Err(err).Msg("get messages failed")
		return []*data.Message{}
	}
	if messages == nil {
		messages = []*data.Message{}
	}
	return messages
}
