package domain

import (
	"fmt"
	"strings"
	"time"
)

type Message struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// InboxMessage is a received Message with the sender's public info.
type InboxMessage struct {
	Message
	Sender UserRef `json:"sender"`
}

// OutboxMessage is a sent Message with the receiver's public info.
type OutboxMessage struct {
	Message
	Receiver UserRef `json:"receiver"`
}

type SendMessageRequest struct {
	ReceiverID int64  `json:"receiver_id"`
	Content    string `json:"content"`
}

func (r *SendMessageRequest) Validate() error {
	if r.ReceiverID <= 0 {
		return fmt.Errorf("%w: receiver_id is required", ErrValidation)
	}
	if strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrValidation)
	}
	return nil
}
