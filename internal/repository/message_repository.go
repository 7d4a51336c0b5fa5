package repository

import (
	"context"
	"time"

	"github.com/rentora/rentora-api/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, senderID, receiverID int64, content string) (*domain.Message, error)
	ListReceived(ctx context.Context, userID int64) ([]domain.InboxMessage, error)
	ListSent(ctx context.Context, userID int64) ([]domain.OutboxMessage, error)
}

type messageRepository struct {
	db DB
}

func NewMessageRepository(db DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, senderID, receiverID int64, content string) (*domain.Message, error) {
	const q = `
		INSERT INTO messages (sender_id, receiver_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, sender_id, receiver_id, content, created_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var m domain.Message
	err := r.db.QueryRow(ctx, q, senderID, receiverID, content).Scan(
		&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *messageRepository) ListReceived(ctx context.Context, userID int64) ([]domain.InboxMessage, error) {
	const q = `
		SELECT m.id, m.sender_id, m.receiver_id, m.content, m.created_at,
		       u.id, u.name, u.email
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.receiver_id = $1
		ORDER BY m.created_at DESC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.InboxMessage
	for rows.Next() {
		var m domain.InboxMessage
		if err := rows.Scan(
			&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.CreatedAt,
			&m.Sender.ID, &m.Sender.Name, &m.Sender.Email,
		); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *messageRepository) ListSent(ctx context.Context, userID int64) ([]domain.OutboxMessage, error) {
	const q = `
		SELECT m.id, m.sender_id, m.receiver_id, m.content, m.created_at,
		       u.id, u.name, u.email
		FROM messages m
		JOIN users u ON u.id = m.receiver_id
		WHERE m.sender_id = $1
		ORDER BY m.created_at DESC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.OutboxMessage
	for rows.Next() {
		var m domain.OutboxMessage
		if err := rows.Scan(
			&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.CreatedAt,
			&m.Receiver.ID, &m.Receiver.Name, &m.Receiver.Email,
		); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
