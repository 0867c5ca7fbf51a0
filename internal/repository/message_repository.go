package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"marketAPI/internal/models"
)

const messageColumns = `message_id, product_id, sender, receiver, text, time`

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	query := `
		INSERT INTO message (product_id, sender, receiver, text, time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING message_id
	`

	if message.Time.IsZero() {
		message.Time = time.Now()
	}

	err := r.db.QueryRowxContext(ctx, query,
		message.ProductID,
		message.Sender,
		message.Receiver,
		message.Text,
		message.Time,
	).Scan(&message.MessageID)
	if err != nil {
		return fmt.Errorf("failed to save message: %w", mapStoreError("message", err))
	}

	return nil
}

// ListByProduct returns every thread of the product, oldest first.
func (r *messageRepository) ListByProduct(ctx context.Context, productID int) ([]models.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM message WHERE product_id = $1 ORDER BY time ASC`

	messages := []models.Message{}
	if err := r.db.SelectContext(ctx, &messages, query, productID); err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	return messages, nil
}

// ListThread returns the messages exchanged between the owner and one
// counterpart on the product, oldest first.
func (r *messageRepository) ListThread(ctx context.Context, productID, ownerID, counterpartID int) ([]models.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM message
		WHERE product_id = $1 AND ((sender = $2 AND receiver = $3) OR (sender = $3 AND receiver = $2))
		ORDER BY time ASC`

	messages := []models.Message{}
	if err := r.db.SelectContext(ctx, &messages, query, productID, ownerID, counterpartID); err != nil {
		return nil, fmt.Errorf("failed to get message thread: %w", err)
	}

	return messages, nil
}
