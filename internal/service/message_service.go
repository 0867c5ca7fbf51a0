package service

import (
	"context"
	"log"

	"marketAPI/internal/models"
	"marketAPI/internal/queue"
	"marketAPI/internal/repository"
)

type SendMessageRequest struct {
	ProductID int
	Sender    int
	Receiver  int
	Text      string
}

type MessageService interface {
	Send(ctx context.Context, req SendMessageRequest) (*models.Message, error)
}

type messageService struct {
	messageRepo repository.MessageRepository
	publisher   queue.Publisher
}

func NewMessageService(messageRepo repository.MessageRepository, publisher queue.Publisher) MessageService {
	if publisher == nil {
		publisher = queue.NoopPublisher{}
	}
	return &messageService{
		messageRepo: messageRepo,
		publisher:   publisher,
	}
}

// Send stores the message and then announces it. The receiver is taken as
// given; a failed announcement is logged and does not fail the send.
func (m *messageService) Send(ctx context.Context, req SendMessageRequest) (*models.Message, error) {
	message := &models.Message{
		ProductID: req.ProductID,
		Sender:    req.Sender,
		Receiver:  req.Receiver,
		Text:      req.Text,
	}

	if err := m.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	event := queue.MessageSentEvent{
		MessageID: message.MessageID,
		ProductID: message.ProductID,
		Sender:    message.Sender,
		Receiver:  message.Receiver,
		Text:      message.Text,
		Time:      message.Time,
	}
	if err := m.publisher.PublishMessageSent(ctx, event); err != nil {
		log.Printf("WARNING: message %d stored but event not published: %v", message.MessageID, err)
	}

	return message, nil
}
