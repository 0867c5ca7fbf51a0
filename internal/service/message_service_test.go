package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketAPI/internal/models"
	"marketAPI/internal/queue"
	"marketAPI/internal/repository"
)

func TestMessageService_Send(t *testing.T) {
	messageRepo := new(MockMessageRepository)
	publisher := new(MockPublisher)
	svc := NewMessageService(messageRepo, publisher)
	ctx := context.Background()
	sent := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	messageRepo.On("Create", ctx, mock.MatchedBy(func(m *models.Message) bool {
		return m.ProductID == 10 && m.Sender == 2 && m.Receiver == 1 && m.Text == "is it available?"
	})).Return(nil).Run(func(args mock.Arguments) {
		m := args.Get(1).(*models.Message)
		m.MessageID = 5
		m.Time = sent
	})
	publisher.On("PublishMessageSent", ctx, queue.MessageSentEvent{
		MessageID: 5, ProductID: 10, Sender: 2, Receiver: 1, Text: "is it available?", Time: sent,
	}).Return(nil)

	message, err := svc.Send(ctx, SendMessageRequest{ProductID: 10, Sender: 2, Receiver: 1, Text: "is it available?"})

	require.NoError(t, err)
	assert.Equal(t, 5, message.MessageID)
	publisher.AssertExpectations(t)
}

func TestMessageService_Send_PublishFailureIsIgnored(t *testing.T) {
	messageRepo := new(MockMessageRepository)
	publisher := new(MockPublisher)
	svc := NewMessageService(messageRepo, publisher)
	ctx := context.Background()

	messageRepo.On("Create", ctx, mock.Anything).Return(nil)
	publisher.On("PublishMessageSent", ctx, mock.Anything).Return(errors.New("broker down"))

	message, err := svc.Send(ctx, SendMessageRequest{ProductID: 10, Sender: 2, Receiver: 1, Text: "hi"})

	require.NoError(t, err)
	assert.Equal(t, "hi", message.Text)
}

func TestMessageService_Send_UnknownProduct(t *testing.T) {
	messageRepo := new(MockMessageRepository)
	publisher := new(MockPublisher)
	svc := NewMessageService(messageRepo, publisher)
	ctx := context.Background()

	messageRepo.On("Create", ctx, mock.Anything).Return(repository.ErrProductNotFound)

	_, err := svc.Send(ctx, SendMessageRequest{ProductID: 404, Sender: 2, Receiver: 1, Text: "hi"})

	assert.ErrorIs(t, err, repository.ErrNotFound)
	publisher.AssertNotCalled(t, "PublishMessageSent", mock.Anything, mock.Anything)
}

func TestMessageService_NilPublisher(t *testing.T) {
	messageRepo := new(MockMessageRepository)
	svc := NewMessageService(messageRepo, nil)
	ctx := context.Background()

	messageRepo.On("Create", ctx, mock.Anything).Return(nil)

	_, err := svc.Send(ctx, SendMessageRequest{ProductID: 1, Sender: 2, Receiver: 3, Text: "hi"})

	assert.NoError(t, err)
}

func TestCategoryService_List(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	svc := NewCategoryService(categoryRepo)
	ctx := context.Background()

	categoryRepo.On("List", ctx).Return([]models.Category{{CategoryID: 1, Name: "Vehicles"}}, nil)

	categories, err := svc.List(ctx)

	require.NoError(t, err)
	assert.Len(t, categories, 1)
}
