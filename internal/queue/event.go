// Package queue defines the events the marketplace publishes to the message
// broker and the publisher that sends them.
package queue

import "time"

// MessageSentEvent is published after a buyer or seller message is stored.
type MessageSentEvent struct {
	MessageID int       `json:"message_id"`
	ProductID int       `json:"product_id"`
	Sender    int       `json:"sender"`
	Receiver  int       `json:"receiver"`
	Text      string    `json:"text"`
	Time      time.Time `json:"time"`
}
