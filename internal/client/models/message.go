package models

import "time"

type Conversation struct {
	ID           string    `json:"_id"`
	PropertyID   string    `json:"propertyId"`
	Participants []string  `json:"participants"`
	LastMessage  string    `json:"lastMessage"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Message struct {
	ID             string    `json:"_id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"createdAt"`
}
