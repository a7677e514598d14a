package dto

import "time"

// SendMessageRequest entrada para enviar un mensaje interno.
type SendMessageRequest struct {
	Recipient string `json:"recipient" validate:"required,max=100"`
	Body      string `json:"body" validate:"required,min=1,max=2000"`
}

// MessageResponse salida de un mensaje.
type MessageResponse struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Recipient  string    `json:"recipient"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// NotificationResponse salida de una notificación interna.
type NotificationResponse struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Read       bool      `json:"read"`
	Timestamp  time.Time `json:"timestamp"`
	TargetRole string    `json:"target_role"`
}
