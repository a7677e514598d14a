package repository

import (
	"context"

	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
)

// MessageRepository define el puerto de persistencia para mensajería interna.
type MessageRepository interface {
	Create(ctx context.Context, msg *entity.Message) error
	// ListConversation devuelve los mensajes enviados o recibidos por userID,
	// ordenados ascendente por fecha.
	ListConversation(ctx context.Context, userID string, limit int) ([]*entity.Message, error)
	ListAll(ctx context.Context, limit, offset int) ([]*entity.Message, error)
}

// NotificationRepository define el puerto de persistencia para notificaciones.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.AppNotification) error
	ListByRole(ctx context.Context, role string, unreadOnly bool, limit int) ([]*entity.AppNotification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, role string) error
}
