package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/mdc-pro/mdcpro-api/internal/domain"
	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
	"github.com/mdc-pro/mdcpro-api/internal/domain/repository"
	"github.com/mdc-pro/mdcpro-api/internal/infrastructure/record"
)

var _ repository.MessageRepository = (*MessageRepo)(nil)

// MessagesChannel canal NOTIFY donde se publica cada mensaje insertado; el
// hub de realtime lo escucha con LISTEN para empujar al stream SSE.
const MessagesChannel = "mdcpro_messages"

// MessageRepo implementación de MessageRepository sobre PostgreSQL (usable con pool o tx).
type MessageRepo struct {
	q Querier
}

// NewMessageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMessageRepository(q Querier) *MessageRepo {
	return &MessageRepo{q: q}
}

// Create persiste el mensaje y lo publica en el canal NOTIFY para los
// suscriptores del feed en vivo.
func (r *MessageRepo) Create(ctx context.Context, msg *entity.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO messages (id, sender_id, sender_name, recipient, body, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		msg.ID, msg.SenderID, msg.SenderName, msg.Recipient, msg.Body, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}

	payload, err := json.Marshal(record.MessageToRow(*msg))
	if err != nil {
		return fmt.Errorf("serializar notify: %w", err)
	}
	if _, err := r.q.Exec(ctx, `SELECT pg_notify($1, $2)`, MessagesChannel, string(payload)); err != nil {
		return fmt.Errorf("pg_notify message: %w", err)
	}
	return nil
}

// ListConversation devuelve los mensajes enviados o recibidos por userID,
// ascendente por fecha.
func (r *MessageRepo) ListConversation(ctx context.Context, userID string, limit int) ([]*entity.Message, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, sender_id, sender_name, recipient, body, created_at
		 FROM messages
		 WHERE sender_id = $1 OR recipient = $1
		 ORDER BY created_at
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list conversation: %w", err)
	}
	defer rows.Close()
	var list []*entity.Message
	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.SenderName, &m.Recipient, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListAll devuelve todos los mensajes (vista de administración), descendente.
func (r *MessageRepo) ListAll(ctx context.Context, limit, offset int) ([]*entity.Message, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, sender_id, sender_name, recipient, body, created_at
		 FROM messages ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()
	var list []*entity.Message
	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.SenderName, &m.Recipient, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación de NotificationRepository sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create persiste una notificación.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.AppNotification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO notifications (id, type, title, message, read, timestamp, target_role)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.Type, n.Title, n.Message, n.Read, n.Timestamp, n.TargetRole,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListByRole devuelve las notificaciones de un rol, descendente por fecha.
func (r *NotificationRepo) ListByRole(ctx context.Context, role string, unreadOnly bool, limit int) ([]*entity.AppNotification, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, type, title, message, read, timestamp, target_role
		 FROM notifications
		 WHERE target_role = $1 AND ($2 = FALSE OR read = FALSE)
		 ORDER BY timestamp DESC
		 LIMIT $3`,
		role, unreadOnly, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.AppNotification
	for rows.Next() {
		var n entity.AppNotification
		if err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Message, &n.Read, &n.Timestamp, &n.TargetRole); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// MarkRead marca una notificación como leída.
func (r *NotificationRepo) MarkRead(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkAllRead marca todas las notificaciones del rol como leídas.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, role string) error {
	_, err := r.q.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE target_role = $1`, role)
	if err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}
