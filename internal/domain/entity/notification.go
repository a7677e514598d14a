package entity

import "time"

// Tipos de notificación.
const (
	NotificationTypeOrder     = "order"
	NotificationTypeStock     = "stock"
	NotificationTypeAccount   = "account"
	NotificationTypeMessage   = "message"
)

// AppNotification notificación interna dirigida a un rol.
type AppNotification struct {
	ID         string
	Type       string
	Title      string
	Message    string
	Read       bool
	Timestamp  time.Time
	TargetRole string // admin | distributor | client
}
