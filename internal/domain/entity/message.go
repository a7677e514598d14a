package entity

import "time"

// Message mensaje interno entre un usuario y la administración.
type Message struct {
	ID         string
	SenderID   string
	SenderName string
	Recipient  string // id de usuario o rol destino
	Body       string
	CreatedAt  time.Time
}
