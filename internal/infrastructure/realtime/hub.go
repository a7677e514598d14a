// Package realtime distribuye eventos de mensajería en vivo usando
// LISTEN/NOTIFY de PostgreSQL: una conexión dedicada escucha el canal y
// reparte cada payload a los suscriptores activos (streams SSE).
package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mdc-pro/mdcpro-api/pkg/logger"
)

// Hub reparte los payloads NOTIFY a los suscriptores.
type Hub struct {
	dsn     string
	channel string
	log     *logger.Logger

	mu   sync.Mutex
	subs map[chan string]struct{}
}

// NewHub construye el hub. channel es el canal de pg_notify a escuchar.
func NewHub(dsn, channel string, log *logger.Logger) *Hub {
	return &Hub{
		dsn:     dsn,
		channel: channel,
		log:     log,
		subs:    make(map[chan string]struct{}),
	}
}

// Subscribe registra un suscriptor y devuelve su canal junto con la función
// para darse de baja. El canal tiene buffer; si el suscriptor se atasca se
// descartan eventos en vez de bloquear al hub.
func (h *Hub) Subscribe() (<-chan string, func()) {
	ch := make(chan string, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	unsubscribe := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, unsubscribe
}

// Broadcast entrega el payload a todos los suscriptores activos.
func (h *Hub) Broadcast(payload string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- payload:
		default:
			// suscriptor lento: se pierde este evento
		}
	}
}

// Listen mantiene la conexión LISTEN hasta que ctx se cancele, reconectando
// con backoff ante caídas. Pensado para correr en su propia goroutine.
func (h *Hub) Listen(ctx context.Context) {
	backoff := time.Second
	for {
		if err := h.listenOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			h.log.Warn().Err(err).Dur("retry_in", backoff).Msg("conexión LISTEN caída, reintentando")
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		return
	}
}

func (h *Hub) listenOnce(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, h.dsn)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{h.channel}.Sanitize()); err != nil {
		return err
	}
	h.log.Info().Str("channel", h.channel).Msg("escuchando notificaciones de PostgreSQL")

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		h.Broadcast(n.Payload)
	}
}
