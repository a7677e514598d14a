package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdc-pro/mdcpro-api/pkg/logger"
)

func newTestHub() *Hub {
	return NewHub("postgres://localhost/test", "mdcpro_messages", logger.New(logger.Config{Level: "disabled"}))
}

func TestHub_BroadcastEntregaATodos(t *testing.T) {
	h := newTestHub()
	ch1, cancel1 := h.Subscribe()
	ch2, cancel2 := h.Subscribe()
	defer cancel1()
	defer cancel2()

	h.Broadcast(`{"body":"hola"}`)

	require.Len(t, ch1, 1)
	require.Len(t, ch2, 1)
	assert.Equal(t, `{"body":"hola"}`, <-ch1)
	assert.Equal(t, `{"body":"hola"}`, <-ch2)
}

func TestHub_UnsubscribeCierraElCanal(t *testing.T) {
	h := newTestHub()
	ch, cancel := h.Subscribe()
	cancel()
	// doble cancel no debe entrar en pánico
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// broadcast tras la baja no debe entrar en pánico
	h.Broadcast("x")
}

func TestHub_SuscriptorLentoNoBloquea(t *testing.T) {
	h := newTestHub()
	ch, cancel := h.Subscribe()
	defer cancel()

	for i := 0; i < 50; i++ {
		h.Broadcast("evento")
	}
	// el buffer es 16; el resto se descarta sin bloquear
	assert.Equal(t, 16, len(ch))
}
