package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
	"github.com/mdc-pro/mdcpro-api/internal/infrastructure/record"
	"github.com/mdc-pro/mdcpro-api/internal/infrastructure/store"
	"github.com/mdc-pro/mdcpro-api/pkg/logger"
)

// memCache cache local en memoria para pruebas.
type memCache struct {
	data    map[string]string
	failGet bool
}

func newMemCache() *memCache { return &memCache{data: make(map[string]string)} }

func (m *memCache) Get(_ context.Context, collection string) (string, error) {
	if m.failGet {
		return "", errors.New("cache roto")
	}
	return m.data[collection], nil
}

func (m *memCache) Put(_ context.Context, collection, payload string) error {
	m.data[collection] = payload
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func ordersCollection(cache store.LocalCache) *store.Collection[entity.Order] {
	return store.NewCollection("orders", cache, testLogger(), record.OrderToRow, record.OrderFromRow)
}

func sampleOrders() []entity.Order {
	return []entity.Order{
		{
			ID: "o-1", OrderNumber: "PED-1", ClientEmail: "a@x.com",
			Total: decimal.NewFromFloat(45.90), Status: entity.OrderStatusPaid,
			Date: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), IsWholesale: true,
			Items: []entity.LineItem{entity.NewLineItem("li-1", "Snack de pollo", 6, decimal.NewFromFloat(9))},
		},
	}
}

// TestFetch_RemotoOk con el remoto disponible se devuelve su contenido y el
// cache queda refrescado con la colección completa.
func TestFetch_RemotoOk(t *testing.T) {
	cache := newMemCache()
	col := ordersCollection(cache)

	got, err := col.Fetch(context.Background(), func(context.Context) ([]entity.Order, error) {
		return sampleOrders(), nil
	})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotEmpty(t, cache.data["orders"], "el cache debe refrescarse tras la lectura remota")
}

// TestFetch_RemotoCaidoUsaCache cuando el remoto lanza error, la lectura
// devuelve el contenido del cache local sin propagar el error.
func TestFetch_RemotoCaidoUsaCache(t *testing.T) {
	cache := newMemCache()
	col := ordersCollection(cache)

	// Sembrar el cache con una lectura exitosa previa
	_, err := col.Fetch(context.Background(), func(context.Context) ([]entity.Order, error) {
		return sampleOrders(), nil
	})
	require.NoError(t, err)

	got, err := col.Fetch(context.Background(), func(context.Context) ([]entity.Order, error) {
		return nil, errors.New("conexión rechazada")
	})

	require.NoError(t, err, "la caída del remoto no debe propagarse")
	require.Len(t, got, 1)
	assert.Equal(t, "o-1", got[0].ID)
	assert.Equal(t, "PED-1", got[0].OrderNumber)
	assert.True(t, got[0].Total.Equal(decimal.NewFromFloat(45.90)))
}

// TestFetch_SinRemotoNiCache sin cache sembrado, la colección degrada a
// lista vacía (el cache responde pero está vacío).
func TestFetch_SinRemotoNiCache(t *testing.T) {
	col := ordersCollection(newMemCache())

	got, err := col.Fetch(context.Background(), func(context.Context) ([]entity.Order, error) {
		return nil, errors.New("conexión rechazada")
	})

	require.NoError(t, err)
	assert.Empty(t, got)
}

// TestFetch_RemotoYCacheCaidos si además el cache falla, se reporta el error
// remoto original.
func TestFetch_RemotoYCacheCaidos(t *testing.T) {
	cache := newMemCache()
	cache.failGet = true
	col := ordersCollection(cache)

	_, err := col.Fetch(context.Background(), func(context.Context) ([]entity.Order, error) {
		return nil, errors.New("conexión rechazada")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "conexión rechazada")
}

// TestReadLocal_BlobMalformado un blob corrupto en el cache degrada a lista
// vacía, nunca a error.
func TestReadLocal_BlobMalformado(t *testing.T) {
	cache := newMemCache()
	cache.data["orders"] = "{esto no es json"
	col := ordersCollection(cache)

	got, err := col.ReadLocal(context.Background())

	require.NoError(t, err)
	assert.Empty(t, got)
}

// TestReadLocal_BlobLegadoCamelCase el cache puede contener blobs escritos por
// la aplicación antigua en camelCase; se leen igual.
func TestReadLocal_BlobLegadoCamelCase(t *testing.T) {
	cache := newMemCache()
	cache.data["orders"] = `[{"id":"o-9","orderNumber":"PED-9","clientEmail":"old@app.com","isWholesale":true,"total":10.5,"items":[]}]`
	col := ordersCollection(cache)

	got, err := col.ReadLocal(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "PED-9", got[0].OrderNumber)
	assert.Equal(t, "old@app.com", got[0].ClientEmail)
	assert.True(t, got[0].IsWholesale)
}
