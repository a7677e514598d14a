// Package store implementa la política de respaldo offline: toda lectura de
// colección intenta primero el almacén remoto y, ante cualquier error, cae de
// forma transparente al cache local. El remoto es siempre autoritativo; el
// cache se refresca de manera oportunista tras cada lectura remota exitosa y
// tras cada escritura remota exitosa (vía Refresh desde los casos de uso).
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mdc-pro/mdcpro-api/internal/infrastructure/record"
	"github.com/mdc-pro/mdcpro-api/pkg/logger"
)

// LocalCache puerto del cache local (implementado por localstore sobre
// stoolap). Una clave por colección; el payload es la colección completa.
type LocalCache interface {
	Get(ctx context.Context, collection string) (string, error)
	Put(ctx context.Context, collection, payload string) error
}

// Collection lectura con respaldo para una colección de entidades. La
// serialización pasa por los mappers explícitos de record, de modo que el
// cache queda en la convención de almacenamiento (snake_case) y puede leer
// blobs heredados en camelCase.
type Collection[T any] struct {
	name    string
	cache   LocalCache
	log     *logger.Logger
	toRow   func(T) record.Row
	fromRow func(record.Row) T
}

// NewCollection construye la colección con sus mappers.
func NewCollection[T any](
	name string,
	cache LocalCache,
	log *logger.Logger,
	toRow func(T) record.Row,
	fromRow func(record.Row) T,
) *Collection[T] {
	return &Collection[T]{name: name, cache: cache, log: log, toRow: toRow, fromRow: fromRow}
}

// Fetch intenta la lectura remota; si falla, devuelve el contenido del cache
// local. Si el remoto responde, refresca el cache antes de devolver.
func (c *Collection[T]) Fetch(ctx context.Context, remote func(context.Context) ([]T, error)) ([]T, error) {
	items, err := remote(ctx)
	if err != nil {
		c.log.Warn().Err(err).Str("collection", c.name).
			Msg("almacén remoto no disponible, usando cache local")
		local, lerr := c.ReadLocal(ctx)
		if lerr != nil {
			// Sin remoto y sin cache: se reporta el error remoto original
			return nil, fmt.Errorf("colección %s sin remoto ni cache: %w", c.name, err)
		}
		return local, nil
	}
	c.Refresh(ctx, items)
	return items, nil
}

// Refresh sobrescribe el cache local con la colección dada (best effort: un
// fallo del cache solo se loguea, nunca afecta la operación principal).
func (c *Collection[T]) Refresh(ctx context.Context, items []T) {
	rows := make([]record.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, c.toRow(it))
	}
	payload, err := json.Marshal(rows)
	if err != nil {
		c.log.Error().Err(err).Str("collection", c.name).Msg("serializar cache local")
		return
	}
	if err := c.cache.Put(ctx, c.name, string(payload)); err != nil {
		c.log.Warn().Err(err).Str("collection", c.name).Msg("refrescar cache local")
	}
}

// ReadLocal devuelve el contenido del cache local. Colección nunca escrita o
// blob malformado degradan a lista vacía, no a error (política "nunca romper
// la vista"); solo un fallo del propio cache se propaga.
func (c *Collection[T]) ReadLocal(ctx context.Context) ([]T, error) {
	payload, err := c.cache.Get(ctx, c.name)
	if err != nil {
		return nil, fmt.Errorf("leer cache local %s: %w", c.name, err)
	}
	if payload == "" {
		return []T{}, nil
	}
	var rows []record.Row
	if err := json.Unmarshal([]byte(payload), &rows); err != nil {
		c.log.Warn().Err(err).Str("collection", c.name).Msg("cache local malformado, se ignora")
		return []T{}, nil
	}
	items := make([]T, 0, len(rows))
	for _, row := range rows {
		items = append(items, c.fromRow(row))
	}
	return items, nil
}
