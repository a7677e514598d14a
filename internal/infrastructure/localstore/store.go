// Package localstore implementa el cache local de respaldo sobre una base
// stoolap embebida (pure Go, sin proceso externo). Cada colección de
// entidades se guarda como un único documento JSON: la escritura siempre
// sobrescribe la colección completa, no hay sync incremental, y el remoto es
// autoritativo cuando está disponible.
package localstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/stoolap/stoolap/pkg/driver"
)

// Store cache local clave → JSON por colección.
type Store struct {
	db *sql.DB
}

// Open abre (o crea) la base embebida. DSN: "file://<ruta>" para persistir en
// disco o "memory://" para pruebas.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("stoolap", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir cache local: %w", err)
	}
	s := &Store{db: db}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	const ddl = `CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		payload TEXT,
		updated_at TIMESTAMP
	)`
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("crear tabla collections: %w", err)
	}
	return nil
}

// Get devuelve el JSON de la colección, o cadena vacía si nunca se escribió.
func (s *Store) Get(ctx context.Context, collection string) (string, error) {
	const q = `SELECT payload FROM collections WHERE name = ?`
	var payload string
	err := s.db.QueryRowContext(ctx, q, collection).Scan(&payload)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("leer colección %s: %w", collection, err)
	}
	return payload, nil
}

// Put sobrescribe la colección completa con el JSON dado.
func (s *Store) Put(ctx context.Context, collection, payload string) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE collections SET payload = ?, updated_at = ? WHERE name = ?`,
		payload, now, collection,
	)
	if err != nil {
		return fmt.Errorf("actualizar colección %s: %w", collection, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO collections (name, payload, updated_at) VALUES (?, ?, ?)`,
		collection, payload, now,
	)
	if err != nil {
		return fmt.Errorf("insertar colección %s: %w", collection, err)
	}
	return nil
}

// Close cierra la base embebida.
func (s *Store) Close() error {
	return s.db.Close()
}
