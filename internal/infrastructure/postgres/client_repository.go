package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mdc-pro/mdcpro-api/internal/domain"
	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
	"github.com/mdc-pro/mdcpro-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository sobre PostgreSQL (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, name, email, password_hash, phone, address, city_postcode,
	role, status, business_name, vat_number, avatar_url, created_at, updated_at`

// Create persiste un cliente nuevo. Retorna ErrEmailAlreadyExists si el email ya existe.
func (r *ClientRepo) Create(ctx context.Context, client *entity.Client) error {
	if client.ID == "" {
		client.ID = uuid.New().String()
	}
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		client.ID, client.Name, client.Email, client.PasswordHash, client.Phone,
		client.Address, client.CityPostcode, client.Role, client.Status,
		nullIfEmpty(client.BusinessName), nullIfEmpty(client.VATNumber), nullIfEmpty(client.AvatarURL),
		client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepo) scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	var business, vat, avatar *string
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.Phone, &c.Address, &c.CityPostcode,
		&c.Role, &c.Status, &business, &vat, &avatar, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan client: %w", err)
	}
	c.BusinessName = derefStr(business)
	c.VATNumber = derefStr(vat)
	c.AvatarURL = derefStr(avatar)
	return &c, nil
}

// GetByID obtiene un cliente por id; nil si no existe.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	return r.scanClient(r.q.QueryRow(ctx, query, id))
}

// GetByEmail obtiene un cliente por email; nil si no existe.
func (r *ClientRepo) GetByEmail(ctx context.Context, email string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE email = $1`
	return r.scanClient(r.q.QueryRow(ctx, query, email))
}

// List filtra por rol y/o estado; cadenas vacías no filtran.
func (r *ClientRepo) List(ctx context.Context, role, status string, limit, offset int) ([]*entity.Client, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE ($1 = '' OR role = $1) AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, role, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := r.scanClient(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza los datos editables del perfil (nunca el email ni el hash por esta vía).
func (r *ClientRepo) Update(ctx context.Context, client *entity.Client) error {
	query := `
		UPDATE clients
		SET name = $2, phone = $3, address = $4, city_postcode = $5,
		    business_name = $6, vat_number = $7, avatar_url = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		client.ID, client.Name, client.Phone, client.Address, client.CityPostcode,
		nullIfEmpty(client.BusinessName), nullIfEmpty(client.VATNumber), nullIfEmpty(client.AvatarURL),
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia el estado de la cuenta (aprobación de distribuidores).
func (r *ClientRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE clients SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update client status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el cliente y sus mascotas (cascade).
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddPet registra una mascota del cliente.
func (r *ClientRepo) AddPet(ctx context.Context, pet *entity.PetDetails) error {
	if pet.ID == "" {
		pet.ID = uuid.New().String()
	}
	var birth *time.Time
	if !pet.BirthDate.IsZero() {
		birth = &pet.BirthDate
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO pets (id, client_id, name, species, breed, birth_date, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		pet.ID, pet.ClientID, pet.Name, pet.Species, pet.Breed, birth, pet.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert pet: %w", err)
	}
	return nil
}

// ListPets devuelve las mascotas del cliente.
func (r *ClientRepo) ListPets(ctx context.Context, clientID string) ([]*entity.PetDetails, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, client_id, name, species, breed, birth_date, notes
		 FROM pets WHERE client_id = $1 ORDER BY name`,
		clientID,
	)
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	defer rows.Close()
	var list []*entity.PetDetails
	for rows.Next() {
		var p entity.PetDetails
		var birth *time.Time
		if err := rows.Scan(&p.ID, &p.ClientID, &p.Name, &p.Species, &p.Breed, &birth, &p.Notes); err != nil {
			return nil, fmt.Errorf("scan pet: %w", err)
		}
		if birth != nil {
			p.BirthDate = *birth
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// DeletePet elimina una mascota.
func (r *ClientRepo) DeletePet(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
