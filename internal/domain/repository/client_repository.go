package repository

import (
	"context"

	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client y sus mascotas.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	GetByEmail(ctx context.Context, email string) (*entity.Client, error)
	// List filtra por rol y/o estado; cadenas vacías no filtran.
	List(ctx context.Context, role, status string, limit, offset int) ([]*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error

	AddPet(ctx context.Context, pet *entity.PetDetails) error
	ListPets(ctx context.Context, clientID string) ([]*entity.PetDetails, error)
	DeletePet(ctx context.Context, id string) error
}
