package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin       = "admin"
	RoleDistributor = "distributor"
	RoleClient      = "client"
)

// Estados de cuenta.
const (
	ClientStatusPending  = "pending"
	ClientStatusApproved = "approved"
)

// Client representa un cliente o distribuidor registrado.
// Las credenciales viven solo como hash bcrypt en PasswordHash; nunca se
// persiste una contraseña recuperable.
type Client struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Address      string
	CityPostcode string
	Role         string // admin | distributor | client
	Status       string // pending | approved
	BusinessName string
	VATNumber    string
	AvatarURL    string
	Pets         []PetDetails
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsApproved indica si la cuenta puede operar (los admin siempre pueden).
func (c *Client) IsApproved() bool {
	return c.Role == RoleAdmin || c.Status == ClientStatusApproved
}

// PetDetails datos de una mascota asociada a un cliente.
type PetDetails struct {
	ID        string
	ClientID  string
	Name      string
	Species   string
	Breed     string
	BirthDate time.Time
	Notes     string
}
