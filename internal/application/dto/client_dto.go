package dto

import "time"

// RegisterRequest entrada de registro de cuenta. La contraseña viaja en texto
// y se hashea en el caso de uso; nunca se persiste recuperable.
type RegisterRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Phone        string `json:"phone" validate:"omitempty,max=30"`
	Address      string `json:"address" validate:"omitempty,max=300"`
	CityPostcode string `json:"city_postcode" validate:"omitempty,max=100"`
	Role         string `json:"role" validate:"omitempty,oneof=distributor client"`
	BusinessName string `json:"business_name" validate:"omitempty,max=200"`
	VATNumber    string `json:"vat_number" validate:"omitempty,max=30"`
}

// LoginRequest entrada de login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token  string         `json:"token"`
	Client ClientResponse `json:"client"`
}

// ClientResponse salida de una cuenta (nunca incluye credenciales).
type ClientResponse struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone,omitempty"`
	Address      string        `json:"address,omitempty"`
	CityPostcode string        `json:"city_postcode,omitempty"`
	Role         string        `json:"role"`
	Status       string        `json:"status"`
	BusinessName string        `json:"business_name,omitempty"`
	VATNumber    string        `json:"vat_number,omitempty"`
	AvatarURL    string        `json:"avatar_url,omitempty"`
	Pets         []PetResponse `json:"pets,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// UpdateClientRequest entrada para editar el perfil.
type UpdateClientRequest struct {
	Name         string `json:"name" validate:"omitempty,min=1,max=200"`
	Phone        string `json:"phone" validate:"omitempty,max=30"`
	Address      string `json:"address" validate:"omitempty,max=300"`
	CityPostcode string `json:"city_postcode" validate:"omitempty,max=100"`
	BusinessName string `json:"business_name" validate:"omitempty,max=200"`
	VATNumber    string `json:"vat_number" validate:"omitempty,max=30"`
}

// UpdateClientStatusRequest entrada para aprobar/suspender cuentas (solo admin).
type UpdateClientStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved"`
}

// CreatePetRequest entrada para registrar una mascota del cliente.
type CreatePetRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=100"`
	Species   string `json:"species" validate:"required,max=50"`
	Breed     string `json:"breed" validate:"omitempty,max=100"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Notes     string `json:"notes" validate:"omitempty,max=500"`
}

// PetResponse salida de una mascota.
type PetResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Species   string `json:"species"`
	Breed     string `json:"breed,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
	Notes     string `json:"notes,omitempty"`
}
