package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mdc-pro/mdcpro-api/internal/application/dto"
	"github.com/mdc-pro/mdcpro-api/internal/domain"
	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
	"github.com/mdc-pro/mdcpro-api/internal/domain/repository"
	"github.com/mdc-pro/mdcpro-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Notifier publica la notificación de "cuenta nueva" para el panel admin.
// Es la interfaz mínima que auth necesita del módulo de notificaciones.
type Notifier interface {
	NotifyAccountPending(ctx context.Context, clientName string)
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	clientRepo repository.ClientRepository
	notifier   Notifier
	jwtCfg     JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(clientRepo repository.ClientRepository, notifier Notifier, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{clientRepo: clientRepo, notifier: notifier, jwtCfg: jwtCfg}
}

// Register crea una cuenta: hashea la contraseña con bcrypt y la deja en
// estado pending hasta aprobación del admin. Devuelve ErrEmailAlreadyExists
// si el email ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.ClientResponse, error) {
	existing, _ := uc.clientRepo.GetByEmail(ctx, in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleClient
	}
	now := time.Now()
	client := &entity.Client{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		Address:      in.Address,
		CityPostcode: in.CityPostcode,
		Role:         role,
		Status:       entity.ClientStatusPending,
		BusinessName: in.BusinessName,
		VATNumber:    in.VATNumber,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	if uc.notifier != nil {
		uc.notifier.NotifyAccountPending(ctx, client.Name)
	}
	return ToClientResponse(client), nil
}

// Login verifica email/password, exige cuenta aprobada y genera el JWT.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	client, err := uc.clientRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !client.IsApproved() {
		return nil, domain.ErrAccountNotApproved
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, client.ID, client.Email, client.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:  token,
		Client: *ToClientResponse(client),
	}, nil
}

// ToClientResponse convierte la entidad a su DTO de salida (sin credenciales).
func ToClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	resp := &dto.ClientResponse{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		CityPostcode: c.CityPostcode,
		Role:         c.Role,
		Status:       c.Status,
		BusinessName: c.BusinessName,
		VATNumber:    c.VATNumber,
		AvatarURL:    c.AvatarURL,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	for _, p := range c.Pets {
		resp.Pets = append(resp.Pets, ToPetResponse(p))
	}
	return resp
}

// ToPetResponse convierte una mascota a su DTO de salida.
func ToPetResponse(p entity.PetDetails) dto.PetResponse {
	out := dto.PetResponse{
		ID:      p.ID,
		Name:    p.Name,
		Species: p.Species,
		Breed:   p.Breed,
		Notes:   p.Notes,
	}
	if !p.BirthDate.IsZero() {
		out.BirthDate = p.BirthDate.Format("2006-01-02")
	}
	return out
}
