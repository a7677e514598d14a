package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/mdc-pro/mdcpro-api/internal/application/auth"
	"github.com/mdc-pro/mdcpro-api/internal/application/dto"
	"github.com/mdc-pro/mdcpro-api/internal/domain"
	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
	"github.com/mdc-pro/mdcpro-api/internal/domain/repository"
	"github.com/mdc-pro/mdcpro-api/pkg/logger"
)

// AvatarStore puerto del almacenamiento de archivos para fotos de perfil.
type AvatarStore interface {
	Upload(ownerID, filename string, r io.Reader) (string, error)
	PublicURL(rel string) string
}

// EmailSender puerto del envío de correos.
type EmailSender interface {
	Send(to, subject, htmlBody string) error
}

// ClientUseCase casos de uso del CRM: cuentas, aprobación, perfil y mascotas.
type ClientUseCase struct {
	clientRepo repository.ClientRepository
	notifRepo  repository.NotificationRepository
	avatars    AvatarStore
	mailer     EmailSender
	log        *logger.Logger
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(
	clientRepo repository.ClientRepository,
	notifRepo repository.NotificationRepository,
	avatars AvatarStore,
	mailer EmailSender,
	log *logger.Logger,
) *ClientUseCase {
	return &ClientUseCase{
		clientRepo: clientRepo,
		notifRepo:  notifRepo,
		avatars:    avatars,
		mailer:     mailer,
		log:        log,
	}
}

// List lista cuentas filtrando por rol y/o estado (vacío = sin filtro).
func (uc *ClientUseCase) List(ctx context.Context, role, status string, page dto.PageRequest) ([]*dto.ClientResponse, error) {
	page.DefaultPage()
	clients, err := uc.clientRepo.List(ctx, role, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, auth.ToClientResponse(c))
	}
	return out, nil
}

// GetByID devuelve una cuenta con sus mascotas.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	client, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	pets, err := uc.clientRepo.ListPets(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, p := range pets {
		client.Pets = append(client.Pets, *p)
	}
	return auth.ToClientResponse(client), nil
}

// UpdateStatus aprueba o suspende una cuenta y avisa al titular por correo.
func (uc *ClientUseCase) UpdateStatus(ctx context.Context, id, status string) error {
	client, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}
	if err := uc.clientRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	if status == entity.ClientStatusApproved {
		if err := uc.notifRepo.Create(ctx, &entity.AppNotification{
			ID:         uuid.New().String(),
			Type:       entity.NotificationTypeAccount,
			Title:      "Cuenta aprobada",
			Message:    fmt.Sprintf("La cuenta de %s fue aprobada", client.Name),
			Timestamp:  time.Now(),
			TargetRole: client.Role,
		}); err != nil {
			uc.log.Warn().Err(err).Str("client_id", id).Msg("no se pudo registrar la notificación de aprobación")
		}
		if uc.mailer != nil {
			body := fmt.Sprintf("<p>Hola %s,</p><p>Tu cuenta ya está aprobada: puedes iniciar sesión y hacer pedidos.</p>", client.Name)
			if err := uc.mailer.Send(client.Email, "Tu cuenta fue aprobada", body); err != nil {
				uc.log.Warn().Err(err).Str("to", client.Email).Msg("no se pudo enviar el correo de aprobación")
			}
		}
	}
	uc.log.Info().Str("client_id", id).Str("status", status).Msg("estado de cuenta actualizado")
	return nil
}

// UpdateProfile edita los datos del perfil; los campos vacíos no se tocan.
func (uc *ClientUseCase) UpdateProfile(ctx context.Context, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		client.Name = in.Name
	}
	if in.Phone != "" {
		client.Phone = in.Phone
	}
	if in.Address != "" {
		client.Address = in.Address
	}
	if in.CityPostcode != "" {
		client.CityPostcode = in.CityPostcode
	}
	if in.BusinessName != "" {
		client.BusinessName = in.BusinessName
	}
	if in.VATNumber != "" {
		client.VATNumber = in.VATNumber
	}
	client.UpdatedAt = time.Now()
	if err := uc.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return auth.ToClientResponse(client), nil
}

// UploadAvatar guarda la foto de perfil y persiste su URL pública.
func (uc *ClientUseCase) UploadAvatar(ctx context.Context, id, filename string, r io.Reader) (string, error) {
	client, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if client == nil {
		return "", domain.ErrNotFound
	}
	rel, err := uc.avatars.Upload(id, filename, r)
	if err != nil {
		return "", err
	}
	client.AvatarURL = uc.avatars.PublicURL(rel)
	client.UpdatedAt = time.Now()
	if err := uc.clientRepo.Update(ctx, client); err != nil {
		return "", err
	}
	return client.AvatarURL, nil
}

// Delete elimina una cuenta (solo admin desde el handler).
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	return uc.clientRepo.Delete(ctx, id)
}

// AddPet registra una mascota del cliente.
func (uc *ClientUseCase) AddPet(ctx context.Context, clientID string, in dto.CreatePetRequest) (*dto.PetResponse, error) {
	client, err := uc.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	pet := &entity.PetDetails{
		ID:       uuid.New().String(),
		ClientID: clientID,
		Name:     in.Name,
		Species:  in.Species,
		Breed:    in.Breed,
		Notes:    in.Notes,
	}
	if in.BirthDate != "" {
		if t, err := time.Parse("2006-01-02", in.BirthDate); err == nil {
			pet.BirthDate = t
		}
	}
	if err := uc.clientRepo.AddPet(ctx, pet); err != nil {
		return nil, err
	}
	resp := auth.ToPetResponse(*pet)
	return &resp, nil
}

// ListPets lista las mascotas del cliente.
func (uc *ClientUseCase) ListPets(ctx context.Context, clientID string) ([]dto.PetResponse, error) {
	pets, err := uc.clientRepo.ListPets(ctx, clientID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PetResponse, 0, len(pets))
	for _, p := range pets {
		out = append(out, auth.ToPetResponse(*p))
	}
	return out, nil
}

// DeletePet elimina una mascota.
func (uc *ClientUseCase) DeletePet(ctx context.Context, petID string) error {
	return uc.clientRepo.DeletePet(ctx, petID)
}
