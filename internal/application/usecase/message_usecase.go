package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mdc-pro/mdcpro-api/internal/application/dto"
	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
	"github.com/mdc-pro/mdcpro-api/internal/domain/repository"
	"github.com/mdc-pro/mdcpro-api/pkg/logger"
)

// MessageUseCase mensajería interna entre clientes y administración. La
// entrega en vivo ocurre vía NOTIFY al insertar; aquí solo se persiste y se
// consulta el historial.
type MessageUseCase struct {
	msgRepo    repository.MessageRepository
	notifRepo  repository.NotificationRepository
	clientRepo repository.ClientRepository
	log        *logger.Logger
}

// NewMessageUseCase construye el caso de uso.
func NewMessageUseCase(
	msgRepo repository.MessageRepository,
	notifRepo repository.NotificationRepository,
	clientRepo repository.ClientRepository,
	log *logger.Logger,
) *MessageUseCase {
	return &MessageUseCase{msgRepo: msgRepo, notifRepo: notifRepo, clientRepo: clientRepo, log: log}
}

// Send persiste el mensaje y deja una notificación al destinatario. El nombre
// visible del remitente sale de su cuenta CRM; el email del token queda como
// respaldo si la cuenta no se puede leer.
func (uc *MessageUseCase) Send(ctx context.Context, senderID, senderEmail string, in dto.SendMessageRequest) (*dto.MessageResponse, error) {
	senderName := senderEmail
	if client, err := uc.clientRepo.GetByID(ctx, senderID); err == nil && client != nil && client.Name != "" {
		senderName = client.Name
	} else if err != nil {
		uc.log.Warn().Err(err).Str("sender_id", senderID).Msg("no se pudo resolver el nombre del remitente")
	}

	msg := &entity.Message{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		SenderName: senderName,
		Recipient:  in.Recipient,
		Body:       in.Body,
		CreatedAt:  time.Now(),
	}
	if err := uc.msgRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	targetRole := in.Recipient
	if targetRole != entity.RoleAdmin && targetRole != entity.RoleDistributor && targetRole != entity.RoleClient {
		// destinatario puntual: la campana la ve el admin
		targetRole = entity.RoleAdmin
	}
	if err := uc.notifRepo.Create(ctx, &entity.AppNotification{
		ID:         uuid.New().String(),
		Type:       entity.NotificationTypeMessage,
		Title:      "Mensaje nuevo",
		Message:    fmt.Sprintf("%s escribió: %s", senderName, truncate(in.Body, 80)),
		Timestamp:  time.Now(),
		TargetRole: targetRole,
	}); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo registrar la notificación del mensaje")
	}

	return toMessageResponse(msg), nil
}

// Conversation devuelve el historial del usuario, ascendente.
func (uc *MessageUseCase) Conversation(ctx context.Context, userID string, limit int) ([]*dto.MessageResponse, error) {
	msgs, err := uc.msgRepo.ListConversation(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return toMessageResponses(msgs), nil
}

// ListAll devuelve todos los mensajes (vista admin).
func (uc *MessageUseCase) ListAll(ctx context.Context, page dto.PageRequest) ([]*dto.MessageResponse, error) {
	page.DefaultPage()
	msgs, err := uc.msgRepo.ListAll(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toMessageResponses(msgs), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

func toMessageResponse(m *entity.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		SenderName: m.SenderName,
		Recipient:  m.Recipient,
		Body:       m.Body,
		CreatedAt:  m.CreatedAt,
	}
}

func toMessageResponses(msgs []*entity.Message) []*dto.MessageResponse {
	out := make([]*dto.MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	return out
}
