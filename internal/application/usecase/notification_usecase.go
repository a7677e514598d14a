package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mdc-pro/mdcpro-api/internal/application/dto"
	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
	"github.com/mdc-pro/mdcpro-api/internal/domain/repository"
)

// NotificationUseCase consultas y marcado de notificaciones internas.
type NotificationUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// ListByRole devuelve las notificaciones del rol del usuario autenticado.
func (uc *NotificationUseCase) ListByRole(ctx context.Context, role string, unreadOnly bool, limit int) ([]*dto.NotificationResponse, error) {
	list, err := uc.repo.ListByRole(ctx, role, unreadOnly, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toNotificationResponse(n))
	}
	return out, nil
}

// MarkRead marca una notificación como leída.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, id string) error {
	return uc.repo.MarkRead(ctx, id)
}

// MarkAllRead marca todas las del rol como leídas.
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, role string) error {
	return uc.repo.MarkAllRead(ctx, role)
}

// NotifyAccountPending deja en la campana del admin el aviso de una cuenta
// nueva pendiente de aprobación. Best effort: el registro nunca debe frenar
// la operación que lo origina.
func (uc *NotificationUseCase) NotifyAccountPending(ctx context.Context, clientName string) {
	_ = uc.repo.Create(ctx, &entity.AppNotification{
		ID:         uuid.New().String(),
		Type:       entity.NotificationTypeAccount,
		Title:      "Cuenta pendiente",
		Message:    fmt.Sprintf("%s se registró y espera aprobación", clientName),
		Timestamp:  time.Now(),
		TargetRole: entity.RoleAdmin,
	})
}

func toNotificationResponse(n *entity.AppNotification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:         n.ID,
		Type:       n.Type,
		Title:      n.Title,
		Message:    n.Message,
		Read:       n.Read,
		Timestamp:  n.Timestamp,
		TargetRole: n.TargetRole,
	}
}
