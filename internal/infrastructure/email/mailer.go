// Package email envía correos de notificación (cuenta aprobada, pedido
// recibido, stock crítico) vía SMTP. Con Host vacío el mailer queda
// desactivado y las notificaciones solo se persisten en la aplicación.
package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/mdc-pro/mdcpro-api/pkg/config"
	"github.com/mdc-pro/mdcpro-api/pkg/logger"
)

// Sender puerto que consumen los casos de uso.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

var _ Sender = (*Mailer)(nil)

// Mailer cliente SMTP basado en gomail.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	log    *logger.Logger
}

// NewMailer construye el mailer. Devuelve un mailer desactivado si no hay host.
func NewMailer(cfg config.SMTPConfig, log *logger.Logger) *Mailer {
	m := &Mailer{from: cfg.From, log: log}
	if cfg.Host != "" {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	}
	return m
}

// Send envía un correo HTML. Sin dialer configurado solo registra el intento.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	if m.dialer == nil {
		m.log.Debug().Str("to", to).Str("subject", subject).Msg("SMTP desactivado, correo omitido")
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("enviar correo: %w", err)
	}
	m.log.Info().Str("to", to).Str("subject", subject).Msg("correo enviado")
	return nil
}
