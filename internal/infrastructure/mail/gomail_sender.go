// Package mail entrega por SMTP los borradores de notificación de asignación.
package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/punchlist-api/internal/application/punch"
	"github.com/jhoicas/punchlist-api/pkg/config"
)

var _ punch.MailSender = (*GomailSender)(nil)

// GomailSender envía cada borrador como un correo de texto plano.
type GomailSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewGomailSender construye el sender desde la configuración SMTP.
func NewGomailSender(cfg config.MailConfig) *GomailSender {
	return &GomailSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.From,
	}
}

// Send envía el borrador. gomail no acepta contexto: solo se respeta una cancelación previa.
func (s *GomailSender) Send(ctx context.Context, draft punch.MailDraft) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(s.Message(draft)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// Message arma el mensaje MIME del borrador.
func (s *GomailSender) Message(draft punch.MailDraft) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", draft.To)
	m.SetHeader("Subject", draft.Subject)
	m.SetBody("text/plain", draft.Body)
	return m
}
