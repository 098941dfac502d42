// Package email envía los correos transaccionales (recuperación de contraseña).
package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/sigep-gc/internal/application/auth"
	"github.com/jhoicas/sigep-gc/pkg/config"
	"github.com/jhoicas/sigep-gc/pkg/logger"
)

var (
	_ auth.Mailer = (*SMTPSender)(nil)
	_ auth.Mailer = (*LogSender)(nil)
)

// dialer lo cumple *gomail.Dialer; en tests se reemplaza.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender envía HTML por SMTP. Con el host por defecto (smtp.resend.com:465)
// el usuario es "resend" y la contraseña la API key.
type SMTPSender struct {
	from   string
	dialer dialer
	log    *logger.Logger
}

// NewSMTPSender construye el sender a partir de la configuración de correo.
func NewSMTPSender(cfg config.MailConfig, log *logger.Logger) *SMTPSender {
	return &SMTPSender{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		log:    log,
	}
}

// Send arma el mensaje y lo entrega. gomail no acepta contexto: si ctx ya expiró no se intenta el envío.
func (s *SMTPSender) Send(ctx context.Context, to, subject, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp: enviar a %s: %w", to, err)
	}
	s.log.Info().Str("to", to).Str("subject", subject).Msg("correo enviado")
	return nil
}

// LogSender no envía nada: deja el correo en el log. Se usa cuando no hay credenciales SMTP.
type LogSender struct {
	log *logger.Logger
}

// NewLogSender construye el sender de desarrollo.
func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, to, subject, html string) error {
	s.log.Warn().Str("to", to).Str("subject", subject).Str("html", html).Msg("SMTP sin configurar, correo no enviado")
	return nil
}

// New elige el sender según haya o no credenciales.
func New(cfg config.MailConfig, log *logger.Logger) auth.Mailer {
	if cfg.Enabled() {
		return NewSMTPSender(cfg, log)
	}
	return NewLogSender(log)
}
