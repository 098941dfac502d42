package auth

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
)

const resetSubject = "Recupera tu acceso a SIGEP GC"

var resetTemplate = template.Must(template.New("reset").Parse(`<div style="font-family: Arial, sans-serif; color: #333;">
  <h2>Restablecer contraseña - SIGEP GC</h2>
  <p>Has solicitado restablecer tu contraseña.</p>
  <p>Haz clic en el siguiente enlace para crear una nueva contraseña:</p>
  <a href="{{.URL}}" style="display:inline-block; background:#0d6efd; color:#fff; padding:10px 20px; text-decoration:none; border-radius:6px;">Restablecer contraseña</a>
  <p style="margin-top:10px;">Este enlace expirará en <strong>{{.Minutes}} minutos</strong>.</p>
  <p style="font-size:0.9rem; color:#777;">Si no solicitaste este cambio, ignora este mensaje.</p>
</div>`))

func resetURL(frontendURL, token string) string {
	return fmt.Sprintf("%s/reset-password.html?token=%s", frontendURL, url.QueryEscape(token))
}

func renderResetEmail(link string, minutes int) (string, error) {
	var buf bytes.Buffer
	if err := resetTemplate.Execute(&buf, struct {
		URL     template.URL
		Minutes int
	}{URL: template.URL(link), Minutes: minutes}); err != nil {
		return "", fmt.Errorf("render correo de recuperación: %w", err)
	}
	return buf.String(), nil
}
