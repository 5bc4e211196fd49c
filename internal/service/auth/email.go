// internal/service/auth/email.go
package auth

import (
	"context"
	"fmt"
	"strings"

	"flotaops-service/internal/permissions"
	"flotaops-service/internal/service/email"

	"go.uber.org/zap"
)

// EmailHelper builds and sends the account emails. Sends run in the
// background; failures are logged, never surfaced to the caller.
type EmailHelper struct {
	sender  *email.EmailSender
	logger  *zap.Logger
	baseURL string
}

func NewEmailHelper(sender *email.EmailSender, logger *zap.Logger, baseURL string) *EmailHelper {
	return &EmailHelper{
		sender:  sender,
		logger:  logger,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (h *EmailHelper) passwordResetEmail(nombre, token string) (string, string) {
	subject := "Restablecer contraseña - FlotaOps"
	link := fmt.Sprintf("%s/restablecer-contrasena?token=%s", h.baseURL, token)
	body := fmt.Sprintf(`
		<p>Hola %s,</p>
		<p>Recibimos una solicitud para restablecer la contraseña de su cuenta.</p>
		<p><a class="button" href="%s">Restablecer contraseña</a></p>
		<p>El enlace vence en 30 minutos. Si usted no solicitó este cambio, ignore este mensaje.</p>
	`, nombre, link)
	return subject, body
}

// SendPasswordResetEmail sends the reset link in the background.
func (h *EmailHelper) SendPasswordResetEmail(ctx context.Context, to, nombre, token string) {
	if h.sender == nil {
		return
	}
	subject, body := h.passwordResetEmail(nombre, token)
	go func() {
		if err := h.sender.Send(to, subject, body); err != nil {
			h.logger.Error("failed to send password reset email",
				zap.String("email", to), zap.Error(err))
		}
	}()
}

func (h *EmailHelper) accountCreatedEmail(nombre, correo, tempPassword string, role permissions.Role) (string, string) {
	subject := "Su cuenta de FlotaOps fue creada"
	body := fmt.Sprintf(`
		<p>Hola %s,</p>
		<p>Un administrador creó una cuenta para usted en FlotaOps.</p>
		<p><b>Usuario:</b> %s<br/>
		<b>Contraseña temporal:</b> %s<br/>
		<b>Rol:</b> %s</p>
		<p><a class="button" href="%s">Iniciar sesión</a></p>
		<p>Cambie su contraseña después del primer inicio de sesión.</p>
	`, nombre, correo, tempPassword, permissions.RoleName(role), h.baseURL)
	return subject, body
}

// SendAccountCreatedEmail notifies a user their account was provisioned.
func (h *EmailHelper) SendAccountCreatedEmail(ctx context.Context, to, nombre, tempPassword string, role permissions.Role) {
	if h.sender == nil {
		return
	}
	subject, body := h.accountCreatedEmail(nombre, to, tempPassword, role)
	go func() {
		if err := h.sender.Send(to, subject, body); err != nil {
			h.logger.Error("failed to send account created email",
				zap.String("email", to), zap.Error(err))
		}
	}()
}
