// Package mailer convierte los mensajes de la cola de correo en correos listos para enviar.
package mailer

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

//go:embed templates/*.html
var templatesFS embed.FS

var ErrUnsupportedType = errors.New("tipo de correo no soportado")

type Mailer struct {
	from      string
	templates *template.Template
}

func New(from string) (*Mailer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Mailer{
		from:      from,
		templates: tmpl,
	}, nil
}

type queuedMessage struct {
	Type string          `json:"type"`
	To   string          `json:"to"`
	Data json.RawMessage `json:"data"`
}

// Compose construye el correo a partir del cuerpo JSON de un domain.MailMessage.
func (m *Mailer) Compose(body []byte) (*mail.Msg, error) {
	var queued queuedMessage
	if err := json.Unmarshal(body, &queued); err != nil {
		return nil, fmt.Errorf("mensaje mal formado: %w", err)
	}

	var (
		subject  string
		tmplName string
		data     any
	)

	switch queued.Type {
	case domain.MailTypeCreateAccess:
		d := domain.CreateAccessMailData{}
		if err := json.Unmarshal(queued.Data, &d); err != nil {
			return nil, fmt.Errorf("datos de %s mal formados: %w", queued.Type, err)
		}
		subject, tmplName, data = "Planificación - Acceso al panel", "create_access.html", d
	case domain.MailTypeResetPassword:
		d := domain.ResetPasswordMailData{}
		if err := json.Unmarshal(queued.Data, &d); err != nil {
			return nil, fmt.Errorf("datos de %s mal formados: %w", queued.Type, err)
		}
		subject, tmplName, data = "Planificación - Restablecer contraseña", "reset_password.html", d
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, queued.Type)
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return nil, err
	}
	if err := msg.To(queued.To); err != nil {
		return nil, err
	}
	msg.Subject(subject)

	if err := msg.SetBodyHTMLTemplate(m.templates.Lookup(tmplName), data); err != nil {
		return nil, err
	}

	return msg, nil
}
