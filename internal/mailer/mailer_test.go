package mailer

import (
	"encoding/json"
	"mime"
	"testing"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

func encode(t *testing.T, msg domain.MailMessage) []byte {
	t.Helper()
	body, err := json.Marshal(msg)
	require.NoError(t, err)
	return body
}

// subject devuelve el asunto ya decodificado; go-mail lo guarda como encoded-word.
func subject(t *testing.T, msg *mail.Msg) string {
	t.Helper()
	values := msg.GetGenHeader(mail.HeaderSubject)
	require.Len(t, values, 1)
	decoded, err := new(mime.WordDecoder).DecodeHeader(values[0])
	require.NoError(t, err)
	return decoded
}

// render devuelve el cuerpo HTML sin codificar.
func render(t *testing.T, msg *mail.Msg) string {
	t.Helper()
	parts := msg.GetParts()
	require.Len(t, parts, 1)
	content, err := parts[0].GetContent()
	require.NoError(t, err)
	return string(content)
}

func TestCompose_CreateAccess(t *testing.T) {
	m, err := New("planning@example.com")
	require.NoError(t, err)

	msg, err := m.Compose(encode(t, domain.MailMessage{
		Type: domain.MailTypeCreateAccess,
		To:   "ana@example.com",
		Data: domain.CreateAccessMailData{FullName: "Ana Ruiz", Email: "ana@example.com", Password: "Xy7kP2mQ9rT4"},
	}))
	require.NoError(t, err)

	recipients, err := msg.GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"ana@example.com"}, recipients)
	assert.Equal(t, "Planificación - Acceso al panel", subject(t, msg))

	body := render(t, msg)
	assert.Contains(t, body, "Xy7kP2mQ9rT4")
	assert.Contains(t, body, "Ana Ruiz")
}

func TestCompose_ResetPassword(t *testing.T) {
	m, err := New("planning@example.com")
	require.NoError(t, err)

	msg, err := m.Compose(encode(t, domain.MailMessage{
		Type: domain.MailTypeResetPassword,
		To:   "luis@example.com",
		Data: domain.ResetPasswordMailData{FullName: "Luis Gómez", OTP: "048213", Expiration: 15},
	}))
	require.NoError(t, err)
	assert.Equal(t, "Planificación - Restablecer contraseña", subject(t, msg))

	body := render(t, msg)
	assert.Contains(t, body, "048213")
	assert.Contains(t, body, "15 minutos")
}

func TestCompose_Errors(t *testing.T) {
	m, err := New("planning@example.com")
	require.NoError(t, err)

	_, err = m.Compose([]byte(`{"type":`))
	assert.Error(t, err)

	_, err = m.Compose(encode(t, domain.MailMessage{Type: "change_email", To: "ana@example.com"}))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = m.Compose(encode(t, domain.MailMessage{
		Type: domain.MailTypeResetPassword,
		To:   "no es un correo",
		Data: domain.ResetPasswordMailData{OTP: "123456"},
	}))
	assert.Error(t, err)
}
