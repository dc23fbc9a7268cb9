package handler

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishMail(t *testing.T) {
	h, pub := newTestHandler(t)

	err := h.publishMail(context.Background(), domain.MailMessage{
		Type: domain.MailTypeCreateAccess,
		To:   "ana@example.com",
		Data: domain.CreateAccessMailData{FullName: "Ana Ruiz", Email: "ana@example.com", Password: "secreto123"},
	})
	require.NoError(t, err)

	assert.Equal(t, "", pub.exchange)
	assert.Equal(t, "email_queue", pub.key)
	require.Len(t, pub.msgs, 1)
	assert.Equal(t, "application/json", pub.msgs[0].ContentType)
	assert.Equal(t, amqp.Persistent, pub.msgs[0].DeliveryMode)

	var msg struct {
		Type string                      `json:"type"`
		To   string                      `json:"to"`
		Data domain.CreateAccessMailData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(pub.msgs[0].Body, &msg))
	assert.Equal(t, domain.MailTypeCreateAccess, msg.Type)
	assert.Equal(t, "secreto123", msg.Data.Password)
}
