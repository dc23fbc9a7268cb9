package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// publishMail deja el mensaje en la cola de correo; el envío lo hace cmd/mail.
func (h *Handler) publishMail(ctx context.Context, msg domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		h.config.RabbitMQ.Queue,
		true,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
