package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/da-hostinger/planning-admin/backend/internal/config"
	"github.com/go-chi/chi/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	exchange string
	key      string
	msgs     []amqp.Publishing
	err      error
}

func (f *fakePublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.exchange, f.key = exchange, key
	f.msgs = append(f.msgs, msg)
	return f.err
}

var fixedNow = time.Date(2024, 3, 13, 10, 30, 0, 0, time.UTC)

func newTestHandler(t *testing.T) (*Handler, *fakePublisher) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Environment = "development"
	cfg.JWT.Secret = "jwt-secret"
	cfg.JWT.Expiration = 24
	cfg.RabbitMQ.Queue = "email_queue"
	cfg.RabbitMQ.PublishTimeout = 5
	cfg.Planning.DefaultView = "weekly"
	cfg.Planning.MaxRegisterDays = 366
	cfg.InitialAdmin.Email = "admin@example.com"

	validate, trans, err := newValidator()
	require.NoError(t, err)

	pub := &fakePublisher{}
	return &Handler{
		validate:    validate,
		config:      cfg,
		translator:  trans,
		mailChannel: pub,
		now:         func() time.Time { return fixedNow },
		sessionUser: sessionUsers{}.get,
		Mux:         chi.NewRouter(),
	}, pub
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func contextWith(ctx context.Context, key ContextKey, v any) context.Context {
	return context.WithValue(ctx, key, v)
}
