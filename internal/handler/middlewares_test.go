package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userCookie(t *testing.T, h *Handler, user *domain.User, expiration time.Time) *http.Cookie {
	t.Helper()
	token, err := h.signToken(user, expiration)
	require.NoError(t, err)
	return &http.Cookie{Name: tokenCookieName, Value: token}
}

func sessionCookie(t *testing.T, h *Handler, role domain.Role, expiration time.Time) *http.Cookie {
	t.Helper()
	return userCookie(t, h, &domain.User{ID: uuid.New(), Role: role}, expiration)
}

// sessionUsers sustituye a la base de datos en la carga del usuario de la sesión.
type sessionUsers map[uuid.UUID]*domain.User

func (s sessionUsers) get(_ context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := s[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func newSessionUser(role domain.Role) *domain.User {
	return &domain.User{ID: uuid.New(), Role: role, IsActive: true, PasswordHash: "$2a$10$hash"}
}

// adminRouter monta una ruta de escritura protegida como en RegisterRoutes.
func adminRouter(h *Handler) {
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.myInfo)
		r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/centers", okHandler)
	})
}

func TestAuth_NoCookie(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := httptest.NewRecorder()

	h.auth(http.HandlerFunc(okHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/planning", nil))

	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "no has iniciado sesión", resp.Message)
}

func TestAuth_ValidToken(t *testing.T) {
	h, _ := newTestHandler(t)
	h.now = time.Now

	var gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRole, _ = r.Context().Value(RoleCtxKey).(string)
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/planning", nil)
	req.AddCookie(sessionCookie(t, h, domain.RoleReadonly, time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, string(domain.RoleReadonly), gotRole)
}

func TestAuth_RejectsBadTokens(t *testing.T) {
	h, _ := newTestHandler(t)
	h.now = time.Now

	expired := sessionCookie(t, h, domain.RoleAdmin, time.Now().Add(-time.Hour))

	other, _ := newTestHandler(t)
	other.now = time.Now
	other.config.JWT.Secret = "otro-secreto"
	forged := sessionCookie(t, other, domain.RoleAdmin, time.Now().Add(time.Hour))

	for name, cookie := range map[string]*http.Cookie{"caducado": expired, "otra clave": forged} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/planning", nil)
			req.AddCookie(cookie)
			rec := httptest.NewRecorder()

			h.auth(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

			assert.Equal(t, "sesión no válida", decodeResponse(t, rec).Message)
		})
	}
}

func TestRequiredRole(t *testing.T) {
	h, _ := newTestHandler(t)
	h.now = time.Now

	admin := newSessionUser(domain.RoleAdmin)
	readonly := newSessionUser(domain.RoleReadonly)
	h.sessionUser = sessionUsers{admin.ID: admin, readonly.ID: readonly}.get
	adminRouter(h)

	tests := []struct {
		user     *domain.User
		wantCode int
	}{
		{admin, http.StatusNoContent},
		{readonly, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(string(tt.user.Role), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/centers", nil)
			req.AddCookie(userCookie(t, h, tt.user, time.Now().Add(time.Hour)))
			rec := httptest.NewRecorder()

			h.Mux.ServeHTTP(rec, req)

			require.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, "permisos insuficientes", decodeResponse(t, rec).Message)
			}
		})
	}
}

func TestSession_ReflectsCurrentUserState(t *testing.T) {
	h, _ := newTestHandler(t)
	h.now = time.Now

	revoked := newSessionUser(domain.RoleAdmin)
	inactive := newSessionUser(domain.RoleAdmin)
	demoted := newSessionUser(domain.RoleAdmin)
	deleted := newSessionUser(domain.RoleAdmin)

	// los tokens se emiten con el estado anterior: admin activo con acceso
	cookies := map[uuid.UUID]*http.Cookie{}
	for _, u := range []*domain.User{revoked, inactive, demoted, deleted} {
		cookies[u.ID] = userCookie(t, h, u, time.Now().Add(time.Hour))
	}

	revokedNow := *revoked
	revokedNow.PasswordHash = ""
	inactiveNow := *inactive
	inactiveNow.IsActive = false
	demotedNow := *demoted
	demotedNow.Role = domain.RoleReadonly

	h.sessionUser = sessionUsers{
		revoked.ID:  &revokedNow,
		inactive.ID: &inactiveNow,
		demoted.ID:  &demotedNow,
	}.get
	adminRouter(h)

	tests := []struct {
		name    string
		user    *domain.User
		wantMsg string
	}{
		{"acceso revocado", revoked, "tu acceso ha sido revocado"},
		{"desactivado", inactive, "el usuario está desactivado"},
		{"ya no es admin", demoted, "permisos insuficientes"},
		{"eliminado", deleted, "el usuario de la sesión no existe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/centers", nil)
			req.AddCookie(cookies[tt.user.ID])
			rec := httptest.NewRecorder()

			h.Mux.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			resp := decodeResponse(t, rec)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantMsg, resp.Message)
		})
	}
}

func TestPreventOperateInitialAdmin(t *testing.T) {
	h, _ := newTestHandler(t)
	handler := h.preventOperateInitialAdmin(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodDelete, "/users/x", nil)
	ctx := req.Context()

	rec := httptest.NewRecorder()
	admin := &domain.User{Email: "Admin@Example.com"}
	handler.ServeHTTP(rec, req.WithContext(contextWith(ctx, UserInfoCtx, admin)))
	assert.Equal(t, "no se puede modificar el administrador inicial", decodeResponse(t, rec).Message)

	rec = httptest.NewRecorder()
	other := &domain.User{Email: "ana@example.com"}
	handler.ServeHTTP(rec, req.WithContext(contextWith(ctx, UserInfoCtx, other)))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRecoverer(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := httptest.NewRecorder()

	h.recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
