package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/da-hostinger/planning-admin/backend/internal/repository"
	"github.com/da-hostinger/planning-admin/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetAllAccess(w http.ResponseWriter, r *http.Request) {
	users, err := h.repository.GetAllUsers(r.Context(), repository.UserFilter{WithAccess: true})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "accesos obtenidos", users)
}

// CreateAccess concede credenciales. Si el correo ya pertenece a un usuario sin acceso se le
// asigna la contraseña; si no existe, se crea.
func (h *Handler) CreateAccess(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		FullName string `json:"fullName" validate:"required,max=200"`
		Role     string `json:"role" validate:"required,oneof=admin readonly"`
		Password string `json:"password" validate:"omitempty,min=8"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	password := req.Password
	if password == "" {
		password = utils.GenerateRandomPassword(h.config.NewUser.PasswordLength)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	email := strings.TrimSpace(req.Email)
	user, err := h.repository.GetUserByEmail(r.Context(), email)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		user = &domain.User{
			Email:        email,
			FullName:     strings.TrimSpace(req.FullName),
			Role:         domain.Role(req.Role),
			IsActive:     true,
			PasswordHash: string(hashedPassword),
		}
		err = h.repository.CreateUser(r.Context(), user)
	case err != nil:
		h.internalServerError(w, r, err)
		return
	case user.HasAccess():
		h.errorResponse(w, r, "el usuario ya tiene acceso")
		return
	default:
		user.Role = domain.Role(req.Role)
		user.PasswordHash = string(hashedPassword)
		err = h.repository.UpdateUser(r.Context(), user)
	}
	if err != nil {
		h.writeError(w, r, err, "no se pudo conceder el acceso")
		return
	}

	err = h.publishMail(r.Context(), domain.MailMessage{
		Type: domain.MailTypeCreateAccess,
		To:   user.Email,
		Data: domain.CreateAccessMailData{
			FullName: user.FullName,
			Email:    user.Email,
			Password: password,
		},
	})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "acceso concedido", user)
}

func (h *Handler) RevokeAccess(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	if !user.HasAccess() {
		h.errorResponse(w, r, "el usuario no tiene acceso")
		return
	}

	user.PasswordHash = ""
	if err := h.repository.UpdateUser(r.Context(), user); err != nil {
		h.writeError(w, r, err, "el usuario ya no existe")
		return
	}

	h.successResponse(w, r, "acceso revocado", nil)
}
