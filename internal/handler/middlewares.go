package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w, StatusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("petición procesada", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				fmt.Print(string(debug.Stack()))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(tokenCookieName)
		if err != nil {
			switch {
			case errors.Is(err, http.ErrNoCookie):
				h.errorResponse(w, r, "no has iniciado sesión")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		claims := &AuthClaims{}
		_, err = jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (any, error) {
			return []byte(h.config.JWT.Secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			h.errorResponse(w, r, "sesión no válida")
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, RoleCtxKey, claims.Role)
		ctx = context.WithValue(ctx, SubCtxKey, claims.Subject)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// myInfo carga el usuario del token desde la base de datos. Un usuario desactivado o sin
// acceso deja de tener sesión aunque su token siga siendo válido.
func (h *Handler) myInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, _ := r.Context().Value(SubCtxKey).(string)
		sub, err := uuid.Parse(subject)
		if err != nil {
			h.errorResponse(w, r, "sesión no válida")
			return
		}

		myInfo, err := h.sessionUser(r.Context(), sub)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "el usuario de la sesión no existe")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		switch {
		case !myInfo.HasAccess():
			h.errorResponse(w, r, "tu acceso ha sido revocado")
			return
		case !myInfo.IsActive:
			h.errorResponse(w, r, "el usuario está desactivado")
			return
		}

		ctx := context.WithValue(r.Context(), MyInfoCtx, myInfo)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequiredRole comprueba el rol actual del usuario de la sesión, no el del token.
func (h *Handler) RequiredRole(roles []domain.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			myInfo, ok := r.Context().Value(MyInfoCtx).(*domain.User)
			if !ok || !slices.Contains(roles, myInfo.Role) {
				h.errorResponse(w, r, "permisos insuficientes")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// loadByID carga la entidad del parámetro {id} de la ruta y la deja en el contexto bajo key.
func loadByID[T any](h *Handler, key ContextKey, invalidMsg, notFoundMsg string, get func(context.Context, uuid.UUID) (T, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				h.errorResponse(w, r, invalidMsg)
				return
			}

			v, err := get(r.Context(), id)
			if err != nil {
				switch {
				case errors.Is(err, sql.ErrNoRows):
					h.errorResponse(w, r, notFoundMsg)
				default:
					h.internalServerError(w, r, err)
				}
				return
			}

			ctx := context.WithValue(r.Context(), key, v)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (h *Handler) userInfo(next http.Handler) http.Handler {
	return loadByID(h, UserInfoCtx, "ID de usuario no válido", "el usuario no existe", h.repository.GetUserByID)(next)
}

func (h *Handler) center(next http.Handler) http.Handler {
	return loadByID(h, CenterCtx, "ID de centro no válido", "el centro no existe", h.repository.GetCenterByID)(next)
}

func (h *Handler) specialty(next http.Handler) http.Handler {
	return loadByID(h, SpecialtyCtx, "ID de especialidad no válido", "la especialidad no existe", h.repository.GetSpecialtyByID)(next)
}

func (h *Handler) activity(next http.Handler) http.Handler {
	return loadByID(h, ActivityCtx, "ID de actividad no válido", "la actividad no existe", h.repository.GetActivityByID)(next)
}

func (h *Handler) consultation(next http.Handler) http.Handler {
	return loadByID(h, ConsultationCtx, "ID de consulta no válido", "la consulta no existe", h.repository.GetConsultationByID)(next)
}

func (h *Handler) planningRecord(next http.Handler) http.Handler {
	return loadByID(h, PlanningRecordCtx, "ID de registro no válido", "el registro no existe", h.repository.GetPlanningRecordByID)(next)
}

func (h *Handler) absence(next http.Handler) http.Handler {
	return loadByID(h, AbsenceCtx, "ID de ausencia no válido", "la ausencia no existe", h.repository.GetAbsenceByID)(next)
}

func (h *Handler) preventOperateInitialAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := r.Context().Value(UserInfoCtx).(*domain.User)
		if strings.EqualFold(user.Email, h.config.InitialAdmin.Email) {
			h.errorResponse(w, r, "no se puede modificar el administrador inicial")
			return
		}
		next.ServeHTTP(w, r)
	})
}
