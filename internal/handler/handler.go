package handler

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/da-hostinger/planning-admin/backend/internal/cache"
	"github.com/da-hostinger/planning-admin/backend/internal/config"
	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/da-hostinger/planning-admin/backend/internal/planning"
	"github.com/da-hostinger/planning-admin/backend/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	es_translations "github.com/go-playground/validator/v10/translations/es"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// MailPublisher es la parte de *amqp.Channel que usa el handler.
type MailPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	cache       *cache.Cache
	store       *planningStore
	planning    *planning.Service
	translator  ut.Translator
	mailChannel MailPublisher
	now         func() time.Time
	// sessionUser carga el usuario de la sesión en cada petición autenticada
	sessionUser func(ctx context.Context, id uuid.UUID) (*domain.User, error)

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, c *cache.Cache, mailCh MailPublisher) (*Handler, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, err
	}

	store := &planningStore{repo: repo, cache: c}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		cache:       c,
		store:       store,
		planning:    planning.NewService(store),
		translator:  trans,
		mailChannel: mailCh,
		now:         time.Now,
		sessionUser: repo.GetUserByID,

		Mux: chi.NewRouter(),
	}, nil
}

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// los mensajes usan el nombre del campo en el JSON
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	es := es.New()
	uni := ut.New(es, es)
	trans, _ := uni.GetTranslator("es")
	if err := es_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, err
	}

	err := validate.RegisterTranslation("datetime", trans,
		func(ut ut.Translator) error {
			return ut.Add("datetime", "{0} debe ser una fecha con formato AAAA-MM-DD", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("datetime", fe.Field())
			return t
		},
	)
	if err != nil {
		return nil, nil, err
	}

	return validate, trans, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	admin := h.RequiredRole([]domain.Role{domain.RoleAdmin})

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// a partir de aquí hace falta sesión
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.myInfo)

		r.Route("/me", func(r chi.Router) {
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/centers", func(r chi.Router) {
			r.Get("/", h.GetAllCenters)
			r.With(admin).Post("/", h.CreateCenter)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.center)
				r.Get("/", h.GetCenter)
				r.With(admin).Patch("/", h.UpdateCenter)
				r.With(admin).Delete("/", h.DeleteCenter)
			})
		})

		r.Route("/specialties", func(r chi.Router) {
			r.Get("/", h.GetAllSpecialties)
			r.With(admin).Post("/", h.CreateSpecialty)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.specialty)
				r.Get("/", h.GetSpecialty)
				r.With(admin).Patch("/", h.UpdateSpecialty)
				r.With(admin).Delete("/", h.DeleteSpecialty)
				r.Get("/activities", h.GetSpecialtyActivities)
				r.With(admin).Put("/activities", h.ReplaceSpecialtyActivities)
				r.With(admin).Patch("/consultations/active", h.SetSpecialtyConsultationsActive)
			})
		})

		r.Route("/activities", func(r chi.Router) {
			r.Get("/", h.GetAllActivities)
			r.With(admin).Post("/", h.CreateActivity)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.activity)
				r.Get("/", h.GetActivity)
				r.With(admin).Patch("/", h.UpdateActivity)
				r.With(admin).Delete("/", h.DeleteActivity)
			})
		})

		r.Route("/consultations", func(r chi.Router) {
			r.Get("/", h.GetAllConsultations)
			r.With(admin).Post("/", h.CreateConsultation)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.consultation)
				r.Get("/", h.GetConsultation)
				r.With(admin).Patch("/", h.UpdateConsultation)
				r.With(admin).Delete("/", h.DeleteConsultation)
				r.With(admin).Patch("/active", h.SetConsultationActive)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.GetAllUsers)
			r.With(admin).Post("/", h.CreateUser)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(admin, h.preventOperateInitialAdmin).Patch("/", h.UpdateUser)
				r.With(admin, h.preventOperateInitialAdmin).Delete("/", h.DeleteUser)
			})
		})

		r.Route("/access", func(r chi.Router) {
			r.Use(admin)
			r.Get("/", h.GetAllAccess)
			r.Post("/", h.CreateAccess)
			r.With(h.userInfo, h.preventOperateInitialAdmin).Delete("/{id}", h.RevokeAccess)
		})

		r.Get("/planning", h.GetPlanning)
		r.Route("/planning/records", func(r chi.Router) {
			r.Get("/", h.GetPlanningRecords)
			r.With(admin).Post("/", h.RegisterPlanningRecords)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.planningRecord)
				r.Get("/", h.GetPlanningRecord)
				r.With(admin).Patch("/", h.UpdatePlanningRecord)
				r.With(admin).Delete("/", h.DeletePlanningRecord)
			})
		})

		r.Route("/absences", func(r chi.Router) {
			r.Get("/", h.GetAbsences)
			r.With(admin).Post("/", h.CreateAbsence)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.absence)
				r.Get("/", h.GetAbsence)
				r.With(admin).Patch("/", h.UpdateAbsence)
				r.With(admin).Delete("/", h.DeleteAbsence)
			})
		})
	})
}
