// Package seed carga datos de referencia y genera datos aleatorios para desarrollo.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/da-hostinger/planning-admin/backend/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var DefaultFixtures []byte

type CenterFixture struct {
	Name    string `yaml:"name" validate:"required"`
	Address string `yaml:"address"`
}

type ActivityFixture struct {
	Name        string `yaml:"name" validate:"required"`
	Description string `yaml:"description"`
}

type SpecialtyFixture struct {
	Code       string   `yaml:"code" validate:"required,ne=OTHER"`
	Name       string   `yaml:"name" validate:"required"`
	Activities []string `yaml:"activities,omitempty"`
}

type ConsultationFixture struct {
	Center    string `yaml:"center" validate:"required"`
	Number    string `yaml:"number" validate:"required"`
	Extension string `yaml:"extension"`
	Specialty string `yaml:"specialty,omitempty"`
}

type Fixtures struct {
	Centers       []CenterFixture       `yaml:"centers" validate:"dive"`
	Activities    []ActivityFixture     `yaml:"activities" validate:"dive"`
	Specialties   []SpecialtyFixture    `yaml:"specialties" validate:"dive"`
	Consultations []ConsultationFixture `yaml:"consultations" validate:"dive"`
}

// ParseFixtures decodifica y valida un fichero de fixtures. Los campos desconocidos son un error.
func ParseFixtures(data []byte) (*Fixtures, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	f := &Fixtures{}
	if err := dec.Decode(f); err != nil {
		return nil, fmt.Errorf("fixtures mal formados: %w", err)
	}

	if err := validator.New().Struct(f); err != nil {
		return nil, fmt.Errorf("fixtures no válidos: %w", err)
	}

	return f, nil
}

// Writer es la parte del repositorio que usa LoadFixtures.
type Writer interface {
	GetAllCenters(ctx context.Context) ([]*domain.Center, error)
	CreateCenter(ctx context.Context, c *domain.Center) error
	GetAllActivities(ctx context.Context) ([]*domain.Activity, error)
	CreateActivity(ctx context.Context, a *domain.Activity) error
	GetAllSpecialties(ctx context.Context) ([]*domain.Specialty, error)
	CreateSpecialty(ctx context.Context, s *domain.Specialty) error
	ReplaceSpecialtyActivities(ctx context.Context, specialtyID uuid.UUID, activityIDs []uuid.UUID) error
	GetAllConsultations(ctx context.Context, filter repository.ConsultationFilter) ([]*domain.Consultation, error)
	CreateConsultation(ctx context.Context, co *domain.Consultation) error
}

type Summary struct {
	Centers       int
	Activities    int
	Specialties   int
	Consultations int
}

var ErrUnknownReference = errors.New("referencia desconocida")

// LoadFixtures inserta los fixtures que aún no existen. Los centros y actividades se identifican
// por nombre, las especialidades por código y las consultas por centro y número, así que
// ejecutarlo dos veces no duplica nada. Summary cuenta solo lo que se ha creado.
func LoadFixtures(ctx context.Context, w Writer, f *Fixtures) (Summary, error) {
	summary := Summary{}

	centers, err := w.GetAllCenters(ctx)
	if err != nil {
		return summary, err
	}
	centerByName := make(map[string]uuid.UUID, len(centers))
	for _, c := range centers {
		centerByName[c.Name] = c.ID
	}
	for _, cf := range f.Centers {
		if _, ok := centerByName[cf.Name]; ok {
			continue
		}
		c := &domain.Center{Name: cf.Name, Address: cf.Address}
		if err := w.CreateCenter(ctx, c); err != nil {
			return summary, fmt.Errorf("centro %q: %w", cf.Name, err)
		}
		centerByName[c.Name] = c.ID
		summary.Centers++
	}

	activities, err := w.GetAllActivities(ctx)
	if err != nil {
		return summary, err
	}
	activityByName := make(map[string]uuid.UUID, len(activities))
	for _, a := range activities {
		activityByName[a.Name] = a.ID
	}
	for _, af := range f.Activities {
		if _, ok := activityByName[af.Name]; ok {
			continue
		}
		a := &domain.Activity{Name: af.Name, Description: af.Description}
		if err := w.CreateActivity(ctx, a); err != nil {
			return summary, fmt.Errorf("actividad %q: %w", af.Name, err)
		}
		activityByName[a.Name] = a.ID
		summary.Activities++
	}

	specialties, err := w.GetAllSpecialties(ctx)
	if err != nil {
		return summary, err
	}
	specialtyByCode := make(map[string]uuid.UUID, len(specialties))
	for _, s := range specialties {
		specialtyByCode[s.Code] = s.ID
	}
	for _, sf := range f.Specialties {
		code := strings.ToUpper(sf.Code)
		if _, ok := specialtyByCode[code]; ok {
			continue
		}

		activityIDs := make([]uuid.UUID, 0, len(sf.Activities))
		for _, name := range sf.Activities {
			id, ok := activityByName[name]
			if !ok {
				return summary, fmt.Errorf("%w: actividad %q en la especialidad %s", ErrUnknownReference, name, code)
			}
			activityIDs = append(activityIDs, id)
		}

		s := &domain.Specialty{Code: code, Name: sf.Name}
		if err := w.CreateSpecialty(ctx, s); err != nil {
			return summary, fmt.Errorf("especialidad %s: %w", code, err)
		}
		if err := w.ReplaceSpecialtyActivities(ctx, s.ID, activityIDs); err != nil {
			return summary, fmt.Errorf("actividades de %s: %w", code, err)
		}
		specialtyByCode[code] = s.ID
		summary.Specialties++
	}

	consultations, err := w.GetAllConsultations(ctx, repository.ConsultationFilter{})
	if err != nil {
		return summary, err
	}
	existing := make(map[string]bool, len(consultations))
	for _, co := range consultations {
		existing[co.CenterID.String()+"/"+co.ConsultationNumber] = true
	}
	for _, cf := range f.Consultations {
		centerID, ok := centerByName[cf.Center]
		if !ok {
			return summary, fmt.Errorf("%w: centro %q en la consulta %s", ErrUnknownReference, cf.Center, cf.Number)
		}
		if existing[centerID.String()+"/"+cf.Number] {
			continue
		}

		co := &domain.Consultation{
			ConsultationNumber: cf.Number,
			Extension:          cf.Extension,
			CenterID:           centerID,
			IsActive:           true,
		}
		if cf.Specialty != "" {
			id, ok := specialtyByCode[strings.ToUpper(cf.Specialty)]
			if !ok {
				return summary, fmt.Errorf("%w: especialidad %q en la consulta %s", ErrUnknownReference, cf.Specialty, cf.Number)
			}
			co.SpecialtyID = &id
		}

		if err := w.CreateConsultation(ctx, co); err != nil {
			return summary, fmt.Errorf("consulta %s: %w", cf.Number, err)
		}
		existing[centerID.String()+"/"+cf.Number] = true
		summary.Consultations++
	}

	slog.Info("fixtures cargados",
		slog.Int("centers", summary.Centers),
		slog.Int("activities", summary.Activities),
		slog.Int("specialties", summary.Specialties),
		slog.Int("consultations", summary.Consultations),
	)

	return summary, nil
}
