package seed

import (
	"context"
	"testing"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/da-hostinger/planning-admin/backend/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	centers       []*domain.Center
	activities    []*domain.Activity
	specialties   []*domain.Specialty
	consultations []*domain.Consultation
	links         map[uuid.UUID][]uuid.UUID
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{links: make(map[uuid.UUID][]uuid.UUID)}
}

func (w *fakeWriter) GetAllCenters(context.Context) ([]*domain.Center, error) {
	return w.centers, nil
}

func (w *fakeWriter) CreateCenter(_ context.Context, c *domain.Center) error {
	c.ID = uuid.New()
	w.centers = append(w.centers, c)
	return nil
}

func (w *fakeWriter) GetAllActivities(context.Context) ([]*domain.Activity, error) {
	return w.activities, nil
}

func (w *fakeWriter) CreateActivity(_ context.Context, a *domain.Activity) error {
	a.ID = uuid.New()
	w.activities = append(w.activities, a)
	return nil
}

func (w *fakeWriter) GetAllSpecialties(context.Context) ([]*domain.Specialty, error) {
	return w.specialties, nil
}

func (w *fakeWriter) CreateSpecialty(_ context.Context, s *domain.Specialty) error {
	s.ID = uuid.New()
	w.specialties = append(w.specialties, s)
	return nil
}

func (w *fakeWriter) ReplaceSpecialtyActivities(_ context.Context, specialtyID uuid.UUID, activityIDs []uuid.UUID) error {
	w.links[specialtyID] = activityIDs
	return nil
}

func (w *fakeWriter) GetAllConsultations(context.Context, repository.ConsultationFilter) ([]*domain.Consultation, error) {
	return w.consultations, nil
}

func (w *fakeWriter) CreateConsultation(_ context.Context, co *domain.Consultation) error {
	co.ID = uuid.New()
	w.consultations = append(w.consultations, co)
	return nil
}

func TestParseFixtures_Default(t *testing.T) {
	f, err := ParseFixtures(DefaultFixtures)
	require.NoError(t, err)

	assert.Len(t, f.Centers, 2)
	assert.Len(t, f.Activities, 4)
	assert.Len(t, f.Specialties, 4)
	assert.Len(t, f.Consultations, 6)
	assert.Equal(t, "CARD", f.Specialties[0].Code)
	assert.Equal(t, []string{"Consulta externa", "Pruebas diagnósticas", "Guardia"}, f.Specialties[0].Activities)
}

func TestParseFixtures_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"campo desconocido", "centers:\n  - name: A\n    phone: 123\n"},
		{"nombre vacío", "centers:\n  - address: Calle 1\n"},
		{"código reservado", "specialties:\n  - code: OTHER\n    name: Otras\n"},
		{"yaml roto", "centers: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFixtures([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadFixtures(t *testing.T) {
	f, err := ParseFixtures(DefaultFixtures)
	require.NoError(t, err)

	w := newFakeWriter()
	summary, err := LoadFixtures(context.Background(), w, f)
	require.NoError(t, err)

	assert.Equal(t, Summary{Centers: 2, Activities: 4, Specialties: 4, Consultations: 6}, summary)

	card := w.specialties[0]
	assert.Equal(t, "CARD", card.Code)
	assert.Len(t, w.links[card.ID], 3)

	var withoutSpecialty int
	for _, co := range w.consultations {
		assert.True(t, co.IsActive)
		assert.NotEqual(t, uuid.Nil, co.CenterID)
		if co.SpecialtyID == nil {
			withoutSpecialty++
		}
	}
	assert.Equal(t, 1, withoutSpecialty)

	// segunda carga: todo existe ya
	summary, err = LoadFixtures(context.Background(), w, f)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)
	assert.Len(t, w.consultations, 6)
}

func TestLoadFixtures_UnknownReference(t *testing.T) {
	f := &Fixtures{
		Centers:       []CenterFixture{{Name: "Hospital General"}},
		Consultations: []ConsultationFixture{{Center: "Hospital Sur", Number: "1"}},
	}

	_, err := LoadFixtures(context.Background(), newFakeWriter(), f)
	assert.ErrorIs(t, err, ErrUnknownReference)

	f = &Fixtures{
		Specialties: []SpecialtyFixture{{Code: "card", Name: "Cardiología", Activities: []string{"Quirófano"}}},
	}
	_, err = LoadFixtures(context.Background(), newFakeWriter(), f)
	assert.ErrorIs(t, err, ErrUnknownReference)
}
