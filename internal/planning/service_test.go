package planning

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu sync.Mutex

	specialties []*domain.Specialty
	users       []*domain.User
	records     []*domain.PlanningRecord
	absences    []*domain.Absence

	absencesErr error

	userFilter   UserFilter
	recordFilter RecordFilter
	recordsFrom  time.Time
	recordsTo    time.Time
	absencesFrom time.Time
	absencesTo   time.Time
}

func (f *fakeStore) ListSpecialties(ctx context.Context) ([]*domain.Specialty, error) {
	return f.specialties, nil
}

func (f *fakeStore) ListActiveUsers(ctx context.Context, filter UserFilter) ([]*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userFilter = filter
	return f.users, nil
}

func (f *fakeStore) ListPlanningRecords(ctx context.Context, from, to time.Time, filter RecordFilter) ([]*domain.PlanningRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recordsFrom, f.recordsTo, f.recordFilter = from, to, filter
	return f.records, nil
}

func (f *fakeStore) ListAbsences(ctx context.Context, from, to time.Time) ([]*domain.Absence, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.absencesFrom, f.absencesTo = from, to
	return f.absences, f.absencesErr
}

func TestService_Render(t *testing.T) {
	cardio := newSpecialty("CAR")
	derma := newSpecialty("DER")
	userID := uuid.New()

	store := &fakeStore{
		specialties: []*domain.Specialty{cardio, derma},
		users:       []*domain.User{{ID: userID, FullName: "Ana Ruiz", IsActive: true}},
		records: []*domain.PlanningRecord{
			newRecord(userID, cardio, date(2024, 3, 11), domain.ShiftMorning),
		},
		absences: []*domain.Absence{
			{UserID: userID, StartDate: date(2024, 3, 11), EndDate: date(2024, 3, 11)},
		},
	}

	view, err := NewService(store).Render(context.Background(), Query{
		ViewMode:     ViewWeekly,
		Date:         date(2024, 3, 13),
		ShowAbsences: false,
	})
	require.NoError(t, err)

	assert.Equal(t, ViewWeekly, view.ViewMode)
	assert.False(t, view.ShowAbsences)
	assert.Equal(t, date(2024, 3, 11), view.Range.Start)
	assert.Equal(t, date(2024, 3, 17), view.Range.End)
	assert.Len(t, view.Users, 1)
	assert.Equal(t, []*domain.Specialty{cardio, derma}, view.Specialties)

	// las ausencias se consultan siempre, aunque no se muestren
	assert.Equal(t, view.Range.Start, store.absencesFrom)
	assert.Equal(t, view.Range.End, store.absencesTo)
	assert.Equal(t, view.Range.Start, store.recordsFrom)
	assert.Equal(t, view.Range.End, store.recordsTo)

	assert.Empty(t, view.Grid.Cell(domain.ShiftMorning, "CAR", 0))
}

func TestService_Render_SpecialtyFilter(t *testing.T) {
	cardio := newSpecialty("CAR")
	derma := newSpecialty("DER")
	userID := uuid.New()

	store := &fakeStore{specialties: []*domain.Specialty{cardio, derma}}

	view, err := NewService(store).Render(context.Background(), Query{
		ViewMode:     ViewDaily,
		Date:         date(2024, 3, 13),
		SpecialtyID:  &derma.ID,
		UserID:       &userID,
		ShowAbsences: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []*domain.Specialty{derma}, view.Specialties)
	rows := view.Grid.Section(domain.ShiftMorning).Rows
	require.Len(t, rows, 1)
	assert.Equal(t, "DER", rows[0].Code)

	require.NotNil(t, store.userFilter.SpecialtyID)
	assert.Equal(t, derma.ID, *store.userFilter.SpecialtyID)
	require.NotNil(t, store.recordFilter.UserID)
	assert.Equal(t, userID, *store.recordFilter.UserID)
	assert.Equal(t, derma.ID, *store.recordFilter.SpecialtyID)
}

func TestService_Render_ReadFailure(t *testing.T) {
	cause := errors.New("conexión rechazada")
	store := &fakeStore{
		specialties: []*domain.Specialty{newSpecialty("CAR")},
		absencesErr: cause,
	}

	view, err := NewService(store).Render(context.Background(), Query{
		ViewMode: ViewMonthly,
		Date:     date(2024, 2, 29),
	})
	assert.Nil(t, view)
	assert.ErrorIs(t, err, ErrRenderFailed)
	assert.ErrorIs(t, err, cause)
}

func TestService_Render_UnknownViewMode(t *testing.T) {
	view, err := NewService(&fakeStore{}).Render(context.Background(), Query{
		ViewMode: ViewMode("hourly"),
		Date:     date(2024, 2, 29),
	})
	assert.Nil(t, view)
	assert.ErrorIs(t, err, ErrUnknownViewMode)
}
