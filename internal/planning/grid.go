package planning

import (
	"slices"
	"time"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/google/uuid"
)

const dayKeyLayout = "2006-01-02"

type Options struct {
	// ShowAbsences decide si los registros de personal ausente se muestran marcados
	// o se eliminan de la celda.
	ShowAbsences bool
}

type AnnotatedRecord struct {
	*domain.PlanningRecord
	IsAbsent bool `json:"isAbsent"`
}

// Row es una fila de especialidad dentro de un turno; Cells va indexado por día.
type Row struct {
	Code      string              `json:"code"`
	Specialty *domain.Specialty   `json:"specialty"`
	Cells     [][]AnnotatedRecord `json:"cells"`
}

type Section struct {
	Shift domain.Shift `json:"shift"`
	Rows  []*Row       `json:"rows"`

	rowIndex map[string]int
}

type Grid struct {
	Days     []time.Time `json:"days"`
	Sections []*Section  `json:"sections"`

	sectionIndex map[domain.Shift]int
}

func (g *Grid) Section(shift domain.Shift) *Section {
	i, ok := g.sectionIndex[shift]
	if !ok {
		return nil
	}
	return g.Sections[i]
}

func (s *Section) Row(code string) *Row {
	i, ok := s.rowIndex[code]
	if !ok {
		return nil
	}
	return s.Rows[i]
}

// Cell devuelve los registros de grid[shift][code][dayIndex], o nil si la celda no existe.
func (g *Grid) Cell(shift domain.Shift, code string, dayIndex int) []AnnotatedRecord {
	section := g.Section(shift)
	if section == nil {
		return nil
	}
	row := section.Row(code)
	if row == nil || dayIndex < 0 || dayIndex >= len(row.Cells) {
		return nil
	}
	return row.Cells[dayIndex]
}

func (s *Section) addRow(code string, specialty *domain.Specialty, days int) *Row {
	if row := s.Row(code); row != nil {
		return row
	}

	row := &Row{
		Code:      code,
		Specialty: specialty,
		Cells:     make([][]AnnotatedRecord, days),
	}
	for i := range row.Cells {
		row.Cells[i] = make([]AnnotatedRecord, 0)
	}

	s.rowIndex[code] = len(s.Rows)
	s.Rows = append(s.Rows, row)
	return row
}

// BuildGrid agrupa los registros por turno, especialidad y día.
//
// Las filas siguen el orden de specialties y después los códigos que solo aparecen en los
// registros, en el orden en que se encuentran. Dentro de una celda se respeta el orden de
// records. Los registros cuya fecha no está en days o cuyo turno no está en shifts se ignoran.
func BuildGrid(
	records []*domain.PlanningRecord,
	absences []*domain.Absence,
	days []time.Time,
	specialties []*domain.Specialty,
	shifts []domain.Shift,
	opts Options,
) *Grid {
	if len(shifts) == 0 {
		shifts = domain.Shifts
	}
	specialties = slices.DeleteFunc(slices.Clone(specialties), func(s *domain.Specialty) bool {
		return s == nil
	})

	grid := &Grid{
		Days:         make([]time.Time, len(days)),
		Sections:     make([]*Section, 0, len(shifts)),
		sectionIndex: make(map[domain.Shift]int, len(shifts)),
	}

	dayIndex := make(map[string]int, len(days))
	for i, day := range days {
		grid.Days[i] = DateOf(day)
		dayIndex[grid.Days[i].Format(dayKeyLayout)] = i
	}

	specialtyByID := make(map[uuid.UUID]*domain.Specialty, len(specialties))
	for _, s := range specialties {
		specialtyByID[s.ID] = s
	}

	for _, shift := range shifts {
		if _, exists := grid.sectionIndex[shift]; exists {
			continue
		}
		section := &Section{
			Shift:    shift,
			Rows:     make([]*Row, 0, len(specialties)),
			rowIndex: make(map[string]int),
		}
		for _, s := range specialties {
			section.addRow(s.Code, s, len(days))
		}
		grid.sectionIndex[shift] = len(grid.Sections)
		grid.Sections = append(grid.Sections, section)
	}

	absent := NewAbsenceIndex(absences)

	for _, record := range records {
		if record == nil {
			continue
		}

		di, ok := dayIndex[DateOf(record.RecordDate).Format(dayKeyLayout)]
		if !ok {
			continue
		}
		section := grid.Section(record.Shift)
		if section == nil {
			continue
		}

		code, specialty := resolveSpecialty(record, specialtyByID)
		row := section.addRow(code, specialty, len(days))

		isAbsent := absent.IsAbsent(record.UserID, grid.Days[di])
		if isAbsent && !opts.ShowAbsences {
			continue
		}

		row.Cells[di] = append(row.Cells[di], AnnotatedRecord{
			PlanningRecord: record,
			IsAbsent:       isAbsent,
		})
	}

	return grid
}

// resolveSpecialty elige el código de agrupación de un registro: primero la especialidad
// cargada con el registro, después la de la lista por ID y, si no hay ninguna, OTHER.
func resolveSpecialty(record *domain.PlanningRecord, byID map[uuid.UUID]*domain.Specialty) (string, *domain.Specialty) {
	switch {
	case record.Specialty != nil && record.Specialty.Code != "":
		return record.Specialty.Code, record.Specialty
	case byID[record.SpecialtyID] != nil && byID[record.SpecialtyID].Code != "":
		s := byID[record.SpecialtyID]
		return s.Code, s
	default:
		return domain.OtherSpecialtyCode, nil
	}
}
