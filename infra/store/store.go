// Package store persists the matching database: metadata, schools, coaches,
// and the sorted committed assignment list, in a single JSON file. It is the
// persistence collaborator the match orchestrator validates and commits
// winning solutions through.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/readingcorps/rsmatch/core/logger"
	"github.com/readingcorps/rsmatch/core/match"
	"github.com/readingcorps/rsmatch/core/model"
)

// Record is one committed assignment with its provenance.
type Record struct {
	Assign    model.Assignment `json:"assign"`
	Manual    bool             `json:"manual"`
	Timestamp string           `json:"timestamp"`
}

// Store holds the full matching database for one run.
type Store struct {
	path string
	log  logger.Logger

	Metadata model.Metadata
	Schools  []*model.School
	Coaches  []*model.Coach

	catalog *Catalog
	records []Record
}

type fileFormat struct {
	Metadata    model.Metadata  `json:"metadata"`
	Assignments []Record        `json:"assignments"`
	Schools     []*model.School `json:"schools"`
	Coaches     []*model.Coach  `json:"coaches"`
	Catalog     *Catalog        `json:"catalog"`
}

// New creates an empty store with the given metadata.
func New(meta model.Metadata, log logger.Logger) *Store {
	return &Store{Metadata: meta, catalog: NewCatalog(), log: log}
}

// Load reads a database file, rebuilds the catalog, and replays the stored
// assignments so coach and student state reflects every prior commit.
// Non-manual assignments are re-validated during replay; a conflict aborts
// the load.
func Load(path string, log logger.Logger) (*Store, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ff fileFormat
	if err := json.Unmarshal(b, &ff); err != nil {
		return nil, fmt.Errorf("parse database %s: %w", path, err)
	}
	if err := ff.Metadata.Validate(); err != nil {
		return nil, fmt.Errorf("database %s: %w", path, err)
	}

	s := &Store{
		path:     path,
		log:      log,
		Metadata: ff.Metadata,
		Schools:  ff.Schools,
		Coaches:  ff.Coaches,
		catalog:  ff.Catalog,
	}
	if s.catalog == nil {
		s.catalog = NewCatalog()
	}
	s.InitCatalog()

	for _, rec := range ff.Assignments {
		if !rec.Manual {
			if err := s.Check(rec.Assign); err != nil {
				return nil, fmt.Errorf("stored assignment %s: %w", rec.Assign, err)
			}
		}
		s.add(rec)
	}
	return s, nil
}

// Save writes the database back to the path it was loaded from.
func (s *Store) Save() error {
	if s.path == "" {
		return fmt.Errorf("no path specified")
	}
	return s.SaveTo(s.path)
}

// SaveTo writes the database to the given path.
func (s *Store) SaveTo(path string) error {
	ff := fileFormat{
		Metadata:    s.Metadata,
		Assignments: s.records,
		Schools:     s.Schools,
		Coaches:     s.Coaches,
		Catalog:     s.catalog,
	}
	b, err := json.MarshalIndent(ff, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write database %s: %w", path, err)
	}
	s.path = path
	return nil
}

// InitCatalog indexes every entity, allocating GUIDs where missing, and
// initializes the coaches' run-state sets.
func (s *Store) InitCatalog() {
	s.catalog.reset()
	for _, school := range s.Schools {
		for _, student := range school.Students {
			s.catalog.AddStudent(student)
		}
		for _, teacher := range school.Teachers {
			s.catalog.AddTeacher(teacher)
		}
	}
	for _, coach := range s.Coaches {
		s.catalog.AddCoach(coach)
		if coach.AssignedDays == nil {
			coach.AssignedDays = make(map[int]struct{})
		}
		if coach.Assignments == nil {
			coach.Assignments = make(map[model.Assignment]struct{})
		}
	}
}

// Catalog exposes the entity index.
func (s *Store) Catalog() *Catalog { return s.catalog }

// Assignments returns a copy of the committed records in tuple order.
func (s *Store) Assignments() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// FindSchool returns the school the teacher belongs to, or nil.
func (s *Store) FindSchool(teacher model.GUID) *model.School {
	for _, school := range s.Schools {
		if school.TeacherByGUID(teacher) != nil {
			return school
		}
	}
	return nil
}

// Check validates one candidate tuple against all committed state. It
// returns a *match.ConflictError describing the first clash found, or nil.
func (s *Store) Check(a model.Assignment) error {
	coach := s.catalog.Coach(a.Coach)
	student := s.catalog.Student(a.Student)
	if coach == nil || student == nil {
		return &match.ConflictError{Kind: match.SlotOccupied, Assignment: a, Detail: "unknown coach or student"}
	}
	span := s.Metadata.SlotsPerAssignment()
	if a.Day < 0 || a.Day >= s.Metadata.NumDays() || a.Slot < 0 || a.Slot+span > s.Metadata.NumSlots() {
		return &match.ConflictError{Kind: match.SlotOccupied, Assignment: a, Detail: "day or slot outside the school week"}
	}
	when := fmt.Sprintf("%s at %s", s.Metadata.DayName(a.Day), s.Metadata.SlotToTime(a.Slot))
	for i := 0; i < span; i++ {
		if coach.Schedule[a.Day][a.Slot+i] == model.SlotUnavailable {
			return &match.ConflictError{Kind: match.SlotOccupied, Assignment: a, Detail: "coach not available " + when}
		}
		if student.Schedule[a.Day][a.Slot+i] == model.SlotUnavailable {
			return &match.ConflictError{Kind: match.SlotOccupied, Assignment: a, Detail: "student not available " + when}
		}
	}

	school := s.FindSchool(a.Teacher)
	for _, rec := range s.records {
		curr := rec.Assign
		if curr == a {
			return &match.ConflictError{Kind: match.DuplicateAssignment, Assignment: a}
		}
		if curr.Student == a.Student {
			return &match.ConflictError{Kind: match.StudentAlreadyAssigned, Assignment: a, Detail: fmt.Sprintf("already in %s", curr)}
		}
		if curr.Day == a.Day && curr.Slot == a.Slot && curr.Coach == a.Coach {
			return &match.ConflictError{Kind: match.CoachDoubleBookedSameDay, Assignment: a, Detail: "coach already assigned " + when}
		}
		if curr.Day == a.Day && curr.Coach == a.Coach && s.FindSchool(curr.Teacher) != school {
			return &match.ConflictError{Kind: match.CoachCrossSchoolConflictSameDay, Assignment: a, Detail: "coach already at another school " + s.Metadata.DayName(a.Day)}
		}
	}
	return nil
}

// Add commits the tuple, updating the student and coach run state, stamping
// their schedules for the full span, and inserting into the sorted record
// list. Re-adding an identical tuple is a no-op.
func (s *Store) Add(a model.Assignment, manual bool, at time.Time) {
	s.add(Record{Assign: a, Manual: manual, Timestamp: at.Format(time.RFC3339)})
}

func (s *Store) add(rec Record) {
	a := rec.Assign
	student := s.catalog.Student(a.Student)
	coach := s.catalog.Coach(a.Coach)
	if student == nil || coach == nil {
		s.log.Warnf("dropping record %s: unknown coach or student", a)
		return
	}
	span := s.Metadata.SlotsPerAssignment()
	if a.Day < 0 || a.Day >= s.Metadata.NumDays() || a.Slot < 0 || a.Slot+span > s.Metadata.NumSlots() {
		s.log.Warnf("dropping record %s: day or slot outside the school week", a)
		return
	}

	index := len(s.records)
	for i, curr := range s.records {
		if curr.Assign == a {
			return
		}
		if a.Less(curr.Assign) {
			index = i
			break
		}
	}

	student.Assigned = true
	coach.AssignedDays[a.Day] = struct{}{}
	coach.Assignments[a] = struct{}{}
	coach.Schedule.MarkWindow(a.Day, a.Slot, a.Slot+span, model.SlotCommitted)
	student.Schedule.MarkWindow(a.Day, a.Slot, a.Slot+span, model.SlotCommitted)

	s.records = append(s.records, Record{})
	copy(s.records[index+1:], s.records[index:])
	s.records[index] = rec
}
