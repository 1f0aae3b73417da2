package store

import "github.com/readingcorps/rsmatch/core/model"

// GUID counter bases; each entity class draws from its own range.
const (
	studentBase = 100000
	coachBase   = 200000
	teacherBase = 300000
)

// Catalog indexes every entity by GUID for the duration of one run and
// allocates ids for entities that arrived without one.
type Catalog struct {
	NextStudent int `json:"curr_student"`
	NextCoach   int `json:"curr_coach"`
	NextTeacher int `json:"curr_teacher"`

	students map[model.GUID]*model.Student
	teachers map[model.GUID]*model.Teacher
	coaches  map[model.GUID]*model.Coach
}

// NewCatalog returns an empty catalog with counters at their bases.
func NewCatalog() *Catalog {
	c := &Catalog{NextStudent: studentBase, NextCoach: coachBase, NextTeacher: teacherBase}
	c.reset()
	return c
}

func (c *Catalog) reset() {
	c.students = make(map[model.GUID]*model.Student)
	c.teachers = make(map[model.GUID]*model.Teacher)
	c.coaches = make(map[model.GUID]*model.Coach)
}

// AddStudent indexes the student, allocating a GUID when missing.
func (c *Catalog) AddStudent(s *model.Student) {
	if s.GUID == 0 {
		s.GUID = model.GUID(c.NextStudent)
		c.NextStudent++
	}
	c.students[s.GUID] = s
}

// AddTeacher indexes the teacher, allocating a GUID when missing.
func (c *Catalog) AddTeacher(t *model.Teacher) {
	if t.GUID == 0 {
		t.GUID = model.GUID(c.NextTeacher)
		c.NextTeacher++
	}
	c.teachers[t.GUID] = t
}

// AddCoach indexes the coach, allocating a GUID when missing.
func (c *Catalog) AddCoach(coach *model.Coach) {
	if coach.GUID == 0 {
		coach.GUID = model.GUID(c.NextCoach)
		c.NextCoach++
	}
	c.coaches[coach.GUID] = coach
}

// Student returns the student with the given id, or nil.
func (c *Catalog) Student(guid model.GUID) *model.Student { return c.students[guid] }

// Teacher returns the teacher with the given id, or nil.
func (c *Catalog) Teacher(guid model.GUID) *model.Teacher { return c.teachers[guid] }

// Coach returns the coach with the given id, or nil.
func (c *Catalog) Coach(guid model.GUID) *model.Coach { return c.coaches[guid] }
