package model

// GUID is an opaque integer identity assigned by the store catalog. Each
// entity class draws from its own range so ids are self-describing in the
// database file.
type GUID int

// GreatestNeed is the school-preference sentinel a coach may use in place of
// a named school.
const GreatestNeed = "Greatest Need"

// Teacher belongs to exactly one school and teaches a single grade.
type Teacher struct {
	GUID  GUID   `json:"guid"`
	Email string `json:"email"`
	First string `json:"first"`
	Last  string `json:"last"`
	Grade string `json:"grade"`
}

// Student is referred by its teacher with a weekly availability matrix.
// Assigned is rebuilt from the committed assignment list on load, so it is
// not persisted.
type Student struct {
	GUID      GUID     `json:"guid"`
	StudentID string   `json:"student_id"`
	Teacher   string   `json:"teacher"`
	First     string   `json:"first"`
	Last      string   `json:"last"`
	Grade     string   `json:"grade"`
	Gender    string   `json:"gender"`
	ELL       string   `json:"ell"`
	Schedule  Schedule `json:"schedule"`
	Assigned  bool     `json:"-"`
}

// Coach is a volunteer with up to two ranked school preferences (or the
// GreatestNeed sentinel), an optional grade preference set, and capacity
// limits on distinct students and distinct visit days. AssignedDays and
// Assignments grow monotonically as commits occur; both are rebuilt from the
// assignment list on load.
type Coach struct {
	GUID        GUID     `json:"guid"`
	VID         string   `json:"vid"`
	Email       string   `json:"email"`
	First       string   `json:"first"`
	Last        string   `json:"last"`
	Schools     []string `json:"schools"`
	Grades      []string `json:"grades"`
	NumStudents int      `json:"num_students"`
	NumDays     int      `json:"num_days"`
	Schedule    Schedule `json:"schedule"`

	AssignedDays map[int]struct{}        `json:"-"`
	Assignments  map[Assignment]struct{} `json:"-"`
}

// AcceptsGrade reports whether the coach's grade preference set admits the
// grade. An empty set means any grade.
func (c *Coach) AcceptsGrade(grade string) bool {
	if len(c.Grades) == 0 {
		return true
	}
	for _, g := range c.Grades {
		if g == grade {
			return true
		}
	}
	return false
}

// WantsSchool reports whether the coach's preferences match the named school
// under the given eligibility toggles.
func (c *Coach) WantsSchool(school string, first, second, greatest bool) bool {
	if first && len(c.Schools) > 0 && c.Schools[0] == school {
		return true
	}
	if second && len(c.Schools) > 1 && c.Schools[1] == school {
		return true
	}
	if greatest {
		for _, s := range c.Schools {
			if s == GreatestNeed {
				return true
			}
		}
	}
	return false
}

// School holds the students and teachers referred for one site.
type School struct {
	Name     string     `json:"name"`
	Students []*Student `json:"students"`
	Teachers []*Teacher `json:"teachers"`
}

// TeacherByEmail returns the school's teacher with the given email, or nil.
func (s *School) TeacherByEmail(email string) *Teacher {
	for _, t := range s.Teachers {
		if t.Email == email {
			return t
		}
	}
	return nil
}

// TeacherByGUID returns the school's teacher with the given id, or nil.
func (s *School) TeacherByGUID(guid GUID) *Teacher {
	for _, t := range s.Teachers {
		if t.GUID == guid {
			return t
		}
	}
	return nil
}
