package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/readingcorps/rsmatch/core/model"
)

// Coach spreadsheet column layout.
const (
	coachColTimestamp    = 0
	coachColEmail        = 1
	coachColVID          = 2
	coachColFirst        = 3
	coachColLast         = 4
	coachColSchools      = 9
	coachColAvailability = 11
	coachColNumStudents  = 12
	coachColNumDays      = 13
)

// defaultGrades is the full grade range; the signup form has no grade
// preference question, so imported coaches accept any grade.
var defaultGrades = []string{"K", "1", "2", "3", "4", "5"}

// ParseCoachRow parses one coach signup spreadsheet row.
func ParseCoachRow(row []string, meta model.Metadata) (*model.Coach, error) {
	if len(row) <= coachColNumDays {
		return nil, fmt.Errorf("coach row too short: %d columns", len(row))
	}
	numStudents, err := strconv.Atoi(strings.TrimSpace(row[coachColNumStudents]))
	if err != nil {
		return nil, fmt.Errorf("invalid student count %q", row[coachColNumStudents])
	}
	numDays, err := strconv.Atoi(strings.TrimSpace(row[coachColNumDays]))
	if err != nil {
		return nil, fmt.Errorf("invalid day count %q", row[coachColNumDays])
	}

	schedule := model.NewSchedule(meta.NumDays(), meta.NumSlots())
	for _, window := range strings.Split(strings.TrimSpace(row[coachColAvailability]), ",") {
		fields := strings.Fields(strings.TrimSpace(window))
		if len(fields) != 2 {
			return nil, fmt.Errorf("invalid availability window %q", window)
		}
		day, err := meta.DayIndex(fields[0])
		if err != nil {
			return nil, err
		}
		from, to, err := parseWindow(fields[1], meta)
		if err != nil {
			return nil, err
		}
		schedule.MarkWindow(day, from, to, model.SlotAvailable)
	}

	return &model.Coach{
		VID:          row[coachColVID],
		Email:        row[coachColEmail],
		First:        row[coachColFirst],
		Last:         row[coachColLast],
		Schools:      []string{strings.TrimSpace(row[coachColSchools]), strings.TrimSpace(row[coachColSchools+1])},
		Grades:       append([]string(nil), defaultGrades...),
		NumStudents:  numStudents,
		NumDays:      numDays,
		Schedule:     schedule,
		AssignedDays: make(map[int]struct{}),
		Assignments:  make(map[model.Assignment]struct{}),
	}, nil
}
