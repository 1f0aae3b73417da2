// Package export renders committed assignments and per-school resource
// summaries. It only formats; all matching happens in core/match.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/readingcorps/rsmatch/core/model"
	"github.com/readingcorps/rsmatch/infra/store"
)

var assignmentHeader = []string{
	"School", "Day", "Time",
	"Teacher Email", "Teacher First", "Teacher Last",
	"Student ID", "Student First", "Student Last",
	"Grade", "Gender", "ELL Student",
	"Volunteer ID", "Coach Email", "Coach First", "Coach Last",
	"Timestamp",
}

// WriteAssignmentsCSV writes every committed assignment to w in spreadsheet
// form, one row per visit segment, in tuple order.
func WriteAssignmentsCSV(w io.Writer, s *store.Store) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(assignmentHeader); err != nil {
		return err
	}
	catalog := s.Catalog()
	for _, rec := range s.Assignments() {
		a := rec.Assign
		teacher := catalog.Teacher(a.Teacher)
		student := catalog.Student(a.Student)
		coach := catalog.Coach(a.Coach)
		if teacher == nil || student == nil || coach == nil {
			return fmt.Errorf("assignment %s references unknown entity", a)
		}
		school := s.FindSchool(a.Teacher)
		schoolName := ""
		if school != nil {
			schoolName = school.Name
		}
		timestamp := rec.Timestamp
		if rec.Manual {
			timestamp = "manual"
		}
		row := []string{
			schoolName,
			s.Metadata.DayName(a.Day),
			s.Metadata.SlotToTime(a.Slot),
			teacher.Email, teacher.First, teacher.Last,
			student.StudentID, student.First, student.Last,
			student.Grade, student.Gender, student.ELL,
			coach.VID, coach.Email, coach.First, coach.Last,
			timestamp,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteInvalidRows writes rejected import rows, each with its error in the
// final column.
func WriteInvalidRows(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// reportEntry is one key=value line of a school section.
type reportEntry struct {
	key   string
	value string
}

// WriteReport writes an INI-style resource report with one section per
// school, sorted by name.
func WriteReport(w io.Writer, s *store.Store) error {
	schools := make([]*model.School, len(s.Schools))
	copy(schools, s.Schools)
	sort.Slice(schools, func(i, j int) bool { return schools[i].Name < schools[j].Name })

	for _, school := range schools {
		if _, err := fmt.Fprintf(w, "[%s]\n", school.Name); err != nil {
			return err
		}
		for _, entry := range schoolReport(s, school) {
			if _, err := fmt.Fprintf(w, "%s=%s\n", entry.key, entry.value); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func schoolReport(s *store.Store, school *model.School) []reportEntry {
	assigned := 0
	assignedTeachers := make(map[string]struct{})
	for _, student := range school.Students {
		if student.Assigned {
			assigned++
			assignedTeachers[student.Teacher] = struct{}{}
		}
	}
	total := len(school.Students)
	unassigned := total - assigned
	percent := func(n int) string {
		if total == 0 {
			return "0.00"
		}
		return strconv.FormatFloat(float64(n)/float64(total)*100, 'f', 2, 64)
	}

	var first, second, greatest []*model.Coach
	distinct := make(map[model.GUID]struct{})
	for _, coach := range s.Coaches {
		if len(coach.Schools) > 0 && coach.Schools[0] == school.Name {
			first = append(first, coach)
			distinct[coach.GUID] = struct{}{}
		}
		if len(coach.Schools) > 1 && coach.Schools[1] == school.Name {
			second = append(second, coach)
			distinct[coach.GUID] = struct{}{}
		}
		for _, pref := range coach.Schools {
			if pref == model.GreatestNeed {
				greatest = append(greatest, coach)
				distinct[coach.GUID] = struct{}{}
				break
			}
		}
	}

	entries := []reportEntry{
		{"Students.Total", strconv.Itoa(total)},
		{"Students.Assigned", strconv.Itoa(assigned)},
		{"Students.Assigned.Percent", percent(assigned)},
		{"Students.Unassigned", strconv.Itoa(unassigned)},
		{"Teachers.Total", strconv.Itoa(len(school.Teachers))},
		{"Teachers.Assigned", strconv.Itoa(len(assignedTeachers))},
		{"Teachers.Unassigned", strconv.Itoa(len(school.Teachers) - len(assignedTeachers))},
		{"Coaches.Total", strconv.Itoa(len(distinct))},
	}

	pools := []struct {
		name    string
		coaches []*model.Coach
	}{
		{"FirstChoice", first},
		{"SecondChoice", second},
		{"GreatestNeed", greatest},
	}
	for _, pool := range pools {
		var assignedCoaches, unassignedCoaches int
		var assignedDaysLeft, unassignedDaysLeft int
		for _, coach := range pool.coaches {
			daysLeft := coach.NumDays - len(coach.AssignedDays)
			if len(coach.Assignments) > 0 {
				assignedCoaches++
				assignedDaysLeft += daysLeft
			} else {
				unassignedCoaches++
				unassignedDaysLeft += daysLeft
			}
		}
		entries = append(entries,
			reportEntry{"Coaches." + pool.name + ".Total", strconv.Itoa(len(pool.coaches))},
			reportEntry{"Coaches." + pool.name + ".Assigned", strconv.Itoa(assignedCoaches)},
			reportEntry{"Coaches." + pool.name + ".Assigned.DaysRemaining", strconv.Itoa(assignedDaysLeft)},
			reportEntry{"Coaches." + pool.name + ".Unassigned", strconv.Itoa(unassignedCoaches)},
			reportEntry{"Coaches." + pool.name + ".Unassigned.DaysRemaining", strconv.Itoa(unassignedDaysLeft)},
		)
	}
	return entries
}
