package match

import "fmt"

// Score is the lexicographic solution quality tuple; ascending is better.
// Components, in priority order:
//  1. students still unassigned
//  2. teachers with zero committed assignments
//  3. assignments sharing a (day, slot) with another assignment, which means
//     simultaneous coach visits to the school
//  4. aggregate unused coach-day capacity left on the table
type Score [4]int

// Less reports whether s ranks strictly better than o.
func (s Score) Less(o Score) bool {
	for i := range s {
		if s[i] != o[i] {
			return s[i] < o[i]
		}
	}
	return false
}

func (s Score) String() string {
	return fmt.Sprintf("(unassigned=%d teacherless=%d overlaps=%d days=%d)", s[0], s[1], s[2], s[3])
}

// Score computes the traversal's score, caching the value until
// InvalidateScore is called. Sorting the same list twice requires an
// invalidation in between or the cache would serve stale values.
func (t *Traversal) Score() Score {
	if t.score != nil {
		return *t.score
	}

	teacherless := make(map[int]struct{}, len(t.school.Teachers))
	for _, teacher := range t.school.Teachers {
		teacherless[int(teacher.GUID)] = struct{}{}
	}
	for _, a := range t.assignments {
		delete(teacherless, int(a.Teacher))
	}

	type daySlot struct{ day, slot int }
	seen := make(map[daySlot]struct{}, len(t.assignments))
	overlaps := 0
	for _, a := range t.assignments {
		ds := daySlot{a.Day, a.Slot}
		if _, ok := seen[ds]; ok {
			overlaps++
		} else {
			seen[ds] = struct{}{}
		}
	}

	s := Score{len(t.unassigned), len(teacherless), overlaps, t.daysRemaining}
	t.score = &s
	return s
}

// InvalidateScore drops the cached score so the next access recomputes it.
func (t *Traversal) InvalidateScore() { t.score = nil }
