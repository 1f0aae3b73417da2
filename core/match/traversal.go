package match

import "github.com/readingcorps/rsmatch/core/model"

// Traversal is one node of the search tree: a snapshot of a partial solution.
// A traversal is done when no more cycles can be added because every coach is
// out of day capacity, every coach is out of student capacity, or no
// unassigned students remain in the school.
//
// Traversals are immutable once created except for the done transition, which
// releases the bulky per-branch maps, and score cache invalidation. Children
// are derived by copy, never by mutating the parent.
type Traversal struct {
	school *model.School
	spa    int

	done  bool
	score *Score

	coachStudents map[model.GUID]int
	coachDays     map[model.GUID]int
	coachUsedDays map[model.GUID]map[int]struct{}

	daysRemaining     int
	studentsRemaining int

	unassigned map[model.GUID]struct{}
	assigned   map[model.GUID]struct{}
	nodesUsed  map[NodeKey]struct{}

	numCycles   int
	assignments []model.Assignment
}

// NewTraversal creates the root of a search tree from live coach and student
// state. Capacities already consumed by prior committed assignments are
// subtracted up front.
func NewTraversal(school *model.School, coaches []*model.Coach, slotsPerAssignment int) *Traversal {
	t := &Traversal{
		school:        school,
		spa:           slotsPerAssignment,
		coachStudents: make(map[model.GUID]int, len(coaches)),
		coachDays:     make(map[model.GUID]int, len(coaches)),
		coachUsedDays: make(map[model.GUID]map[int]struct{}, len(coaches)),
		unassigned:    make(map[model.GUID]struct{}),
		assigned:      make(map[model.GUID]struct{}),
		nodesUsed:     make(map[NodeKey]struct{}),
	}
	for _, c := range coaches {
		t.coachStudents[c.GUID] = c.NumStudents - len(c.Assignments)
		t.coachDays[c.GUID] = c.NumDays - len(c.AssignedDays)
		used := make(map[int]struct{}, len(c.AssignedDays))
		for day := range c.AssignedDays {
			used[day] = struct{}{}
		}
		t.coachUsedDays[c.GUID] = used
		t.daysRemaining += t.coachDays[c.GUID]
		t.studentsRemaining += t.coachStudents[c.GUID]
	}
	for _, s := range school.Students {
		if s.Assigned {
			t.assigned[s.GUID] = struct{}{}
		} else {
			t.unassigned[s.GUID] = struct{}{}
		}
	}
	return t
}

// child clones the traversal's state for a new branch.
func (t *Traversal) child() *Traversal {
	c := &Traversal{
		school:            t.school,
		spa:               t.spa,
		coachStudents:     make(map[model.GUID]int, len(t.coachStudents)),
		coachDays:         make(map[model.GUID]int, len(t.coachDays)),
		coachUsedDays:     make(map[model.GUID]map[int]struct{}, len(t.coachUsedDays)),
		daysRemaining:     t.daysRemaining,
		studentsRemaining: t.studentsRemaining,
		unassigned:        make(map[model.GUID]struct{}, len(t.unassigned)),
		assigned:          make(map[model.GUID]struct{}, len(t.assigned)),
		nodesUsed:         make(map[NodeKey]struct{}, len(t.nodesUsed)),
		numCycles:         t.numCycles,
		assignments:       make([]model.Assignment, len(t.assignments), len(t.assignments)+4),
	}
	for k, v := range t.coachStudents {
		c.coachStudents[k] = v
	}
	for k, v := range t.coachDays {
		c.coachDays[k] = v
	}
	for k, days := range t.coachUsedDays {
		used := make(map[int]struct{}, len(days))
		for day := range days {
			used[day] = struct{}{}
		}
		c.coachUsedDays[k] = used
	}
	for k := range t.unassigned {
		c.unassigned[k] = struct{}{}
	}
	for k := range t.assigned {
		c.assigned[k] = struct{}{}
	}
	for k := range t.nodesUsed {
		c.nodesUsed[k] = struct{}{}
	}
	copy(c.assignments, t.assignments)
	return c
}

// Attempt tries to extend this traversal with the cycle. If the cycle fits,
// a new child traversal containing it is returned; the receiver is never
// extended. If the cycle cannot be added, Attempt returns nil.
//
// Independently of acceptance, the receiver's terminal condition is
// re-evaluated and it transitions to done when no capacity remains.
func (t *Traversal) Attempt(ag *Graph, cyc Cycle) *Traversal {
	result := t.tryCycle(ag, cyc)

	if !t.done && (t.daysRemaining == 0 || t.studentsRemaining == 0 || len(t.unassigned) == 0) {
		t.done = true
		// Release branch state; assignments and score inputs are kept.
		t.coachStudents = nil
		t.coachDays = nil
		t.coachUsedDays = nil
		t.nodesUsed = nil
	}

	return result
}

func (t *Traversal) tryCycle(ag *Graph, cyc Cycle) *Traversal {
	// Checks cascade cheapest-first; refusing invalid paths prunes the tree
	// before any cloning happens.
	if t.coachDays[cyc.Coach] == 0 {
		return nil
	}
	if cyc.Units(t.spa) > t.coachStudents[cyc.Coach] {
		return nil
	}
	day := cyc.Day()
	if _, used := t.coachUsedDays[cyc.Coach][day]; used {
		return nil
	}

	child := t.child()
	child.numCycles++
	for start := 0; start < len(cyc.Nodes); start += t.spa {
		group := cyc.Nodes[start : start+t.spa]
		// Another coach already holds part of this block.
		for _, key := range group {
			if _, occupied := child.nodesUsed[key]; occupied {
				return nil
			}
		}
		for _, key := range group {
			child.nodesUsed[key] = struct{}{}
		}

		// Only students free for the entire block qualify.
		first := ag.Students(group[0])
		candidates := make(map[model.GUID]struct{}, len(first))
		for _, s := range first {
			candidates[s] = struct{}{}
		}
		for _, key := range group[1:] {
			avail := ag.Students(key)
			present := make(map[model.GUID]struct{}, len(avail))
			for _, s := range avail {
				present[s] = struct{}{}
			}
			for s := range candidates {
				if _, ok := present[s]; !ok {
					delete(candidates, s)
				}
			}
		}

		var chosen model.GUID
		found := false
		for _, s := range first {
			if _, ok := candidates[s]; !ok {
				continue
			}
			if _, ok := child.unassigned[s]; ok {
				chosen = s
				found = true
				break
			}
		}
		if !found {
			// A visit with an empty sub-slot is invalid; discard the branch.
			return nil
		}

		delete(child.unassigned, chosen)
		child.assigned[chosen] = struct{}{}
		child.coachStudents[cyc.Coach]--
		child.studentsRemaining--
		child.assignments = append(child.assignments, model.Assignment{
			Day:     group[0].Day,
			Slot:    group[0].Slot,
			Teacher: group[0].Teacher,
			Student: chosen,
			Coach:   cyc.Coach,
		})
	}

	child.coachUsedDays[cyc.Coach][day] = struct{}{}
	child.coachDays[cyc.Coach]--
	child.daysRemaining--
	return child
}

// Done reports whether the traversal is terminal.
func (t *Traversal) Done() bool { return t.done }

// Assignments returns the ordered committed assignment list.
func (t *Traversal) Assignments() []model.Assignment { return t.assignments }

// NumCycles returns how many cycles the traversal accepted.
func (t *Traversal) NumCycles() int { return t.numCycles }

// UnassignedStudents returns how many of the school's students remain
// unassigned in this solution.
func (t *Traversal) UnassignedStudents() int { return len(t.unassigned) }

// DaysRemaining returns the aggregate unused day capacity across coaches.
func (t *Traversal) DaysRemaining() int { return t.daysRemaining }
