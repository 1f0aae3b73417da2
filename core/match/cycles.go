package match

import (
	"sort"

	gograph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/readingcorps/rsmatch/core/model"
)

// Cycle is one candidate school visit: a coach plus a canonicalized,
// contiguous run of same-teacher, same-day slot nodes whose length is a
// positive multiple of slots-per-assignment.
type Cycle struct {
	Coach model.GUID
	Nodes []NodeKey
}

// Teacher returns the teacher the visit belongs to.
func (c Cycle) Teacher() model.GUID { return c.Nodes[len(c.Nodes)-1].Teacher }

// Day returns the day the visit occurs on.
func (c Cycle) Day() int { return c.Nodes[0].Day }

// Units returns the number of assignment units the visit holds.
func (c Cycle) Units(slotsPerAssignment int) int { return len(c.Nodes) / slotsPerAssignment }

// coachNode is the synthetic node added per coach to close visit blocks into
// elementary cycles.
type coachNode struct {
	id int64
}

func (n coachNode) ID() int64 { return n.id }

// EnumerateCoachCycles finds every feasible visit block for one coach. A
// working copy of the base graph is augmented with a coach node linked both
// ways to every slot node the coach is available for and whose teacher's
// grade the coach accepts. Every elementary cycle in that graph contains the
// coach node exactly once and a contiguous same-teacher, same-day slot run.
func EnumerateCoachCycles(ag *Graph, coach *model.Coach, school *model.School, meta model.Metadata) []Cycle {
	cg := simple.NewDirectedGraph()
	gograph.Copy(cg, ag.g)
	cn := coachNode{id: cg.NewNode().ID()}
	cg.AddNode(cn)

	numDays := meta.NumDays()
	numSlots := meta.NumSlots()
	for day := 0; day < numDays; day++ {
		for slot := 0; slot < numSlots; slot++ {
			if coach.Schedule[day][slot] != model.SlotAvailable {
				continue
			}
			for _, teacherGUID := range ag.TeachersAt(day, slot) {
				teacher := school.TeacherByGUID(teacherGUID)
				if teacher == nil || !coach.AcceptsGrade(teacher.Grade) {
					continue
				}
				node := ag.nodes[NodeKey{Day: day, Slot: slot, Teacher: teacherGUID}]
				cg.SetEdge(simple.Edge{F: cn, T: node})
				cg.SetEdge(simple.Edge{F: node, T: cn})
			}
		}
	}

	spa := meta.SlotsPerAssignment()
	remaining := coach.NumStudents - len(coach.Assignments)

	var cycles []Cycle
	for _, raw := range topo.DirectedCyclesIn(cg) {
		// Johnson's output repeats the starting node at the end.
		if len(raw) > 1 && raw[0].ID() == raw[len(raw)-1].ID() {
			raw = raw[:len(raw)-1]
		}
		keys := make([]NodeKey, 0, len(raw))
		for _, n := range raw {
			if sn, ok := n.(slotNode); ok {
				keys = append(keys, sn.key)
			}
		}
		if len(keys) == 0 || len(keys)%spa != 0 {
			continue
		}
		if len(keys)/spa > remaining {
			continue
		}
		// The cycle may start mid-block; sorting yields the canonical form
		// regardless of where the cycle-finder began.
		sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
		cycles = append(cycles, Cycle{Coach: coach.GUID, Nodes: keys})
	}

	// Shortest first; the search pops from the tail, so the longest visits
	// are tried first.
	sort.SliceStable(cycles, func(i, j int) bool { return len(cycles[i].Nodes) < len(cycles[j].Nodes) })
	return cycles
}

// OrderCycles merges per-coach cycle lists into the single ordered list the
// search consumes. Cycles are interleaved round-robin by coach so one highly
// available coach cannot dominate the head of the list, then regrouped and
// interleaved round-robin by teacher to spread coaches across classrooms.
func OrderCycles(perCoach [][]Cycle) []Cycle {
	var merged []Cycle
	for {
		added := false
		for i := range perCoach {
			if n := len(perCoach[i]); n > 0 {
				merged = append(merged, perCoach[i][n-1])
				perCoach[i] = perCoach[i][:n-1]
				added = true
			}
		}
		if !added {
			break
		}
	}

	var teacherOrder []model.GUID
	byTeacher := make(map[model.GUID][]Cycle)
	for _, c := range merged {
		t := c.Teacher()
		if _, ok := byTeacher[t]; !ok {
			teacherOrder = append(teacherOrder, t)
		}
		byTeacher[t] = append(byTeacher[t], c)
	}

	ordered := make([]Cycle, 0, len(merged))
	for {
		added := false
		for _, t := range teacherOrder {
			if list := byTeacher[t]; len(list) > 0 {
				ordered = append(ordered, list[0])
				byTeacher[t] = list[1:]
				added = true
			}
		}
		if !added {
			break
		}
	}
	return ordered
}
