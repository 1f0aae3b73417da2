package match

import (
	"fmt"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/readingcorps/rsmatch/core/model"
)

// NodeKey identifies a time-availability graph node: one teacher's class
// during one (day, slot) cell.
type NodeKey struct {
	Day     int
	Slot    int
	Teacher model.GUID
}

// Less reports whether k sorts before o under (day, slot, teacher) order.
func (k NodeKey) Less(o NodeKey) bool {
	if k.Day != o.Day {
		return k.Day < o.Day
	}
	if k.Slot != o.Slot {
		return k.Slot < o.Slot
	}
	return k.Teacher < o.Teacher
}

// slotNode is a gonum graph node carrying the students available in that
// teacher's class during that slot.
type slotNode struct {
	id       int64
	key      NodeKey
	students []model.GUID
}

func (n slotNode) ID() int64 { return n.id }

// cell addresses one (day, slot) position across all teachers.
type cell struct {
	Day  int
	Slot int
}

// Graph is the time-availability graph for one school. Nodes are
// (day, slot, teacher) triples; directed edges run only to the next slot of
// the same day and teacher, so any path follows chronological,
// single-teacher order. Built once per school per run and read-only after.
type Graph struct {
	g     *simple.DirectedGraph
	nodes map[NodeKey]slotNode
	// cellTeachers preserves first-seen teacher order per cell so iteration
	// stays deterministic.
	cellTeachers map[cell][]model.GUID
}

// BuildGraph constructs the availability graph from the school's students in
// the given order. Student order is significant: it fixes the order in which
// the search offers students for each node.
func BuildGraph(school *model.School, students []*model.Student, meta model.Metadata) (*Graph, error) {
	ag := &Graph{
		g:            simple.NewDirectedGraph(),
		nodes:        make(map[NodeKey]slotNode),
		cellTeachers: make(map[cell][]model.GUID),
	}

	numDays := meta.NumDays()
	numSlots := meta.NumSlots()
	for day := 0; day < numDays; day++ {
		for slot := 0; slot < numSlots; slot++ {
			for _, student := range students {
				if student.Schedule[day][slot] != model.SlotAvailable {
					continue
				}
				teacher := school.TeacherByEmail(student.Teacher)
				if teacher == nil {
					return nil, fmt.Errorf("student %d references unknown teacher %q", student.GUID, student.Teacher)
				}
				key := NodeKey{Day: day, Slot: slot, Teacher: teacher.GUID}
				node, ok := ag.nodes[key]
				if !ok {
					node = slotNode{id: int64(len(ag.nodes)), key: key}
					c := cell{Day: day, Slot: slot}
					ag.cellTeachers[c] = append(ag.cellTeachers[c], teacher.GUID)
				}
				node.students = append(node.students, student.GUID)
				ag.nodes[key] = node
			}
		}
	}

	for _, node := range ag.nodes {
		ag.g.AddNode(node)
	}

	// Chronological edges within a day and teacher.
	for key, node := range ag.nodes {
		prev, ok := ag.nodes[NodeKey{Day: key.Day, Slot: key.Slot - 1, Teacher: key.Teacher}]
		if ok {
			ag.g.SetEdge(simple.Edge{F: prev, T: node})
		}
	}

	return ag, nil
}

// Students returns the ordered student list available at the given node.
func (ag *Graph) Students(key NodeKey) []model.GUID {
	return ag.nodes[key].students
}

// TeachersAt returns the teachers with at least one available student during
// the cell, in first-seen order.
func (ag *Graph) TeachersAt(day, slot int) []model.GUID {
	return ag.cellTeachers[cell{Day: day, Slot: slot}]
}

// NumNodes returns the number of availability nodes.
func (ag *Graph) NumNodes() int { return len(ag.nodes) }
