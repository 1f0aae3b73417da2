package match

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/readingcorps/rsmatch/core/logger"
	"github.com/readingcorps/rsmatch/core/metrics"
	"github.com/readingcorps/rsmatch/core/model"
	"github.com/readingcorps/rsmatch/internal/eventbus"
)

// AssignmentStore is the persistence collaborator the orchestrator commits
// winning solutions through.
type AssignmentStore interface {
	// Check validates one candidate tuple against all committed state.
	Check(a model.Assignment) error
	// Add inserts the tuple keeping the stored list sorted; re-adding an
	// identical tuple is a no-op.
	Add(a model.Assignment, manual bool, at time.Time)
}

// Result is the outcome of matching one school.
type Result struct {
	RunID       string
	School      string
	Assignments []model.Assignment
	Score       Score
	CyclesFound int
	Stats       SearchStats
	Duration    time.Duration
}

// Matcher drives the full pipeline for one school at a time: coach
// eligibility filtering, graph construction, cycle enumeration and ordering,
// the traversal search, and the final commit. Schools must be processed
// sequentially because coach state is shared across them.
type Matcher struct {
	meta  model.Metadata
	cfg   Config
	store AssignmentStore
	log   logger.Logger
	sink  metrics.MetricsSink
	bus   *eventbus.TypedBus[metrics.SearchProgress]
}

// NewMatcher creates a Matcher. The sink and bus may be nil.
func NewMatcher(meta model.Metadata, cfg Config, store AssignmentStore, log logger.Logger, sink metrics.MetricsSink, bus *eventbus.TypedBus[metrics.SearchProgress]) *Matcher {
	if log == nil {
		log = nopLogger{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Matcher{meta: meta, cfg: cfg, store: store, log: log, sink: sink, bus: bus}
}

// MatchSchool finds the best assignment set for the school from the given
// coach pool. A school with no eligible coaches or no students yields a
// valid, empty result.
func (m *Matcher) MatchSchool(school *model.School, coaches []*model.Coach) (*Result, error) {
	start := time.Now()
	res := &Result{RunID: uuid.NewString(), School: school.Name}

	var eligible []*model.Coach
	for _, c := range coaches {
		if c.WantsSchool(school.Name, m.cfg.FirstChoice, m.cfg.SecondChoice, m.cfg.GreatestNeed) {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 || len(school.Students) == 0 {
		m.log.Infof("%s: no eligible coaches or no students, nothing to match", school.Name)
		// Score the empty solution so reports still carry the real
		// unassigned counts.
		res.Score = NewTraversal(school, eligible, m.meta.SlotsPerAssignment()).Score()
		res.Duration = time.Since(start)
		return res, nil
	}

	// Shuffle to remove student-order bias; the fixed seed keeps runs
	// reproducible.
	students := make([]*model.Student, len(school.Students))
	copy(students, school.Students)
	rng := rand.New(rand.NewSource(m.cfg.Seed))
	rng.Shuffle(len(students), func(i, j int) {
		students[i], students[j] = students[j], students[i]
	})

	ag, err := BuildGraph(school, students, m.meta)
	if err != nil {
		return nil, fmt.Errorf("build graph for %s: %w", school.Name, err)
	}

	perCoach := make([][]Cycle, len(eligible))
	total := 0
	for i, c := range eligible {
		perCoach[i] = EnumerateCoachCycles(ag, c, school, m.meta)
		total += len(perCoach[i])
	}
	cycles := OrderCycles(perCoach)
	res.CyclesFound = total
	m.log.Infof("%s: %d coaches, %d availability nodes, %d cycles", school.Name, len(eligible), ag.NumNodes(), total)

	root := NewTraversal(school, eligible, m.meta.SlotsPerAssignment())
	best, stats := Search(root, ag, cycles, m.cfg, m.observer(res.RunID, school.Name))
	res.Stats = stats
	if stats.BoundReached {
		m.log.Warnf("%s: search bound reached, %d traversals culled", school.Name, stats.Culled)
	}
	if best != nil {
		res.Assignments = best.Assignments()
		res.Score = best.Score()
	}
	res.Duration = time.Since(start)

	if err := m.sink.RecordMatchResult([]metrics.MatchResult{{
		RunID:              res.RunID,
		School:             res.School,
		Assignments:        len(res.Assignments),
		UnassignedStudents: res.Score[0],
		UnassignedTeachers: res.Score[1],
		SlotOverlaps:       res.Score[2],
		DaysRemaining:      res.Score[3],
		CyclesFound:        res.CyclesFound,
		Culled:             stats.Culled,
		Duration:           res.Duration,
		Time:               time.Now(),
	}}); err != nil {
		m.log.Errorf("record match result: %v", err)
	}

	m.log.Infof("%s: %d assignments, score %s", school.Name, len(res.Assignments), res.Score)
	return res, nil
}

// Commit re-validates every winning tuple against the live persistent state
// and durably adds them. The search enforces the same invariants, so a
// validation failure here means an internal bug; the whole school's result is
// aborted rather than silently dropping the offending assignment.
func (m *Matcher) Commit(res *Result, at time.Time) error {
	for _, a := range res.Assignments {
		if err := m.store.Check(a); err != nil {
			return fmt.Errorf("winning solution for %s failed validation on %s: %w", res.School, a, err)
		}
	}
	for _, a := range res.Assignments {
		m.store.Add(a, false, at)
	}
	return nil
}

// observer publishes search progress to the bus and metrics sink.
func (m *Matcher) observer(runID, school string) Observer {
	return func(p Progress) {
		ev := metrics.SearchProgress{
			RunID:           runID,
			School:          school,
			CyclesProcessed: p.CyclesProcessed,
			CyclesTotal:     p.CyclesTotal,
			Active:          p.Active,
			Finished:        p.Finished,
			Culled:          p.Culled,
			Time:            time.Now(),
		}
		if m.bus != nil {
			m.bus.Publish(ev)
		}
		if rec, ok := m.sink.(metrics.SearchRecorder); ok {
			if err := rec.RecordSearchProgress(ev); err != nil {
				m.log.Debugf("record search progress: %v", err)
			}
		}
	}
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
