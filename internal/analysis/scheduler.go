package analysis

// Phase is the scheduler's externally visible state
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseRunning
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseRunning:
		return "running"
	default:
		return "idle"
	}
}

// Trigger is one armed debounce. Only the most recently armed trigger can
// fire; every earlier one is stale.
type Trigger struct {
	Generation uint64
}

// Cycle is the snapshot handed to the collaborators for one analysis round
type Cycle struct {
	ID        uint64
	Text      string
	Immediate bool
}

// Scheduler tracks debounce generations and in-flight cycles. It is not
// safe for concurrent use; the UI loop owns it.
type Scheduler struct {
	generation uint64
	pending    bool
	latest     uint64 // ID of the most recently started cycle
	inFlight   int
}

// NewScheduler returns an idle scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Arm supersedes any pending trigger and returns a new one
func (s *Scheduler) Arm() Trigger {
	s.generation++
	s.pending = true
	return Trigger{Generation: s.generation}
}

// Fire consumes t. It reports false when t has been superseded or cancelled.
func (s *Scheduler) Fire(t Trigger) bool {
	if !s.pending || t.Generation != s.generation {
		return false
	}
	s.pending = false
	return true
}

// Begin starts a cycle for text. Any pending trigger is invalidated, so an
// immediate cycle also swallows a debounce armed before it.
func (s *Scheduler) Begin(text string, immediate bool) Cycle {
	s.generation++
	s.pending = false
	s.latest = s.generation
	s.inFlight++
	return Cycle{ID: s.generation, Text: text, Immediate: immediate}
}

// Finish records that c returned and reports whether it is still the most
// recently started cycle. A false result means its output is stale.
func (s *Scheduler) Finish(c Cycle) bool {
	if s.inFlight > 0 {
		s.inFlight--
	}
	return c.ID == s.latest
}

// Invalidate marks every cycle started so far as stale, along with any
// pending trigger. Cycles still in flight keep counting toward Phase.
func (s *Scheduler) Invalidate() {
	s.generation++
	s.pending = false
	s.latest = s.generation
}

// Latest returns the ID of the most recently started cycle
func (s *Scheduler) Latest() uint64 {
	return s.latest
}

// Phase reports the current state
func (s *Scheduler) Phase() Phase {
	switch {
	case s.pending:
		return PhasePending
	case s.inFlight > 0:
		return PhaseRunning
	default:
		return PhaseIdle
	}
}
