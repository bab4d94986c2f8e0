package coordinator

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"soratra/internal/analysis"
	"soratra/internal/config"
	"soratra/internal/domain"
	"soratra/internal/eventbus"
	"soratra/internal/ui/state"
)

// SpellChecker reports the misspelled tokens of a text snapshot
type SpellChecker interface {
	Check(ctx context.Context, text string) (domain.ErrorSet, error)
}

// Predictor suggests completions or next words for a text snapshot
type Predictor interface {
	Predict(ctx context.Context, text string) (domain.Prediction, error)
}

// Outcome is the result of one analysis cycle. Errors and Prediction are
// only meaningful when Err is nil.
type Outcome struct {
	Cycle      analysis.Cycle
	Errors     domain.ErrorSet
	Prediction domain.Prediction
	Err        error
	Elapsed    time.Duration
}

// Coordinator owns the editor state and drives the analysis pipeline. All
// methods except Run must be called from the UI loop.
type Coordinator struct {
	state     *state.EditorState
	scheduler *analysis.Scheduler
	checker   SpellChecker
	predictor Predictor
	bus       eventbus.EventBus

	timeout        time.Duration
	maxSuggestions int
	messages       config.Messages
}

// NewCoordinator creates a coordinator over st. bus may be nil.
func NewCoordinator(st *state.EditorState, checker SpellChecker, predictor Predictor, bus eventbus.EventBus, cfg *config.Config) *Coordinator {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	c := &Coordinator{
		state:          st,
		scheduler:      analysis.NewScheduler(),
		checker:        checker,
		predictor:      predictor,
		bus:            bus,
		timeout:        cfg.RequestTimeout(),
		maxSuggestions: cfg.Analysis.MaxSuggestions,
		messages:       cfg.Messages,
	}
	c.setStatus(domain.StatusIdle, 0)
	return c
}

// State returns the editor state
func (c *Coordinator) State() *state.EditorState {
	return c.state
}

// Phase reports the scheduler phase
func (c *Coordinator) Phase() analysis.Phase {
	return c.scheduler.Phase()
}

// Input records an edit: word count and overlay are updated before this
// returns, status goes busy and a fresh debounce trigger is armed. Any
// trigger armed earlier is superseded.
func (c *Coordinator) Input(text string) analysis.Trigger {
	c.state.SetText(text)
	c.state.WordCount = analysis.CountWords(text)
	c.state.Busy = true
	c.setStatus(domain.StatusBusy, 0)
	return c.scheduler.Arm()
}

// Scroll mirrors the input's scroll offset into the overlay
func (c *Coordinator) Scroll(offset int) {
	c.state.SetScroll(offset)
}

// Fire handles an expired debounce. It returns a cycle to run, or false
// when the trigger was superseded or the text is blank. Blank text clears
// highlighting and suggestions without contacting the backend.
func (c *Coordinator) Fire(t analysis.Trigger) (analysis.Cycle, bool) {
	if !c.scheduler.Fire(t) {
		return analysis.Cycle{}, false
	}
	if analysis.IsBlank(c.state.Text) {
		c.skip()
		return analysis.Cycle{}, false
	}
	return c.begin(false), true
}

// AnalyzeNow starts a cycle for the current text without waiting for the
// debounce. Pending triggers are superseded.
func (c *Coordinator) AnalyzeNow() (analysis.Cycle, bool) {
	if analysis.IsBlank(c.state.Text) {
		c.skip()
		return analysis.Cycle{}, false
	}
	return c.begin(true), true
}

// skip clears the results for blank text. Cycles still in flight are
// invalidated so their late outcomes cannot repopulate the displays.
func (c *Coordinator) skip() {
	c.scheduler.Invalidate()
	c.state.Errors = nil
	c.state.ClearChips()
	c.state.Busy = c.scheduler.Phase() != analysis.PhaseIdle
	c.setStatus(domain.StatusIdle, 0)
	c.publish(eventbus.AnalysisSkippedEvent{})
}

// Apply rewrites the text with s and starts an analysis cycle at once. It
// is a no-op for chips that no longer belong to the rendered set.
func (c *Coordinator) Apply(s domain.Suggestion) (analysis.Cycle, bool) {
	chip, ok := c.state.ChipAt(s.Index)
	if !ok || c.state.ChipCycle == 0 || s.Cycle != c.state.ChipCycle || chip != s {
		log.Printf("Ignoring stale suggestion %q from cycle %d", s.Text, s.Cycle)
		return analysis.Cycle{}, false
	}

	text := analysis.ApplySuggestion(c.state.Text, s)
	c.state.SetText(text)
	c.state.WordCount = analysis.CountWords(text)
	c.state.ClearChips()
	c.publish(eventbus.SuggestionAppliedEvent{Suggestion: s})
	return c.begin(true), true
}

func (c *Coordinator) begin(immediate bool) analysis.Cycle {
	cycle := c.scheduler.Begin(c.state.Text, immediate)
	c.state.Busy = true
	c.setStatus(domain.StatusBusy, 0)
	c.publish(eventbus.AnalysisStartedEvent{
		Cycle:     cycle.ID,
		TextLen:   len(cycle.Text),
		Immediate: immediate,
	})
	return cycle
}

// Run consults both collaborators concurrently and waits for both. It only
// reads cycle, so it is safe to call off the UI loop.
func (c *Coordinator) Run(ctx context.Context, cycle analysis.Cycle) Outcome {
	start := time.Now()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	out := Outcome{Cycle: cycle}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer recoverInto(&err, "spell check")
		out.Errors, err = c.checker.Check(gctx, cycle.Text)
		return err
	})
	g.Go(func() (err error) {
		defer recoverInto(&err, "prediction")
		out.Prediction, err = c.predictor.Predict(gctx, cycle.Text)
		return err
	})
	out.Err = g.Wait()
	out.Elapsed = time.Since(start)
	return out
}

// Render applies a finished cycle. Outcomes from a cycle that has since
// been superseded are dropped. A failed cycle only changes the status; the
// previous highlighting and suggestions stay visible.
func (c *Coordinator) Render(o Outcome) bool {
	fresh := c.scheduler.Finish(o.Cycle)
	c.state.Busy = c.scheduler.Phase() != analysis.PhaseIdle
	if !fresh {
		c.publish(eventbus.AnalysisDroppedEvent{Cycle: o.Cycle.ID, Latest: c.scheduler.Latest()})
		return false
	}

	if o.Err != nil {
		c.state.LastFailed = o.Err
		c.setStatus(domain.StatusBackendError, 0)
		c.keepBusyWhilePending()
		c.publish(eventbus.AnalysisFailedEvent{Cycle: o.Cycle.ID, Err: o.Err})
		return true
	}

	c.state.LastFailed = nil
	c.state.LastCycle = o.Cycle.ID
	c.state.Errors = domain.NewErrorSet(o.Errors)
	c.state.ReplaceChips(o.Cycle.ID, c.chips(o))

	if n := c.state.Errors.Len(); n > 0 {
		c.setStatus(domain.StatusErrorsFound, n)
	} else {
		c.setStatus(domain.StatusClean, 0)
	}
	c.keepBusyWhilePending()

	c.publish(eventbus.AnalysisCompletedEvent{
		Cycle:       o.Cycle.ID,
		Errors:      c.state.Errors.Len(),
		Suggestions: len(c.state.Chips),
		Kind:        o.Prediction.Kind,
		Elapsed:     o.Elapsed,
	})
	return true
}

// keepBusyWhilePending holds the busy status while newer input waits on
// its debounce
func (c *Coordinator) keepBusyWhilePending() {
	if c.scheduler.Phase() == analysis.PhasePending {
		c.setStatus(domain.StatusBusy, 0)
	}
}

func (c *Coordinator) chips(o Outcome) []domain.Suggestion {
	var chips []domain.Suggestion
	for _, text := range o.Prediction.Suggestions {
		if text == "" {
			continue
		}
		if c.maxSuggestions > 0 && len(chips) >= c.maxSuggestions {
			break
		}
		chips = append(chips, domain.Suggestion{
			Text:  text,
			Kind:  o.Prediction.Kind,
			Cycle: o.Cycle.ID,
			Index: len(chips),
		})
	}
	return chips
}

func (c *Coordinator) setStatus(kind domain.StatusKind, count int) {
	var msg string
	switch kind {
	case domain.StatusBusy:
		msg = c.messages.Busy
	case domain.StatusClean:
		msg = c.messages.Clean
	case domain.StatusErrorsFound:
		msg = c.messages.ErrorsFound
		if strings.Contains(msg, "%d") {
			msg = fmt.Sprintf(msg, count)
		}
	case domain.StatusBackendError:
		msg = c.messages.BackendError
	default:
		msg = c.messages.Idle
	}
	c.state.Status = domain.Status{Kind: kind, ErrorCount: count, Message: msg}
}

func (c *Coordinator) publish(e eventbus.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(e)
	}
}

// recoverInto turns a collaborator panic into an error for the cycle
func recoverInto(err *error, what string) {
	if r := recover(); r != nil {
		log.Printf("%s panicked: %v\n%s", what, r, debug.Stack())
		*err = fmt.Errorf("%s panicked: %v", what, r)
	}
}
