package ui

import (
	"context"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"soratra/internal/analysis"
	"soratra/internal/config"
	"soratra/internal/eventbus"
	"soratra/internal/ui/coordinator"
	"soratra/internal/ui/input"
	inputtypes "soratra/internal/ui/input/types"
	"soratra/internal/ui/state"
	"soratra/internal/ui/views"
)

// Model represents the UI state
type Model struct {
	ctx    context.Context
	bus    eventbus.EventBus
	config *config.Config
	coord  *coordinator.Coordinator

	// UI-specific state not in EditorState
	width       int
	height      int
	editor      textarea.Model
	spinner     spinner.Model
	help        help.Model
	showOverlay bool
	showHelp    bool
	spinning    bool
	inPagerMode bool // tracks if we're currently in pager mode

	inputHandler *input.Handler
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	helpOps      *HelpOps

	// debounce schedules delivery of a trigger once the quiet period ends
	debounce func(analysis.Trigger) tea.Cmd

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. ctx bounds every analysis request.
func NewModel(ctx context.Context, bus eventbus.EventBus, cfg *config.Config, checker coordinator.SpellChecker, predictor coordinator.Predictor) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	editor := textarea.New()
	editor.Placeholder = "Soraty eto..."
	editor.ShowLineNumbers = false
	editor.Prompt = ""
	editor.CharLimit = 0
	// ctrl+n/ctrl+p belong to the suggestion chips
	editor.KeyMap.LineNext = key.NewBinding(key.WithKeys("down"))
	editor.KeyMap.LinePrevious = key.NewBinding(key.WithKeys("up"))
	editor.SetHeight(cfg.UI.EditorHeight)
	editor.Focus()

	m := &Model{
		ctx:          ctx,
		bus:          bus,
		config:       cfg,
		coord:        coordinator.NewCoordinator(state.NewEditorState(), checker, predictor, bus, cfg),
		editor:       editor,
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:         help.New(),
		showOverlay:  cfg.UI.ShowOverlay,
		inputHandler: input.New(),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		helpOps:      NewHelpOps(),
	}
	m.debounce = func(t analysis.Trigger) tea.Cmd {
		return tea.Tick(cfg.Debounce(), func(time.Time) tea.Msg {
			return debounceMsg{trigger: t}
		})
	}
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps.SetProgram(p)
}

// SetText loads initial text into the editor. It is analysed as soon as
// the program starts.
func (m *Model) SetText(text string) {
	m.editor.SetValue(text)
}

// State returns the editor state
func (m *Model) State() *state.EditorState {
	return m.coord.State()
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if text := m.editor.Value(); text != "" {
		m.coord.Input(text)
		m.syncScroll()
		if cycle, ok := m.coord.AnalyzeNow(); ok {
			cmds = append(cmds, m.run(cycle), m.spin())
		}
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case tea.KeyMsg:
		// esc closes the help popup before it quits
		if m.showHelp && msg.Type == tea.KeyEsc {
			m.showHelp = false
			return m, nil
		}

		actions, consumed := m.inputHandler.HandleKey(msg, &input.ModelContext{State: m.coord.State()})
		if !consumed {
			return m.updateEditor(msg)
		}

		cmds := []tea.Cmd{}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	case debounceMsg:
		cycle, ok := m.coord.Fire(msg.trigger)
		if !ok {
			return m, nil
		}
		return m, m.run(cycle)

	case analysisMsg:
		m.coord.Render(msg.outcome)
		return m, nil

	case spinner.TickMsg:
		if !m.coord.State().Busy {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case helpPagerMsg:
		if msg.err != nil {
			log.Printf("Help pager failed: %v", msg.err)
			if m.bus != nil {
				m.bus.Publish(eventbus.ErrorEvent{Message: "help pager failed", Err: msg.err})
			}
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, tea.ClearScreen
	}

	return m.updateEditor(msg)
}

// updateEditor forwards msg to the text area and starts the debounce when
// the text changed
func (m *Model) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.editor.Value()

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	cmds := []tea.Cmd{cmd}

	if after := m.editor.Value(); after != before {
		trigger := m.coord.Input(after)
		cmds = append(cmds, m.debounce(trigger), m.spin())
	}
	m.syncScroll()
	return m, tea.Batch(cmds...)
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	st := m.coord.State()

	switch a := action.(type) {
	case inputtypes.ApplyChipAction:
		chip, ok := st.ChipAt(a.Index)
		if !ok {
			return nil
		}
		cycle, ok := m.coord.Apply(chip)
		if !ok {
			return nil
		}
		m.editor.SetValue(cycle.Text)
		var focusCmd tea.Cmd
		if !m.editor.Focused() {
			focusCmd = m.editor.Focus()
		}
		m.syncScroll()
		return tea.Batch(focusCmd, m.run(cycle), m.spin())

	case inputtypes.MoveChipAction:
		st.MoveSelection(a.Delta)

	case inputtypes.AnalyzeNowAction:
		cycle, ok := m.coord.AnalyzeNow()
		if !ok {
			return nil
		}
		return tea.Batch(m.run(cycle), m.spin())

	case inputtypes.ToggleOverlayAction:
		m.showOverlay = !m.showOverlay
		m.layout()

	case inputtypes.ToggleHelpAction:
		m.showHelp = !m.showHelp

	case inputtypes.OpenHelpPagerAction:
		if m.program == nil {
			return nil
		}
		m.showHelp = false
		return m.fetchHelpPager(m.helpRenderer.RenderHelpContent(m.inputHandler.Keys()))

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

// run returns a command that performs cycle off the UI loop
func (m *Model) run(cycle analysis.Cycle) tea.Cmd {
	ctx := m.ctx
	coord := m.coord
	return func() tea.Msg {
		return analysisMsg{outcome: coord.Run(ctx, cycle)}
	}
}

// spin starts the busy indicator unless it is already ticking
func (m *Model) spin() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

// syncScroll mirrors the editor's first visible line into the overlay. The
// text area scrolls just enough to keep the cursor line visible, so the
// same rule reproduces its offset.
func (m *Model) syncScroll() {
	top := m.coord.State().ScrollTop
	line := m.editor.Line()
	height := m.editor.Height()
	if height <= 0 {
		height = 1
	}
	if line < top {
		top = line
	}
	if line >= top+height {
		top = line - height + 1
	}
	if maxTop := m.editor.LineCount() - height; top > maxTop {
		top = maxTop
	}
	m.coord.Scroll(top)
}

// layout sizes the editor and overlay panes to the window
func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	width := m.width - 6 // main padding and box border
	if width < 10 {
		width = 10
	}
	m.editor.SetWidth(width)

	// title, blank line, chips, help and main padding
	available := m.height - 7
	panes := 1
	if m.showOverlay {
		panes = 2
	}
	height := available/panes - 2 // box border
	if cfgHeight := m.config.UI.EditorHeight; cfgHeight > 0 && height > cfgHeight {
		height = cfgHeight
	}
	if height < 3 {
		height = 3
	}
	m.editor.SetHeight(height)
	m.syncScroll()
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	st := m.coord.State()
	vs := views.ViewState{
		Width:           m.width,
		Height:          m.height,
		Editor:          m.editor.View(),
		Text:            st.Overlay.Text,
		Errors:          st.Errors,
		ScrollTop:       st.Overlay.ScrollTop,
		PaneHeight:      m.editor.Height(),
		ShowOverlay:     m.showOverlay,
		WordCount:       st.WordCount,
		WordCountFormat: m.config.Messages.WordCount,
		Status:          st.Status,
		Chips:           st.Chips,
		Selected:        st.Selected,
		ShortHelp:       m.help.View(m.inputHandler.Keys()),
		ShowHelp:        m.showHelp,
	}
	if st.Busy {
		vs.Spinner = m.spinner.View()
	}
	if m.showHelp {
		vs.HelpContent = m.helpRenderer.RenderHelpContent(m.inputHandler.Keys())
	}
	return m.renderer.Render(vs)
}
