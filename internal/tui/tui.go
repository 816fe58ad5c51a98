package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"didyouknow/internal/config"
	"didyouknow/internal/facts"
)

const revealStep = 60 * time.Millisecond

// revealTickMsg advances the reveal transition identified by seq.
type revealTickMsg int

// Actions is what the widget asks of the fact controller.
type Actions interface {
	DisplayNewFact(ctx context.Context, usePrefetch bool)
	CopyCurrentText(ctx context.Context) bool
	ShareCurrentText(ctx context.Context)
}

type model struct {
	ctx     context.Context
	actions Actions
	prefs   *config.Preferences
	logger  zerolog.Logger

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	renderer      *glamour.TermRenderer
	rendererWidth int

	fact    string
	status  string
	loading bool

	source    string
	permalink string

	revealSeq   int
	revealFrame int

	prompt *promptMsg

	width, height int
}

func newModel(ctx context.Context, actions Actions, prefs *config.Preferences, logger zerolog.Logger) *model {
	if prefs == nil {
		prefs = config.DefaultPreferences()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	h := help.New()
	h.ShowAll = prefs.ShowFullHelp

	return &model{
		ctx:         ctx,
		actions:     actions,
		prefs:       prefs,
		logger:      logger,
		keys:        defaultKeyMap(),
		help:        h,
		spinner:     s,
		revealFrame: len(revealPalette) - 1,
		width:       80,
		height:      24,
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle(config.Title), m.spinner.Tick)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		// The overlay is an interactive element: it gets every key.
		if m.prompt != nil {
			return m.updatePrompt(msg)
		}
		return m.handleKey(msg)

	case factMsg:
		m.fact = string(msg)
		return m, nil

	case attributionMsg:
		m.source = msg.source
		m.permalink = msg.permalink
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case loadingMsg:
		m.loading = bool(msg)
		m.keys.setActionsEnabled(!m.loading)
		return m, nil

	case revealMsg:
		// Restart from the first frame even if a reveal is running.
		m.revealSeq++
		m.revealFrame = 0
		return m, m.revealTick()

	case revealTickMsg:
		if int(msg) != m.revealSeq || m.revealFrame >= len(revealPalette)-1 {
			return m, nil
		}
		m.revealFrame++
		if m.revealFrame < len(revealPalette)-1 {
			return m, m.revealTick()
		}
		return m, nil

	case promptMsg:
		if m.prompt != nil {
			close(m.prompt.done)
		}
		p := msg
		m.prompt = &p
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		if err := m.prefs.ToggleFullHelp(); err != nil {
			m.logger.Warn().Err(err).Msg("failed to save preferences")
		}
		m.help.ShowAll = m.prefs.ShowFullHelp
		return m, nil

	case key.Matches(msg, m.keys.NewFact):
		return m, m.do(func(ctx context.Context) { m.actions.DisplayNewFact(ctx, true) })

	case key.Matches(msg, m.keys.Copy):
		return m, m.do(func(ctx context.Context) { m.actions.CopyCurrentText(ctx) })

	case key.Matches(msg, m.keys.Share):
		return m, m.do(func(ctx context.Context) { m.actions.ShareCurrentText(ctx) })
	}
	return m, nil
}

func (m *model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.closePrompt()
		return m, tea.Quit
	case tea.KeyEnter, tea.KeyEsc:
		m.closePrompt()
	}
	return m, nil
}

func (m *model) closePrompt() {
	if m.prompt == nil {
		return
	}
	close(m.prompt.done)
	m.prompt = nil
}

// do runs fn off the event loop; the controller reports back through the
// Surface.
func (m *model) do(fn func(ctx context.Context)) tea.Cmd {
	if m.actions == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		fn(ctx)
		return nil
	}
}

func (m *model) revealTick() tea.Cmd {
	seq := m.revealSeq
	return tea.Tick(revealStep, func(time.Time) tea.Msg {
		return revealTickMsg(seq)
	})
}

// Options configures Run.
type Options struct {
	Source            facts.Source
	Capabilities      facts.Capabilities
	ControllerOptions []facts.Option
	Preferences       *config.Preferences
	Logger            zerolog.Logger
}

// Run shows the widget until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newModel(ctx, nil, opts.Preferences, opts.Logger)
	if opts.Preferences != nil && opts.Preferences.Markdown {
		m.useMarkdown()
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	surface := NewSurface(p)
	caps := opts.Capabilities
	if caps.Prompt == nil {
		caps.Prompt = surface
	}
	ctrl := facts.NewController(opts.Source, surface, caps, opts.ControllerOptions...)
	defer ctrl.Close()
	m.actions = ctrl

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		if _, err := p.Run(); err != nil && ctx.Err() == nil {
			return fmt.Errorf("error running program: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return ctrl.Run(gctx)
	})
	return g.Wait()
}
