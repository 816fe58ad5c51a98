package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"didyouknow/internal/facts"
)

type (
	factMsg    string
	statusMsg  string
	loadingMsg bool
	revealMsg  struct{}

	attributionMsg struct {
		source    string
		permalink string
	}

	// promptMsg opens the manual-copy overlay; done is closed when the user
	// dismisses it.
	promptMsg struct {
		message string
		text    string
		done    chan struct{}
	}
)

// sender is satisfied by *tea.Program.
type sender interface {
	Send(msg tea.Msg)
}

// Surface delivers controller output to the Bubble Tea event loop. It also
// implements facts.Prompter with an in-terminal overlay.
type Surface struct {
	program sender
}

var (
	_ facts.Surface    = (*Surface)(nil)
	_ facts.Attributor = (*Surface)(nil)
	_ facts.Prompter   = (*Surface)(nil)
)

// NewSurface returns a surface that sends to program.
func NewSurface(program sender) *Surface {
	return &Surface{program: program}
}

// ShowFact implements facts.Surface.
func (s *Surface) ShowFact(text string) { s.program.Send(factMsg(text)) }

// ShowStatus implements facts.Surface.
func (s *Surface) ShowStatus(msg string) { s.program.Send(statusMsg(msg)) }

// SetLoading implements facts.Surface.
func (s *Surface) SetLoading(loading bool) { s.program.Send(loadingMsg(loading)) }

// Reveal implements facts.Surface.
func (s *Surface) Reveal() { s.program.Send(revealMsg{}) }

// ShowAttribution implements facts.Attributor.
func (s *Surface) ShowAttribution(source, permalink string) {
	s.program.Send(attributionMsg{source: source, permalink: permalink})
}

// Prompt shows text in an overlay and blocks until it is dismissed.
func (s *Surface) Prompt(ctx context.Context, message, text string) error {
	if s.program == nil {
		return facts.ErrPromptUnavailable
	}
	done := make(chan struct{})
	s.program.Send(promptMsg{message: message, text: text, done: done})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
