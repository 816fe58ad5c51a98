package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"didyouknow/internal/config"
	"didyouknow/internal/facts"
)

type fakeActions struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeActions) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeActions) DisplayNewFact(_ context.Context, usePrefetch bool) {
	if usePrefetch {
		f.record("display(prefetch)")
		return
	}
	f.record("display")
}

func (f *fakeActions) CopyCurrentText(context.Context) bool {
	f.record("copy")
	return true
}

func (f *fakeActions) ShareCurrentText(context.Context) {
	f.record("share")
}

func (f *fakeActions) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recordingSender) Msgs() []tea.Msg {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]tea.Msg(nil), r.msgs...)
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) (*model, *fakeActions) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	actions := &fakeActions{}
	m := newModel(context.Background(), actions, config.DefaultPreferences(), zerolog.Nop())
	return m, actions
}

// press sends a key and runs the resulting command, if any.
func press(m *model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	if cmd != nil {
		cmd()
	}
	return cmd
}

func TestKeysDispatchActions(t *testing.T) {
	m, actions := newTestModel(t)

	press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	press(m, runeKey("c"))
	press(m, runeKey("C"))
	press(m, runeKey("s"))
	press(m, runeKey("x"))

	assert.Equal(t, []string{"display(prefetch)", "copy", "copy", "share"}, actions.Calls())
}

func TestKeysDisabledWhileLoading(t *testing.T) {
	m, actions := newTestModel(t)

	m.Update(loadingMsg(true))
	assert.True(t, m.loading)
	assert.Nil(t, press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}))
	assert.Nil(t, press(m, runeKey("c")))
	assert.Nil(t, press(m, runeKey("s")))
	assert.Empty(t, actions.Calls())

	m.Update(loadingMsg(false))
	press(m, runeKey("c"))
	assert.Equal(t, []string{"copy"}, actions.Calls())
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(runeKey("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestHelpToggleSavesPreference(t *testing.T) {
	m, _ := newTestModel(t)
	home := os.Getenv("HOME")

	m.Update(runeKey("?"))
	assert.True(t, m.help.ShowAll)

	data, err := os.ReadFile(filepath.Join(home, ".config", config.AppName, "preferences.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"show_full_help": true`)
}

func TestPromptCapturesKeys(t *testing.T) {
	m, actions := newTestModel(t)

	done := make(chan struct{})
	m.Update(promptMsg{message: facts.PromptMessage, text: "Bananas are berries.", done: done})
	require.NotNil(t, m.prompt)

	// Widget keys go to the overlay, not the controller.
	assert.Nil(t, press(m, runeKey("q")))
	assert.Nil(t, press(m, runeKey("c")))
	assert.Nil(t, press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}))
	assert.Empty(t, actions.Calls())

	view := m.View()
	assert.Contains(t, view, facts.PromptMessage)
	assert.Contains(t, view, "Bananas are berries.")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, m.prompt)
	select {
	case <-done:
	default:
		t.Fatal("prompt was not dismissed")
	}
}

func TestPromptReplacedClosesPrevious(t *testing.T) {
	m, _ := newTestModel(t)

	first := make(chan struct{})
	second := make(chan struct{})
	m.Update(promptMsg{text: "one", done: first})
	m.Update(promptMsg{text: "two", done: second})

	select {
	case <-first:
	default:
		t.Fatal("first prompt still open")
	}
	assert.Equal(t, "two", m.prompt.text)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	<-second
}

func TestRevealRestarts(t *testing.T) {
	m, _ := newTestModel(t)
	last := len(revealPalette) - 1
	assert.Equal(t, last, m.revealFrame)

	_, cmd := m.Update(revealMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, 0, m.revealFrame)
	seq := m.revealSeq

	m.Update(revealTickMsg(seq))
	m.Update(revealTickMsg(seq))
	assert.Equal(t, 2, m.revealFrame)

	// A new reveal restarts the fade and orphans the old ticks.
	m.Update(revealMsg{})
	assert.Equal(t, 0, m.revealFrame)
	m.Update(revealTickMsg(seq))
	assert.Equal(t, 0, m.revealFrame)

	for i := 0; i < last+3; i++ {
		m.Update(revealTickMsg(m.revealSeq))
	}
	assert.Equal(t, last, m.revealFrame)
}

func TestViewShowsState(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Contains(t, m.View(), config.WelcomeMessage)

	m.Update(factMsg("Bananas  are\nberries."))
	m.Update(statusMsg(facts.StatusCopied))
	view := m.View()
	assert.Contains(t, view, "Bananas are berries.")
	assert.Contains(t, view, facts.StatusCopied)
	assert.Contains(t, view, config.Title)

	m.Update(attributionMsg{source: "djtech.net", permalink: "https://example.test/42"})
	view = m.View()
	assert.Contains(t, view, "Source: djtech.net")
	assert.Contains(t, view, "https://example.test/42")

	m.Update(factMsg(facts.ErrorText))
	m.Update(attributionMsg{})
	m.Update(statusMsg(facts.StatusCheckConn))
	view = m.View()
	assert.Contains(t, view, facts.ErrorText)
	assert.Contains(t, view, facts.StatusCheckConn)
	assert.NotContains(t, view, "Source:")

	m.Update(loadingMsg(true))
	assert.Contains(t, m.View(), "Fetching a fact")
}

func TestSurfaceSendsMessages(t *testing.T) {
	sender := &recordingSender{}
	s := NewSurface(sender)

	s.SetLoading(true)
	s.ShowStatus("")
	s.ShowFact("Bananas are berries.")
	s.ShowAttribution("djtech.net", "")
	s.Reveal()

	assert.Equal(t, []tea.Msg{
		loadingMsg(true),
		statusMsg(""),
		factMsg("Bananas are berries."),
		attributionMsg{source: "djtech.net"},
		revealMsg{},
	}, sender.Msgs())
}

func TestSurfacePrompt(t *testing.T) {
	t.Run("blocks until dismissed", func(t *testing.T) {
		m, _ := newTestModel(t)
		sender := &recordingSender{}
		s := NewSurface(sender)

		errCh := make(chan error, 1)
		go func() {
			errCh <- s.Prompt(context.Background(), facts.PromptMessage, "Bananas are berries.")
		}()

		require.Eventually(t, func() bool { return len(sender.Msgs()) == 1 }, time.Second, time.Millisecond)
		m.Update(sender.Msgs()[0])
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		select {
		case err := <-errCh:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("Prompt did not return")
		}
	})

	t.Run("context cancelled", func(t *testing.T) {
		s := NewSurface(&recordingSender{})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, s.Prompt(ctx, "msg", "text"), context.Canceled)
	})

	t.Run("no program", func(t *testing.T) {
		s := NewSurface(nil)
		assert.ErrorIs(t, s.Prompt(context.Background(), "msg", "text"), facts.ErrPromptUnavailable)
	})
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "a b c", normalizeFact("  a\n\tb   c "))
	assert.Equal(t, `2 \* 3 \_is\_ \#6`, escapeMarkdown("2 * 3 _is_ #6"))
	assert.Equal(t, `\- 7 is lucky.`, escapeMarkdown("- 7 is lucky."))
	assert.Equal(t, `12\. apostles`, escapeMarkdown("12. apostles"))
	assert.Equal(t, "1999 was a year.", escapeMarkdown("1999 was a year."))
}

func TestRenderFactIsLiteral(t *testing.T) {
	tests := []struct {
		name string
		fact string
	}{
		{name: "plain", fact: "Bananas are berries."},
		{name: "bullet", fact: "- 7 is lucky."},
		{name: "plus", fact: "+ plus sign"},
		{name: "ordered list", fact: "1. Mercury is closest to the sun."},
		{name: "paren list", fact: "3) is a smiley."},
		{name: "thematic break", fact: "---"},
		{name: "heading", fact: "# is a hash."},
		{name: "quote", fact: "> is greater than."},
		{name: "emphasis", fact: "2 * 3 * 7 = 42 and snake_case_names exist."},
		{name: "strikethrough", fact: "~~not deleted~~"},
		{name: "code", fact: "`go` is a command."},
	}

	m, _ := newTestModel(t)
	m.useMarkdown()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.TrimSpace(ansi.Strip(m.renderFact(tt.fact)))
			assert.Equal(t, tt.fact, got)
		})
	}
}
