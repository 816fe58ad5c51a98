package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"didyouknow/internal/config"
	"didyouknow/internal/facts"
)

const maxCardWidth = 72

func (m *model) View() string {
	if m.prompt != nil {
		return m.renderPrompt()
	}

	parts := []string{titleStyle.Render(config.Title), m.renderCard()}
	if attribution := m.attributionView(); attribution != "" {
		parts = append(parts, attribution)
	}
	parts = append(parts, m.statusView(), "", m.help.View(m.keys))
	body := lipgloss.JoinVertical(lipgloss.Left, parts...)

	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		body,
	)
}

// cardWidth is the width available for the fact text inside the card.
func (m *model) cardWidth() int {
	w := m.width - 8
	if w > maxCardWidth {
		w = maxCardWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderCard renders the current fact, fading it in while a reveal runs.
func (m *model) renderCard() string {
	style := cardStyle
	if m.fact == facts.ErrorText {
		style = errorCardStyle
	}

	var content string
	switch {
	case m.fact == "":
		content = loadingTextStyle.Render(config.WelcomeMessage)
	case m.revealFrame < len(revealPalette)-1:
		content = lipgloss.NewStyle().
			Foreground(revealPalette[m.revealFrame]).
			Width(m.cardWidth()).
			Render(normalizeFact(m.fact))
	default:
		content = m.renderFact(m.fact)
	}

	return style.Width(m.cardWidth() + 4).Render(content)
}

// renderFact renders a fact through glamour when markdown rendering is on,
// and as plain wrapped text otherwise.
func (m *model) renderFact(text string) string {
	text = normalizeFact(text)
	plain := factStyle.Width(m.cardWidth()).Render(text)

	renderer := m.markdownRenderer()
	if renderer == nil {
		return plain
	}
	rendered, err := renderer.Render(escapeMarkdown(text))
	if err != nil {
		return plain
	}
	return strings.Trim(rendered, "\n")
}

// useMarkdown enables glamour rendering of facts.
func (m *model) useMarkdown() {
	m.rendererWidth = -1
}

// markdownRenderer returns a renderer wrapping at the current card width,
// rebuilding it after a resize.
func (m *model) markdownRenderer() *glamour.TermRenderer {
	if m.rendererWidth == 0 {
		return nil
	}
	if m.renderer != nil && m.rendererWidth == m.cardWidth() {
		return m.renderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(m.cardWidth()),
	)
	if err != nil {
		m.logger.Warn().Err(err).Msg("failed to create markdown renderer")
		m.rendererWidth = 0
		return nil
	}
	m.renderer = r
	m.rendererWidth = m.cardWidth()
	return r
}

// attributionView is the dimmed source line under the card.
func (m *model) attributionView() string {
	if m.fact == "" || m.fact == facts.ErrorText {
		return ""
	}
	var parts []string
	if m.source != "" {
		parts = append(parts, "Source: "+m.source)
	}
	if m.permalink != "" {
		parts = append(parts, m.permalink)
	}
	if len(parts) == 0 {
		return ""
	}
	return attributionStyle.Width(m.cardWidth() + 4).Render(strings.Join(parts, " · "))
}

// statusView shows the spinner while loading, otherwise the status message.
func (m *model) statusView() string {
	if m.loading {
		return m.spinner.View() + loadingTextStyle.Render(" Fetching a fact...")
	}
	if m.status == "" {
		return " "
	}
	if m.status == facts.StatusCheckConn || m.status == facts.StatusCopyFailed || m.status == facts.StatusShareFailed {
		return statusErrorStyle.Render(m.status)
	}
	return statusStyle.Render(m.status)
}

// renderPrompt renders the manual-copy overlay
func (m *model) renderPrompt() string {
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(m.prompt.message),
		lipgloss.NewStyle().Width(m.cardWidth()).Render(m.prompt.text),
		modalHintStyle.Render("Select the text with your mouse • enter/esc close"),
	)

	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		modalStyle.Render(content),
	)
}
