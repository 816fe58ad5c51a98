// Package platform provides the optional desktop and terminal capabilities
// the fact controller can use: clipboards and a share command.
package platform

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/mattn/go-isatty"

	"didyouknow/internal/facts"
)

// SystemClipboard writes to the desktop clipboard (pbcopy, xclip, wl-copy,
// the Windows clipboard API).
type SystemClipboard struct{}

// NewSystemClipboard returns nil when no clipboard utility is installed, so
// the controller sees the capability as unavailable.
func NewSystemClipboard() facts.Clipboard {
	if clipboard.Unsupported {
		return nil
	}
	return SystemClipboard{}
}

// WriteText replaces the clipboard contents.
func (SystemClipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if clipboard.Unsupported {
		return facts.ErrClipboardUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write system clipboard: %w", err)
	}
	return nil
}

// TerminalClipboard copies by emitting an OSC 52 escape sequence, which most
// modern terminals (and tmux/screen when configured) turn into a clipboard
// write. It works over SSH where no system clipboard is reachable.
type TerminalClipboard struct {
	out  io.Writer
	tmux bool
	gnu  bool
}

// NewTerminalClipboard writes sequences to out. It returns nil when out is a
// file that is not a terminal.
func NewTerminalClipboard(out io.Writer) facts.Clipboard {
	if f, ok := out.(*os.File); ok && !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return nil
	}
	return &TerminalClipboard{
		out:  out,
		tmux: os.Getenv("TMUX") != "",
		gnu:  strings.HasPrefix(os.Getenv("TERM"), "screen"),
	}
}

// WriteText emits the copy sequence for text.
func (c *TerminalClipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	seq := osc52.New(text)
	switch {
	case c.tmux:
		seq = seq.Tmux()
	case c.gnu:
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(c.out); err != nil {
		return fmt.Errorf("failed to write OSC 52 sequence: %w", err)
	}
	return nil
}
