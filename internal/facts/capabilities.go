package facts

import (
	"context"
	"errors"
)

var (
	// ErrClipboardUnavailable is returned by clipboards that cannot work in
	// the current environment.
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
	// ErrShareCancelled means the user dismissed the share sheet. It is not a
	// failure.
	ErrShareCancelled = errors.New("share cancelled")
	// ErrShareUnavailable is returned when no share mechanism exists.
	ErrShareUnavailable = errors.New("share unavailable")
	// ErrPromptUnavailable is returned when no manual-copy prompt can be shown.
	ErrPromptUnavailable = errors.New("prompt unavailable")
)

// Surface is where the controller pushes what the user sees.
type Surface interface {
	ShowFact(text string)
	ShowStatus(msg string)
	SetLoading(loading bool)
	// Reveal restarts the entry transition of the fact, even if it is
	// already running.
	Reveal()
}

// Attributor is implemented by surfaces that can show where a fact came
// from. The controller clears the attribution with empty strings.
type Attributor interface {
	ShowAttribution(source, permalink string)
}

// Clipboard writes text somewhere the user can paste it from.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Sharer hands text to a native share mechanism.
type Sharer interface {
	Share(ctx context.Context, title, text string) error
}

// Prompter shows text in a blocking prompt so the user can copy it by hand.
// It returns once the prompt is dismissed.
type Prompter interface {
	Prompt(ctx context.Context, message, text string) error
}

// Capabilities lists the optional platform features. A nil field means the
// capability is unavailable.
type Capabilities struct {
	Clipboard  Clipboard
	LegacyCopy Clipboard
	Share      Sharer
	Prompt     Prompter
}

// ClipboardFunc adapts a function to Clipboard.
type ClipboardFunc func(ctx context.Context, text string) error

// WriteText calls f(ctx, text).
func (f ClipboardFunc) WriteText(ctx context.Context, text string) error {
	return f(ctx, text)
}

// SharerFunc adapts a function to Sharer.
type SharerFunc func(ctx context.Context, title, text string) error

// Share calls f(ctx, title, text).
func (f SharerFunc) Share(ctx context.Context, title, text string) error {
	return f(ctx, title, text)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(ctx context.Context, message, text string) error

// Prompt calls f(ctx, message, text).
func (f PrompterFunc) Prompt(ctx context.Context, message, text string) error {
	return f(ctx, message, text)
}
