package facts

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultStatusTTL is how long transient status messages stay visible.
	DefaultStatusTTL = 2 * time.Second
	// DefaultPrefetchInterval is how often Run refills an empty prefetch slot.
	DefaultPrefetchInterval = 30 * time.Second
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger.With().Str("component", "facts").Logger()
	}
}

// WithStatusTTL overrides DefaultStatusTTL.
func WithStatusTTL(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.statusTTL = d
		}
	}
}

// WithPrefetchInterval overrides DefaultPrefetchInterval.
func WithPrefetchInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.prefetchInterval = d
		}
	}
}

// Controller owns the prefetch slot and the loading flag and decides what
// the Surface shows. All methods are safe for concurrent use; the mutex is
// never held while talking to the Source or a capability.
type Controller struct {
	source  Source
	surface Surface
	caps    Capabilities
	logger  zerolog.Logger

	statusTTL        time.Duration
	prefetchInterval time.Duration

	// displayMu serializes the final surface writes of DisplayNewFact so a
	// stale completion can never land after a fresh one.
	displayMu sync.Mutex

	mu          sync.Mutex
	loading     bool
	prefetched  *Fact
	current     string
	inflight    ulid.ULID
	cancel      context.CancelFunc
	statusSeq   uint64
	statusTimer *time.Timer
	closed      bool

	prefetches singleflight.Group

	// bgCtx bounds background prefetches started by DisplayNewFact.
	bgCtx    context.Context
	bgCancel context.CancelFunc
	wg       sync.WaitGroup
}

// NewController wires a controller to its source, surface and capabilities.
func NewController(source Source, surface Surface, caps Capabilities, opts ...Option) *Controller {
	bgCtx, bgCancel := context.WithCancel(context.Background())
	c := &Controller{
		source:           source,
		surface:          surface,
		caps:             caps,
		logger:           zerolog.Nop(),
		statusTTL:        DefaultStatusTTL,
		prefetchInterval: DefaultPrefetchInterval,
		bgCtx:            bgCtx,
		bgCancel:         bgCancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DisplayNewFact fetches a fact, or takes the prefetched one when
// usePrefetch is set, and shows it. Calls made while another display is
// outstanding return immediately without doing anything.
func (c *Controller) DisplayNewFact(ctx context.Context, usePrefetch bool) {
	c.mu.Lock()
	if c.loading || c.closed {
		c.mu.Unlock()
		return
	}
	c.loading = true
	if c.cancel != nil {
		c.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	token := ulid.Make()
	c.inflight = token
	c.cancel = cancel

	var cached *Fact
	if usePrefetch && c.prefetched != nil {
		cached = c.prefetched
		c.prefetched = nil
	}
	c.statusSeq++
	c.stopStatusTimerLocked()
	c.mu.Unlock()

	log := c.logger.With().Str("request", token.String()).Logger()

	c.surface.SetLoading(true)
	c.surface.ShowStatus("")
	defer c.finish(token)

	var (
		fact Fact
		err  error
	)
	if cached != nil {
		fact = *cached
		log.Debug().Msg("using prefetched fact")
		c.prefetchInBackground()
	} else {
		log.Debug().Msg("fetching fact")
		fact, err = c.source.Fetch(reqCtx)
	}

	c.displayMu.Lock()
	defer c.displayMu.Unlock()
	if !c.isCurrent(token) {
		log.Debug().Msg("discarding stale completion")
		return
	}

	if err != nil {
		if errors.Is(err, context.Canceled) && reqCtx.Err() != nil {
			log.Debug().Msg("fetch cancelled")
			return
		}
		log.Error().Err(err).Msg("error fetching fact")
		c.setCurrent("")
		c.surface.ShowFact(ErrorText)
		c.showAttribution(Fact{})
		c.setStatus(StatusCheckConn)
		return
	}

	text := fact.Text
	c.setCurrent(text)
	if text == "" {
		text = PlaceholderText
		fact = Fact{}
	}
	c.surface.ShowFact(text)
	c.showAttribution(fact)
	c.surface.Reveal()
	c.setStatus("")
}

func (c *Controller) showAttribution(fact Fact) {
	if a, ok := c.surface.(Attributor); ok {
		a.ShowAttribution(fact.Source, fact.Permalink)
	}
}

// finish clears the loading flag unless a newer request has taken over.
func (c *Controller) finish(token ulid.ULID) {
	c.mu.Lock()
	if c.inflight != token {
		c.mu.Unlock()
		return
	}
	c.loading = false
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()
	c.surface.SetLoading(false)
}

func (c *Controller) isCurrent(token ulid.ULID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed && c.inflight == token
}

// Cancel abandons the outstanding display, if any. Its result will never
// reach the surface and a new DisplayNewFact may start right away.
func (c *Controller) Cancel() {
	c.mu.Lock()
	if !c.loading {
		c.mu.Unlock()
		return
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.inflight = ulid.ULID{}
	c.loading = false
	c.mu.Unlock()
	c.surface.SetLoading(false)
}

// Prefetch fetches a fact into the prefetch slot. Failures empty the slot
// and are never shown to the user. Concurrent calls share one request.
func (c *Controller) Prefetch(ctx context.Context) {
	_, _, _ = c.prefetches.Do("prefetch", func() (any, error) {
		fact, err := c.source.Fetch(ctx)

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed {
			return nil, nil
		}
		if err != nil {
			c.prefetched = nil
			c.logger.Debug().Err(err).Msg("prefetch failed")
			return nil, err
		}
		c.prefetched = &fact
		return nil, nil
	})
}

func (c *Controller) prefetchInBackground() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		c.Prefetch(c.bgCtx)
	}()
}

// CopyCurrentText copies the displayed fact. It reports false without
// touching the status when nothing is displayed.
func (c *Controller) CopyCurrentText(ctx context.Context) bool {
	text := c.CurrentText()
	if text == "" {
		return false
	}
	if err := c.copyText(ctx, text); err != nil {
		c.logger.Warn().Err(err).Msg("copy failed")
		c.setStatus(StatusCopyFailed)
		return false
	}
	c.flashStatus(StatusCopied)
	return true
}

// copyText tries the clipboard first and the legacy copy mechanism second.
func (c *Controller) copyText(ctx context.Context, text string) error {
	var errs []error
	for _, cb := range []Clipboard{c.caps.Clipboard, c.caps.LegacyCopy} {
		if cb == nil {
			errs = append(errs, ErrClipboardUnavailable)
			continue
		}
		err := cb.WriteText(ctx, text)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ShareCurrentText shares the displayed fact through the first mechanism
// that works: native share, copy, then a manual-copy prompt.
func (c *Controller) ShareCurrentText(ctx context.Context) {
	text := c.CurrentText()
	if text == "" {
		return
	}

	if c.caps.Share != nil {
		err := c.caps.Share.Share(ctx, ShareTitle, text)
		if err == nil || errors.Is(err, ErrShareCancelled) {
			return
		}
		c.logger.Warn().Err(err).Msg("share failed, falling back to copy")
	}

	err := c.copyText(ctx, text)
	if err == nil {
		c.flashStatus(StatusShareCopied)
		return
	}
	c.logger.Debug().Err(err).Msg("copy for share failed")

	if c.caps.Prompt != nil {
		err = c.caps.Prompt.Prompt(ctx, PromptMessage, text)
		if err == nil {
			return
		}
		c.logger.Debug().Err(err).Msg("manual copy prompt failed")
	}
	c.setStatus(StatusShareFailed)
}

// Run performs the startup sequence and then keeps the prefetch slot filled
// until ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	c.DisplayNewFact(ctx, false)
	c.Prefetch(ctx)

	ticker := time.NewTicker(c.prefetchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !c.HasPrefetched() {
				c.Prefetch(ctx)
			}
		}
	}
}

// Close cancels outstanding work and waits for background prefetches.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.stopStatusTimerLocked()
	c.mu.Unlock()

	c.bgCancel()
	c.wg.Wait()
}

// CurrentText returns the fact text on display, or "" when the display
// shows a placeholder or an error.
func (c *Controller) CurrentText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Loading reports whether a display is outstanding.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// HasPrefetched reports whether the prefetch slot is full.
func (c *Controller) HasPrefetched() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prefetched != nil
}

func (c *Controller) setCurrent(text string) {
	c.mu.Lock()
	c.current = text
	c.mu.Unlock()
}

// setStatus shows msg until the next status update.
func (c *Controller) setStatus(msg string) {
	c.mu.Lock()
	c.statusSeq++
	c.stopStatusTimerLocked()
	c.mu.Unlock()
	c.surface.ShowStatus(msg)
}

// flashStatus shows msg and clears it after the status TTL unless another
// status replaced it first.
func (c *Controller) flashStatus(msg string) {
	c.mu.Lock()
	c.statusSeq++
	seq := c.statusSeq
	c.stopStatusTimerLocked()
	c.mu.Unlock()

	c.surface.ShowStatus(msg)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.statusSeq != seq {
		return
	}
	c.statusTimer = time.AfterFunc(c.statusTTL, func() {
		c.mu.Lock()
		stale := c.closed || c.statusSeq != seq
		c.mu.Unlock()
		if !stale {
			c.surface.ShowStatus("")
		}
	})
}

func (c *Controller) stopStatusTimerLocked() {
	if c.statusTimer != nil {
		c.statusTimer.Stop()
		c.statusTimer = nil
	}
}
