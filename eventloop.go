package blitview

import (
	"fmt"
	"sync"

	"github.com/gogpu/blitview/driver"
	"github.com/gogpu/blitview/surface"
)

// WindowOptions configures window creation.
type WindowOptions = driver.WindowOptions

// Singleton bookkeeping. On backends whose event system is process-wide
// the first EventLoop claims the backend for the remaining process
// lifetime; Close does not give it back, mirroring native event systems
// that cannot be re-initialized.
var (
	sharedMu      sync.Mutex
	sharedLoop    *EventLoop
	singletonHeld = map[string]bool{}
)

// EventLoop owns the connection to the presentation backend, the window
// table, and the event pump.
//
// The loop and everything it owns (windows, surfaces) must only be
// touched from the goroutine that constructed it. Events are delivered
// exclusively inside Run or RunIteration, never asynchronously.
type EventLoop struct {
	drv   driver.Driver
	conn  driver.Conn
	arena *surface.Arena

	mu            sync.Mutex
	windows       map[uint64]*Window
	handler       func(Event)
	everHadWindow bool
	closed        bool

	exitOnce sync.Once
	exit     chan struct{}
}

// New creates an event loop on the highest-priority available backend.
//
// On a backend whose event system is process-wide, a second New fails
// with *SingleInstanceError; recover by calling [Shared] and reusing
// the existing loop.
func New() (*EventLoop, error) {
	drv, err := driver.Best()
	if err != nil {
		return nil, fmt.Errorf("blitview: %w", err)
	}
	return newLoop(drv)
}

// NewWithDriver creates an event loop on a specific backend by name.
func NewWithDriver(name string) (*EventLoop, error) {
	drv, err := driver.ByName(name)
	if err != nil {
		return nil, fmt.Errorf("blitview: %w", err)
	}
	return newLoop(drv)
}

func newLoop(drv driver.Driver) (*EventLoop, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if drv.Singleton() && singletonHeld[drv.Name()] {
		return nil, &SingleInstanceError{Backend: drv.Name()}
	}

	conn, err := drv.Open(driver.Options{})
	if err != nil {
		return nil, fmt.Errorf("blitview: open backend %q: %w", drv.Name(), err)
	}

	if drv.Singleton() {
		singletonHeld[drv.Name()] = true
	}

	l := &EventLoop{
		drv:     drv,
		conn:    conn,
		arena:   surface.NewArena(),
		windows: make(map[uint64]*Window),
		exit:    make(chan struct{}),
	}
	l.arena.SetLogger(Logger())

	if sharedLoop == nil {
		sharedLoop = l
	}
	Logger().Info("event loop created", "backend", drv.Name())
	return l, nil
}

// Shared returns the first event loop created in this process, or nil
// if none exists. It is the recovery path when New fails with
// *SingleInstanceError.
func Shared() *EventLoop {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	return sharedLoop
}

// Backend returns the name of the presentation backend driving this
// loop.
func (l *EventLoop) Backend() string { return l.drv.Name() }

// NewWindow creates a native window owned by this loop.
func (l *EventLoop) NewWindow(opts WindowOptions) (*Window, error) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil, ErrLoopClosed
	}
	l.mu.Unlock()

	dw, err := l.conn.NewWindow(opts)
	if err != nil {
		return nil, fmt.Errorf("blitview: create window: %w", err)
	}

	w := &Window{loop: l, dw: dw, title: opts.Title}
	l.mu.Lock()
	l.windows[dw.ID()] = w
	l.everHadWindow = true
	l.mu.Unlock()

	Logger().Debug("window created", "window_id", dw.ID(), "title", opts.Title)
	return w, nil
}

// OnEvent registers the event listener. Each registration replaces the
// previous one; pass nil to remove the listener. Events are delivered
// only from inside Run or RunIteration, on the calling goroutine.
func (l *EventLoop) OnEvent(handler func(Event)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handler = handler
}

// Run pumps events until every window has closed (after at least one
// existed) or Exit is called. It blocks the calling goroutine and must
// not be mixed with RunIteration polling on the same loop.
func (l *EventLoop) Run() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrLoopClosed
	}
	l.mu.Unlock()

	for {
		select {
		case <-l.exit:
			return nil
		case ev, ok := <-l.conn.Events():
			if !ok {
				return nil
			}
			l.dispatch(ev)
			if l.done() {
				return nil
			}
		}
	}
}

// RunIteration pumps one batch of pending events without blocking and
// reports whether the loop should continue. Returning false is the
// termination signal: the caller stops issuing further RunIteration and
// render calls.
func (l *EventLoop) RunIteration() bool {
	if l.done() {
		return false
	}
	for {
		select {
		case <-l.exit:
			return false
		case ev, ok := <-l.conn.Events():
			if !ok {
				return false
			}
			l.dispatch(ev)
		default:
			return !l.done()
		}
	}
}

// Exit requests loop termination. Run returns and the next
// RunIteration reports false. Windows stay open until Close.
func (l *EventLoop) Exit() {
	l.exitOnce.Do(func() { close(l.exit) })
}

// Close tears down the loop: every window, every surface, and the
// backend connection. Idempotent. On singleton backends the process
// cannot construct another loop afterward; the shared instance remains
// the way back in.
func (l *EventLoop) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	windows := make([]*Window, 0, len(l.windows))
	for _, w := range l.windows {
		windows = append(windows, w)
	}
	l.mu.Unlock()

	for _, w := range windows {
		w.Close()
	}
	l.arena.Close()
	l.Exit()
	err := l.conn.Close()
	Logger().Info("event loop closed", "backend", l.drv.Name())
	return err
}

// done reports whether the pump should stop: exit requested, loop
// closed, or all windows closed after at least one existed.
func (l *EventLoop) done() bool {
	select {
	case <-l.exit:
		return true
	default:
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed || (l.everHadWindow && len(l.windows) == 0)
}

// dispatch delivers one event to the listener, then applies the loop's
// own bookkeeping for lifecycle events.
func (l *EventLoop) dispatch(ev Event) {
	l.deliver(ev)

	switch ev.Kind {
	case driver.EventCloseRequested:
		l.mu.Lock()
		w := l.windows[ev.WindowID]
		l.mu.Unlock()
		if w != nil {
			w.Close()
		}
	case driver.EventDestroyed:
		l.mu.Lock()
		delete(l.windows, ev.WindowID)
		l.mu.Unlock()
	}
}

// deliver invokes the listener, containing panics so a faulty listener
// cannot stop the pump.
func (l *EventLoop) deliver(ev Event) {
	l.mu.Lock()
	h := l.handler
	l.mu.Unlock()
	if h == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			Logger().Warn("event listener panicked",
				"panic", r, "event", ev.Kind.String(), "window_id", ev.WindowID)
		}
	}()
	h(ev)
}

// removeWindow drops a window from the table after it closes.
func (l *EventLoop) removeWindow(id uint64) {
	l.mu.Lock()
	delete(l.windows, id)
	l.mu.Unlock()
}
