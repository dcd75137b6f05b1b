package request

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/receipt/internal/assert"
	"github.com/five82/receipt/internal/printer"
)

// DefaultMinDuration is the minimum time a submission keeps the controller
// busy, so that fast responses still produce visible feedback.
const DefaultMinDuration = 500 * time.Millisecond

// ErrBusy is returned by TrySubmit while a submission is in flight.
var ErrBusy = errors.New("submission already in progress")

// Poster sends a submission. It is implemented by *printer.Client.
type Poster interface {
	Post(ctx context.Context, sub printer.Submission) (*printer.Response, error)
}

var _ Poster = (*printer.Client)(nil)

// State is the observable status of a controller.
type State struct {
	Disabled bool
	Failed   bool
	Error    string
}

// Phase says which state change an Event reports.
type Phase int

const (
	PhaseStarted Phase = iota
	PhaseFailed        // error recorded, still disabled
	PhaseDone          // disabled cleared
)

// Event is delivered to subscribers whenever the state changes.
type Event struct {
	ID      uuid.UUID
	Kind    string
	Path    string
	Phase   Phase
	State   State
	Elapsed time.Duration // set for PhaseDone
}

// Controller runs one submission at a time from the UI's point of view and
// exposes its progress as State.
type Controller struct {
	poster      Poster
	minDuration time.Duration
	logger      *zap.Logger
	now         func() time.Time

	mu      sync.Mutex
	state   State
	subs    map[int]func(Event)
	nextSub int
}

// Option customises a Controller.
type Option func(*Controller)

// WithMinDuration overrides DefaultMinDuration. Negative values are treated as zero.
func WithMinDuration(d time.Duration) Option {
	return func(c *Controller) {
		if d < 0 {
			d = 0
		}
		c.minDuration = d
	}
}

// WithLogger sets the logger used to record submissions.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a Controller posting through poster.
func New(poster Poster, opts ...Option) *Controller {
	c := &Controller{
		poster:      poster,
		minDuration: DefaultMinDuration,
		logger:      zap.NewNop(),
		now:         time.Now,
		subs:        make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn for state changes and returns a function removing it.
// Callbacks run on the submitting goroutine and must not block.
func (c *Controller) Subscribe(fn func(Event)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// Submit posts sub and blocks until the submission, including the minimum
// busy duration, has finished. Failures are reported through State, never
// returned. Concurrent calls are not serialised: whichever finishes last
// determines the final state.
func (c *Controller) Submit(ctx context.Context, sub printer.Submission) {
	start, id, _ := c.begin(sub, false)
	c.run(ctx, sub, start, id)
}

// TrySubmit behaves like Submit but refuses to start while another submission
// is in flight.
func (c *Controller) TrySubmit(ctx context.Context, sub printer.Submission) error {
	start, id, ok := c.begin(sub, true)
	if !ok {
		return ErrBusy
	}
	c.run(ctx, sub, start, id)
	return nil
}

func (c *Controller) begin(sub printer.Submission, onlyIfIdle bool) (time.Time, uuid.UUID, bool) {
	c.mu.Lock()
	if onlyIfIdle && c.state.Disabled {
		c.mu.Unlock()
		return time.Time{}, uuid.Nil, false
	}
	start := c.now()
	c.state = State{Disabled: true}
	subs := c.subscribersLocked()
	c.mu.Unlock()

	id := uuid.New()
	c.logger.Info("submission started",
		zap.String("id", id.String()),
		zap.String("kind", sub.Kind),
		zap.String("path", sub.Path),
		zap.Int("bytes", sub.Size()))
	notify(subs, Event{ID: id, Kind: sub.Kind, Path: sub.Path, Phase: PhaseStarted, State: State{Disabled: true}})
	return start, id, true
}

func (c *Controller) run(ctx context.Context, sub printer.Submission, start time.Time, id uuid.UUID) {
	resp, err := c.poster.Post(ctx, sub)
	message, failed := failureMessage(resp, err)

	if failed {
		c.mu.Lock()
		c.state.Failed = true
		c.state.Error = message
		state := c.state
		subs := c.subscribersLocked()
		c.mu.Unlock()
		notify(subs, Event{ID: id, Kind: sub.Kind, Path: sub.Path, Phase: PhaseFailed, State: state})
	}

	c.waitAtLeast(start)

	c.mu.Lock()
	c.state.Disabled = false
	state := c.state
	subs := c.subscribersLocked()
	elapsed := c.now().Sub(start)
	c.mu.Unlock()

	fields := []zap.Field{
		zap.String("id", id.String()),
		zap.String("kind", sub.Kind),
		zap.Duration("elapsed", elapsed),
	}
	if failed {
		c.logger.Warn("submission failed", append(fields, zap.String("error", message))...)
	} else {
		c.logger.Info("submission finished", fields...)
	}
	notify(subs, Event{ID: id, Kind: sub.Kind, Path: sub.Path, Phase: PhaseDone, State: state, Elapsed: elapsed})
}

// waitAtLeast sleeps until minDuration has passed since start. The floor is
// not tied to the caller's context: Disabled stays set for at least
// minDuration however the request ended.
func (c *Controller) waitAtLeast(start time.Time) {
	remaining := c.minDuration - c.now().Sub(start)
	if remaining <= 0 {
		return
	}
	time.Sleep(remaining)
}

func (c *Controller) subscribersLocked() []func(Event) {
	if len(c.subs) == 0 {
		return nil
	}
	out := make([]func(Event), 0, len(c.subs))
	for _, fn := range c.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(Event), ev Event) {
	for _, fn := range subs {
		fn(ev)
	}
}

// failureMessage turns a transport error or a non-2xx response into the text
// shown to the user. The second result is false on success.
func failureMessage(resp *printer.Response, err error) (string, bool) {
	if err != nil {
		return err.Error(), true
	}
	assert.That(resp != nil, "poster returned neither a response nor an error")
	if resp.OK() {
		return "", false
	}
	status := fmt.Sprintf("%d %s", resp.StatusCode, resp.StatusText)
	if len(resp.Body) > 0 {
		return status + ": " + resp.Body, true
	}
	return status, true
}
