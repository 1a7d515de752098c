// Package engine drives a graph.Scene from a single goroutine: it ticks the
// layout at a fixed frame rate and runs UI commands between ticks, so
// readers never observe a half-rebuilt graph.
package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"episodemap/galaxy/internal/graph"
	"episodemap/galaxy/internal/metrics"
)

// ErrStopped is returned by commands submitted after Run has exited
var ErrStopped = errors.New("engine stopped")

// DefaultFPS is the tick rate when Options.FPS is unset
const DefaultFPS = 60

// Options configures an Engine
type Options struct {
	FPS    int
	Logger *zap.Logger
}

type command struct {
	cause string
	fn    func(*graph.Scene)
	done  chan struct{}
}

// Engine owns a Scene. All access goes through Do or the typed helpers.
type Engine struct {
	scene    *graph.Scene
	interval time.Duration
	log      *zap.Logger

	cmds    chan command
	stopped chan struct{}

	// loop-owned
	revision string
	tick     uint64

	frame atomic.Pointer[Frame]
}

// New wraps scene. The scene must not be touched by the caller afterwards.
func New(scene *graph.Scene, opts Options) *Engine {
	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		scene:    scene,
		interval: time.Second / time.Duration(fps),
		log:      log,
		cmds:     make(chan command),
		stopped:  make(chan struct{}),
		revision: uuid.NewString(),
	}
	metrics.ActiveNodes.Set(float64(len(scene.Active().Nodes)))
	metrics.ActiveEdges.Set(float64(len(scene.Active().Edges)))
	e.publish()
	return e
}

// Run ticks until ctx is cancelled. It must be called exactly once.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.stopped)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	e.log.Info("Frame loop started",
		zap.Duration("interval", e.interval),
		zap.Int("nodes", len(e.scene.Active().Nodes)),
		zap.String("revision", e.revision),
	)

	for {
		select {
		case <-ctx.Done():
			e.log.Info("Frame loop stopped", zap.Uint64("ticks", e.tick))
			return nil
		case cmd := <-e.cmds:
			e.exec(cmd)
		case <-ticker.C:
			e.step()
		}
	}
}

// Frame returns the most recently published frame. Frames are never
// mutated after publication.
func (e *Engine) Frame() *Frame {
	return e.frame.Load()
}

// Do runs fn on the loop goroutine between ticks and waits for it.
// fn must not retain the scene or any graph it returns.
func (e *Engine) Do(ctx context.Context, fn func(*graph.Scene)) error {
	return e.submit(ctx, "command", fn)
}

// Select applies a new filter selection and reports how many nodes kept
// their layout state.
func (e *Engine) Select(ctx context.Context, sel graph.Selection) (int, error) {
	var carried int
	err := e.submit(ctx, "select", func(s *graph.Scene) {
		carried = s.SetSelection(sel)
	})
	return carried, err
}

// Reset clears the selection
func (e *Engine) Reset(ctx context.Context) (int, error) {
	var carried int
	err := e.submit(ctx, "reset", func(s *graph.Scene) {
		carried = s.Reset()
	})
	return carried, err
}

// Pick resolves an index of the current frame to its item
func (e *Engine) Pick(ctx context.Context, index int) (*graph.Item, bool, error) {
	var (
		it *graph.Item
		ok bool
	)
	err := e.Do(ctx, func(s *graph.Scene) {
		it, ok = s.Pick(index)
	})
	return it, ok, err
}

// Pause freezes the layout
func (e *Engine) Pause(ctx context.Context) error {
	return e.Do(ctx, func(s *graph.Scene) { s.Pause() })
}

// Resume restarts the layout
func (e *Engine) Resume(ctx context.Context) error {
	return e.Do(ctx, func(s *graph.Scene) { s.Resume() })
}

func (e *Engine) submit(ctx context.Context, cause string, fn func(*graph.Scene)) error {
	cmd := command{cause: cause, fn: fn, done: make(chan struct{})}
	select {
	case e.cmds <- cmd:
	case <-e.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	// Once accepted the command always completes
	<-cmd.done
	return nil
}

func (e *Engine) exec(cmd command) {
	defer close(cmd.done)

	before := e.scene.Active()
	cmd.fn(e.scene)
	after := e.scene.Active()

	if after != before {
		e.revision = uuid.NewString()
		metrics.RebuildsTotal.WithLabelValues(cmd.cause).Inc()
		metrics.ActiveNodes.Set(float64(len(after.Nodes)))
		metrics.ActiveEdges.Set(float64(len(after.Edges)))
		e.log.Debug("Active graph rebuilt",
			zap.String("cause", cmd.cause),
			zap.Int("nodes", len(after.Nodes)),
			zap.Int("edges", len(after.Edges)),
			zap.String("revision", e.revision),
		)
	}
	e.publish()
}

func (e *Engine) step() {
	timer := prometheus.NewTimer(metrics.TickDuration)
	e.scene.Tick(1)
	timer.ObserveDuration()

	e.tick++
	metrics.TicksTotal.Inc()
	metrics.KineticEnergy.Set(graph.KineticEnergy(e.scene.Active()))
	e.publish()
}

func (e *Engine) publish() {
	e.frame.Store(Snapshot(e.scene, e.revision, e.tick))
}
