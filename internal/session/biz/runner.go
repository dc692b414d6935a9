package biz

import (
	"context"
	"sync"

	"github.com/lk2023060901/ai-session-backend/internal/pkg/metrics"
	"go.uber.org/zap"
)

// SelectionListener receives the selection after a pass that applied effects
type SelectionListener func(snap Snapshot)

// Runner drives reconciliation: it subscribes to the selection store and runs
// one pass per change notification on a single consumer goroutine, so every
// pass sees a consistent snapshot and passes never interleave. Effects
// applied by one pass re-notify the store and schedule a follow-up pass,
// which converges to a no-op.
type Runner struct {
	store      *SelectionStore
	reconciler *Reconciler
	assistants AssistantRepo
	logger     *zap.Logger

	listeners []SelectionListener

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewRunner creates a reconcile runner
func NewRunner(store *SelectionStore, reconciler *Reconciler, assistants AssistantRepo, logger *zap.Logger) *Runner {
	return &Runner{
		store:      store,
		reconciler: reconciler,
		assistants: assistants,
		logger:     logger,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// OnSelectionChange registers a listener invoked after every pass that
// applied at least one effect. Must be called before Start.
func (r *Runner) OnSelectionChange(fn SelectionListener) {
	r.listeners = append(r.listeners, fn)
}

// Start primes the assistant collection, runs an initial pass, and then
// consumes change notifications until Stop or context cancellation.
func (r *Runner) Start(ctx context.Context) {
	ch := r.store.Subscribe()

	go func() {
		defer close(r.done)
		defer r.store.Unsubscribe(ch)

		r.refreshAssistants(ctx)
		r.pass(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-r.stop:
				return
			case <-ch:
				r.pass(ctx)
			}
		}
	}()
}

// Stop terminates the runner and waits for the consumer goroutine to exit
func (r *Runner) Stop() {
	r.stopOnce.Do(func() {
		close(r.stop)
	})
	<-r.done
}

// refreshAssistants loads the assistant collection into the store so the
// first pass sees it. A failure here is not fatal; reconciliation will
// bootstrap or recover on a later notification.
func (r *Runner) refreshAssistants(ctx context.Context) {
	assistants, err := r.assistants.List(ctx, nil)
	if err != nil {
		r.logger.Error("failed to load assistant collection", zap.Error(err))
		return
	}
	r.store.SetAssistants(assistants)
}

// pass runs a single reconciliation pass and applies its effects
func (r *Runner) pass(ctx context.Context) {
	snap := r.store.Snapshot()

	metrics.ReconcilePasses.Inc()

	effects, err := r.reconciler.Reconcile(ctx, snap)
	if err != nil {
		metrics.ReconcileFailures.Inc()
		r.logger.Error("reconciliation pass failed", zap.Error(err))
		return
	}

	for _, effect := range effects {
		switch e := effect.(type) {
		case SetCurrentAssistantEffect:
			metrics.ReconcileEffects.WithLabelValues("set_assistant").Inc()
			r.store.SetCurrentAssistant(e.Assistant)
		case SetCurrentTopicEffect:
			metrics.ReconcileEffects.WithLabelValues("set_topic").Inc()
			r.store.SetCurrentTopicID(e.TopicID)
		}
	}

	if len(effects) > 0 {
		after := r.store.Snapshot()
		for _, fn := range r.listeners {
			fn(after)
		}
	}
}
