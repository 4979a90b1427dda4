// Package scheduler runs periodic background tasks bound to a context.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	ErrStarted     = errors.New("scheduler already started")
	ErrBadInterval = errors.New("task interval must be positive")
)

// Task runs every Interval until the scheduler stops. A failing run is
// logged and the task keeps its schedule.
type Task struct {
	Name       string
	Interval   time.Duration
	RunOnStart bool
	Run        func(ctx context.Context) error
}

type Scheduler struct {
	log *zap.Logger

	mu      sync.Mutex
	tasks   []Task
	started bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func New(log *zap.Logger) *Scheduler {
	return &Scheduler{log: log}
}

// Add registers a task. Tasks can only be added before Start.
func (s *Scheduler) Add(t Task) error {
	if t.Interval <= 0 {
		return ErrBadInterval
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return ErrStarted
	}
	s.tasks = append(s.tasks, t)
	return nil
}

// Start launches one goroutine per task. They stop when ctx is cancelled or
// Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return ErrStarted
	}
	s.started = true
	ctx, s.cancel = context.WithCancel(ctx)
	for _, t := range s.tasks {
		s.wg.Add(1)
		go s.loop(ctx, t)
	}
	s.log.Info("scheduler started", zap.Int("tasks", len(s.tasks)))
	return nil
}

// Stop cancels all tasks and waits for running ones to return. It is safe
// to call more than once, and before Start.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, t Task) {
	defer s.wg.Done()
	if t.RunOnStart {
		s.run(ctx, t)
	}
	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.run(ctx, t)
		}
	}
}

func (s *Scheduler) run(ctx context.Context, t Task) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("scheduled task panicked", zap.String("task", t.Name), zap.Any("panic", r))
		}
	}()
	start := time.Now()
	if err := t.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.log.Warn("scheduled task failed", zap.String("task", t.Name), zap.Error(err))
		return
	}
	s.log.Debug("scheduled task done", zap.String("task", t.Name), zap.Duration("took", time.Since(start)))
}
