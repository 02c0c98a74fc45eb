package collector

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

// ShutdownManager runs registered shutdown phases in order, once, on a
// signal or an explicit request
type ShutdownManager struct {
	shutdownTimeout time.Duration
	logger          zerolog.Logger
	shutdownChan    chan struct{}
	once            sync.Once

	mu              sync.Mutex
	phases          []shutdownPhase
	shutdownStarted bool
}

// shutdownPhase represents a single phase in the shutdown process
type shutdownPhase struct {
	name string
	fn   func(context.Context) error
}

// NewShutdownManager creates a new shutdown manager
func NewShutdownManager(timeout time.Duration, logger zerolog.Logger) *ShutdownManager {
	return &ShutdownManager{
		shutdownTimeout: timeout,
		logger:          logger,
		shutdownChan:    make(chan struct{}),
	}
}

// AddPhase appends a shutdown phase. Phases run in registration order and
// share the shutdown timeout.
func (sm *ShutdownManager) AddPhase(name string, fn func(context.Context) error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.phases = append(sm.phases, shutdownPhase{name: name, fn: fn})
}

// Start begins monitoring for shutdown signals. Cancelling ctx also starts
// the shutdown.
func (sm *ShutdownManager) Start(ctx context.Context) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			sm.logger.Info().Str("signal", sig.String()).Msg("shutdown_signal_received")
		case <-ctx.Done():
		case <-sm.shutdownChan:
			return
		}
		sm.InitiateShutdown()
	}()
}

// InitiateShutdown runs every phase exactly once. Concurrent callers return
// after the first run finishes.
func (sm *ShutdownManager) InitiateShutdown() {
	sm.once.Do(func() {
		sm.mu.Lock()
		sm.shutdownStarted = true
		phases := sm.phases
		sm.mu.Unlock()

		sm.logger.Info().Int("phases", len(phases)).Msg("shutdown_started")
		startTime := time.Now()

		ctx, cancel := context.WithTimeout(context.Background(), sm.shutdownTimeout)
		defer cancel()

		for i, phase := range phases {
			if err := sm.run(ctx, phase); err != nil {
				sm.logger.Warn().Err(err).Str("phase", phase.name).Int("step", i+1).Msg("shutdown_phase_failed")
				continue
			}
			sm.logger.Debug().Str("phase", phase.name).Int("step", i+1).Msg("shutdown_phase_complete")
		}

		sm.logger.Info().Dur("took", time.Since(startTime)).Msg("shutdown_complete")
		close(sm.shutdownChan)
	})
}

// run executes one phase, giving up when the shutdown deadline passes
func (sm *ShutdownManager) run(ctx context.Context, phase shutdownPhase) error {
	done := make(chan error, 1)
	go func() { done <- phase.fn(ctx) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("timeout waiting for %s: %w", phase.name, ctx.Err())
	}
}

// Wait blocks until shutdown is complete
func (sm *ShutdownManager) Wait() {
	<-sm.shutdownChan
}

// IsShuttingDown returns true if shutdown has been initiated
func (sm *ShutdownManager) IsShuttingDown() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.shutdownStarted
}
