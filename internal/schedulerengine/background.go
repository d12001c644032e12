package schedulerengine

import (
	"context"
	"time"

	"gitlab.com/pagetest.net/internal/config"
	"gitlab.com/pagetest.net/internal/core/ports/primary"
)

// TempSweeper removes leftovers of interrupted artifact writes.
type TempSweeper interface {
	SweepTemp(cutoff time.Time) (int, error)
}

type MaintenanceEngine struct {
	cfg     *config.ArtifactConfig
	sweeper TempSweeper
	logger  primary.Logger
	now     func() time.Time
}

func NewMaintenanceEngine(cfg *config.ArtifactConfig, sweeper TempSweeper, logger primary.Logger) *MaintenanceEngine {
	return &MaintenanceEngine{
		cfg:     cfg,
		sweeper: sweeper,
		logger:  logger,
		now:     time.Now,
	}
}

// Start sweeps once, then on every interval until ctx is done. The returned
// channel closes when the loop has exited.
func (e *MaintenanceEngine) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	if e.cfg.SweepInterval <= 0 {
		e.logger.Info("Artifact sweeping disabled")
		close(done)
		return done
	}

	ticker := time.NewTicker(e.cfg.SweepInterval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		e.Sweep()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				e.Sweep()
			}
		}
	}()
	return done
}

// Sweep runs one maintenance pass and returns how many files it removed.
func (e *MaintenanceEngine) Sweep() int {
	removed, err := e.sweeper.SweepTemp(e.now().Add(-e.cfg.StaleTempAge))
	if err != nil {
		e.logger.Error("Failed to sweep artifact dir", "error", err)
		return 0
	}
	if removed > 0 {
		e.logger.Info("Removed stale temp artifacts", "count", removed)
	}
	return removed
}
