package schedulerengine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gitlab.com/pagetest.net/internal/adapter/logging"
	"gitlab.com/pagetest.net/internal/config"
)

type sweeperFunc func(cutoff time.Time) (int, error)

func (f sweeperFunc) SweepTemp(cutoff time.Time) (int, error) { return f(cutoff) }

func TestSweep_UsesStaleAge(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	var got time.Time
	e := NewMaintenanceEngine(&config.ArtifactConfig{StaleTempAge: time.Hour}, sweeperFunc(func(cutoff time.Time) (int, error) {
		got = cutoff
		return 3, nil
	}), logging.NewNopLogger())
	e.now = func() time.Time { return now }

	assert.Equal(t, 3, e.Sweep())
	assert.Equal(t, now.Add(-time.Hour), got)
}

func TestSweep_Error(t *testing.T) {
	e := NewMaintenanceEngine(&config.ArtifactConfig{}, sweeperFunc(func(time.Time) (int, error) {
		return 0, errors.New("permission denied")
	}), logging.NewNopLogger())

	assert.Equal(t, 0, e.Sweep())
}

func TestStart_RunsUntilCancelled(t *testing.T) {
	var calls atomic.Int32
	e := NewMaintenanceEngine(&config.ArtifactConfig{SweepInterval: 10 * time.Millisecond}, sweeperFunc(func(time.Time) (int, error) {
		calls.Add(1)
		return 0, nil
	}), logging.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := e.Start(ctx)
	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("maintenance loop did not stop")
	}
}

func TestStart_Disabled(t *testing.T) {
	e := NewMaintenanceEngine(&config.ArtifactConfig{}, sweeperFunc(func(time.Time) (int, error) {
		t.Fatal("sweeper must not run")
		return 0, nil
	}), logging.NewNopLogger())

	select {
	case <-e.Start(context.Background()):
	default:
		t.Fatal("disabled engine should report done immediately")
	}
}
