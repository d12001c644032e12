package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"gitlab.com/pagetest.net/internal/config"
	"gitlab.com/pagetest.net/internal/core/ports/primary"
	"gitlab.com/pagetest.net/internal/core/ports/secondary"
	"gitlab.com/pagetest.net/internal/domain"
	"gitlab.com/pagetest.net/internal/static/errs"
)

var _ secondary.TestRunner = (*ProcessRunner)(nil)

// ProcessRunner runs one script per child process from the artifact directory.
// The command line is Command Args... <script relative to dir> ReporterArgs...
type ProcessRunner struct {
	cfg    *config.RunnerConfig
	dir    string
	logger primary.Logger
}

func NewProcessRunner(cfg *config.RunnerConfig, dir string, logger primary.Logger) *ProcessRunner {
	return &ProcessRunner{cfg: cfg, dir: dir, logger: logger}
}

func (r *ProcessRunner) Run(ctx context.Context, scriptPath string) (*domain.ProcessResult, error) {
	rel, err := filepath.Rel(r.dir, scriptPath)
	if err != nil || rel != filepath.Base(rel) || rel == "." || rel == ".." {
		return nil, errs.SpawnError("run "+scriptPath, fmt.Errorf("script is not inside %s", r.dir))
	}
	if _, err := os.Stat(scriptPath); err != nil {
		return nil, errs.SpawnError("run "+scriptPath, err)
	}

	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	args := make([]string, 0, len(r.cfg.Args)+1+len(r.cfg.ReporterArgs))
	args = append(args, r.cfg.Args...)
	args = append(args, rel)
	args = append(args, r.cfg.ReporterArgs...)

	cmd := exec.CommandContext(ctx, r.cfg.Command, args...)
	cmd.Dir = r.dir
	cmd.Env = append(os.Environ(), "FORCE_COLOR=0")
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = r.cfg.WaitDelay

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errs.SpawnError("run "+rel, fmt.Errorf("failed to create stdout pipe: %w", err))
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, errs.SpawnError("run "+rel, fmt.Errorf("failed to create stderr pipe: %w", err))
	}

	started := time.Now()
	if err := cmd.Start(); err != nil {
		r.logger.Error("Failed to start test process", "command", r.cfg.Command, "script", rel, "error", err)
		return nil, errs.SpawnError("run "+rel, err)
	}
	r.logger.Info("Test process started", "pid", cmd.Process.Pid, "script", rel)

	var outBuf, errBuf strings.Builder
	var g errgroup.Group
	g.Go(func() error { return r.stream(stdout, &outBuf, "stdout", rel) })
	g.Go(func() error { return r.stream(stderr, &errBuf, "stderr", rel) })
	if err := g.Wait(); err != nil {
		r.logger.Warn("Test output stream ended early", "script", rel, "error", err)
	}

	waitErr := cmd.Wait()
	res := &domain.ProcessResult{
		ExitCode: exitCode(cmd, waitErr),
		Stdout:   outBuf.String(),
		Stderr:   errBuf.String(),
		Duration: time.Since(started),
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		res.TimedOut = true
		res.ExitCode = -1
		res.Stderr = appendLine(res.Stderr, fmt.Sprintf("test run killed after exceeding %s", r.cfg.Timeout))
	case ctx.Err() != nil:
		res.ExitCode = -1
		res.Stderr = appendLine(res.Stderr, "test run aborted: "+ctx.Err().Error())
	}

	r.logger.Info("Test process finished",
		"script", rel,
		"exitCode", res.ExitCode,
		"timedOut", res.TimedOut,
		"duration", res.Duration)
	return res, nil
}

// stream copies one pipe into buf line by line until EOF. Lines have no size
// limit so a single huge JSON line cannot stall the child on a full pipe.
func (r *ProcessRunner) stream(pipe io.Reader, buf *strings.Builder, name, script string) error {
	reader := bufio.NewReader(pipe)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			buf.WriteString(line)
			r.logger.Debug("Test output", "script", script, "stream", name, "line", strings.TrimRight(line, "\r\n"))
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
				return nil
			}
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
	}
}

// exitCode is -1 when the process was killed by a signal or never reported a status.
func exitCode(cmd *exec.Cmd, waitErr error) int {
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return exitErr.ExitCode()
	}
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	return -1
}

func appendLine(s, line string) string {
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return s + line + "\n"
}
