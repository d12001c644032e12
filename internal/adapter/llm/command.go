package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"gitlab.com/pagetest.net/internal/config"
	"gitlab.com/pagetest.net/internal/core/ports/primary"
	"gitlab.com/pagetest.net/internal/core/ports/secondary"
)

var _ secondary.ModelProvider = (*CommandProvider)(nil)

// CommandProvider runs a model CLI, writes the prompt to its stdin and reads
// the completion from its stdout.
type CommandProvider struct {
	command string
	args    []string
	logger  primary.Logger
}

func NewCommandProvider(cfg *config.ModelConfig, logger primary.Logger) *CommandProvider {
	return &CommandProvider{
		command: cfg.Command,
		args:    cfg.Args,
		logger:  logger,
	}
}

func (p *CommandProvider) Name() string {
	return "command:" + p.command
}

func (p *CommandProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if p.command == "" {
		return "", fmt.Errorf("no model command configured")
	}

	cmd := exec.CommandContext(ctx, p.command, p.args...)
	cmd.Env = os.Environ()
	cmd.Stdin = strings.NewReader(prompt)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = 5 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()
	err := cmd.Run()
	if ctx.Err() != nil {
		return "", fmt.Errorf("model command %s: %w", p.command, ctx.Err())
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("model command %s exited with %d: %s", p.command, exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("failed to run model command %s: %w", p.command, err)
	}

	p.logger.Debug("Model command finished", "command", p.command, "duration", time.Since(started), "bytes", stdout.Len())
	return stdout.String(), nil
}
