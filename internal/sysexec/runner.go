// Package sysexec abstracts external command execution so that callers
// can be tested without touching the host system.
package sysexec

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/hostcfg/podnet/internal/log"
)

// Runner executes external commands.
type Runner interface {
	// Run executes the command and returns its combined output. A non-zero
	// exit status is returned as an error together with the output collected
	// so far.
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner is the os/exec backed Runner used in production.
type ExecRunner struct{}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	log.Debugf("Executing: %s %s", name, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("command %s failed: %w, output: %s", name, err, strings.TrimSpace(string(output)))
	}
	return string(output), nil
}
