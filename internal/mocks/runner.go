package mocks

import (
	"context"
	"strings"
)

// MockRunner is a mock implementation of the sysexec.Runner interface.
//
// Every executed command line is recorded in Calls. If RunFunc is nil,
// commands succeed with empty output.
type MockRunner struct {
	// RunFunc is called by Run if not nil
	RunFunc func(ctx context.Context, name string, args ...string) (string, error)

	// Calls records each executed command line
	Calls []string
}

func NewMockRunner() *MockRunner {
	return &MockRunner{}
}

func (m *MockRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	m.Calls = append(m.Calls, name+" "+strings.Join(args, " "))
	if m.RunFunc != nil {
		return m.RunFunc(ctx, name, args...)
	}
	return "", nil
}
