package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	domainmocks "colfmt.dev/pkg/colfmt/internal/domain/mocks"
)

// executeCmd runs a fresh root command holding sub with args and returns
// what it printed. The log file goes to a temporary directory.
func executeCmd(t *testing.T, sub *cobra.Command, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	if sub != nil {
		cmd.AddCommand(sub)
	}

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--"+logFileFlagName, filepath.Join(t.TempDir(), "colfmt.log")))

	err := cmd.Execute()

	return out.String(), err
}

// useMockWorkflow swaps the package workflow for a mock until the test ends.
func useMockWorkflow(t *testing.T) *domainmocks.MockWorkflow {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	originalWorkflow := workflow
	workflow = mockWorkflow

	t.Cleanup(func() { workflow = originalWorkflow })

	return mockWorkflow
}
