package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edwinsyarief/physbench/internal/harness"
	"github.com/edwinsyarief/physbench/internal/report"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestScenariosCommand(t *testing.T) {
	out, err := execute(t, "scenarios")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(harness.Scenarios))
	for i, s := range harness.Scenarios {
		assert.True(t, strings.HasPrefix(lines[i], s.Name), lines[i])
	}
}

func TestRunCommandJSON(t *testing.T) {
	out, err := execute(t, "run",
		"--entities", "16",
		"--iterations", "2",
		"--warmup", "0",
		"--scenarios", "registry/velocity,arrays/translation",
		"--format", "json",
		"--log-level", "error",
	)
	require.NoError(t, err)

	var results []report.Result
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, harness.RegistryVelocity, results[0].Scenario)
	assert.Equal(t, 32, results[0].Rows)
	assert.Equal(t, harness.ArraysTranslation, results[1].Scenario)
}

func TestRunCommandRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "format", args: []string{"run", "--format", "xml"}},
		{name: "iterations", args: []string{"run", "--iterations", "0"}},
		{name: "scenario", args: []string{"run", "--entities", "1", "--iterations", "1", "--scenarios", "nope"}},
		{name: "profile", args: []string{"run", "--entities", "1", "--iterations", "1", "--profile", "block"}},
		{name: "extra args", args: []string{"run", "extra"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.args...)
			require.Error(t, err)
		})
	}
}
