package benchmarks

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeu5/mdp-rl/learn"
	"github.com/zeu5/mdp-rl/mdp"
)

// one state, two actions that both pay 1
const constantText = `1 2

1

1

1 1
`

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	cmd := GetRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := Execute(cmd)
	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, constantText, "validate")
	require.NoError(t, err)
	assert.Equal(t, "valid: 1 states, 2 actions\n", out)

	_, err = run(t, "1 2\n\n0.5\n\n1\n\n1 1\n", "validate")
	var vErr *mdp.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Len(t, vErr.Diagnostics, 1)
}

func TestDiscountedCommandWritesPolicy(t *testing.T) {
	input := writeFile(t, "model.txt", constantText)
	policyPath := filepath.Join(t.TempDir(), "out", "policy.csv")

	out, err := run(t, "", "discounted", "-i", input, "-d", "0.5", "-o", policyPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Value Function:")
	assert.Contains(t, out, "Policy:\n0\n")

	f, err := os.Open(policyPath)
	require.NoError(t, err)
	defer f.Close()
	policy, err := mdp.ReadPolicy(f)
	require.NoError(t, err)
	assert.Equal(t, mdp.StochasticPolicy{{1, 0}}, policy)
}

func TestFiniteCommand(t *testing.T) {
	out, err := run(t, constantText, "finite", "-t", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Non-Stationary Value Function:")
	assert.Contains(t, out, "Solution:")
}

func TestSimulateCommand(t *testing.T) {
	input := writeFile(t, "model.txt", constantText)
	policy := writeFile(t, "policy.csv", "0.25,0.75\n")

	out, err := run(t, "", "simulate", "-i", input, "-p", policy, "-r", "100", "-t", "4", "-l", "4", "-d", "0.5", "--seed", "1")
	require.NoError(t, err)
	assert.Equal(t, "1.875 0\n", out)
}

func TestSimulateCommandRejectsBadPolicy(t *testing.T) {
	input := writeFile(t, "model.txt", constantText)
	policy := writeFile(t, "policy.csv", "0.5,0.4\n")

	_, err := run(t, "", "simulate", "-i", input, "-p", policy, "--seed", "1")
	var vErr *mdp.ValidationError
	require.True(t, errors.As(err, &vErr))
}

func TestLearnCommand(t *testing.T) {
	input := writeFile(t, "model.txt", constantText)
	config := writeFile(t, "experiment.yaml", "variants:\n  - method: sarsa\n    epsilon: 0.1\n")
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "curves.csv")
	summaryPath := filepath.Join(dir, "summary.txt")

	args := []string{"learn", "-i", input, "-c", config, "--csv", csvPath, "--summary", summaryPath,
		"-s", "4", "--every", "2", "-e", "3", "-d", "0.5", "-t", "2", "-w", "2", "--seed", "7"}
	out, err := run(t, "", args...)
	require.NoError(t, err)
	assert.Contains(t, out, "0.10-greedy SARSA")

	content, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "0.10-greedy SARSA,2,1.75,0,2", lines[2])

	_, err = run(t, "", args...)
	require.NoError(t, err)
	content, err = os.ReadFile(summaryPath)
	require.NoError(t, err)
	assert.Equal(t, "0.10-greedy SARSA,2,1.75,0,2\n0.10-greedy SARSA,2,1.75,0,2\n", string(content))
}

func TestParseExperiment(t *testing.T) {
	exp, err := ParseExperiment([]byte("lrate: 0.2\nvariants:\n  - method: MC\n    epsilon: 0.3\n    name: baseline\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.2, exp.LearningRate)
	require.Len(t, exp.Variants, 1)
	assert.Equal(t, learn.MonteCarlo, exp.Variants[0].Method)
	assert.Equal(t, "baseline", exp.Variants[0].Label())

	exp, err = ParseExperiment([]byte("epochs: 50\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultVariants(), exp.Variants)

	_, err = ParseExperiment([]byte("variants:\n  - method: td-lambda\n"))
	assert.Error(t, err)
}

func TestDefaultVariants(t *testing.T) {
	variants := DefaultVariants()
	require.Len(t, variants, 6)
	assert.Equal(t, "0.30-greedy Q", variants[0].Label())
	assert.Equal(t, "0.05-greedy MC", variants[5].Label())
}

func TestFailingCommandFlushesCPUProfile(t *testing.T) {
	profile := filepath.Join(t.TempDir(), "cpu.prof")
	_, err := run(t, "1 1\n\n0.5\n\n1\n", "validate", "--cpuprofile", profile)
	require.Error(t, err)
	assert.Nil(t, stopProfiling)

	info, err := os.Stat(profile)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
