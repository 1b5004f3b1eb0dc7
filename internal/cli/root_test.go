package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "tickinput", cmd.Use)
	assert.Contains(t, cmd.Long, "tick domains")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"run", "test", "trace", "replay", "validate", "watch"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("TICKINPUT_FORMAT", "json")
	t.Setenv("TICKINPUT_DB", "/tmp/runs.db")

	e, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "json", e.Format)
	assert.Equal(t, "/tmp/runs.db", e.Database)

	cmd := NewRootCommand()
	assert.Equal(t, "json", cmd.PersistentFlags().Lookup("format").DefValue)
}

func TestInvalidFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "one_shot.yaml", oneShotScenario)

	_, err := execute(NewRootCommand(), "--format", "xml", "run", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestRootDispatch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "one_shot.yaml", oneShotScenario)

	out, err := execute(NewRootCommand(), "run", "--quiet", path)
	require.NoError(t, err)
	assert.Equal(t, "✓ one_shot (3 events)\n", out)
}

func TestRootOptions_Logger(t *testing.T) {
	var buf bytes.Buffer

	quiet := (&RootOptions{}).Logger(&buf)
	quiet.Debug("hidden")
	quiet.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	verbose := (&RootOptions{Verbose: true}).Logger(&buf)
	verbose.Debug("detail")
	assert.Contains(t, buf.String(), "level=DEBUG")
}
