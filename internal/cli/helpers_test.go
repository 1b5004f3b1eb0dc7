package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const oneShotScenario = `name: one_shot
description: A one-shot press is seen for one simulation tick
steps:
  - schedule:
      - {op: one_shot, action: fire}
    gather: [simulation]
    repeat: 3
assertions:
  - {type: state_sequence, action: fire, domain: simulation, states: [just_down, just_up, absent]}
`

const failingScenario = `name: wrong
description: Claims two press edges where there is one
steps:
  - schedule:
      - {op: one_shot, action: fire}
    gather: [simulation]
    repeat: 2
assertions:
  - {type: edge_count, action: fire, domain: simulation, edge: just_down, count: 2}
`

const oneShotGolden = `{"events":[{"action":"fire","domain":"simulation","seq":1,"state":"just_down","tick":1},{"action":"fire","domain":"simulation","seq":2,"state":"just_up","tick":2},{"action":"fire","domain":"simulation","seq":3,"state":"absent","tick":3}],"scenario":"one_shot"}`

const terminalBindings = `actions:
  jump: {rune: " "}
  fire: {mouse: left}
  menu: {key: Esc}
analogs:
  throttle: {key: Up}
mice:
  - {up: look_up, down: look_down, left: look_left, right: look_right, scale: 0.05}
`

// writeFile writes content to dir/name and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs cmd with args and returns stdout.
func execute(cmd *cobra.Command, args ...string) (string, error) {
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
