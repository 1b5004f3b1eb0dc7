package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tickinput/internal/trace"
)

func TestExitError(t *testing.T) {
	err := NewExitError(ExitFailure, "scenario failed")
	assert.Equal(t, "scenario failed", err.Error())
	assert.Nil(t, errors.Unwrap(err))

	inner := errors.New("disk full")
	wrapped := WrapExitError(ExitCommandError, "failed to open database", inner)
	assert.Equal(t, "failed to open database: disk full", wrapped.Error())
	assert.True(t, errors.Is(wrapped, inner))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "x")))
	assert.Equal(t, ExitCommandError, GetExitCode(fmt.Errorf("outer: %w", NewExitError(ExitCommandError, "x"))))
}

func TestOkResponse(t *testing.T) {
	ok := okResponse(map[string]int{"n": 1}, "", "")
	assert.Equal(t, "ok", ok.Status)
	assert.Nil(t, ok.Error)

	failed := okResponse(nil, ErrCodeTestFailed, "1 scenario(s) failed")
	assert.Equal(t, "error", failed.Status)
	require.NotNil(t, failed.Error)
	assert.Equal(t, ErrCodeTestFailed, failed.Error.Code)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, okResponse(map[string]string{"tag": "<a>"}, "", "")))
	assert.Equal(t, "{\n  \"status\": \"ok\",\n  \"data\": {\n    \"tag\": \"<a>\"\n  }\n}\n", buf.String())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestWriteEvents(t *testing.T) {
	half := 0.5
	var buf bytes.Buffer
	require.NoError(t, writeEvents(&buf, []trace.Event{
		{Seq: 1, Tick: 1, Domain: "simulation", Action: "fire", State: "just_down"},
		{Seq: 2, Tick: 1, Domain: "simulation", Action: "look_up", State: "absent", Analog: &half},
	}))

	want := "SEQ  TICK  DOMAIN      ACTION   STATE      ANALOG\n" +
		"1    1     simulation  fire     just_down  -\n" +
		"2    1     simulation  look_up  absent     0.5\n"
	assert.Equal(t, want, buf.String())
}
