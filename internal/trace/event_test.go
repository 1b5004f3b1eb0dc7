package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tickinput/internal/input"
)

func TestFromObservation(t *testing.T) {
	ev := FromObservation(7, 3, input.Simulation, "fire", input.Observation{
		Digital: input.Digital{JustDown: true},
	})
	assert.Equal(t, Event{Seq: 7, Tick: 3, Domain: "simulation", Action: "fire", State: "just_down"}, ev)
	assert.Equal(t, 0.0, ev.AnalogValue())

	ev = FromObservation(8, 3, input.Presentation, "look_up", input.Observation{
		Analog:    0,
		HasAnalog: true,
	})
	require.NotNil(t, ev.Analog)
	assert.Equal(t, "absent", ev.State)
	assert.Equal(t, 0.0, *ev.Analog)
}

func TestSnapshot_Marshal(t *testing.T) {
	v := 0.5
	snap := Snapshot{
		Scenario: "demo",
		Events: []Event{
			{Seq: 1, Tick: 1, Domain: "simulation", Action: "fire", State: "just_down"},
			{Seq: 2, Tick: 1, Domain: "simulation", Action: "look", State: "absent", Analog: &v},
		},
	}

	data, err := snap.Marshal()
	require.NoError(t, err)
	assert.Equal(t,
		`{"events":[`+
			`{"action":"fire","domain":"simulation","seq":1,"state":"just_down","tick":1},`+
			`{"action":"look","analog":0.5,"domain":"simulation","seq":2,"state":"absent","tick":1}`+
			`],"scenario":"demo"}`,
		string(data))
}
