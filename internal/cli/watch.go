package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/roach88/tickinput/internal/binding"
	"github.com/roach88/tickinput/internal/input"
	"github.com/roach88/tickinput/internal/live"
	"github.com/roach88/tickinput/internal/tick"
)

// WatchOptions holds flags for the watch command.
type WatchOptions struct {
	*RootOptions
	Bindings    string
	Frames      int
	HoldTimeout time.Duration

	// Screen overrides the terminal (for testing). It is initialised and
	// finalised by the command.
	Screen tcell.Screen
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	return newWatchCommand(&WatchOptions{RootOptions: rootOpts})
}

func newWatchCommand(opts *WatchOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show live terminal input in both tick domains",
		Long: `Read keys and mouse from the terminal through a binding file and show,
every frame, what each action looks like in the presentation and simulation
domains. Press Ctrl-C to stop.

Frame and step rates come from TICKINPUT_FRAME_RATE, TICKINPUT_SIM_RATE and
TICKINPUT_MAX_CATCHUP.

Examples:
  tickinput watch --bindings ./bindings.yaml
  TICKINPUT_SIM_RATE=20 tickinput watch --bindings ./bindings.cue`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Bindings, "bindings", "", "binding file (.yaml, .yml or .cue) (required)")
	_ = cmd.MarkFlagRequired("bindings")
	cmd.Flags().IntVar(&opts.Frames, "frames", 0, "stop after this many frames (0 runs until Ctrl-C)")
	cmd.Flags().DurationVar(&opts.HoldTimeout, "hold", live.DefaultHoldTimeout, "how long a key stays down after its last event")

	return cmd
}

func runWatch(opts *WatchOptions, cmd *cobra.Command) error {
	logger := opts.Logger(cmd.ErrOrStderr())

	b, err := binding.Load(opts.Bindings)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load bindings", err)
	}
	if err := live.CheckTerminalBindings(b); err != nil {
		return WrapExitError(ExitCommandError, "bindings not usable in a terminal", err)
	}

	cfg, err := tick.LoadConfig()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid tick configuration", err)
	}

	screen := opts.Screen
	if screen == nil {
		screen, err = tcell.NewScreen()
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to create screen", err)
		}
	}
	if err := screen.Init(); err != nil {
		return WrapExitError(ExitCommandError, "failed to initialise screen", err)
	}
	screen.EnableMouse()

	backend := live.NewTcellBackend(live.WithHoldTimeout(opts.HoldTimeout))
	src, err := live.New(b, backend, live.WithLogger(logger))
	if err != nil {
		screen.Fini()
		return WrapExitError(ExitCommandError, "failed to create live source", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	view := newWatchView(b)
	var driver *tick.Driver
	driver, err = tick.NewDriver(src, cfg,
		tick.WithLogger(logger),
		tick.OnStep(func(q input.Query, step uint64) error {
			view.captureSimulation(q)
			return nil
		}),
		tick.OnFrame(func(q input.Query, dt time.Duration) error {
			view.draw(screen, q, driver.Frames(), driver.Steps())
			screen.Show()
			if opts.Frames > 0 && driver.Frames() >= uint64(opts.Frames) {
				cancel()
			}
			return nil
		}),
	)
	if err != nil {
		screen.Fini()
		return WrapExitError(ExitCommandError, "failed to create tick driver", err)
	}

	pumpDone := make(chan struct{})
	go func() {
		defer close(pumpDone)
		backend.Pump(ctx, screen, func(ev tcell.Event) bool {
			if key, ok := ev.(*tcell.EventKey); ok && key.Key() == tcell.KeyCtrlC {
				cancel()
				return false
			}
			return true
		})
	}()

	runErr := driver.Run(ctx)
	cancel()
	screen.Fini()
	<-pumpDone

	if runErr != nil {
		return WrapExitError(ExitFailure, "tick driver failed", runErr)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Watched %d frames, %d simulation steps\n", driver.Frames(), driver.Steps())
	return nil
}

// watchView renders one row per action and analog channel.
type watchView struct {
	actions  []string
	channels []string
	sim      map[string]string
}

func newWatchView(b *binding.Bindings) *watchView {
	channels := b.AnalogNames()
	for _, m := range b.Mice {
		channels = append(channels, m.Channels()...)
	}
	return &watchView{
		actions:  b.ActionNames(),
		channels: channels,
		sim:      make(map[string]string),
	}
}

// captureSimulation keeps the latest simulation reading of every row.
func (v *watchView) captureSimulation(q input.Query) {
	for _, a := range v.actions {
		v.sim[a] = stateLabel(q, a)
	}
	for _, c := range v.channels {
		v.sim[c] = formatAnalog(q.Analog(c))
	}
}

func (v *watchView) draw(screen tcell.Screen, q input.Query, frames, steps uint64) {
	screen.Clear()
	bold := tcell.StyleDefault.Bold(true)

	drawText(screen, 0, 0, bold, fmt.Sprintf("tickinput watch  frame %d  step %d  (Ctrl-C to quit)", frames, steps))
	drawText(screen, 0, 2, bold, fmt.Sprintf("%-16s %-14s %-14s", "NAME", "PRESENTATION", "SIMULATION"))

	row := 3
	for _, a := range v.actions {
		drawText(screen, 0, row, rowStyle(q.IsPressed(a)), fmt.Sprintf("%-16s %-14s %-14s", a, stateLabel(q, a), v.simOrDash(a)))
		row++
	}
	for _, c := range v.channels {
		value := q.Analog(c)
		drawText(screen, 0, row, rowStyle(value != 0), fmt.Sprintf("%-16s %-14s %-14s", c, formatAnalog(value), v.simOrDash(c)))
		row++
	}
}

func (v *watchView) simOrDash(name string) string {
	if s, ok := v.sim[name]; ok {
		return s
	}
	return "-"
}

// stateLabel names the digital state an action reads as.
func stateLabel(q input.Query, action string) string {
	switch {
	case q.IsJustPressed(action):
		return input.JustDown.String()
	case q.IsJustReleased(action):
		return input.JustUp.String()
	case q.IsPressed(action):
		return input.Held.String()
	default:
		return "-"
	}
}

func formatAnalog(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func rowStyle(active bool) tcell.Style {
	if active {
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	}
	return tcell.StyleDefault
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
