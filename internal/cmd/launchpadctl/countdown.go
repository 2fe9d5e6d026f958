package launchpadctl

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/beztern/launchpad/internal/countdown"
)

func newCountdownCommand(deps Dependencies) *cobra.Command {
	var (
		target   string
		interval time.Duration
		align    bool
		once     bool
	)
	cmd := &cobra.Command{
		Use:   "countdown",
		Short: "Print the time remaining until launch",
		Long:  "Runs a countdown engine in the terminal, printing every tick until the target is reached.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			when, err := countdown.ParseTarget(target)
			if err != nil {
				return fmt.Errorf("parse target: %w", err)
			}
			return runCountdown(cmd, deps, countdown.Config{
				Target:        when,
				TickInterval:  interval,
				AlignToSecond: align,
			}, once)
		},
	}
	cmd.Flags().StringVar(&target, "target", deps.envOr(envTarget, ""), "Launch instant (RFC 3339)")
	cmd.Flags().DurationVar(&interval, "interval", countdown.DefaultTickInterval, "Tick interval")
	cmd.Flags().BoolVar(&align, "align-to-second", false, "Tick on whole remaining seconds")
	cmd.Flags().BoolVar(&once, "once", false, "Print a single snapshot and exit")
	return cmd
}

func runCountdown(cmd *cobra.Command, deps Dependencies, cfg countdown.Config, once bool) error {
	out := &lockedWriter{w: cmd.OutOrStdout()}
	done := make(chan struct{})
	var doneOnce sync.Once

	cfg.Clock = deps.Clock
	cfg.Scheduler = deps.Scheduler
	cfg.Logger = deps.Logger
	if !once {
		cfg.OnTick = func(s countdown.Snapshot) { out.println(formatSnapshot(s)) }
		cfg.OnMilestone = func(m countdown.Milestone, _ countdown.Snapshot) {
			out.println("milestone: " + m.Label)
		}
		cfg.OnComplete = func(s countdown.Snapshot) {
			out.println(formatSnapshot(s))
			doneOnce.Do(func() { close(done) })
		}
	}
	engine, err := countdown.New(cfg)
	if err != nil {
		return err
	}
	defer engine.Stop()

	if once {
		out.println(formatSnapshot(engine.Tick()))
		return nil
	}
	if err := engine.Start(); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-cmd.Context().Done():
		return cmd.Context().Err()
	}
}

// formatSnapshot renders a snapshot as one terminal line.
func formatSnapshot(s countdown.Snapshot) string {
	if s.Complete() {
		return "complete"
	}
	r := s.Remaining
	line := fmt.Sprintf("%dd %02d:%02d:%02d.%02d", r.Days, r.Hours, r.Minutes, r.Seconds, r.Centiseconds())
	if s.Urgency != countdown.UrgencyNone && s.Urgency != "" {
		line += " [" + string(s.Urgency) + "]"
	}
	return line
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) println(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintln(l.w, line)
}
