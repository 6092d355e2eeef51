package cli

import (
	"time"

	"github.com/spf13/cobra"

	kernel "github.com/opkernel/miniker"
	"github.com/opkernel/miniker/internal/config"
	"github.com/opkernel/miniker/internal/host"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Boot the kernel against this real terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if configPath != "" {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}

		term, err := host.New(kernel.W, kernel.H)
		if err != nil {
			return err
		}
		defer term.Close()

		display := kernel.NewDisplay(term, term)
		display.HUDSetEnabled(cfg.HUDEnabled)
		keyboard := kernel.NewKeyboard(term)
		_, sched := kernel.Boot(display, term, keyboard, cfg.Banner)
		sched.OnTick = term.Render

		tick := cfg.TickInterval()
		for sched.Step() {
			if tick > 0 {
				time.Sleep(tick)
			}
		}
		return nil
	},
}
