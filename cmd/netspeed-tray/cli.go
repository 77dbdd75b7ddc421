package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/shini4i/netspeed-tray/internal/logging"
	"github.com/shini4i/netspeed-tray/internal/netmon"
	"github.com/shini4i/netspeed-tray/internal/ui"
)

// newCliApp builds the command-line interface.
func newCliApp() *cli.App {
	return &cli.App{
		Name:    "netspeed-tray",
		Version: ui.Version,
		Usage:   "show live network throughput in the system tray",
		Flags:   cliFlags(),
		Action:  run,
	}
}

func cliFlags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:    "interval",
			Aliases: []string{"n"},
			Usage:   "sampling interval (e.g. 1s, 500ms); overrides the config file",
		},
		&cli.StringFlag{
			Name:    "interface",
			Aliases: []string{"i"},
			Usage:   "monitor this interface instead of the first active one",
		},
		&cli.BoolFlag{
			Name:    "console",
			Aliases: []string{"c"},
			Usage:   "print rates to stderr instead of starting the tray",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging",
		},
	}
}

func run(c *cli.Context) error {
	if c.Bool("debug") {
		logging.Setup(logging.LevelDebug)
	}

	if c.Bool("console") {
		return runConsole(c.Duration("interval"), c.String("interface"))
	}

	app, err := ui.NewApp(&ui.AppConfig{
		PollInterval:       c.Duration("interval"),
		PreferredInterface: c.String("interface"),
	})
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}

	// GTK parses its own arguments; ours are already consumed.
	if code := app.Run([]string{c.App.Name}); code > 0 {
		return cli.Exit("", code)
	}
	return nil
}

// runConsole runs the monitor without GTK or a tray, printing one status
// line per tick until interrupted.
func runConsole(interval time.Duration, preferred string) error {
	monitor := netmon.NewMonitor(netmon.Options{
		PollInterval:       interval,
		PreferredInterface: preferred,
	})

	sink := ui.NewConsoleSink(os.Stderr)
	monitor.OnStatus(sink.Consume)

	if err := monitor.Start(); err != nil {
		return fmt.Errorf("start monitoring: %w", err)
	}
	defer monitor.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}
