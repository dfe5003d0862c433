package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/floatwin/internal/devicemode"
	"github.com/1broseidon/floatwin/internal/registry"
	"github.com/1broseidon/floatwin/internal/tui"
)

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/floatwin/config.yaml)")
	device := fs.String("device", "", "Force a device class: desktop, tablet or mobile")

	if isHelpArg(args) {
		fmt.Fprintln(os.Stderr, "Usage: floatwin tui [--device desktop|tablet|mobile] [--config PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Interactive terminal desktop. Narrow terminals switch to the carousel.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings (defaults, see 'floatwin config print'):")
		fmt.Fprintln(os.Stderr, "  Ctrl+K     Command palette")
		fmt.Fprintln(os.Stderr, "  Ctrl+N     Open a new window")
		fmt.Fprintln(os.Stderr, "  Ctrl+O     Organize windows")
		fmt.Fprintln(os.Stderr, "  Ctrl+W     Close the active window")
		fmt.Fprintln(os.Stderr, "  Ctrl+Up    Maximize / restore")
		fmt.Fprintln(os.Stderr, "  Ctrl+Down  Minimize")
		fmt.Fprintln(os.Stderr, "  Alt+] [    Focus next / previous")
		fmt.Fprintln(os.Stderr, "  Ctrl+R     Reload configuration")
		fmt.Fprintln(os.Stderr, "  q, Ctrl+C  Quit")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Carousel: Left/Right switch windows, f toggles fullscreen, Esc closes.")
		return 0
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *device != "" && *device != "auto" {
		if _, ok := devicemode.ParseClass(*device); !ok {
			fmt.Fprintf(os.Stderr, "invalid --device %q (expected desktop, tablet or mobile)\n", *device)
			return 2
		}
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config
	if *device == "" && cfg.Device != "" {
		*device = string(cfg.Device)
	}

	logCfg := *cfg
	if logCfg.LogFile == "" {
		logCfg.LogFile = defaultLogFile()
	}
	logger, closer, err := newLogger(&logCfg, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		return 1
	}
	defer closer.Close()

	reg := registry.New(cfg, registry.WithLogger(logger))
	if err := tui.Run(reg, tui.Options{
		Config:     cfg,
		ConfigPath: *path,
		Device:     *device,
		Logger:     logger,
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
