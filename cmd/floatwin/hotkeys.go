package main

import (
	"errors"
	"log/slog"

	"github.com/1broseidon/floatwin/internal/hotkeys"
	"github.com/1broseidon/floatwin/internal/palette"
	"github.com/1broseidon/floatwin/internal/placement"
	"github.com/1broseidon/floatwin/internal/registry"
	"github.com/1broseidon/floatwin/internal/x11"
)

// globalActions maps shortcut action ids to registry commands for a session
// without a terminal UI. The palette entry shows the actions in launcher.
func globalActions(reg *registry.Registry, launcher *palette.Launcher, reload func() error, logger *slog.Logger) map[string]func() {
	dispatch := func(cmd registry.Command) func() {
		return func() { reg.Dispatch(cmd) }
	}
	onActive := func(build func(id string) registry.Command) func() {
		return func() {
			if id := reg.ActiveID(); id != "" {
				reg.Dispatch(build(id))
			}
		}
	}
	openNew := func() error {
		reg.Dispatch(registry.OpenCmd{Spec: registry.OpenSpec{Title: "Untitled"}})
		return nil
	}

	actions := map[string]func(){
		"open-new":     func() { _ = openNew() },
		"organize":     dispatch(registry.OrganizeCmd{}),
		"minimize-all": dispatch(registry.MinimizeAllCmd{}),
		"restore-all":  dispatch(registry.RestoreAllCmd{}),
		"focus-next":   dispatch(registry.FocusNextCmd{}),
		"focus-prev":   dispatch(registry.FocusNextCmd{Reverse: true}),
		"focus-left":   dispatch(registry.FocusDirCmd{Dir: placement.DirLeft}),
		"focus-right":  dispatch(registry.FocusDirCmd{Dir: placement.DirRight}),
		"focus-up":     dispatch(registry.FocusDirCmd{Dir: placement.DirUp}),
		"focus-down":   dispatch(registry.FocusDirCmd{Dir: placement.DirDown}),
		"close":        onActive(func(id string) registry.Command { return registry.CloseCmd{ID: id} }),
		"maximize":     onActive(func(id string) registry.Command { return registry.MaximizeCmd{ID: id} }),
		"minimize":     onActive(func(id string) registry.Command { return registry.MinimizeCmd{ID: id} }),
		"reload": func() {
			if err := reload(); err != nil {
				logger.Warn("config reload failed", "error", err)
			}
		},
	}
	if launcher == nil {
		return actions
	}

	confirm := launcher.Confirmer()
	actions["close-all"] = func() {
		reg.Dispatch(registry.CloseAllCmd{Confirm: confirm})
	}
	actions["palette"] = func() {
		entries := palette.DefaultActions(reg, openNew, reload)
		err := launcher.Show("floatwin", entries, confirm)
		if err != nil && !errors.Is(err, palette.ErrCancelled) {
			logger.Warn("palette action failed", "error", err)
		}
	}
	return actions
}

type hotkeyOptions struct {
	ConfigPath string
	Launcher   string
	Display    string // empty uses $DISPLAY
}

// startGlobalHotkeys grabs the configured chords on the X root window and
// runs the X event loop in the background. The returned func releases it.
func startGlobalHotkeys(reg *registry.Registry, opts hotkeyOptions, logger *slog.Logger) (func(), error) {
	conn, err := x11.Dial(opts.Display)
	if err != nil {
		return nil, err
	}

	cfg := reg.Config()
	table, err := hotkeys.FromConfig(cfg.Hotkeys, logger)
	if err != nil {
		logger.Warn("some hotkeys were skipped", "error", err)
	}

	launcher, err := palette.NewLauncher(opts.Launcher, cfg.PaletteFuzzyMatching)
	if err != nil {
		logger.Warn("palette hotkey disabled", "error", err)
		launcher = nil
	}

	reload := func() error {
		res, err := loadConfig(opts.ConfigPath)
		if err != nil {
			return err
		}
		reg.SetConfig(res.Config)
		logger.Info("configuration reloaded")
		return nil
	}

	actions := globalActions(reg, launcher, reload, logger)
	grabbed := hotkeys.NewGrabber(conn.KeyUtil(), logger).GrabTable(table, func(action string) {
		fn, ok := actions[action]
		if !ok {
			logger.Debug("hotkey has no global action", "action", action)
			return
		}
		logger.Debug("global hotkey", "action", action)
		fn()
	})
	logger.Info("global hotkeys active", "display", conn.Display(), "grabbed", grabbed)

	go conn.Run()

	return conn.Shutdown, nil
}
