package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/1broseidon/floatwin/internal/config"
	"github.com/1broseidon/floatwin/internal/platform"
	"github.com/1broseidon/floatwin/internal/registry"
)

var demoTitles = []string{"Inbox", "Notes", "Calendar", "Terminal", "Music", "Files", "Chat", "Browser"}

func runDemo(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/floatwin/config.yaml)")
	count := fs.Int("windows", 5, "Number of windows to open")
	organize := fs.Bool("organize", false, "Organize the windows into a grid afterwards")
	device := fs.String("device", "", "Force a device class: desktop, tablet or mobile")
	width := fs.Int("width", 0, "Viewport width in px (default: detected)")
	height := fs.Int("height", 0, "Viewport height in px (default: detected)")

	if isHelpArg(args) {
		fmt.Fprintln(os.Stderr, "Usage: floatwin demo [--windows N] [--organize] [--device CLASS] [--width W --height H]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open sample windows in a headless engine and print where they landed.")
		return 0
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *count < 0 {
		fmt.Fprintln(os.Stderr, "--windows must be >= 0")
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger, closer, err := newLogger(res.Config, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closer.Close()

	provider := platform.Detect(*device, logger)
	viewport := provider.Viewport()
	if *width > 0 && *height > 0 {
		viewport.Width, viewport.Height = *width, *height
	}

	reg := registry.New(res.Config, registry.WithLogger(logger), registry.WithViewport(viewport))
	openDemoWindows(reg, res.Config, *count)
	if *organize {
		reg.Dispatch(registry.OrganizeCmd{})
	}

	fmt.Fprintf(stdout, "provider: %s (%s), viewport %dx%d\n", provider.Name(), provider.Class(), viewport.Width, viewport.Height)
	printLayout(stdout, reg)
	return 0
}

// openDemoWindows opens n windows cycling through the size presets.
func openDemoWindows(reg *registry.Registry, cfg *config.Config, n int) {
	presets := cfg.PresetNames()
	// "full" would cover everything else.
	presets = presets[:len(presets)-1]
	for i := 0; i < n; i++ {
		title := demoTitles[i%len(demoTitles)]
		if i >= len(demoTitles) {
			title = fmt.Sprintf("%s %d", title, i/len(demoTitles)+1)
		}
		spec := registry.OpenSpec{Title: title}
		if len(presets) > 0 {
			spec.Size = presets[i%len(presets)]
		}
		reg.Dispatch(registry.OpenCmd{Spec: spec})
	}
}

func printLayout(w io.Writer, reg *registry.Registry) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tX\tY\tWIDTH\tHEIGHT\tZ")
	for _, win := range reg.Windows() {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\n",
			win.Title, win.Position.X, win.Position.Y, win.Dimensions.Width, win.Dimensions.Height, win.ZIndex)
	}
	tw.Flush()
}
