package tui

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/1broseidon/floatwin/internal/config"
	"github.com/1broseidon/floatwin/internal/registry"
)

// openForm collects the fields for a new window.
type openForm struct {
	form *huh.Form

	title string
	size  string
	kind  string
}

func newOpenForm(cfg *config.Config, width int) *openForm {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	f := &openForm{}

	sizes := []huh.Option[string]{huh.NewOption("default", "")}
	for _, name := range cfg.PresetNames() {
		sizes = append(sizes, huh.NewOption(name, name))
	}

	w := width / 2
	if w < 40 {
		w = 40
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Value(&f.title),
			huh.NewSelect[string]().
				Key("size").
				Title("Size").
				Options(sizes...).
				Value(&f.size),
			huh.NewInput().
				Key("kind").
				Title("Kind").
				Description("Optional type used when grouping into stacks").
				Value(&f.kind),
		),
	).WithWidth(w).WithShowHelp(true)
	return f
}

func (f *openForm) spec() registry.OpenSpec {
	title := strings.TrimSpace(f.title)
	if title == "" {
		title = "Untitled"
	}
	return registry.OpenSpec{
		Title: title,
		Size:  f.size,
		Kind:  strings.TrimSpace(f.kind),
	}
}
