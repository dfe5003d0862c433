package hotkeys

import (
	"fmt"
	"strings"
)

// Chord is a key plus modifier set.
type Chord struct {
	Key   string
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool
}

var modifierAliases = map[string]string{
	"ctrl":    "ctrl",
	"control": "ctrl",
	"c":       "ctrl",
	"alt":     "alt",
	"mod1":    "alt",
	"option":  "alt",
	"shift":   "shift",
	"meta":    "meta",
	"super":   "meta",
	"cmd":     "meta",
	"mod4":    "meta",
}

var keyAliases = map[string]string{
	"return":       "enter",
	"esc":          "esc",
	"escape":       "esc",
	"del":          "delete",
	"pgup":         "pgup",
	"prior":        "pgup",
	"pgdown":       "pgdown",
	"next":         "pgdown",
	"space":        " ",
	"spacebar":     " ",
	"arrowup":      "up",
	"arrowdown":    "down",
	"arrowleft":    "left",
	"arrowright":   "right",
	"bracketleft":  "[",
	"bracketright": "]",
}

// ParseChord parses "ctrl+shift+o" style chords as well as the X11 style
// "Mod4-Mod1-t". Modifier names are case-insensitive; the last segment is the
// key.
func ParseChord(s string) (Chord, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Chord{}, fmt.Errorf("empty chord")
	}

	parts := splitChord(s)
	if len(parts) == 0 {
		return Chord{}, fmt.Errorf("invalid chord %q", s)
	}

	var c Chord
	for _, part := range parts[:len(parts)-1] {
		mod, ok := modifierAliases[strings.ToLower(part)]
		if !ok {
			return Chord{}, fmt.Errorf("unknown modifier %q in chord %q", part, s)
		}
		switch mod {
		case "ctrl":
			c.Ctrl = true
		case "alt":
			c.Alt = true
		case "shift":
			c.Shift = true
		case "meta":
			c.Meta = true
		}
	}

	key := parts[len(parts)-1]
	if key == "" {
		return Chord{}, fmt.Errorf("chord %q has no key", s)
	}
	lower := strings.ToLower(key)
	if alias, ok := keyAliases[lower]; ok {
		key = alias
	} else if len([]rune(key)) > 1 {
		key = lower
	}
	if len([]rune(key)) == 1 && key != strings.ToLower(key) {
		// "ctrl+O" means the same as "ctrl+shift+o".
		key = strings.ToLower(key)
		c.Shift = true
	}
	c.Key = key
	return c, nil
}

// splitChord splits on '+' or '-' separators while allowing the key itself to
// be one of those characters ("ctrl++", "alt+-").
func splitChord(s string) []string {
	sep := "+"
	if !strings.Contains(s, "+") {
		sep = "-"
	}
	if s == sep {
		return []string{s}
	}
	trailing := strings.HasSuffix(s, sep+sep)
	if trailing {
		s = strings.TrimSuffix(s, sep)
	}
	parts := strings.Split(s, sep)
	if trailing {
		parts[len(parts)-1] = sep
	}
	for i := range parts {
		if parts[i] != " " {
			parts[i] = strings.TrimSpace(parts[i])
		}
	}
	return parts
}

// String renders the chord in the same form terminal key events use:
// "ctrl+shift+o", "alt+]".
func (c Chord) String() string {
	var b strings.Builder
	if c.Ctrl {
		b.WriteString("ctrl+")
	}
	if c.Alt {
		b.WriteString("alt+")
	}
	if c.Shift {
		b.WriteString("shift+")
	}
	if c.Meta {
		b.WriteString("meta+")
	}
	if c.Key == " " {
		b.WriteString("space")
	} else {
		b.WriteString(c.Key)
	}
	return b.String()
}

// XSequence renders the chord for xgbutil's keybind parser.
func (c Chord) XSequence() string {
	var mods []string
	if c.Ctrl {
		mods = append(mods, "Control")
	}
	if c.Alt {
		mods = append(mods, "Mod1")
	}
	if c.Shift {
		mods = append(mods, "Shift")
	}
	if c.Meta {
		mods = append(mods, "Mod4")
	}
	mods = append(mods, xKeysym(c.Key))
	return strings.Join(mods, "-")
}

func xKeysym(key string) string {
	switch key {
	case "up":
		return "Up"
	case "down":
		return "Down"
	case "left":
		return "Left"
	case "right":
		return "Right"
	case "enter":
		return "Return"
	case "esc":
		return "Escape"
	case "tab":
		return "Tab"
	case "delete":
		return "Delete"
	case "pgup":
		return "Prior"
	case "pgdown":
		return "Next"
	case " ":
		return "space"
	case "[":
		return "bracketleft"
	case "]":
		return "bracketright"
	case "-":
		return "minus"
	case "+":
		return "plus"
	}
	return key
}
