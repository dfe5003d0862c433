package statepath

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
)

func TestLogFile_UsesXDGStateHome(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_STATE_HOME", td)
	xdg.Reload()

	got, err := LogFile()
	if err != nil {
		t.Fatalf("LogFile() error: %v", err)
	}
	if want := filepath.Join(td, "floatwin", "floatwin.log"); got != want {
		t.Fatalf("LogFile() = %q, want %q", got, want)
	}
	if info, err := os.Stat(filepath.Dir(got)); err != nil || !info.IsDir() {
		t.Fatalf("state dir not created: %v", err)
	}
}

func TestLogFile_FallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", home)
	xdg.Reload()

	got, err := LogFile()
	if err != nil {
		t.Fatalf("LogFile() error: %v", err)
	}
	if want := filepath.Join(home, ".local", "state", "floatwin", "floatwin.log"); got != want {
		t.Fatalf("LogFile() = %q, want %q", got, want)
	}
}
