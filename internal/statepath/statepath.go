// Package statepath resolves where floatwin keeps per-user state such as logs.
package statepath

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "floatwin"

// LogFile returns the default log file path under the XDG state directory
// ($XDG_STATE_HOME/floatwin, normally ~/.local/state/floatwin). Parent
// directories are created.
func LogFile() (string, error) {
	path, err := xdg.StateFile(filepath.Join(appName, appName+".log"))
	if err != nil {
		return "", fmt.Errorf("failed to resolve state dir: %w", err)
	}
	return path, nil
}
