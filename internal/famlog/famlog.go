// Package famlog sets up the colored, leveled logger shared by the CLI
// and the internal packages, following the same backend wiring the
// teacher's unikmer CLI uses.
package famlog

import (
	"io"
	"os"
	"runtime"

	colorable "github.com/mattn/go-colorable"
	logging "github.com/shenwei356/go-logging"
)

// Log is the package-wide logger used throughout famdb.
var Log = logging.MustGetLogger("famdb")

var format = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{color}[%{level:.4s}]%{color:reset} %{message}`,
)

func init() {
	var stderr io.Writer = os.Stderr
	if runtime.GOOS == "windows" {
		stderr = colorable.NewColorableStderr()
	}
	backend := logging.NewLogBackend(stderr, "", 0)
	backendFormatter := logging.NewBackendFormatter(backend, format)
	logging.SetBackend(backendFormatter)
}

// Level names accepted by -l/--log-level.
const (
	LevelDebug   = "debug"
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// SetLevel configures the minimum level that reaches stderr.
func SetLevel(name string) error {
	lvl, err := logging.LogLevel(name)
	if err != nil {
		return err
	}
	logging.SetLevel(lvl, "famdb")
	return nil
}
