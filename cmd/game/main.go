// Command crumble runs the destructible-cloud platformer.
//
// Without a subcommand it opens the game window. The replay and check
// subcommands run headless and print to stdout.
package main

import (
	"embed"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

//go:embed configs
var configFS embed.FS

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogger installs the process-wide logger
func setupLogger(w io.Writer, debug bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "crumble",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	log.SetDefault(logger)
	return logger
}
