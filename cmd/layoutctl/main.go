// Command layoutctl renders layout templates against property files.
package main

import (
	"log/slog"
	"os"

	"github.com/byte4ever/layout_designer/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}
