package main

import (
	"log/slog"
	"os"

	"github.com/ppiankov/tenantspectre/internal/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := commands.Execute(version, commit, date); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
