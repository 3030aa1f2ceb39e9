package main

import (
	"log/slog"
	"os"

	"github.com/dasdy/keyview/cmd/keyview"
	"github.com/dasdy/keyview/logging"
)

func main() {
	if err := logging.Setup(os.Stderr, "info"); err != nil {
		slog.Error("Could not set up logging", "error", err)
	}

	keyview.Execute()
}
