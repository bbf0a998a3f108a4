package main

import (
	"fmt"
	"os"

	"flash-asr/cmd/a2t/cmd"
	"flash-asr/internal/config"
)

func main() {
	// Load .env before flags are parsed so credentials can come from either place
	if _, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	cmd.Execute()
}
