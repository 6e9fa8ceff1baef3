package main

import (
	"fmt"
	"os"

	"lattice-pricer/internal/cli"
	"lattice-pricer/internal/config"
	"lattice-pricer/internal/logging"
)

func main() {
	configDir := os.Getenv("PRICER_CONFIG_DIR")

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pricer: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logging)

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pricer: %v\n", err)
		os.Exit(1)
	}
}
