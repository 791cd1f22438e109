package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"turtle/internal/config"
	"turtle/internal/logger"
	"turtle/internal/runner"
	"turtle/pkg/color"
)

// Main entry point for the turtle interpreter.
func main() {
	cfg, err := config.Parse(os.Args[1:], os.Getenv)
	if errors.Is(err, flag.ErrHelp) {
		config.PrintUsage(os.Stdout, os.Args[0])
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, color.Error(err.Error()))
		config.PrintUsage(os.Stderr, os.Args[0])
		os.Exit(2)
	}

	logger.Init(cfg.Verbose, cfg.NoColor)
	if cfg.Help {
		config.PrintUsage(os.Stdout, os.Args[0])
		return
	}

	if cfg.NoColor {
		color.EnableColor(false)
	}

	if cfg.ConfigFile != "" {
		log.Debug("Loaded configuration", "file", cfg.ConfigFile)
	}

	if cfg.SourceFile == "" {
		log.Fatal("No input file provided", "help", fmt.Sprintf("%s -h", os.Args[0]))
	}

	if err := runner.New(cfg, os.Stdout).Run(); err != nil {
		log.Fatal("Execution failed", "error", err)
	}
}
