// Copyright 2026 The Shipboard Authors
// SPDX-License-Identifier: Apache-2.0

// shipboard-server hosts the Shipboard terminal application over SSH.
//
// Each connecting client authenticates (placeholder accept-all
// policy), opens one session channel, negotiates a virtual terminal,
// and gets the hosted application rendered into its terminal. Connect
// with a stock ssh client or with shipboard-attach.
//
// Usage:
//
//	shipboard-server [--config shipboard.yaml] [--listen :2222]
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/shipboard-dev/shipboard/lib/config"
	"github.com/shipboard-dev/shipboard/lib/ui"
	"github.com/shipboard-dev/shipboard/lib/version"
	"github.com/shipboard-dev/shipboard/sshd"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var listenAddr string

	flagSet := pflag.NewFlagSet("shipboard-server", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to shipboard.yaml (default: $SHIPBOARD_CONFIG)")
	flagSet.StringVar(&listenAddr, "listen", "", "override server.listen_addr from the config")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing to match other Shipboard
	// binaries.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("shipboard-server")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.Server.ListenAddr = listenAddr
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}

	hostKey, err := sshd.LoadOrCreateHostKey(cfg.Server.HostKeyPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &sshd.Server{
		ListenAddr: cfg.Server.ListenAddr,
		HostKey:    hostKey,
		Logger:     logger,
		NewApp: func() ui.App {
			return ui.NewStatusApp(cfg.Server.AppTitle, ui.DefaultTheme)
		},
	}
	if err := server.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	logger.Info("shutting down")
	server.Stop()
	return nil
}

// loadConfig resolves the configuration: explicit --config path,
// then SHIPBOARD_CONFIG, then built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	if os.Getenv("SHIPBOARD_CONFIG") != "" {
		return config.Load()
	}
	return config.Default(), nil
}

func newLogger(cfg config.LogConfig) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}

	options := &slog.HandlerOptions{Level: level}
	switch cfg.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, options)), nil
	default:
		return slog.New(slog.NewTextHandler(os.Stderr, options)), nil
	}
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Print(`shipboard-server - Host a terminal application over SSH

USAGE
    shipboard-server [flags]

FLAGS
`)
	fmt.Print(flagSet.FlagUsages())
	fmt.Print(`
Configuration is read from --config, or from the file named by
SHIPBOARD_CONFIG, or built-in defaults (127.0.0.1:2222).
`)
}
