package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"Passman/internal/cli/bootstrap"
	"Passman/internal/cli/commands"
	"Passman/internal/cli/i18n"
	"Passman/internal/config"
	"Passman/internal/logger"
	"Passman/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load unified config (env + flags)
	cfg := config.NewConfig()

	if cfg.Version {
		printVersion()
		return 0
	}

	sugar, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "passman: %v\n", err)
		return 1
	}
	//сброс буфера логгера
	defer func() { _ = sugar.Sync() }()

	// Повреждённое хранилище не заменяем пустым: выходим, файл остаётся как есть.
	store, err := bootstrap.OpenStore(cfg)
	if err != nil {
		sugar.Errorw("failed to open store", "path", cfg.StorePath, "driver", cfg.Driver, "error", err)
		fmt.Fprintf(os.Stderr, "passman: cannot open %s: %v\n", cfg.StorePath, err)
		return 1
	}
	sugar.Infow("store loaded", "path", cfg.StorePath, "driver", cfg.Driver, "users", store.Len())

	tr, err := i18n.New(cfg.Lang)
	if err != nil {
		sugar.Errorw("failed to load messages", "error", err)
		return 1
	}

	session := service.NewSession(store, cfg.StorePath, sugar)
	opts := []commands.Option{commands.WithLogger(sugar)}
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		opts = append(opts, commands.WithTerminal(fd))
	}
	shell := commands.NewShell(session, tr, os.Stdin, os.Stdout, opts...)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// dispatcher
	exitCode := commands.Dispatch(ctx, shell, flag.Args())

	// Финальное сохранение выполняется и после сигнала.
	if err := session.Shutdown(); err != nil {
		fmt.Fprintf(os.Stderr, "passman: final save failed: %v\n", err)
		return 1
	}
	return exitCode
}

func printVersion() {
	fmt.Printf("PASSMAN - PASSword MANager\nVersion: %s\nBuild date: %s\n", version, buildDate)
}
