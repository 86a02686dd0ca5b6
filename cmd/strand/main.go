// Package main is the entry point for the strand editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/strandedit/strand/internal/config"
	"github.com/strandedit/strand/internal/editor"
	"github.com/strandedit/strand/internal/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  = flag.String("config", "", "path to configuration file")
		logPath     = flag.String("log", "", "path to log file (overrides config)")
		readOnly    = flag.Bool("readonly", false, "open the file read-only")
		showVersion = flag.Bool("version", false, "show version information")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: strand [options] [file]\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("strand %s (%s)\n", version, commit)
		return 0
	}

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *logPath != "" {
		cfg.Log.Path = *logPath
	}

	log, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening log: %v\n", err)
		return 1
	}
	defer log.Sync()

	screen, err := term.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: creating terminal: %v\n", err)
		return 1
	}

	ed, err := editor.New(screen, editor.Options{
		Path:     flag.Arg(0),
		ReadOnly: *readOnly,
		Config:   cfg,
		Log:      log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Live-reload the configuration file.
	watcher, err := config.Watch(cfgPath, ed.SetConfig,
		config.WithErrorFunc(func(e error) {
			log.Warn("config reload failed", zap.Error(e))
		}))
	if err != nil {
		log.Warn("config watch unavailable", zap.Error(err))
	} else {
		defer watcher.Close()
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		ed.Quit()
	}()

	if err := ed.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// newLogger builds the zap logger. With no log path everything is
// discarded; writing to stderr would fight the terminal UI.
func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	if cfg.Path == "" {
		return zap.NewNop(), nil
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{cfg.Path}
	zcfg.ErrorOutputPaths = []string{cfg.Path}
	return zcfg.Build()
}
