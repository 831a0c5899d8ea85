package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tabtodo/internal/logging"
	"github.com/sandeepkv93/tabtodo/internal/scheduler"
	"github.com/sandeepkv93/tabtodo/internal/storage"
	"github.com/sandeepkv93/tabtodo/internal/update"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "tabtodo failed: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	logger, logCloser, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	kv, kvCloser, backend, err := storage.OpenKV(cfg.DBPath, cfg.Memory)
	if err != nil {
		logger.Error("open storage", "path", cfg.DBPath, "err", err)
		return err
	}
	defer kvCloser.Close()
	logger.Info("storage ready", "backend", backend, "path", cfg.DBPath, "key", cfg.StorageKey)

	var engine *scheduler.Engine
	if cfg.DueNotices {
		engine = scheduler.NewEngine(cfg.DueBuffer)
		engine.Start()
		defer func() {
			engine.Stop()
			if n := engine.Dropped(); n > 0 {
				logger.Warn("dropped due notices", "count", n)
			}
		}()
	}

	store := storage.NewTaskStore(kv, cfg.StorageKey)
	program := tea.NewProgram(update.NewModelWithConfig(store, engine, logger, cfg))
	if _, err := program.Run(); err != nil {
		logger.Error("program exited", "err", err)
		return err
	}
	return nil
}

// loadConfig layers defaults, the config file, TABTODO_* env and flags, each
// overriding the one before.
func loadConfig(args []string) (update.RuntimeConfig, error) {
	fs := flag.NewFlagSet("tabtodo", flag.ContinueOnError)
	configPath := fs.String("config", "", "TOML or YAML config file")
	dbPath := fs.String("db", "", "database path (.json for a plain file)")
	memory := fs.Bool("memory", false, "keep tasks in memory only")
	logFile := fs.String("log", "", "log file path")
	if err := fs.Parse(args); err != nil {
		return update.RuntimeConfig{}, err
	}

	cfg := update.DefaultRuntimeConfig()
	if *configPath != "" {
		loaded, err := update.LoadRuntimeConfigFile(*configPath, cfg)
		if err != nil {
			return update.RuntimeConfig{}, err
		}
		cfg = loaded
	}
	cfg = update.RuntimeConfigFromEnv(cfg)

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "db":
			cfg.DBPath = *dbPath
		case "memory":
			cfg.Memory = *memory
		case "log":
			cfg.LogFile = *logFile
		}
	})
	return cfg, nil
}
