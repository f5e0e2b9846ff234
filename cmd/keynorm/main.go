package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/andresousadotpt/keynorm"
	keynormlog "github.com/andresousadotpt/keynorm/internal/log"
)

var version = "0.1.0"

func configDir() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "keynorm")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "keynorm")
}

// muteSet is the hot-reloadable set of keys the handler swallows.
type muteSet struct {
	mu sync.RWMutex
	m  map[keynorm.Code]bool
}

func (s *muteSet) set(m map[keynorm.Code]bool) {
	s.mu.Lock()
	s.m = m
	s.mu.Unlock()
}

func (s *muteSet) has(c keynorm.Code) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m[c]
}

func run() error {
	dir := configDir()

	cfg, err := LoadConfig(dir)
	if err != nil {
		return err
	}

	logger := keynormlog.New(nil, keynormlog.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	layout, err := cfg.ResolveLayout(dir)
	if err != nil {
		return err
	}

	mutes := &muteSet{}
	m, err := cfg.MuteSet()
	if err != nil {
		return err
	}
	mutes.set(m)

	keyboards, err := keynorm.FindKeyboards()
	if err != nil {
		return fmt.Errorf("find keyboards: %w", err)
	}
	if len(keyboards) == 0 {
		return fmt.Errorf("no keyboard devices found\nMake sure you are in the 'input' group:\n  sudo usermod -aG input $USER\nThen log out and back in")
	}

	src := keynorm.NewEvdevSource(keyboards, layout)
	src.SetLogger(logger)

	handler := func(ev keynorm.Event) bool {
		logger.Info("key",
			"name", keynorm.Names[ev.Key],
			"chr", ev.Chr,
			"ctrl", ev.Ctrl,
			"alt", ev.Alt,
			"shift", ev.Shift)
		return mutes.has(ev.Key)
	}

	tr := keynorm.New(handler)
	tr.SetLogger(logger)
	tr.Attach(src)

	var fwd *keynorm.Forwarder
	if cfg.Forward {
		fwd, err = keynorm.NewForwarder("keynorm")
		if err != nil {
			return err
		}
		defer fwd.Close()
		fwd.SetLogger(logger)
		src.SetForwarder(fwd)
	}
	if cfg.Grab {
		if err := src.Grab(); err != nil {
			return err
		}
	}

	// Hot reload: layout and mute list follow config edits. Forwarding
	// and grab changes need a restart.
	watcher, err := watchConfig(dir, logger, func() {
		newCfg, err := LoadConfig(dir)
		if err != nil {
			logger.Warn("reload config", "error", err)
			return
		}
		newLayout, err := newCfg.ResolveLayout(dir)
		if err != nil {
			logger.Warn("reload layout", "error", err)
			return
		}
		newMutes, err := newCfg.MuteSet()
		if err != nil {
			logger.Warn("reload mute_keys", "error", err)
			return
		}
		src.SetLayout(newLayout)
		mutes.set(newMutes)
		logger.Info("config reloaded", "layout", newLayout.Name(), "muted", len(newMutes))
	})
	if err != nil {
		logger.Warn("config watching disabled", "error", err)
	} else {
		defer watcher.Close()
	}

	logger.Info("monitoring keyboards",
		"devices", len(keyboards),
		"layout", layout.Name(),
		"forward", cfg.Forward,
		"grab", cfg.Grab)
	for _, kb := range keyboards {
		name, _ := kb.Name()
		logger.Info("device", "name", name)
	}

	// Clean shutdown on SIGINT/SIGTERM: closing the devices unblocks Run.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutting down")
		src.Close()
	}()

	src.Run()
	return nil
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "init":
			dir := configDir()
			fmt.Printf("keynorm: initializing config in %s\n", dir)
			if err := initConfig(dir); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("keynorm: config initialized")
			return
		case "migrate":
			if err := migrateConfig(configDir()); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			return
		case "version":
			fmt.Printf("keynorm %s\n", version)
			return
		default:
			fmt.Fprintf(os.Stderr, "usage: keynorm [init|migrate|version]\n")
			os.Exit(1)
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "keynorm: %v\n", err)
		os.Exit(1)
	}
}
