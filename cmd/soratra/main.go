package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"soratra/internal/client"
	"soratra/internal/config"
	"soratra/internal/eventbus"
	"soratra/internal/ui"
)

func main() {
	// Parse command line arguments
	var (
		configPath  string
		serverURL   string
		debounceMS  int
		logPath     string
		writeConfig bool
	)
	flag.StringVarP(&configPath, "config", "c", "", "Config file (default "+filepath.Join(config.Dir(), "config.toml")+")")
	flag.StringVarP(&serverURL, "server", "s", "", "Base URL of the checking backend")
	flag.IntVar(&debounceMS, "debounce", 0, "Quiet period in milliseconds before text is checked")
	flag.StringVar(&logPath, "log", "", "Log file (default "+filepath.Join(config.Dir(), "soratra.log")+")")
	flag.BoolVar(&writeConfig, "write-config", false, "Write the effective config file and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: soratra [flags] [file]\n\nflags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	// Set up logging
	if logPath == "" {
		logPath = filepath.Join(config.Dir(), "soratra.log")
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Could not create log directory: %v", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()
	logEvents(bus)

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(bus, configPath)
	cfg, err := configSvc.Load()
	if err != nil {
		bus.Publish(eventbus.ErrorEvent{Message: "config load failed", Err: err})
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		cfg = config.DefaultConfig()
	}
	if serverURL != "" {
		cfg.Server.BaseURL = serverURL
	}
	if debounceMS > 0 {
		cfg.Analysis.DebounceMS = debounceMS
	}
	for _, warning := range config.Validate(cfg) {
		log.Printf("Config warning: %s", warning)
	}

	if writeConfig {
		if err := configSvc.Save(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", configSvc.Path())
		return
	}

	// The file is only read; the editor never writes it back
	var initialText string
	if flag.NArg() > 0 {
		data, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", flag.Arg(0), err)
			os.Exit(1)
		}
		initialText = string(data)
	}

	backend := client.New(cfg.Server.BaseURL,
		client.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout()}),
		client.WithCache(cfg.CacheTTL(), cfg.Analysis.CacheCapacity),
	)
	defer backend.Close()
	log.Printf("Using backend %s (session %s)", cfg.Server.BaseURL, backend.Session())

	// Create UI model
	uiModel := ui.NewModel(ctx, bus, cfg, backend, backend)
	uiModel.SetText(initialText)

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
		p.Quit()
	}()

	// Run the UI
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}

// logEvents writes analysis activity to the log
func logEvents(bus eventbus.EventBus) {
	bus.Subscribe(eventbus.EventAnalysisCompleted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.AnalysisCompletedEvent); ok {
			log.Printf("Cycle %d: %d errors, %d %s suggestions in %s",
				event.Cycle, event.Errors, event.Suggestions, event.Kind, event.Elapsed)
		}
	})
	bus.Subscribe(eventbus.EventAnalysisFailed, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.AnalysisFailedEvent); ok {
			log.Printf("Cycle %d failed: %v", event.Cycle, event.Err)
		}
	})
	bus.Subscribe(eventbus.EventAnalysisDropped, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.AnalysisDroppedEvent); ok {
			log.Printf("Cycle %d dropped, cycle %d is newer", event.Cycle, event.Latest)
		}
	})
	bus.Subscribe(eventbus.EventSuggestionApplied, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SuggestionAppliedEvent); ok {
			log.Printf("Applied %s suggestion %q", event.Suggestion.Kind, event.Suggestion.Text)
		}
	})
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ErrorEvent); ok {
			log.Printf("Error: %s: %v", event.Message, event.Err)
		}
	})
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigLoadedEvent); ok {
			log.Printf("Config loaded from %s", event.Path)
		}
	})
}
