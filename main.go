package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"vpet/internal/config"
	"vpet/internal/creature"
	"vpet/internal/ui"
)

// setup turns command-line arguments into the loaded config. Flags that were
// given win over the config file and the environment. Problems that do not
// stop the program come back as warnings, to be logged once logging is set up.
func setup(args []string) (*config.Config, []string, error) {
	var warnings []string
	fs := flag.NewFlagSet("vpet", flag.ContinueOnError)
	configPath := fs.String("config", "", "config file (default ~/.config/vpet/config.yaml)")
	logPath := fs.String("log", "", "write diagnostics to this file")
	creatureID := fs.Int("creature", 0, "skip selection and adopt this creature id")
	manifest := fs.String("manifest", "", "creature manifest to use instead of the built-in one")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	path := *configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("no default config path: %v", err))
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log":
			cfg.LogPath = *logPath
		case "creature":
			cfg.Creature = *creatureID
		case "manifest":
			cfg.Manifest = *manifest
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, warnings, nil
}

// catalogFor returns the creature catalog the config points at.
func catalogFor(cfg *config.Config) *creature.Catalog {
	if cfg.Manifest == "" {
		return creature.Builtin()
	}
	dir, name := filepath.Split(cfg.Manifest)
	if dir == "" {
		dir = "."
	}
	return creature.FromFS(os.DirFS(dir), name)
}

func main() {
	cfg, warnings, err := setup(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "vpet: %v\n", err)
		os.Exit(2)
	}

	if cfg.LogPath != "" {
		f, err := tea.LogToFile(cfg.LogPath, "vpet")
		if err != nil {
			fmt.Fprintf(os.Stderr, "vpet: opening log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}
	for _, w := range warnings {
		log.Printf("[main] %s", w)
	}

	model := ui.NewModel(ui.Options{
		Catalog:       catalogFor(cfg),
		Rules:         cfg.Pet,
		FrameInterval: cfg.FrameInterval,
		Creature:      cfg.Creature,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
