package main

import (
	"flag"
	"log"

	"LocalNotes/internal/config"
	"LocalNotes/internal/editor"
	"LocalNotes/internal/export"
	"LocalNotes/internal/store"
	"LocalNotes/internal/ui"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "path to the YAML configuration file")
	dbPath := flag.String("db", "", "SQLite database path (overrides the config file)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *dbPath != "" {
		cfg.Database = *dbPath
	}

	policy, err := editor.ParseSwitchPolicy(cfg.SwitchPolicy)
	if err != nil {
		log.Printf("Config: %v, using autosave", err)
	}
	tool, ok := editor.ParseTool(cfg.Tool)
	if !ok {
		log.Printf("Config: unknown tool %q, using pen", cfg.Tool)
	}

	db, err := store.Open(cfg.Database, store.WithMkdirAll())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	log.Printf("Starting LocalNotes (database %s)", cfg.Database)

	ui.RunApp(ui.Config{
		Library:  db,
		Exporter: &export.PDF{Dir: cfg.ExportDir},
		Policy:   policy,
		Editor: []editor.Option{
			editor.WithPen(cfg.Pen.Color, cfg.Pen.Width),
			editor.WithTextStyle(cfg.Text.Font, cfg.Text.Color),
			editor.WithTool(tool),
		},
	})
}
