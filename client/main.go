package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"saraha/client/ui"
	"saraha/config"
	"saraha/directory"
	"saraha/storage"
)

func main() {
	cfg := config.Load()
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()

	logFile, err := cfg.SetupLogging()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	store, err := storage.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.Store, err)
	}
	defer store.Close()

	dir, err := directory.New(store)
	if err != nil {
		log.Fatalf("Failed to load users: %v", err)
	}

	app := ui.NewApp(dir)
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
