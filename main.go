package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"saraha/config"
	"saraha/console"
	"saraha/directory"
	"saraha/storage"
)

func main() {
	cfg := config.Load()
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()

	logFile, err := cfg.SetupLogging()
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
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

	c := console.New(dir, os.Stdin, os.Stdout)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		c.SetPasswordReader(readHiddenPassword)
	}

	// Commands persist as they run; an interrupt only releases the store.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("Received signal %v, exiting", sig)
		store.Close()
		fmt.Println()
		os.Exit(0)
	}()

	log.Printf("Saraha started (store=%s, data=%s)", cfg.Store, cfg.DataDir)
	if err := c.Run(); err != nil {
		log.Fatalf("Console error: %v", err)
	}
}

func readHiddenPassword() (string, error) {
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
