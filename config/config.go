package config

import (
	"flag"
	"log"
	"os"
	"path/filepath"
)

const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

type Config struct {
	DataDir string
	Store   string // "file" or "sqlite"
	DBPath  string // empty means <DataDir>/saraha.db
	LogFile string // empty means <DataDir>/saraha.log, "-" means stderr
}

func Load() *Config {
	cfg := &Config{
		DataDir: "data",
		Store:   StoreFile,
	}

	if dir := os.Getenv("SARAHA_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}

	if store := os.Getenv("SARAHA_STORE"); store == StoreFile || store == StoreSQLite {
		cfg.Store = store
	}

	if dbPath := os.Getenv("SARAHA_DB_PATH"); dbPath != "" {
		cfg.DBPath = dbPath
	}

	if logFile := os.Getenv("SARAHA_LOG_FILE"); logFile != "" {
		cfg.LogFile = logFile
	}

	return cfg
}

// DatabasePath resolves the SQLite file location.
func (c *Config) DatabasePath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(c.DataDir, "saraha.db")
}

// LogPath resolves the log destination. "-" is returned unchanged.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, "saraha.log")
}

// BindFlags lets command-line flags override the loaded values.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.DataDir, "data", c.DataDir, "data directory")
	fs.StringVar(&c.Store, "store", c.Store, "storage backend (file or sqlite)")
	fs.StringVar(&c.DBPath, "db", c.DBPath, "SQLite database path")
	fs.StringVar(&c.LogFile, "log", c.LogFile, "log file path, - for stderr")
}

// SetupLogging points the standard logger at LogPath. The returned file is
// nil when logging to stderr.
func (c *Config) SetupLogging() (*os.File, error) {
	path := c.LogPath()
	if path == "-" {
		log.SetOutput(os.Stderr)
		return nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return f, nil
}
