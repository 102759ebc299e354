// Package config manages library configuration: where local state
// lives, how to reach the blob store and the ledger daemon, and which
// DNS resolver to use for name lookups. Configuration is stored in a
// plain key=value file so it can be edited by hand.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all user-tunable settings.
type Config struct {
	// DataDir is where queue state and the local index are persisted.
	DataDir string

	// StorageURL is the blob store HTTP API endpoint.
	StorageURL string

	// LedgerURL is the ledger daemon's JSON-RPC endpoint.
	LedgerURL string

	// LedgerUser and LedgerPassword authenticate RPC requests.
	LedgerUser     string
	LedgerPassword string

	// DNSResolver is the recursive resolver used for name lookups.
	DNSResolver string

	// LogLevel controls verbosity of embedding applications.
	LogLevel string
}

// DefaultDataDir returns the default data directory
// ($HOME/.filedger, or .filedger relative to the working directory
// if the home directory cannot be determined).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".filedger"
	}
	return filepath.Join(home, ".filedger")
}

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() Config {
	return Config{
		DataDir:     DefaultDataDir(),
		StorageURL:  "http://localhost:5001",
		LedgerURL:   "http://localhost:7332",
		LedgerUser:  "filedger",
		DNSResolver: "8.8.8.8:53",
		LogLevel:    "info",
	}
}

// ConfigPath returns the path of the config file inside dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config")
}

// LoadConfig reads a config file and returns the resulting Config.
// Missing keys retain their defaults; unknown keys are ignored so
// newer files load under older versions.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, err := parseKeyValue(line)
		if err != nil {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNum, line)
		}
		applyKey(&cfg, key, value)
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	return cfg, nil
}

// parseKeyValue splits a "key = value" line on the first '='.
func parseKeyValue(line string) (key, value string, err error) {
	idx := strings.Index(line, "=")
	if idx < 0 {
		return "", "", ErrInvalidConfigLine
	}
	key = strings.ToLower(strings.TrimSpace(line[:idx]))
	value = strings.TrimSpace(line[idx+1:])
	if key == "" {
		return "", "", ErrInvalidConfigLine
	}
	return key, value, nil
}

// applyKey sets the config field named by key. Unknown keys are ignored.
func applyKey(cfg *Config, key, value string) {
	switch key {
	case "datadir":
		cfg.DataDir = value
	case "storage":
		cfg.StorageURL = value
	case "ledger":
		cfg.LedgerURL = value
	case "ledgeruser":
		cfg.LedgerUser = value
	case "ledgerpass":
		cfg.LedgerPassword = value
	case "dnsresolver":
		cfg.DNSResolver = value
	case "loglevel":
		cfg.LogLevel = value
	}
}

// SaveConfig writes cfg to path, creating parent directories as needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# Filedger Configuration\n")
	sb.WriteString("# Lines starting with '#' are comments.\n\n")
	fmt.Fprintf(&sb, "datadir = %s\n", cfg.DataDir)
	fmt.Fprintf(&sb, "storage = %s\n", cfg.StorageURL)
	fmt.Fprintf(&sb, "ledger = %s\n", cfg.LedgerURL)
	fmt.Fprintf(&sb, "ledgeruser = %s\n", cfg.LedgerUser)
	fmt.Fprintf(&sb, "ledgerpass = %s\n", cfg.LedgerPassword)
	fmt.Fprintf(&sb, "dnsresolver = %s\n", cfg.DNSResolver)
	fmt.Fprintf(&sb, "loglevel = %s\n", cfg.LogLevel)

	if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
