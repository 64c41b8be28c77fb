// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API credentials for the assistant. Two sources
// are supported: a .secrets/ directory of plain-text key files (the
// filename is the key name, the trimmed contents are the value) and a
// .env file loaded into the process environment.
//
// Supported key file: upstage-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error; Load returns an empty
// map. Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	loaded := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", entry.Name(), err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			loaded[entry.Name()] = value
		}
	}

	return loaded, nil
}

// LoadDotenv merges a .env file into the process environment. A missing
// file is not an error. Existing environment variables win over .env
// entries.
func LoadDotenv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// APIKey resolves the generative API key: an explicit value wins, then
// the key-file map, then the UPSTAGE_API_KEY environment variable.
func APIKey(explicit string, loaded map[string]string) string {
	if explicit != "" {
		return explicit
	}
	if v, ok := loaded["upstage-api-key"]; ok {
		return v
	}
	return os.Getenv("UPSTAGE_API_KEY")
}
