// cmd/tools/directory-updater/main.go
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"

	"admissions-workers/internal/common/config"
	"admissions-workers/pkg/registry"
)

var directoryPath string

func main() {
	syncCmd := flag.NewFlagSet("sync", flag.ExitOnError)
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	// Sync command flags
	syncCmd.StringVar(&directoryPath, "path", "configs/institution-directory.json", "Path to directory file")

	// Add command flags
	key := addCmd.String("key", "", "Institution key (e.g., state-tech)")
	name := addCmd.String("name", "", "Institution name (e.g., State Tech University)")
	state := addCmd.String("state", "", "Two-letter state code")
	addCmd.StringVar(&directoryPath, "path", "configs/institution-directory.json", "Path to directory file")

	// Validate command flags
	validateCmd.StringVar(&directoryPath, "path", "configs/institution-directory.json", "Path to directory file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "sync":
		syncCmd.Parse(os.Args[2:])
		if err := syncDirectory(); err != nil {
			fmt.Printf("Error syncing directory: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Directory synced to %s\n", directoryPath)

	case "add":
		addCmd.Parse(os.Args[2:])
		if *key == "" || *name == "" || *state == "" {
			fmt.Println("Error: key, name, and state are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		entry := registry.InstitutionEntry{
			Key:   *key,
			Name:  *name,
			State: *state,
		}
		if err := addInstitution(entry); err != nil {
			fmt.Printf("Error adding institution: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added institution: %s\n", *key)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validateDirectory(); err != nil {
			fmt.Printf("Directory validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Directory validation passed.")

	case "help":
		fallthrough
	default:
		help()
	}
}

// syncDirectory rebuilds the directory file from the institutions table.
func syncDirectory() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.Postgres.GetDSN())
	if err != nil {
		return fmt.Errorf("failed to open postgres: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rows, err := db.QueryContext(ctx, `
		SELECT institution_key, name, state
		FROM institutions
		ORDER BY name`)
	if err != nil {
		return fmt.Errorf("failed to query institutions: %w", err)
	}
	defer rows.Close()

	dir := &registry.InstitutionDirectory{
		Version:     "1.0.0",
		LastUpdated: time.Now().Format(time.RFC3339),
	}
	for rows.Next() {
		var entry registry.InstitutionEntry
		if err := rows.Scan(&entry.Key, &entry.Name, &entry.State); err != nil {
			return fmt.Errorf("failed to scan institution: %w", err)
		}
		dir.Institutions = append(dir.Institutions, entry)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate institutions: %w", err)
	}

	return saveDirectory(dir, directoryPath)
}

func addInstitution(entry registry.InstitutionEntry) error {
	dir, err := registry.LoadDirectory(directoryPath)
	if err != nil {
		// If file doesn't exist, create a new directory
		if os.IsNotExist(err) {
			dir = &registry.InstitutionDirectory{
				Version:      "1.0.0",
				LastUpdated:  time.Now().Format(time.RFC3339),
				Institutions: []registry.InstitutionEntry{},
			}
		} else {
			return fmt.Errorf("failed to load directory: %w", err)
		}
	}

	for _, existing := range dir.Institutions {
		if existing.Key == entry.Key {
			return fmt.Errorf("institution with key %s already exists", entry.Key)
		}
	}

	dir.Institutions = append(dir.Institutions, entry)
	dir.LastUpdated = time.Now().Format(time.RFC3339)

	return saveDirectory(dir, directoryPath)
}

func validateDirectory() error {
	dir, err := registry.LoadDirectory(directoryPath)
	if err != nil {
		return fmt.Errorf("failed to load directory: %w", err)
	}

	if len(dir.Institutions) == 0 {
		return fmt.Errorf("directory contains no institutions")
	}

	keys := make(map[string]bool)
	for _, entry := range dir.Institutions {
		if entry.Key == "" {
			return fmt.Errorf("institution missing required field: key")
		}
		if entry.Name == "" {
			return fmt.Errorf("institution %s missing required field: name", entry.Key)
		}
		if keys[entry.Key] {
			return fmt.Errorf("duplicate institution key: %s", entry.Key)
		}
		keys[entry.Key] = true
	}

	return nil
}

func saveDirectory(dir *registry.InstitutionDirectory, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(dir, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal directory: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

func help() {
	fmt.Println(`Usage: directory-updater <command> [flags]

Commands:
  sync      Rebuild the institution directory from the database
  add       Add a single institution to the directory
  validate  Check the directory file for missing fields and duplicates
  help      Show this message`)
}
