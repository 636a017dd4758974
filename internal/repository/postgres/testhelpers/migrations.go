package testhelpers

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ApplyMigrations applies all .up.sql migration files from the specified directory
func ApplyMigrations(db *sql.DB, migrationsPath string) error {
	upFiles, err := migrationFiles(migrationsPath, ".up.sql")
	if err != nil {
		return err
	}
	sort.Strings(upFiles)

	return execFiles(db, migrationsPath, upFiles)
}

// RollbackMigrations applies all .down.sql files in reverse order
func RollbackMigrations(db *sql.DB, migrationsPath string) error {
	downFiles, err := migrationFiles(migrationsPath, ".down.sql")
	if err != nil {
		return err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(downFiles)))

	return execFiles(db, migrationsPath, downFiles)
}

func migrationFiles(migrationsPath, suffix string) ([]string, error) {
	files, err := os.ReadDir(migrationsPath)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var names []string
	for _, f := range files {
		if strings.HasSuffix(f.Name(), suffix) {
			names = append(names, f.Name())
		}
	}
	return names, nil
}

func execFiles(db *sql.DB, dir string, names []string) error {
	for _, file := range names {
		content, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
		fmt.Printf("Applied migration: %s\n", file)
	}
	return nil
}
