package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
)

// LoadFixtures loads SQL fixture files into the database
func LoadFixtures(db *sql.DB, fixturesPath string, files []string) error {
	for _, file := range files {
		path := filepath.Join(fixturesPath, file)
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read fixture %s: %w", file, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("load fixture %s: %w", file, err)
		}
		fmt.Printf("Loaded fixture: %s\n", file)
	}

	return nil
}

// GetSiteIDByName returns the ID of a historical site by its unique name
func GetSiteIDByName(db *sql.DB, name string) (int64, error) {
	var id int64
	err := db.QueryRowContext(context.Background(),
		"SELECT id FROM historical_sites WHERE name = $1", name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("get site ID by name %q: %w", name, err)
	}
	return id, nil
}

// GetUserIDByUsername returns the ID of a user by username
func GetUserIDByUsername(db *sql.DB, username string) (int64, error) {
	var id int64
	err := db.QueryRowContext(context.Background(),
		"SELECT id FROM users WHERE username = $1", username).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("get user ID by username %q: %w", username, err)
	}
	return id, nil
}

// GetEventIDByTitle returns the ID of a historical event by title
func GetEventIDByTitle(db *sql.DB, title string) (int64, error) {
	var id int64
	err := db.QueryRowContext(context.Background(),
		"SELECT id FROM historical_events WHERE title = $1", title).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("get event ID by title %q: %w", title, err)
	}
	return id, nil
}
