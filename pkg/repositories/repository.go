package repositories

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cbodonnell/stoneworks/pkg/repositories/models"
)

// Repository stores the schematic catalog.
type Repository interface {
	Close(ctx context.Context) error
	// SaveSchematic inserts s, replacing any record with the same name.
	SaveSchematic(ctx context.Context, s *models.Schematic) error
	// GetSchematic returns ErrNotFound if no record has the given name.
	GetSchematic(ctx context.Context, name string) (*models.Schematic, error)
	// ListSchematics returns all records ordered by name.
	ListSchematics(ctx context.Context) ([]*models.Schematic, error)
	// DeleteSchematic returns ErrNotFound if no record has the given name.
	DeleteSchematic(ctx context.Context, name string) error
}

// readMigrations returns the contents of every file in dir, in file name order.
func readMigrations(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %v", err)
	}

	var migrations []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		migrationPath := filepath.Join(dir, entry.Name())
		migration, err := os.ReadFile(migrationPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %v", migrationPath, err)
		}
		migrations = append(migrations, string(migration))
	}
	return migrations, nil
}
