package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cbodonnell/stoneworks/pkg/repositories/models"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(ctx context.Context, path string, migrations string) (Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	// sqlite allows a single writer, and every connection to :memory: is a new database
	db.SetMaxOpenConns(1)

	statements, err := readMigrations(migrations)
	if err != nil {
		db.Close()
		return nil, err
	}
	for i, migration := range statements {
		if _, err := db.ExecContext(ctx, migration); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute migration %d: %v", i, err)
		}
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) SaveSchematic(ctx context.Context, s *models.Schematic) error {
	q := `
	INSERT INTO schematics (id, name, path, entries, compressed, has_anchor, world, x, y, z, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (name) DO UPDATE SET
		id = excluded.id, path = excluded.path, entries = excluded.entries,
		compressed = excluded.compressed, has_anchor = excluded.has_anchor,
		world = excluded.world, x = excluded.x, y = excluded.y, z = excluded.z,
		created_at = excluded.created_at;
	`
	_, err := r.db.ExecContext(ctx, q, s.ID, s.Name, s.Path, s.Entries, s.Compressed, s.HasAnchor, s.World, s.X, s.Y, s.Z, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert schematic: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) GetSchematic(ctx context.Context, name string) (*models.Schematic, error) {
	q := `
	SELECT id, name, path, entries, compressed, has_anchor, world, x, y, z, created_at
	FROM schematics WHERE name = ?;
	`
	s := &models.Schematic{}
	err := r.db.QueryRowContext(ctx, q, name).Scan(&s.ID, &s.Name, &s.Path, &s.Entries, &s.Compressed, &s.HasAnchor, &s.World, &s.X, &s.Y, &s.Z, &s.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan schematic: %v", err)
	}

	return s, nil
}

func (r *SQLiteRepository) ListSchematics(ctx context.Context) ([]*models.Schematic, error) {
	q := `
	SELECT id, name, path, entries, compressed, has_anchor, world, x, y, z, created_at
	FROM schematics ORDER BY name;
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query schematics: %v", err)
	}
	defer rows.Close()

	schematics := []*models.Schematic{}
	for rows.Next() {
		s := &models.Schematic{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Path, &s.Entries, &s.Compressed, &s.HasAnchor, &s.World, &s.X, &s.Y, &s.Z, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan schematic: %v", err)
		}
		schematics = append(schematics, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schematics: %v", err)
	}

	return schematics, nil
}

func (r *SQLiteRepository) DeleteSchematic(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM schematics WHERE name = ?;", name)
	if err != nil {
		return fmt.Errorf("failed to delete schematic: %v", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %v", err)
	}
	if n == 0 {
		return &ErrNotFound{}
	}

	return nil
}
