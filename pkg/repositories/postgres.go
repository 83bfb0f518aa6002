package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/cbodonnell/stoneworks/pkg/log"
	"github.com/cbodonnell/stoneworks/pkg/repositories/models"
	"github.com/jackc/pgx/v5"
)

type PostgresRepository struct {
	conn *pgx.Conn
}

// NewPostgresRepository connects to the database and applies the migrations
// found in the migrations directory.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string, migrations string) (Repository, error) {
	conn, err := connectDb(ctx, connStr)
	if err != nil {
		return nil, err
	}

	statements, err := readMigrations(migrations)
	if err != nil {
		conn.Close(ctx)
		return nil, err
	}
	for i, migration := range statements {
		if _, err := conn.Exec(ctx, migration); err != nil {
			conn.Close(ctx)
			return nil, fmt.Errorf("failed to execute migration %d: %v", i, err)
		}
	}

	return &PostgresRepository{
		conn: conn,
	}, nil
}

func connectDb(ctx context.Context, connStr string) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	var username string
	var database string
	err = conn.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("unable to query database: %v", err)
	}

	log.Info("Connected to %s as %s", database, username)

	return conn, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	return r.conn.Close(ctx)
}

func (r *PostgresRepository) SaveSchematic(ctx context.Context, s *models.Schematic) error {
	q := `
	INSERT INTO schematics (id, name, path, entries, compressed, has_anchor, world, x, y, z, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (name) DO UPDATE SET
		id = $1, path = $3, entries = $4, compressed = $5, has_anchor = $6,
		world = $7, x = $8, y = $9, z = $10, created_at = $11;
	`
	_, err := r.conn.Exec(ctx, q, s.ID, s.Name, s.Path, s.Entries, s.Compressed, s.HasAnchor, s.World, s.X, s.Y, s.Z, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert schematic: %v", err)
	}

	return nil
}

func (r *PostgresRepository) GetSchematic(ctx context.Context, name string) (*models.Schematic, error) {
	q := `
	SELECT id, name, path, entries, compressed, has_anchor, world, x, y, z, created_at
	FROM schematics WHERE name = $1;
	`
	s := &models.Schematic{}
	err := r.conn.QueryRow(ctx, q, name).Scan(&s.ID, &s.Name, &s.Path, &s.Entries, &s.Compressed, &s.HasAnchor, &s.World, &s.X, &s.Y, &s.Z, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan schematic: %v", err)
	}

	return s, nil
}

func (r *PostgresRepository) ListSchematics(ctx context.Context) ([]*models.Schematic, error) {
	q := `
	SELECT id, name, path, entries, compressed, has_anchor, world, x, y, z, created_at
	FROM schematics ORDER BY name;
	`
	rows, err := r.conn.Query(ctx, q)
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

func (r *PostgresRepository) DeleteSchematic(ctx context.Context, name string) error {
	tag, err := r.conn.Exec(ctx, "DELETE FROM schematics WHERE name = $1;", name)
	if err != nil {
		return fmt.Errorf("failed to delete schematic: %v", err)
	}
	if tag.RowsAffected() == 0 {
		return &ErrNotFound{}
	}

	return nil
}
