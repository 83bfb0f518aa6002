package schematic

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/cbodonnell/stoneworks/pkg/log"
	"github.com/cbodonnell/stoneworks/pkg/repositories"
	"github.com/cbodonnell/stoneworks/pkg/repositories/models"
	"github.com/cbodonnell/stoneworks/pkg/world"
	"github.com/google/uuid"
)

// ErrInvalidName is returned for schematic names that cannot be used as file names.
var ErrInvalidName = errors.New("invalid schematic name")

var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// ValidateName checks that name is 1 to 64 letters, digits, '_' or '-'.
func ValidateName(name string) error {
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Store keeps schematic files in a directory and their catalog records in a
// repository. It does not touch live worlds and is safe to use from any goroutine.
type Store struct {
	dir        string
	compress   bool
	repository repositories.Repository
}

// NewStoreOptions contains options for creating a new Store.
type NewStoreOptions struct {
	Dir string
	// Compress writes new files with zstd.
	Compress   bool
	Repository repositories.Repository
}

func NewStore(opts NewStoreOptions) (*Store, error) {
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create schematic directory: %v", err)
	}
	return &Store{
		dir:        opts.Dir,
		compress:   opts.Compress,
		repository: opts.Repository,
	}, nil
}

// Path returns the file a schematic named name is written to.
func (s *Store) Path(name string) string {
	file := name + FileExtension
	if s.compress {
		file += CompressedSuffix
	}
	return filepath.Join(s.dir, file)
}

// Save writes sch under name, replacing any schematic with the same name.
func (s *Store) Save(ctx context.Context, name string, sch *Schematic) (*models.Schematic, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	previous, err := s.repository.GetSchematic(ctx, name)
	if err != nil && !repositories.IsNotFound(err) {
		return nil, fmt.Errorf("failed to get schematic record: %v", err)
	}

	path := s.Path(name)
	if err := WriteFile(path, sch); err != nil {
		return nil, fmt.Errorf("failed to write schematic %s: %w", name, err)
	}

	record := &models.Schematic{
		ID:         uuid.NewString(),
		Name:       name,
		Path:       path,
		Entries:    int32(sch.Len()),
		Compressed: IsCompressed(path),
		CreatedAt:  time.Now().UnixMilli(),
	}
	if anchor, ok := sch.Anchor(); ok {
		record.HasAnchor = true
		record.World = anchor.World
		record.X, record.Y, record.Z = anchor.Vec[0], anchor.Vec[1], anchor.Vec[2]
	}
	if err := s.repository.SaveSchematic(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save schematic record: %v", err)
	}

	if previous != nil && previous.Path != path {
		if err := os.Remove(previous.Path); err != nil && !os.IsNotExist(err) {
			log.Warn("Failed to remove replaced schematic file %s: %v", previous.Path, err)
		}
	}
	return record, nil
}

// Load reads the schematic saved under name. A file written with another
// format version yields ErrUnsupportedVersion.
func (s *Store) Load(ctx context.Context, name string, worlds world.Lookup) (*Schematic, error) {
	record, err := s.repository.GetSchematic(ctx, name)
	if err != nil {
		return nil, err
	}
	sch, err := ReadFile(record.Path, worlds)
	if err != nil {
		return nil, fmt.Errorf("failed to load schematic %s: %w", name, err)
	}
	return sch, nil
}

func (s *Store) List(ctx context.Context) ([]*models.Schematic, error) {
	return s.repository.ListSchematics(ctx)
}

// Delete removes the record and the file of the schematic saved under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	record, err := s.repository.GetSchematic(ctx, name)
	if err != nil {
		return err
	}
	if err := s.repository.DeleteSchematic(ctx, name); err != nil {
		return err
	}
	if err := os.Remove(record.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove schematic file: %v", err)
	}
	return nil
}
