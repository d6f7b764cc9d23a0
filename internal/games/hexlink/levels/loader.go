// Package levels provides level loading for the routing puzzle.
// This package depends on core but core does not depend on levels.
package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/hexroute/internal/games/hexlink/core"
	"github.com/vovakirdan/hexroute/internal/games/hexlink/levels/formats"
)

// ErrNotFound is returned when no level carries the requested id.
var ErrNotFound = errors.New("level not found")

// ErrUnsolvable is returned by Check for layouts no rotation can finish.
var ErrUnsolvable = errors.New("level is unsolvable")

// Level represents a complete level definition.
type Level struct {
	ID          string
	Name        string
	Description string
	Layout      core.Layout
	Metadata    map[string]string
	FilePath    string
}

// Loader handles loading levels from a directory tree.
type Loader struct {
	Root string
	fsys fs.FS
}

// NewLoader creates a loader reading from a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root)}
}

// NewFSLoader creates a loader over an arbitrary file system.
func NewFSLoader(name string, fsys fs.FS) *Loader {
	return &Loader{Root: name, fsys: fsys}
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Levels are sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			// Skip invalid files
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads a single level file, relative to the loader root.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	return Level{
		ID:          parsed.ID,
		Name:        parsed.Name,
		Description: parsed.Description,
		Layout:      parsed.Layout,
		Metadata:    parsed.Metadata,
		FilePath:    path.Join(l.Root, p),
	}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// Check validates a level and confirms it can be solved.
func Check(lvl Level) error {
	if err := lvl.Layout.Validate(); err != nil {
		return err
	}
	if _, ok := core.SolveLayout(lvl.Layout); !ok {
		return fmt.Errorf("%s: %w", lvl.ID, ErrUnsolvable)
	}
	return nil
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
