package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/IvanShishkin/ngenctl/internal/config"
	"go.uber.org/zap"
)

// Walker lists directories for assembly discovery
type Walker struct {
	config  *config.Config
	logger  *zap.Logger
	exclude map[string]bool
}

// Listing holds the immediate entries of one directory
type Listing struct {
	Files []string // candidate assemblies, sorted by name
	Dirs  []string // subdirectories not excluded, sorted by name
}

// NewWalker creates a new filesystem walker
func NewWalker(cfg *config.Config, logger *zap.Logger) *Walker {
	// Build exclude map for fast lookup
	exclude := make(map[string]bool)
	for _, dir := range cfg.Exclude {
		exclude[strings.ToLower(dir)] = true
	}

	return &Walker{
		config:  cfg,
		logger:  logger,
		exclude: exclude,
	}
}

// List returns the candidate files and subdirectories directly under dir.
// It does not recurse; the caller decides whether to descend.
func (w *Walker) List(dir string) (*Listing, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}

	listing := &Listing{}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if w.shouldExclude(entry.Name()) {
				w.logger.Debug("Skipping excluded directory", zap.String("path", path))
				continue
			}
			listing.Dirs = append(listing.Dirs, path)
			continue
		}

		if !entry.Type().IsRegular() && !isFileLink(path, entry) {
			continue
		}
		if w.config.IsAssemblyExtension(GetExtension(path)) {
			listing.Files = append(listing.Files, path)
		}
	}

	sort.Strings(listing.Files)
	sort.Strings(listing.Dirs)
	return listing, nil
}

// isFileLink reports whether entry is a symlink to a regular file
func isFileLink(path string, entry os.DirEntry) bool {
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// shouldExclude checks if a directory should be excluded
func (w *Walker) shouldExclude(name string) bool {
	return w.exclude[strings.ToLower(name)]
}

// GetExtension returns the file extension without dot
func GetExtension(path string) string {
	ext := filepath.Ext(path)
	if len(ext) > 0 && ext[0] == '.' {
		return ext[1:]
	}
	return ext
}
