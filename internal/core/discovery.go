package core

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/IvanShishkin/ngenctl/internal/assembly"
	"github.com/IvanShishkin/ngenctl/pkg/models"
)

// addFiles reads each path and adds the managed assemblies that are not
// tracked yet. It returns the added items.
func (e *Engine) addFiles(j *job, paths []string) []*models.FileItem {
	var added []*models.FileItem

	for _, path := range paths {
		if j.token.Stopped() {
			break
		}
		if e.list.Contains(path) {
			continue
		}

		asm, err := e.read(path)
		if errors.Is(err, assembly.ErrNotManaged) {
			e.logger.Debug("Skipping file", zap.String("path", path), zap.Error(err))
			continue
		}
		if err != nil {
			e.reportError(fmt.Errorf("%s: %w", path, err))
			continue
		}

		item := models.NewFileItem(asm, models.StatusUnknown)
		if e.list.Add(item) {
			added = append(added, item)
			e.logger.Debug("Added assembly",
				zap.String("path", asm.Path),
				zap.String("arch", string(asm.Architecture)),
				zap.String("runtime", asm.RuntimeVersion))
		}
	}

	return added
}

// discover adds the assemblies in dir, then recurses into subdirectories
// when asked. Errors below the top level are reported and the walk
// continues with the next sibling.
func (e *Engine) discover(j *job, dir string, subdirs bool, added *[]*models.FileItem) error {
	listing, err := e.lister.List(dir)
	if err != nil {
		return err
	}

	*added = append(*added, e.addFiles(j, listing.Files)...)

	if !subdirs {
		return nil
	}
	for _, sub := range listing.Dirs {
		if j.token.Stopped() {
			return nil
		}
		if err := e.discover(j, sub, true, added); err != nil {
			e.reportError(err)
		}
	}
	return nil
}
