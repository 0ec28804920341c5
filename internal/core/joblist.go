package core

import (
	"sync"

	"github.com/IvanShishkin/ngenctl/pkg/models"
)

// JobList is the ordered set of tracked files. Paths are unique after
// normalization (see models.NormalizePath).
type JobList struct {
	mu    sync.RWMutex
	items []*models.FileItem
	index map[string]*models.FileItem
}

// NewJobList creates an empty list
func NewJobList() *JobList {
	return &JobList{
		index: make(map[string]*models.FileItem),
	}
}

// Add appends the item unless its path is already present
func (l *JobList) Add(item *models.FileItem) bool {
	key := item.Assembly.Key()

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.index[key]; exists {
		return false
	}
	l.index[key] = item
	l.items = append(l.items, item)
	return true
}

// Remove drops the given items and returns how many were removed
func (l *JobList) Remove(items ...*models.FileItem) int {
	drop := make(map[*models.FileItem]bool, len(items))
	for _, item := range items {
		drop[item] = true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.items[:0]
	removed := 0
	for _, item := range l.items {
		if drop[item] {
			delete(l.index, item.Assembly.Key())
			removed++
			continue
		}
		kept = append(kept, item)
	}
	// Clear the tail so dropped items can be collected
	for i := len(kept); i < len(l.items); i++ {
		l.items[i] = nil
	}
	l.items = kept
	return removed
}

// Clear removes every item
func (l *JobList) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
	l.index = make(map[string]*models.FileItem)
}

// Items returns a snapshot in insertion order
func (l *JobList) Items() []*models.FileItem {
	l.mu.RLock()
	defer l.mu.RUnlock()
	items := make([]*models.FileItem, len(l.items))
	copy(items, l.items)
	return items
}

// Len returns the number of items
func (l *JobList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Contains reports whether a file with this path is tracked
func (l *JobList) Contains(path string) bool {
	return l.Find(path) != nil
}

// Find returns the item tracking path, or nil
func (l *JobList) Find(path string) *models.FileItem {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.index[models.NormalizePath(path)]
}
