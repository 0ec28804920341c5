package models

import "sync"

// FileStatus represents the native image state of a tracked file
type FileStatus string

const (
	StatusUnknown     FileStatus = "unknown"
	StatusPending     FileStatus = "pending"
	StatusInProgress  FileStatus = "in_progress"
	StatusInstalled   FileStatus = "installed"
	StatusDeinstalled FileStatus = "deinstalled"
)

// AppStatus represents the state of the batch engine
type AppStatus string

const (
	AppIdle     AppStatus = "idle"
	AppBusy     AppStatus = "busy"
	AppStopping AppStatus = "stopping"
)

// FileItem is one trackable unit of work
type FileItem struct {
	Assembly *Assembly

	mu     sync.RWMutex
	status FileStatus
}

// NewFileItem wraps an assembly with the given initial status
func NewFileItem(assembly *Assembly, status FileStatus) *FileItem {
	return &FileItem{
		Assembly: assembly,
		status:   status,
	}
}

// Status returns the current status
func (f *FileItem) Status() FileStatus {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.status
}

// SetStatus updates the status and returns the previous one
func (f *FileItem) SetStatus(status FileStatus) FileStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	prev := f.status
	f.status = status
	return prev
}

// Path returns the assembly path
func (f *FileItem) Path() string {
	return f.Assembly.Path
}
