package core

import (
	"sync"
	"sync/atomic"
)

// TaskKind identifies the operation a Task runs
type TaskKind string

const (
	TaskAddFiles     TaskKind = "add_files"
	TaskAddDirectory TaskKind = "add_directory"
	TaskInstall      TaskKind = "install"
	TaskUninstall    TaskKind = "uninstall"
)

// Executor runs background work. The engine submits one function per operation.
type Executor interface {
	Go(fn func())
}

// GoExecutor runs each function on its own goroutine
type GoExecutor struct{}

// Go starts fn on a new goroutine
func (GoExecutor) Go(fn func()) {
	go fn()
}

// Task is a handle to a submitted operation
type Task struct {
	id   string
	kind TaskKind

	done chan struct{}
	once sync.Once
	err  error
}

func newTask(kind TaskKind) *Task {
	return &Task{
		kind: kind,
		done: make(chan struct{}),
	}
}

// ID returns the job ID, empty if the task never started
func (t *Task) ID() string {
	return t.id
}

// Kind returns the operation kind
func (t *Task) Kind() TaskKind {
	return t.kind
}

// Done is closed when the operation has finished and the engine is idle again
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the operation finishes and returns its error
func (t *Task) Wait() error {
	<-t.done
	return t.err
}

func (t *Task) finish(err error) {
	t.once.Do(func() {
		t.err = err
		close(t.done)
	})
}

// StopToken is the cancellation flag shared by all work of one operation.
// Workers poll it before starting an item and before entering a directory.
type StopToken struct {
	stopped atomic.Bool
}

// Stop requests cancellation
func (s *StopToken) Stop() {
	s.stopped.Store(true)
}

// Stopped reports whether cancellation was requested
func (s *StopToken) Stopped() bool {
	return s.stopped.Load()
}
