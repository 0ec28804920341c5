package core

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/IvanShishkin/ngenctl/internal/assembly"
	"github.com/IvanShishkin/ngenctl/internal/config"
	"github.com/IvanShishkin/ngenctl/internal/filesystem"
	"github.com/IvanShishkin/ngenctl/pkg/models"
)

// ErrBusy is returned when an operation is started while another one is active
var ErrBusy = errors.New("another operation is in progress")

// NativeImageTool checks and changes the native image state of an assembly
type NativeImageTool interface {
	Check(asm *models.Assembly) (bool, error)
	Install(asm *models.Assembly) (bool, error)
	Uninstall(asm *models.Assembly) (bool, error)
}

// Lister lists one directory level
type Lister interface {
	List(dir string) (*filesystem.Listing, error)
}

// ReadFunc reads assembly details from a file
type ReadFunc func(path string) (*models.Assembly, error)

// Engine tracks assemblies and runs discovery and native image batches
// against them, one operation at a time.
type Engine struct {
	config   *config.Config
	logger   *zap.Logger
	tool     NativeImageTool
	lister   Lister
	read     ReadFunc
	list     *JobList
	observer Observer
	executor Executor

	// transition serializes status changes with their events
	transition sync.Mutex
	mu         sync.Mutex
	status     models.AppStatus
	token      *StopToken
}

// job is one running operation
type job struct {
	id      string
	kind    TaskKind
	token   *StopToken
	workers int
}

// NewEngine creates a new engine
func NewEngine(cfg *config.Config, tool NativeImageTool, logger *zap.Logger) *Engine {
	return &Engine{
		config:   cfg,
		logger:   logger,
		tool:     tool,
		lister:   filesystem.NewWalker(cfg, logger),
		read:     assembly.Read,
		list:     NewJobList(),
		observer: ObserverFuncs{},
		executor: GoExecutor{},
		status:   models.AppIdle,
	}
}

// SetObserver sets the event observer
func (e *Engine) SetObserver(o Observer) {
	if o == nil {
		o = ObserverFuncs{}
	}
	e.observer = o
}

// SetExecutor sets the executor operations are submitted to
func (e *Engine) SetExecutor(ex Executor) {
	if ex == nil {
		ex = GoExecutor{}
	}
	e.executor = ex
}

// Status returns the current engine status
func (e *Engine) Status() models.AppStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Items returns a snapshot of the tracked files
func (e *Engine) Items() []*models.FileItem {
	return e.list.Items()
}

// Find returns the tracked item for path, or nil
func (e *Engine) Find(path string) *models.FileItem {
	return e.list.Find(path)
}

// Remove drops the given items from the list, or every item when none are given
func (e *Engine) Remove(items ...*models.FileItem) {
	if len(items) == 0 {
		e.list.Clear()
		return
	}
	e.list.Remove(items...)
}

// Stop asks the active operation to finish early. Work already started on
// an item runs to completion.
func (e *Engine) Stop() {
	e.transition.Lock()
	defer e.transition.Unlock()

	e.mu.Lock()
	if e.status != models.AppBusy {
		e.mu.Unlock()
		return
	}
	e.status = models.AppStopping
	e.token.Stop()
	e.mu.Unlock()

	e.logger.Info("Stop requested")
	e.observer.StatusChanged(models.AppStopping)
}

// AddFiles reads the given files and adds the managed assemblies among them
func (e *Engine) AddFiles(paths []string) *Task {
	return e.submit(TaskAddFiles, func(j *job) error {
		added := e.addFiles(j, paths)
		e.verify(j, added)
		return nil
	})
}

// AddDirectory adds the managed assemblies found in root, and in its
// subdirectories when includeSubdirs is set
func (e *Engine) AddDirectory(root string, includeSubdirs bool) *Task {
	return e.submit(TaskAddDirectory, func(j *job) error {
		var added []*models.FileItem
		err := e.discover(j, root, includeSubdirs, &added)
		if err != nil {
			e.reportError(err)
		}
		e.verify(j, added)
		return err
	})
}

// Install generates native images for items, or for every tracked item
// when none are given
func (e *Engine) Install(items ...*models.FileItem) *Task {
	return e.submit(TaskInstall, func(j *job) error {
		e.runBatch(j, e.selectItems(items))
		return nil
	})
}

// Uninstall removes native images for items, or for every tracked item
// when none are given
func (e *Engine) Uninstall(items ...*models.FileItem) *Task {
	return e.submit(TaskUninstall, func(j *job) error {
		e.runBatch(j, e.selectItems(items))
		return nil
	})
}

func (e *Engine) selectItems(items []*models.FileItem) []*models.FileItem {
	if len(items) == 0 {
		return e.list.Items()
	}
	return items
}

// submit starts run on the executor unless another operation is active
func (e *Engine) submit(kind TaskKind, run func(j *job) error) *Task {
	task := newTask(kind)

	j, err := e.start(kind)
	if err != nil {
		task.finish(err)
		return task
	}
	task.id = j.id

	e.executor.Go(func() {
		start := time.Now()
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%s job %s panicked: %v", kind, j.id, r)
				e.reportError(err)
			}
			e.logger.Info("Job finished",
				zap.String("job_id", j.id),
				zap.String("kind", string(kind)),
				zap.Bool("stopped", j.token.Stopped()),
				zap.Duration("duration", time.Since(start)))
			e.finish()
			task.finish(err)
		}()

		e.logger.Info("Starting job",
			zap.String("job_id", j.id),
			zap.String("kind", string(kind)),
			zap.Int("workers", j.workers))
		err = run(j)
	})

	return task
}

// start moves the engine from idle to busy
func (e *Engine) start(kind TaskKind) (*job, error) {
	e.transition.Lock()
	defer e.transition.Unlock()

	e.mu.Lock()
	if e.status != models.AppIdle {
		e.mu.Unlock()
		return nil, fmt.Errorf("cannot start %s: %w", kind, ErrBusy)
	}
	token := &StopToken{}
	e.status = models.AppBusy
	e.token = token
	e.mu.Unlock()

	e.observer.StatusChanged(models.AppBusy)

	return &job{
		id:      uuid.NewString(),
		kind:    kind,
		token:   token,
		workers: e.config.WorkerCount(),
	}, nil
}

// finish returns the engine to idle
func (e *Engine) finish() {
	e.transition.Lock()
	defer e.transition.Unlock()

	e.mu.Lock()
	e.status = models.AppIdle
	e.token = nil
	e.mu.Unlock()

	e.observer.StatusChanged(models.AppIdle)
}

func (e *Engine) reportError(err error) {
	e.logger.Warn("Operation error", zap.Error(err))
	e.observer.ExceptionOccurred(err)
}
