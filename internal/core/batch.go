package core

import (
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
	"go.uber.org/zap"

	"github.com/IvanShishkin/ngenctl/pkg/models"
)

// progress counts completed items. Increment and emit happen under one lock
// so observers see a non-decreasing sequence.
type progress struct {
	mu       sync.Mutex
	done     int
	total    int
	observer Observer
}

func newProgress(total int, observer Observer) *progress {
	return &progress{total: total, observer: observer}
}

func (p *progress) increment() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	p.observer.ProgressChanged(p.done, p.total)
}

// runBatch applies the job's install or uninstall action to items on a
// bounded pool. Items never reached because of a stop get their previous
// status back.
func (e *Engine) runBatch(j *job, items []*models.FileItem) {
	if len(items) == 0 {
		return
	}

	previous := make([]models.FileStatus, len(items))
	for i, item := range items {
		previous[i] = item.SetStatus(models.StatusPending)
	}

	prog := newProgress(len(items), e.observer)
	g := new(errgroup.Group)
	g.SetLimit(j.workers)

	for i, item := range items {
		if j.token.Stopped() {
			break
		}
		g.Go(func() error {
			if j.token.Stopped() {
				return nil
			}
			item.SetStatus(models.StatusInProgress)

			installed, err := e.apply(j.kind, item.Assembly)
			if err != nil {
				item.SetStatus(previous[i])
				e.reportError(fmt.Errorf("%s %s: %w", j.kind, item.Path(), err))
			} else {
				item.SetStatus(installedStatus(installed))
			}

			prog.increment()
			return nil
		})
	}
	_ = g.Wait()

	restored := 0
	for i, item := range items {
		if item.Status() == models.StatusPending {
			item.SetStatus(previous[i])
			restored++
		}
	}
	if restored > 0 {
		e.logger.Info("Restored items not reached before stop",
			zap.String("job_id", j.id),
			zap.Int("count", restored))
	}
}

// apply brings one assembly to the state the job asks for and returns the
// re-checked native image state
func (e *Engine) apply(kind TaskKind, asm *models.Assembly) (bool, error) {
	installed, err := e.tool.Check(asm)
	if err != nil {
		return false, err
	}

	switch {
	case kind == TaskInstall && !installed:
		if _, err := e.tool.Install(asm); err != nil {
			return false, err
		}
	case kind == TaskUninstall && installed:
		if _, err := e.tool.Uninstall(asm); err != nil {
			return false, err
		}
	default:
		return installed, nil
	}

	return e.tool.Check(asm)
}

// verify checks the native image state of newly added items
func (e *Engine) verify(j *job, items []*models.FileItem) {
	if !e.config.VerifyOnAdd || len(items) == 0 {
		return
	}

	prog := newProgress(len(items), e.observer)
	g := new(errgroup.Group)
	g.SetLimit(j.workers)

	for _, item := range items {
		if j.token.Stopped() {
			break
		}
		g.Go(func() error {
			if j.token.Stopped() {
				return nil
			}
			previous := item.SetStatus(models.StatusInProgress)

			installed, err := e.tool.Check(item.Assembly)
			if err != nil {
				item.SetStatus(previous)
				e.reportError(fmt.Errorf("check %s: %w", item.Path(), err))
			} else {
				item.SetStatus(installedStatus(installed))
			}

			prog.increment()
			return nil
		})
	}
	_ = g.Wait()
}

func installedStatus(installed bool) models.FileStatus {
	if installed {
		return models.StatusInstalled
	}
	return models.StatusDeinstalled
}
