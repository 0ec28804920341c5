package core

import "github.com/IvanShishkin/ngenctl/pkg/models"

// Observer receives engine events. Callbacks run on engine goroutines and
// must not call Stop or start another operation synchronously.
type Observer interface {
	StatusChanged(status models.AppStatus)
	ProgressChanged(completed, total int)
	ExceptionOccurred(err error)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are ignored.
type ObserverFuncs struct {
	OnStatus    func(status models.AppStatus)
	OnProgress  func(completed, total int)
	OnException func(err error)
}

// StatusChanged calls OnStatus
func (o ObserverFuncs) StatusChanged(status models.AppStatus) {
	if o.OnStatus != nil {
		o.OnStatus(status)
	}
}

// ProgressChanged calls OnProgress
func (o ObserverFuncs) ProgressChanged(completed, total int) {
	if o.OnProgress != nil {
		o.OnProgress(completed, total)
	}
}

// ExceptionOccurred calls OnException
func (o ObserverFuncs) ExceptionOccurred(err error) {
	if o.OnException != nil {
		o.OnException(err)
	}
}
