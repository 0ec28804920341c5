package core

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/IvanShishkin/ngenctl/pkg/models"
)

func newItem(path string) *models.FileItem {
	return models.NewFileItem(&models.Assembly{Path: path}, models.StatusUnknown)
}

func TestJobList_Dedupe(t *testing.T) {
	l := NewJobList()

	assert.True(t, l.Add(newItem("/Apps/App.exe")))
	assert.False(t, l.Add(newItem("/apps/APP.EXE")))
	assert.False(t, l.Add(newItem("/apps/./app.exe")))
	assert.True(t, l.Add(newItem("/apps/Lib.dll")))

	assert.Equal(t, 2, l.Len())
	assert.True(t, l.Contains("/APPS/app.exe"))
	assert.Equal(t, "/Apps/App.exe", l.Find("/apps/app.exe").Path())
}

func TestJobList_OrderAndRemove(t *testing.T) {
	l := NewJobList()
	a, b, c := newItem("/a.dll"), newItem("/b.dll"), newItem("/c.dll")
	l.Add(a)
	l.Add(b)
	l.Add(c)

	snapshot := l.Items()
	assert.Equal(t, []*models.FileItem{a, b, c}, snapshot)

	assert.Equal(t, 1, l.Remove(b, newItem("/not-tracked.dll")))
	assert.Equal(t, []*models.FileItem{a, c}, l.Items())
	assert.False(t, l.Contains("/b.dll"))
	// Earlier snapshots are unaffected
	assert.Len(t, snapshot, 3)

	// A removed path can be added again
	assert.True(t, l.Add(newItem("/B.dll")))

	l.Clear()
	assert.Zero(t, l.Len())
	assert.Nil(t, l.Find("/a.dll"))
}

func TestJobList_ConcurrentAdd(t *testing.T) {
	l := NewJobList()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Add(newItem("/shared/App.exe"))
			_ = l.Items()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, l.Len())
}
