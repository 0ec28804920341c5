package ngen

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/IvanShishkin/ngenctl/pkg/models"
)

// Locator maps an assembly to the ngen.exe that can compile it.
// Resolved paths are cached per runtime version and bitness for the
// lifetime of the Locator.
type Locator struct {
	roots    RootResolver
	toolName string
	exists   func(path string) bool

	mu    sync.Mutex
	cache map[toolKey]string
}

type toolKey struct {
	version string
	is64    bool
}

// NewLocator creates a locator for toolName under the roots returned by roots
func NewLocator(roots RootResolver, toolName string) *Locator {
	return &Locator{
		roots:    roots,
		toolName: toolName,
		exists:   fileExists,
		cache:    make(map[toolKey]string),
	}
}

// Locate returns the tool path for the assembly's runtime and architecture
func (l *Locator) Locate(asm *models.Assembly) (string, error) {
	key := toolKey{version: asm.RuntimeVersion, is64: asm.Is64Bit()}

	l.mu.Lock()
	path, ok := l.cache[key]
	if !ok {
		root, err := l.roots.InstallRoot(asm.Architecture)
		if err != nil {
			l.mu.Unlock()
			return "", fmt.Errorf("%w: .NET Framework %s (%s): %v", ErrToolNotFound, asm.RuntimeVersion, bitness(key.is64), err)
		}
		path = filepath.Join(root, asm.RuntimeVersion, l.toolName)
		l.cache[key] = path
	}
	l.mu.Unlock()

	if !l.exists(path) {
		return "", fmt.Errorf("%w: .NET Framework %s (%s) seems to be missing", ErrToolNotFound, asm.RuntimeVersion, bitness(key.is64))
	}
	return path, nil
}

func bitness(is64 bool) string {
	if is64 {
		return "x64"
	}
	return "x86"
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
