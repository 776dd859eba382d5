// Package imageio loads and stores PixelGrids. It is the only place that
// touches image files; the codec and the assessor work purely in memory.
package imageio

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"pixel-veil/internal/models"
)

// Loader decodes an image file into a 3-channel BGR grid. Failures wrap
// models.ErrDecode.
type Loader interface {
	Load(path string) (*models.PixelGrid, error)
}

// Writer persists a grid. Implementations only accept lossless formats and
// fail with models.ErrLossySink otherwise; other failures wrap models.ErrWrite.
type Writer interface {
	Write(grid *models.PixelGrid, path string) error
}

// Backend pairs a loader and a writer built on the same image library
type Backend struct {
	Name   string
	Loader Loader
	Writer Writer
}

// NativeBackend is the pure-Go backend name
const NativeBackend = "native"

var (
	backendsMu sync.RWMutex
	backends   = map[string]func() Backend{
		NativeBackend: func() Backend {
			return Backend{Name: NativeBackend, Loader: NativeLoader{}, Writer: NativeWriter{}}
		},
	}
)

// RegisterBackend makes a backend available to NewBackend
func RegisterBackend(name string, factory func() Backend) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[name] = factory
}

// NewBackend returns the named backend; "" selects the native one
func NewBackend(name string) (Backend, error) {
	if name == "" {
		name = NativeBackend
	}

	backendsMu.RLock()
	defer backendsMu.RUnlock()

	factory, ok := backends[name]
	if !ok {
		return Backend{}, fmt.Errorf("unknown image backend %q (available: %s)", name, strings.Join(backendNames(), ", "))
	}
	return factory(), nil
}

// Backends lists the registered backend names
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	return backendNames()
}

func backendNames() []string {
	names := make([]string, 0, len(backends))
	for n := range backends {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
