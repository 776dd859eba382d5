// Package resample reconciles grid shapes before per-pixel operations.
//
// The interpolation kernel decides the exact reduced-secret values and
// therefore the bit-for-bit content of a carrier, so it is always chosen
// explicitly by name rather than left to a library default.
package resample

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"pixel-veil/internal/models"
)

// Method names an interpolation kernel
type Method string

const (
	Nearest    Method = "nearest"
	Bilinear   Method = "bilinear"
	CatmullRom Method = "catmullrom"
	Bicubic    Method = "bicubic"
	Lanczos    Method = "lanczos"
	// OpenCVLinear is cv::resize with INTER_LINEAR. It is registered by the
	// opencv/conversion package and only available in builds linking OpenCV.
	OpenCVLinear Method = "opencv-linear"
)

// DefaultMethod is used when no method is configured
const DefaultMethod = Bilinear

// Resampler scales a grid to an exact width and height
type Resampler interface {
	Resample(src *models.PixelGrid, width, height int) (*models.PixelGrid, error)
	Method() Method
}

// Factory builds a Resampler
type Factory func() Resampler

// Registry maps method names to resampler factories
type Registry struct {
	factories map[Method]Factory
	mu        sync.RWMutex
}

// NewRegistry creates a registry holding the pure-Go kernels
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[Method]Factory)}
	r.Register(Nearest, func() Resampler { return newDrawResampler(Nearest) })
	r.Register(Bilinear, func() Resampler { return newDrawResampler(Bilinear) })
	r.Register(CatmullRom, func() Resampler { return newDrawResampler(CatmullRom) })
	r.Register(Bicubic, func() Resampler { return newKernelResampler(Bicubic) })
	r.Register(Lanczos, func() Resampler { return newKernelResampler(Lanczos) })
	return r
}

// Register adds or replaces the factory for a method
func (r *Registry) Register(method Method, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[method] = factory
}

// New returns a resampler for method
func (r *Registry) New(method Method) (Resampler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[method]
	if !ok {
		return nil, fmt.Errorf("unknown interpolation method %q (available: %s)",
			method, strings.Join(r.methodNames(), ", "))
	}
	return factory(), nil
}

// Methods lists the registered methods in name order
func (r *Registry) Methods() []Method {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := r.methodNames()
	methods := make([]Method, len(names))
	for i, n := range names {
		methods[i] = Method(n)
	}
	return methods
}

func (r *Registry) methodNames() []string {
	names := make([]string, 0, len(r.factories))
	for m := range r.factories {
		names = append(names, string(m))
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry
func Default() *Registry {
	return defaultRegistry
}

// Register adds a method to the process-wide registry
func Register(method Method, factory Factory) {
	defaultRegistry.Register(method, factory)
}

// New returns a resampler from the process-wide registry
func New(method Method) (Resampler, error) {
	return defaultRegistry.New(method)
}

// ParseMethod normalises a configured method name; "" yields DefaultMethod
func ParseMethod(name string) (Method, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultMethod, nil
	}

	switch Method(name) {
	case Nearest, Bilinear, CatmullRom, Bicubic, Lanczos, OpenCVLinear:
		return Method(name), nil
	case "linear":
		return Bilinear, nil
	case "nearest-neighbor", "nn":
		return Nearest, nil
	}
	return "", fmt.Errorf("unknown interpolation method %q", name)
}

// ToShape resamples src to the height and width of ref. A grid already of that
// size is returned as a copy so callers never alias their input.
func ToShape(r Resampler, src, ref *models.PixelGrid) (*models.PixelGrid, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	if src.SameSize(ref) {
		return src.Clone(), nil
	}
	return r.Resample(src, ref.Width, ref.Height)
}

func checkTarget(src *models.PixelGrid, width, height int) error {
	if err := src.Validate(); err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: target size %dx%d", models.ErrInvalidInput, width, height)
	}
	if src.Channels > 3 {
		return fmt.Errorf("%w: cannot resample %d channels", models.ErrShapeMismatch, src.Channels)
	}
	return nil
}
