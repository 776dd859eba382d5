// Package safe wraps gocv.Mat so native memory is released exactly once.
package safe

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"gocv.io/x/gocv"
)

type Mat struct {
	mat     gocv.Mat
	isValid int32
	mu      sync.RWMutex
}

// NewMatFromBytes copies data into a new Mat of the given shape
func NewMatFromBytes(rows, cols int, matType gocv.MatType, data []byte) (*Mat, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", cols, rows)
	}

	view, err := gocv.NewMatFromBytes(rows, cols, matType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to create Mat from %d bytes: %w", len(data), err)
	}
	defer view.Close()

	// NewMatFromBytes may alias the Go slice; clone so the Mat owns its data.
	return NewMatFromMat(view)
}

func NewMatFromMat(srcMat gocv.Mat) (*Mat, error) {
	if srcMat.Empty() {
		return nil, fmt.Errorf("source Mat is empty")
	}

	if srcMat.Rows() <= 0 || srcMat.Cols() <= 0 {
		return nil, fmt.Errorf("source Mat has invalid dimensions: %dx%d", srcMat.Cols(), srcMat.Rows())
	}

	clonedMat := srcMat.Clone()
	if clonedMat.Empty() {
		clonedMat.Close()
		return nil, fmt.Errorf("failed to clone Mat")
	}

	return wrap(clonedMat), nil
}

// Own takes ownership of mat without copying. The caller must not close it.
func Own(mat gocv.Mat) (*Mat, error) {
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("source Mat is empty")
	}
	return wrap(mat), nil
}

func wrap(mat gocv.Mat) *Mat {
	safeMat := &Mat{
		mat:     mat,
		isValid: 1,
	}

	// Set finalizer for cleanup if Close() is not called
	runtime.SetFinalizer(safeMat, (*Mat).finalize)
	return safeMat
}

func (sm *Mat) IsValid() bool {
	return atomic.LoadInt32(&sm.isValid) == 1
}

func (sm *Mat) Empty() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return true
	}

	return sm.mat.Empty()
}

func (sm *Mat) Rows() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return 0
	}

	return sm.mat.Rows()
}

func (sm *Mat) Cols() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return 0
	}

	return sm.mat.Cols()
}

func (sm *Mat) Channels() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return 0
	}

	return sm.mat.Channels()
}

func (sm *Mat) Type() gocv.MatType {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return gocv.MatTypeCV8UC1
	}

	return sm.mat.Type()
}

func (sm *Mat) Clone() (*Mat, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return nil, fmt.Errorf("cannot clone invalid Mat")
	}

	if sm.mat.Empty() {
		return nil, fmt.Errorf("cannot clone empty Mat")
	}

	return NewMatFromMat(sm.mat)
}

// Bytes returns a copy of the sample data in row-major order
func (sm *Mat) Bytes() ([]byte, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return nil, fmt.Errorf("Mat is invalid")
	}

	if !sm.mat.IsContinuous() {
		cont := sm.mat.Clone()
		defer cont.Close()
		return cont.ToBytes(), nil
	}

	return sm.mat.ToBytes(), nil
}

func (sm *Mat) GetMat() gocv.Mat {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.mat
}

func (sm *Mat) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if atomic.CompareAndSwapInt32(&sm.isValid, 1, 0) {
		if !sm.mat.Empty() {
			sm.mat.Close()
		}

		// Clear finalizer since we're cleaning up manually
		runtime.SetFinalizer(sm, nil)
	}
}

// finalize is called by Go's garbage collector as last resort cleanup
func (sm *Mat) finalize() {
	if atomic.LoadInt32(&sm.isValid) == 1 {
		sm.Close()
	}
}
