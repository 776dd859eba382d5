package models

import (
	"sync"
	"time"
)

// Operation names the three user-facing actions
type Operation string

const (
	OperationHide    Operation = "hide"
	OperationExtract Operation = "extract"
	OperationMetrics Operation = "metrics"
)

// ProcessingState represents the current state of a running operation
type ProcessingState struct {
	IsActive     bool
	Operation    Operation
	CurrentStage string
	Progress     float64
	StartTime    time.Time
}

// ProcessingStateRepository tracks whether an operation is in flight so the
// presentation layer can refuse overlapping requests.
type ProcessingStateRepository struct {
	mu    sync.RWMutex
	state ProcessingState
}

// NewProcessingStateRepository creates a new processing state repository
func NewProcessingStateRepository() *ProcessingStateRepository {
	return &ProcessingStateRepository{}
}

// GetState returns the current processing state
func (psr *ProcessingStateRepository) GetState() ProcessingState {
	psr.mu.RLock()
	defer psr.mu.RUnlock()
	return psr.state
}

// StartProcessing marks an operation as active. It returns false when another
// operation is already running.
func (psr *ProcessingStateRepository) StartProcessing(op Operation) bool {
	psr.mu.Lock()
	defer psr.mu.Unlock()

	if psr.state.IsActive {
		return false
	}

	psr.state = ProcessingState{
		IsActive:     true,
		Operation:    op,
		CurrentStage: "Initializing",
		StartTime:    time.Now(),
	}
	return true
}

// UpdateProgress updates processing progress and stage
func (psr *ProcessingStateRepository) UpdateProgress(stage string, progress float64) {
	psr.mu.Lock()
	defer psr.mu.Unlock()

	if psr.state.IsActive {
		psr.state.CurrentStage = stage
		psr.state.Progress = progress
	}
}

// CompleteProcessing marks processing as complete
func (psr *ProcessingStateRepository) CompleteProcessing() {
	psr.mu.Lock()
	defer psr.mu.Unlock()

	psr.state.IsActive = false
	psr.state.CurrentStage = "Complete"
	psr.state.Progress = 1.0
}

// FailProcessing marks processing as stopped after an error
func (psr *ProcessingStateRepository) FailProcessing() {
	psr.mu.Lock()
	defer psr.mu.Unlock()

	psr.state.IsActive = false
	psr.state.CurrentStage = "Failed"
}

// IsProcessing returns true if processing is currently active
func (psr *ProcessingStateRepository) IsProcessing() bool {
	psr.mu.RLock()
	defer psr.mu.RUnlock()
	return psr.state.IsActive
}
