package models

import (
	"sync"
	"time"
)

// ImageData is a loaded or produced grid together with where it lives on disk
type ImageData struct {
	Grid     *PixelGrid
	Path     string
	Format   string
	LoadTime time.Time
}

// OperationRecord is one entry of the session history
type OperationRecord struct {
	Operation  Operation
	InputPath  string
	OutputPath string
	PSNR       float64
	SSIM       float64
	Duration   time.Duration
	Err        error
	At         time.Time
}

// SessionRepository holds presentation state: the files the user picked and
// what happened to them. None of it is visible to the codec or the assessor.
type SessionRepository struct {
	mu             sync.RWMutex
	coverPath      string
	secretPath     string
	history        []OperationRecord
	maxHistorySize int
}

// NewSessionRepository creates an empty session
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		history:        make([]OperationRecord, 0),
		maxHistorySize: 50,
	}
}

// SetCoverPath records the selected cover image
func (r *SessionRepository) SetCoverPath(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.coverPath = path
}

// CoverPath returns the selected cover image, or "" if none
func (r *SessionRepository) CoverPath() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.coverPath
}

// SetSecretPath records the selected secret image
func (r *SessionRepository) SetSecretPath(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.secretPath = path
}

// SecretPath returns the selected secret image, or "" if none
func (r *SessionRepository) SecretPath() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.secretPath
}

// Ready reports whether both cover and secret have been chosen
func (r *SessionRepository) Ready() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.coverPath != "" && r.secretPath != ""
}

// Record appends an operation to the history, dropping the oldest entry once
// the history is full.
func (r *SessionRepository) Record(rec OperationRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.At.IsZero() {
		rec.At = time.Now()
	}
	r.history = append(r.history, rec)
	if len(r.history) > r.maxHistorySize {
		r.history = r.history[len(r.history)-r.maxHistorySize:]
	}
}

// History returns a copy of the recorded operations, oldest first
func (r *SessionRepository) History() []OperationRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history := make([]OperationRecord, len(r.history))
	copy(history, r.history)
	return history
}

// Latest returns the most recent record for op
func (r *SessionRepository) Latest(op Operation) (OperationRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Operation == op {
			return r.history[i], true
		}
	}
	return OperationRecord{}, false
}

// Clear forgets selections and history
func (r *SessionRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.coverPath = ""
	r.secretPath = ""
	r.history = make([]OperationRecord, 0)
}
