package models

import "errors"

// Error kinds shared by the codec, the quality assessor and the image I/O
// collaborators. Callers match them with errors.Is.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrShapeMismatch = errors.New("shape mismatch")
	ErrDecode        = errors.New("decode error")
	ErrWrite         = errors.New("write error")

	// ErrLossySink is returned when a carrier would be written with a lossy
	// encoder, which destroys the embedded low nibbles.
	ErrLossySink = errors.New("lossy output format")
)
