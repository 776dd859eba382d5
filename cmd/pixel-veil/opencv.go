//go:build !noopencv

package main

// Registers the opencv image backend and the opencv-linear resampler.
// Build with -tags noopencv on hosts without OpenCV.
import _ "pixel-veil/internal/opencv/conversion"
