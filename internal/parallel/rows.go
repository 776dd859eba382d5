// Package parallel splits per-row image work across a bounded set of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// minRowsPerChunk keeps tiny images on a single goroutine
const minRowsPerChunk = 16

// Workers normalises a configured worker count; n <= 0 means one per CPU.
func Workers(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// Rows calls fn over disjoint [start, end) row ranges covering [0, height).
// Ranges run concurrently on at most workers goroutines and Rows returns once
// all of them have finished. fn must only touch data belonging to its rows.
func Rows(height, workers int, fn func(start, end int)) {
	if height <= 0 {
		return
	}

	workers = Workers(workers)
	chunks := height / minRowsPerChunk
	if chunks < 1 {
		chunks = 1
	}
	if workers > chunks {
		workers = chunks
	}

	if workers == 1 {
		fn(0, height)
		return
	}

	step := (height + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < height; start += step {
		end := start + step
		if end > height {
			end = height
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}
