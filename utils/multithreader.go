// Package utils holds the helpers shared between neuroflow and its subpackages.
package utils

import (
	"runtime"
	"sync"
)

// MultiThread calls f for every index in [start, end), handing out blocks of chunk consecutive
// indexes to at most maxThreads goroutines (runtime.NumCPU() if maxThreads < 1). It returns once
// every call has returned, and runs everything on the calling goroutine when one worker would
// do.
//
// Calls happen in no particular order; f needs no locking so long as index i only writes to
// state owned by i.
func MultiThread(start, end int, f func(int), chunk, maxThreads int) {
	if end <= start {
		return
	}

	if chunk < 1 {
		chunk = 1
	}

	if maxThreads < 1 {
		maxThreads = runtime.NumCPU()
	}

	blocks := (end - start + chunk - 1) / chunk
	workers := blocks
	if workers > maxThreads {
		workers = maxThreads
	}

	if workers == 1 {
		for i := start; i < end; i++ {
			f(i)
		}
		return
	}

	starts := make(chan int, blocks)
	for b := start; b < end; b += chunk {
		starts <- b
	}
	close(starts)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for b := range starts {
				stop := b + chunk
				if stop > end {
					stop = end
				}

				for i := b; i < stop; i++ {
					f(i)
				}
			}
		}()
	}

	wg.Wait()
}
