package algebra

import (
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Execute splits [0, n) into contiguous chunks, one per CPU, and runs work on
// every chunk concurrently. It returns the first error encountered.
func Execute(n int, work func(start, end int) error) error {
	if n <= 0 {
		return nil
	}
	workers := min(runtime.NumCPU(), n)
	size := (n + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < n; start += size {
		start, end := start, min(start+size, n)
		g.Go(func() error {
			return work(start, end)
		})
	}
	return g.Wait()
}

// Reduce sums term(i) for i in [0, n) in the given module. The terms are
// computed in parallel and combined with the group law, so the result does
// not depend on the scheduling.
func Reduce[T Element](m Module[T], n int, term func(i int) T) T {
	var mu sync.Mutex
	acc := m.Zero()
	_ = Execute(n, func(start, end int) error {
		local := m.Zero()
		for i := start; i < end; i++ {
			local = m.Add(local, term(i))
		}
		mu.Lock()
		acc = m.Add(acc, local)
		mu.Unlock()
		return nil
	})
	return acc
}
