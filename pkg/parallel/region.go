package parallel

import "sync"

// Barrier is a reusable (cyclic) barrier for N parties: Wait blocks the
// calling goroutine until exactly N goroutines have called Wait, then
// releases all of them and resets so the barrier can be used again for the
// next phase. It is the Go translation of an OpenMP "omp barrier".
type Barrier struct {
	n       int
	mu      sync.Mutex
	cond    *sync.Cond
	count   int
	gen     uint64
}

// NewBarrier creates a barrier for n parties. n must be >= 1.
func NewBarrier(n int) *Barrier {
	b := &Barrier{n: n}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait blocks until n goroutines have called Wait on this generation.
func (b *Barrier) Wait() {
	b.mu.Lock()
	defer b.mu.Unlock()
	gen := b.gen
	b.count++
	if b.count == b.n {
		b.count = 0
		b.gen++
		b.cond.Broadcast()
		return
	}
	for gen == b.gen {
		b.cond.Wait()
	}
}

// WorkerCtx is handed to every goroutine started by Region: its identity
// within the parallel region, the region's worker count, and the shared
// barrier used to synchronize phases.
type WorkerCtx struct {
	ID      int
	N       int
	Barrier *Barrier
}

// Range computes this worker's contiguous slice of [0, total), using the
// same division as the prefix-sum protocol: total/N per worker, with the
// first total%N workers taking one extra element.
func (w *WorkerCtx) Range(total int64) (lo, hi int64) {
	n := int64(w.N)
	base := total / n
	rem := total % n
	id := int64(w.ID)
	if id < rem {
		lo = id * (base + 1)
		hi = lo + base + 1
	} else {
		lo = rem*(base+1) + (id-rem)*base
		hi = lo + base
	}
	return lo, hi
}

// Single runs fn on exactly one worker (ID == 0), with a barrier on either
// side, matching "omp single" semantics (which has an implicit barrier at
// exit).
func (w *WorkerCtx) Single(fn func()) {
	w.Barrier.Wait()
	if w.ID == 0 {
		fn()
	}
	w.Barrier.Wait()
}

// Region forks `workers` goroutines, each invoked with a *WorkerCtx sharing
// one Barrier, and joins on all of them before returning. This is the
// translation of a top-level "omp parallel" block: every phase of CSR
// build and BFS runs inside exactly one Region call.
func Region(workers int, fn func(ctx *WorkerCtx)) {
	if workers < 1 {
		workers = 1
	}
	barrier := NewBarrier(workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(id int) {
			defer wg.Done()
			fn(&WorkerCtx{ID: id, N: workers, Barrier: barrier})
		}(i)
	}
	wg.Wait()
}
