package main

import "sync"

// RunPool fans jobs out over nworkers concurrent calls to run and
// returns a channel yielding exactly one Outcome per job in
// submission order, regardless of the order the workers finish in.
// The collector buffers out-of-order completions keyed by index until
// their turn comes, so output files downstream see records in input
// geometry order.
func RunPool(nworkers int, jobs <-chan Job, run RunFunc) <-chan Outcome {
	if nworkers < 1 {
		nworkers = 1
	}
	done := make(chan Outcome, nworkers)
	var wg sync.WaitGroup
	wg.Add(nworkers)
	for w := 0; w < nworkers; w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				res, err := run(j)
				done <- Outcome{Index: j.Index, Res: res, Err: err}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(done)
	}()
	out := make(chan Outcome)
	go func() {
		defer close(out)
		next := 0
		pending := make(map[int]Outcome)
		for o := range done {
			pending[o.Index] = o
			for {
				ord, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				out <- ord
				next++
			}
		}
	}()
	return out
}
