package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Aggregator owns the per-state and per-pair output files. Each file
// is created fresh on the first record written to it during the run
// and appended to afterwards, so every file holds its records in
// input geometry order.
type Aggregator struct {
	dir   string
	files map[string]*os.File
}

func NewAggregator(dir string) *Aggregator {
	return &Aggregator{dir: dir, files: make(map[string]*os.File)}
}

func (a *Aggregator) file(name string) (*os.File, error) {
	if f, ok := a.files[name]; ok {
		return f, nil
	}
	f, err := os.Create(filepath.Join(a.dir, name))
	if err != nil {
		return nil, err
	}
	a.files[name] = f
	return f, nil
}

// Write appends one frame to the output file of every gradient and
// coupling res contains. Gradients are negated on the way out, so the
// forces files hold forces; coupling vectors are written as they are.
// Coupling records carry the energy of the highest gradient state in
// res, which the corresponding forces file was just written with.
func (a *Aggregator) Write(res *Result) error {
	if res.Geometry == nil {
		if len(res.Gradients) > 0 || len(res.Couplings) > 0 {
			log.Printf("aggregate: no geometry parsed, dropping %d gradients and %d couplings",
				len(res.Gradients), len(res.Couplings))
		}
		return nil
	}
	states := make([]int, 0, len(res.Gradients))
	for s := range res.Gradients {
		states = append(states, s)
	}
	sort.Ints(states)
	last := 0
	for _, s := range states {
		f, err := a.file(fmt.Sprintf("gradients_%d.xyz", s))
		if err != nil {
			return err
		}
		var forces mat.Dense
		forces.Scale(-1, res.Gradients[s])
		WriteFrame(f, res.Symbols, res.Geometry, &forces, res.Energies[s])
		last = s
	}
	pairs := make([]StatePair, 0, len(res.Couplings))
	for p := range res.Couplings {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].I != pairs[j].I {
			return pairs[i].I < pairs[j].I
		}
		return pairs[i].J < pairs[j].J
	})
	for _, p := range pairs {
		f, err := a.file(fmt.Sprintf("coupling_%s.xyz", p))
		if err != nil {
			return err
		}
		WriteFrame(f, res.Symbols, res.Geometry, res.Couplings[p], res.Energies[last])
	}
	return nil
}

// Close closes every output file opened during the run
func (a *Aggregator) Close() error {
	var err error
	for _, f := range a.files {
		if e := f.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
