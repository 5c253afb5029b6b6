package main

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StatePair identifies an ordered pair of electronic states for a
// derivative coupling vector. The order is the one announced by the
// output file, not sorted, since (I, J) and (J, I) couplings point in
// opposite directions.
type StatePair struct {
	I, J int
}

func (p StatePair) String() string {
	return fmt.Sprintf("%d-%d", p.I, p.J)
}

// Result holds the data parsed from one Q-Chem output file. All
// lengths are in bohr and all energies in hartree; the conversions
// happen at parse time and nowhere else.
type Result struct {
	// Ok is true only if the output contains the Q-Chem success line
	Ok      bool
	Symbols []string
	// Geometry is natoms x 3
	Geometry *mat.Dense
	// SCF is the ground state total energy
	SCF float64
	// Energies maps state index to total energy; 0 is the ground state
	Energies map[int]float64
	// ExcEnergies maps excited state index to excitation energy in eV,
	// as printed in the TDDFT section
	ExcEnergies map[int]float64
	// Strengths maps excited state index to oscillator strength
	Strengths map[int]float64
	// Gradients maps state index to a natoms x 3 energy derivative
	Gradients map[int]*mat.Dense
	// Couplings maps a state pair to a natoms x 3 coupling vector
	Couplings map[StatePair]*mat.Dense
}

func NewResult() *Result {
	return &Result{
		Energies:    make(map[int]float64),
		ExcEnergies: make(map[int]float64),
		Strengths:   make(map[int]float64),
		Gradients:   make(map[int]*mat.Dense),
		Couplings:   make(map[StatePair]*mat.Dense),
	}
}

// NAtoms returns the number of atoms in the parsed geometry
func (r *Result) NAtoms() int {
	if r.Geometry == nil {
		return 0
	}
	n, _ := r.Geometry.Dims()
	return n
}

// Job pairs one input geometry with its submission index. The index
// determines both the scratch directory of the calculation and the
// position of its records in the output files.
type Job struct {
	Index int
	Geom  *Geometry
}

// Outcome is the parsed result of one Job, tagged with its submission
// index so the collector can restore input order.
type Outcome struct {
	Index int
	Res   *Result
	Err   error
}

// RunFunc runs the electronic structure calculation for one geometry
// and returns whatever could be parsed from its output. A non-nil
// error never aborts the batch.
type RunFunc func(Job) (*Result, error)
