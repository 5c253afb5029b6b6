package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Trigger and sentinel lines in a Q-Chem output file
const (
	geomLine     = "Standard Nuclear Orientation (Angstroms)"
	scfLine      = "Total energy in the final basis set"
	tddftLine    = "TDDFT Excitation Energies"
	couplingLine = "between states"
	etfLine      = "with ETF"
	scfGradLine  = "Gradient of SCF Energy"
	scfGradEnd   = "Max gradient"
	stateLine    = "State Energy is"
	exGradLine   = "Gradient of the state energy"
	exGradEnd    = "Gradient time"
	okLine       = "Thank you very much for using Q-Chem."
	separator    = "----"
)

// ParseOutput reads the full text of one Q-Chem calculation and
// collects every recognized section into a Result. The sections can
// occur in any order and all of them are optional; a missing section
// just leaves its part of the Result empty, and a section cut short
// keeps whatever parsed before the malformed line. ParseOutput never
// returns an error and never panics on malformed input.
func ParseOutput(r io.Reader) *Result {
	res := NewResult()
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	// state announced by the last "State Energy is" line, the target
	// of a following excited state gradient block
	state := 0
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		switch {
		case strings.Contains(line, geomLine):
			i = readGeometry(lines, i+4, res)
		case strings.Contains(line, scfLine):
			fields := strings.Fields(line)
			if len(fields) > 8 {
				if v, err := strconv.ParseFloat(fields[8], 64); err == nil {
					res.SCF = v
					res.Energies[0] = v
				}
			}
		case strings.Contains(line, tddftLine):
			i = readExcitations(lines, i+3, res)
		case strings.Contains(line, couplingLine):
			i = readCoupling(lines, i, res)
		case strings.Contains(line, scfGradLine):
			var grad *mat.Dense
			grad, i = readGradient(lines, i+1, scfGradEnd)
			if grad != nil {
				res.Gradients[0] = grad
			}
		case strings.Contains(line, "RPA") && strings.Contains(line, stateLine):
			if fields := strings.Fields(line); len(fields) > 1 {
				if s, err := strconv.Atoi(fields[1]); err == nil {
					state = s
				}
			}
		case strings.Contains(line, exGradLine):
			var grad *mat.Dense
			grad, i = readGradient(lines, i+1, exGradEnd)
			if grad != nil {
				res.Gradients[state] = grad
			}
		case strings.Contains(line, okLine):
			res.Ok = true
		}
	}
	return res
}

// readGeometry reads one (index, symbol, x, y, z) row per atom
// starting at line i, up to the closing separator, and stores the
// symbols and the bohr-converted positions in res. It returns the
// index of the last line it consumed.
func readGeometry(lines []string, i int, res *Result) int {
	var (
		symbols []string
		coords  []float64
	)
	for ; i < len(lines); i++ {
		if strings.Contains(lines[i], separator) {
			break
		}
		fields := strings.Fields(lines[i])
		if len(fields) < 5 {
			return i
		}
		xyz, err := toFloat(fields[2:5])
		if err != nil {
			return i
		}
		symbols = append(symbols, fields[1])
		coords = append(coords, xyz...)
	}
	if len(symbols) == 0 {
		return i
	}
	geom := mat.NewDense(len(symbols), 3, coords)
	geom.Scale(1/bohrToAngs, geom)
	res.Symbols = symbols
	res.Geometry = geom
	return i
}

// readExcitations reads the TDDFT section: repeated "Excited state"
// lines with their oscillator strengths, up to the closing separator.
// Total energies for every listed state are derived from the SCF
// energy plus the eV-converted excitation energy.
func readExcitations(lines []string, i int, res *Result) int {
	state := 0
	for ; i < len(lines); i++ {
		line := lines[i]
		if strings.Contains(line, separator) {
			break
		}
		fields := strings.Fields(line)
		switch {
		case strings.Contains(line, "Excited state"):
			if len(fields) < 8 {
				return i
			}
			s, err := strconv.Atoi(strings.TrimSuffix(fields[2], ":"))
			if err != nil {
				return i
			}
			ev, err := strconv.ParseFloat(fields[7], 64)
			if err != nil {
				return i
			}
			state = s
			res.ExcEnergies[state] = ev
		case strings.Contains(line, "Strength"):
			if len(fields) < 3 {
				return i
			}
			if v, err := strconv.ParseFloat(fields[2], 64); err == nil {
				res.Strengths[state] = v
			}
		}
	}
	for s, ev := range res.ExcEnergies {
		res.Energies[s] = res.SCF + ev/hartreeToEv
	}
	return i
}

// readCoupling handles a derivative coupling block. Line i announces
// the two states; the vectors themselves follow the "DC ... with ETF"
// sub-header, which is the variant wanted, with two header lines to
// skip and one 3-vector per atom up to the closing separator. The
// block is stored under (I, J) exactly as announced.
func readCoupling(lines []string, i int, res *Result) int {
	fields := strings.Fields(lines[i])
	at := -1
	for k, f := range fields {
		if f == "states" {
			at = k
			break
		}
	}
	if at < 0 || len(fields) < at+4 {
		return i
	}
	I, err := strconv.Atoi(fields[at+1])
	if err != nil {
		return i
	}
	J, err := strconv.Atoi(fields[at+3])
	if err != nil {
		return i
	}
	for i++; i < len(lines); i++ {
		if strings.Contains(lines[i], "DC") &&
			strings.Contains(lines[i], etfLine) {
			break
		}
	}
	var vals []float64
	rows := 0
	for i += 3; i < len(lines); i++ {
		if strings.Contains(lines[i], separator) {
			break
		}
		fields := strings.Fields(lines[i])
		if len(fields) < 4 {
			return i
		}
		xyz, err := toFloat(fields[1:4])
		if err != nil {
			return i
		}
		vals = append(vals, xyz...)
		rows++
	}
	if rows > 0 {
		res.Couplings[StatePair{I, J}] = mat.NewDense(rows, 3, vals)
	}
	return i
}

// readGradient reads a chunked gradient table beginning at line i and
// ending at a line containing term. Each chunk is an atom index
// header row followed by three rows, one per Cartesian component,
// holding the derivatives for up to six atoms. The chunks are
// transposed to atom-major order and concatenated into one natoms x 3
// matrix. A malformed chunk discards the whole block.
func readGradient(lines []string, i int, term string) (*mat.Dense, int) {
	var vals []float64
	natoms := 0
	for i < len(lines) {
		if strings.Contains(lines[i], term) {
			break
		}
		header := strings.Fields(lines[i])
		if _, err := toFloat(header); err != nil || len(header) == 0 {
			return nil, i
		}
		width := len(header)
		chunk := mat.NewDense(3, width, nil)
		for c := 0; c < 3; c++ {
			i++
			if i >= len(lines) {
				return nil, i
			}
			fields := strings.Fields(lines[i])
			if len(fields) != width+1 {
				return nil, i
			}
			row, err := toFloat(fields[1:])
			if err != nil {
				return nil, i
			}
			chunk.SetRow(c, row)
		}
		t := chunk.T()
		for a := 0; a < width; a++ {
			vals = append(vals, t.At(a, 0), t.At(a, 1), t.At(a, 2))
		}
		natoms += width
		i++
	}
	if natoms == 0 {
		return nil, i
	}
	return mat.NewDense(natoms, 3, vals), i
}
