package main

import (
	"bufio"
	"bytes"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// qchemCmd is the wrapper script that submits one Q-Chem input file
// and blocks until the calculation has finished. Swapped out in the
// tests.
var qchemCmd = "run_qchem.sh"

// QChem holds the pieces of a Q-Chem input script split around its
// $molecule section
type QChem struct {
	// Head runs through the charge and multiplicity line, which is
	// kept verbatim from the template
	Head string
	// Tail runs from the closing $end to the end of the script
	Tail string
}

// LoadQChem loads a template input script and splits it around the
// molecule block, so that only the coordinate lines are replaced per
// geometry and every other directive is preserved unchanged.
func LoadQChem(filename string) (*QChem, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	var (
		buf   bytes.Buffer
		q     QChem
		inmol bool
	)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.Contains(line, "$molecule") && q.Head == "":
			buf.WriteString(line + "\n")
			// charge and multiplicity
			if scanner.Scan() {
				buf.WriteString(scanner.Text() + "\n")
			}
			q.Head = buf.String()
			buf.Reset()
			inmol = true
		case inmol && strings.Contains(line, "$end"):
			inmol = false
			buf.WriteString(line + "\n")
		case inmol:
			// template geometry, replaced per job
		default:
			buf.WriteString(line + "\n")
		}
	}
	q.Tail = buf.String()
	if q.Head == "" {
		return nil, ErrMoleculeNotFound
	}
	return &q, nil
}

// FormatGeom renders one geometry in the layout Q-Chem expects inside
// the $molecule block
func FormatGeom(g *Geometry) string {
	var buf strings.Builder
	for i, s := range g.Symbols {
		fmt.Fprintf(&buf, "%-2s   %+14.10f   %+14.10f   %+14.10f\n",
			s,
			g.Coords.At(i, 0),
			g.Coords.At(i, 1),
			g.Coords.At(i, 2),
		)
	}
	return buf.String()
}

// WriteInput writes a Q-Chem input file for g
func (q *QChem) WriteInput(filename string, g *Geometry) error {
	var buf bytes.Buffer
	buf.WriteString(q.Head)
	buf.WriteString(FormatGeom(g))
	buf.WriteString(q.Tail)
	return os.WriteFile(filename, buf.Bytes(), 0644)
}

// Run performs one calculation for g inside dir, which is created
// first and removed again on every return path. The input script is
// written into dir, the engine is invoked there, and the report it
// leaves behind is parsed. When the engine exits non-zero the tail of
// the report is echoed to stderr and ErrQChemFailed is returned
// together with whatever could still be parsed, so one bad geometry
// never takes down the batch.
func (q *QChem) Run(dir, script string, g *Geometry, nprocs int, mem string) (*Result, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)
	if err := q.WriteInput(filepath.Join(dir, script), g); err != nil {
		return nil, err
	}
	outfile := strings.TrimSuffix(script, filepath.Ext(script)) + ".out"
	outpath := filepath.Join(dir, outfile)
	cmd := exec.Command(qchemCmd, "--wait", script, strconv.Itoa(nprocs), mem)
	cmd.Dir = dir
	runErr := cmd.Run()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, " ****** tail of log file %s ******\n", outpath)
		dumpTail(os.Stderr, outpath, 30)
		fmt.Fprintf(os.Stderr, " ****** end of log file ******\n")
		log.Printf("qchem: %v in %s, keeping partial output", runErr, dir)
	}
	f, err := os.Open(outpath)
	if err != nil {
		return nil, ErrOutputNotFound
	}
	defer f.Close()
	res := ParseOutput(f)
	if runErr != nil {
		return res, ErrQChemFailed
	}
	return res, nil
}
