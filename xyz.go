package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Geometry is one frame of the input coordinate file. Coords is
// natoms x 3 in Angstroms, as stored in the xyz format. The symbol
// order is the same in every frame of a run.
type Geometry struct {
	Symbols []string
	Coords  *mat.Dense
}

// XYZReader reads a multi-frame xyz file one frame at a time, so the
// whole trajectory is never held in memory.
type XYZReader struct {
	f *os.File
	s *bufio.Scanner
}

func OpenXYZ(filename string) (*XYZReader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	return &XYZReader{f: f, s: bufio.NewScanner(f)}, nil
}

func (r *XYZReader) Close() error { return r.f.Close() }

// Next returns the next frame or io.EOF after the last one. A frame
// is an atom count line, a comment line, and one line per atom.
func (r *XYZReader) Next() (*Geometry, error) {
	var natoms int
	for {
		if !r.s.Scan() {
			if err := r.s.Err(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		line := strings.TrimSpace(r.s.Text())
		if line == "" {
			continue
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("xyz: bad atom count line %q", line)
		}
		natoms = v
		break
	}
	if !r.s.Scan() {
		return nil, io.ErrUnexpectedEOF
	}
	symbols := make([]string, 0, natoms)
	coords := make([]float64, 0, 3*natoms)
	for i := 0; i < natoms; i++ {
		if !r.s.Scan() {
			return nil, io.ErrUnexpectedEOF
		}
		fields := strings.Fields(r.s.Text())
		if len(fields) < 4 {
			return nil, fmt.Errorf("xyz: malformed atom line %q", r.s.Text())
		}
		xyz, err := toFloat(fields[1:4])
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, fields[0])
		coords = append(coords, xyz...)
	}
	return &Geometry{
		Symbols: symbols,
		Coords:  mat.NewDense(natoms, 3, coords),
	}, nil
}

// Stream feeds the frames of r to the returned channel as indexed
// jobs and closes it at the end of the file. A read error ends the
// stream early; frames already delivered are unaffected.
func (r *XYZReader) Stream() <-chan Job {
	ch := make(chan Job)
	go func() {
		defer close(ch)
		for i := 0; ; i++ {
			geom, err := r.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				log.Printf("xyz: %v, stopping input", err)
				return
			}
			ch <- Job{Index: i, Geom: geom}
		}
	}()
	return ch
}

// WriteFrame writes one extended-xyz frame with the per-atom data in
// vec stored in the momenta columns, the layout the sGDML tooling
// reads its training files from.
func WriteFrame(w io.Writer, symbols []string, geom, vec *mat.Dense, energy float64) {
	fmt.Fprintf(w, "%d\n", len(symbols))
	fmt.Fprintf(w,
		"Units=\"a.u.\" Energy=%.12f Properties=species:S:1:pos:R:3:momenta:R:3\n",
		energy)
	for i, s := range symbols {
		fmt.Fprintf(w, "%-2s %19.12f %19.12f %19.12f %19.12f %19.12f %19.12f\n",
			s,
			geom.At(i, 0), geom.At(i, 1), geom.At(i, 2),
			vec.At(i, 0), vec.At(i, 1), vec.At(i, 2),
		)
	}
}
