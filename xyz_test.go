package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNext(t *testing.T) {
	r, err := OpenXYZ("testfiles/geometries.xyz")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	wants := []*Geometry{
		{
			Symbols: []string{"C", "O"},
			Coords: mat.NewDense(2, 3, []float64{
				0.0, 0.0, -0.6456,
				0.0, 0.0, 0.4844,
			}),
		},
		{
			Symbols: []string{"C", "O"},
			Coords: mat.NewDense(2, 3, []float64{
				0.0, 0.0, -0.65,
				0.0, 0.0, 0.49,
			}),
		},
	}
	for i, want := range wants {
		got, err := r.Next()
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("frame %d: got\n%#v, wanted\n%#v\n", i, got, want)
		}
	}
	if _, err := r.Next(); err != io.EOF {
		t.Errorf("got %v after last frame, wanted io.EOF\n", err)
	}
}

func TestNextTruncated(t *testing.T) {
	f := filepath.Join(t.TempDir(), "cut.xyz")
	err := os.WriteFile(f, []byte("2\nframe 1\nC 0.0 0.0 0.0\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	r, err := OpenXYZ(f)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if _, err := r.Next(); err != io.ErrUnexpectedEOF {
		t.Errorf("got %v, wanted io.ErrUnexpectedEOF\n", err)
	}
}

func TestStream(t *testing.T) {
	r, err := OpenXYZ("testfiles/geometries.xyz")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	next := 0
	for j := range r.Stream() {
		if j.Index != next {
			t.Errorf("got index %d, wanted %d\n", j.Index, next)
		}
		if len(j.Geom.Symbols) != 2 {
			t.Errorf("frame %d: got %d atoms, wanted 2\n", j.Index,
				len(j.Geom.Symbols))
		}
		next++
	}
	if next != 2 {
		t.Errorf("got %d jobs, wanted 2\n", next)
	}
}

func TestWriteFrame(t *testing.T) {
	var buf bytes.Buffer
	geom := mat.NewDense(1, 3, []float64{1.5, -0.25, 0.0})
	vec := mat.NewDense(1, 3, []float64{0.5, 0.0, -2.0})
	WriteFrame(&buf, []string{"H"}, geom, vec, -76.4)
	want := "1\n" +
		"Units=\"a.u.\" Energy=-76.400000000000 " +
		"Properties=species:S:1:pos:R:3:momenta:R:3\n" +
		"H       1.500000000000     -0.250000000000      0.000000000000" +
		"      0.500000000000      0.000000000000     -2.000000000000\n"
	if got := buf.String(); got != want {
		t.Errorf("got\n%q, wanted\n%q\n", got, want)
	}
}

// frames written by WriteFrame must read back through XYZReader, since
// the forces files of one run can seed the geometries of the next
func TestFrameRoundTrip(t *testing.T) {
	f := filepath.Join(t.TempDir(), "out.xyz")
	w, err := os.Create(f)
	if err != nil {
		t.Fatal(err)
	}
	geom := mat.NewDense(2, 3, []float64{
		0.0, 0.0, -1.25,
		0.0, 0.0, 0.875,
	})
	vec := mat.NewDense(2, 3, nil)
	WriteFrame(w, []string{"C", "O"}, geom, vec, -113.0)
	w.Close()
	r, err := OpenXYZ(f)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	got, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}
	want := &Geometry{Symbols: []string{"C", "O"}, Coords: geom}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got\n%#v, wanted\n%#v\n", got, want)
	}
}
