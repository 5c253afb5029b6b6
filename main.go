/*
sGDML dataset generation
------------------------
Compute energies, forces and non-adiabatic coupling vectors for every
geometry in a multi-frame xyz file and collect them into extended-xyz
training files suitable for fitting machine-learned potential energy
surfaces.

Input files:
  - geometries.xyz: sampled geometries, same atom order in every frame
  - grad.in: Q-Chem input template controlling which gradients and
    couplings are computed; its $molecule block is replaced per frame

Output files:
  - gradients_<I>.xyz: geometries, energies and forces of state I
  - coupling_<I>-<J>.xyz: geometries and coupling vectors between
    states I and J

One file is created for each gradient and each coupling pair found in
the calculation output. Failed calculations are reported on stderr and
skipped over; the run continues with the remaining geometries.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
)

// Errors used throughout
var (
	ErrQChemFailed      = errors.New("Q-Chem calculation returned an error")
	ErrOutputNotFound   = errors.New("Q-Chem output file not found")
	ErrMoleculeNotFound = errors.New("no $molecule section in input script")
)

// Flags
var (
	cpuprofile = flag.String("cpu", "", "write a CPU profile")
	debug      = flag.Bool("debug", false, "toggle debugging information")
)

func main() {
	host, _ := os.Hostname()
	flag.Parse()
	args := flag.Args()
	infile := "dataset.toml"
	if len(args) >= 1 {
		infile = args[0]
	}
	conf, err := LoadConfig(infile)
	if err != nil {
		log.Fatalf("%v loading %s", err, infile)
	}
	fmt.Printf("running on host: %s\n", host)
	fmt.Print(conf)
	if conf.Calculator == "qchem" {
		if _, err := os.Stat(conf.Script); err != nil {
			log.Fatalf("Q-Chem input script %q not found", conf.Script)
		}
		if ext := filepath.Ext(conf.Script); ext != ".in" {
			log.Fatalf("Q-Chem input script extension should be .in, got %q", ext)
		}
	}
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}
	run, err := GetCalculator(conf.Calculator, conf)
	if err != nil {
		log.Fatal(err)
	}
	xyz, err := OpenXYZ(conf.GeomFile)
	if err != nil {
		log.Fatalf("%v opening %s", err, conf.GeomFile)
	}
	defer xyz.Close()
	agg := NewAggregator(conf.OutDir)
	defer agg.Close()
	for o := range RunPool(conf.NJobs, xyz.Stream(), run) {
		if o.Err != nil {
			log.Printf("geometry %d: %v", o.Index, o.Err)
		}
		if o.Res == nil {
			continue
		}
		if !o.Res.Ok {
			log.Printf("geometry %d: no success marker in output", o.Index)
		}
		if *debug {
			fmt.Printf("geometry %d: %d gradients, %d couplings\n",
				o.Index, len(o.Res.Gradients), len(o.Res.Couplings))
		}
		if err := agg.Write(o.Res); err != nil {
			log.Fatalf("%v writing records for geometry %d", err, o.Index)
		}
	}
	fmt.Println("FINISHED")
}
