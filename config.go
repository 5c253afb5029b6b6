package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the run settings read from the TOML input file
type Config struct {
	// GeomFile is the multi-frame xyz file of sampled geometries
	GeomFile string
	// Script is the Q-Chem input template controlling which
	// gradients and couplings are computed
	Script string
	// Calculator selects the electronic structure program
	Calculator string
	// NProcs is the processor count for a single calculation
	NProcs int
	// Mem is the memory allocated per calculation, e.g. "6Gb"
	Mem string
	// NJobs is how many calculations run in parallel
	NJobs int
	// Scratch is the directory the per-geometry scratch directories
	// are created under
	Scratch string
	// OutDir is where the forces and coupling files are written
	OutDir string
}

func LoadConfig(filename string) (Config, error) {
	conf := Config{
		GeomFile:   "geometries.xyz",
		Script:     "grad.in",
		Calculator: "qchem",
		NProcs:     1,
		Mem:        "6Gb",
		NJobs:      1,
		Scratch:    "TMP",
		OutDir:     ".",
	}
	byts, err := os.ReadFile(filename)
	if err != nil {
		return conf, err
	}
	if err := toml.Unmarshal(byts, &conf); err != nil {
		return conf, err
	}
	return conf, nil
}

func (c Config) String() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "GeomFile: %s\n", c.GeomFile)
	fmt.Fprintf(&buf, "Script: %s\n", c.Script)
	fmt.Fprintf(&buf, "Calculator: %s\n", c.Calculator)
	fmt.Fprintf(&buf, "NProcs: %d\n", c.NProcs)
	fmt.Fprintf(&buf, "Mem: %s\n", c.Mem)
	fmt.Fprintf(&buf, "NJobs: %d\n", c.NJobs)
	fmt.Fprintf(&buf, "Scratch: %s\n", c.Scratch)
	fmt.Fprintf(&buf, "OutDir: %s\n", c.OutDir)
	return buf.String()
}
