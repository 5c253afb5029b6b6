package main

import (
	"fmt"
	"path/filepath"
)

// GetCalculator returns the runner for the named electronic structure
// program. Every invocation of the returned function gets its own
// scratch directory under conf.Scratch, keyed by the geometry index
// and removed once the report has been read. Plugging in another
// program only requires that its reports speak the section grammar
// ParseOutput understands.
func GetCalculator(name string, conf Config) (RunFunc, error) {
	switch name {
	case "qchem":
		q, err := LoadQChem(conf.Script)
		if err != nil {
			return nil, err
		}
		script := filepath.Base(conf.Script)
		return func(j Job) (*Result, error) {
			dir := filepath.Join(conf.Scratch,
				fmt.Sprintf("GEOM_%05d", j.Index))
			return q.Run(dir, script, j.Geom, conf.NProcs, conf.Mem)
		}, nil
	}
	return nil, fmt.Errorf("unknown calculator %q", name)
}
