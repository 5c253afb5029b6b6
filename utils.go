package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	// from https://physics.nist.gov/cgi-bin/cuu/Value?bohrrada0
	bohrToAngs = 0.529177249
	// from https://physics.nist.gov/cgi-bin/cuu/Value?hrev
	hartreeToEv = 27.211396132
)

// toFloat converts a list of strings to float64s with
// strconv.ParseFloat
func toFloat(strs []string) ([]float64, error) {
	ret := make([]float64, len(strs))
	var err error
	for i, s := range strs {
		ret[i], err = strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// dumpTail writes the last n lines of filename to w. Used for
// surfacing the end of a failed calculation's log file.
func dumpTail(w io.Writer, filename string, n int) {
	byts, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(w, "dumpTail: %v\n", err)
		return
	}
	lines := strings.Split(strings.TrimRight(string(byts), "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}
