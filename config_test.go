package main

import (
	"reflect"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	got, err := LoadConfig("testfiles/dataset.toml")
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		GeomFile:   "testfiles/geometries.xyz",
		Script:     "testfiles/grad.in",
		Calculator: "qchem",
		NProcs:     4,
		Mem:        "2Gb",
		NJobs:      2,
		Scratch:    "TMP",
		OutDir:     ".",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got\n%#v, wanted\n%#v\n", got, want)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	if _, err := LoadConfig("testfiles/nonexistent.toml"); err == nil {
		t.Error("got nil error for missing config file")
	}
}
