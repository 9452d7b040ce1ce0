package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCmdRejectsOddFileArgs(t *testing.T) {
	resetFlags()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"only_input.c"})
	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected an error for an odd number of file arguments")
	}
	if !strings.Contains(err.Error(), "pairs") {
		t.Errorf("error = %q, want it to mention file pairs", err.Error())
	}
}

func TestRootCmdRejectsBadVerbosity(t *testing.T) {
	resetFlags()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"-v", "9", "in.c", "out.c"})
	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected an error for an out-of-range verbosity")
	}
	if !strings.Contains(err.Error(), "verbosity") {
		t.Errorf("error = %q, want it to mention verbosity", err.Error())
	}
}

func TestRootCmdPrintsVersion(t *testing.T) {
	resetFlags()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"-V"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), version) {
		t.Errorf("output = %q, want it to contain version %q", out.String(), version)
	}
}
