package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

type integrationPair struct {
	In  string `yaml:"in"`
	Out string `yaml:"out"`
}

type integrationCase struct {
	Name        string            `yaml:"name"`
	Args        []string          `yaml:"args"`
	Files       map[string]string `yaml:"files"`
	ProcessOnly []string          `yaml:"processOnly"`
	Pairs       []integrationPair `yaml:"pairs"`
	Expect      map[string]string `yaml:"expect"`
}

type integrationCaseFile struct {
	Cases []integrationCase `yaml:"cases"`
}

func resetFlags() {
	includeDirs = nil
	preprocessOnly = nil
	fullOutput = false
	verbosity = 0
	showVersion = false
}

func TestIntegrationCases(t *testing.T) {
	data, err := os.ReadFile("testdata/integration_cases.yaml")
	if err != nil {
		t.Fatalf("reading fixture file: %v", err)
	}
	var caseFile integrationCaseFile
	if err := yaml.Unmarshal(data, &caseFile); err != nil {
		t.Fatalf("parsing fixture file: %v", err)
	}

	for _, tc := range caseFile.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			tmpDir := t.TempDir()
			for name, content := range tc.Files {
				if err := os.WriteFile(filepath.Join(tmpDir, name), []byte(content), 0644); err != nil {
					t.Fatalf("writing fixture file %q: %v", name, err)
				}
			}

			resetFlags()
			var out, errOut bytes.Buffer
			cmd := newRootCmd(&out, &errOut)

			var cmdArgs []string
			for _, a := range tc.Args {
				if a == "{{tmp}}" {
					a = tmpDir
				}
				cmdArgs = append(cmdArgs, a)
			}
			for _, procOnly := range tc.ProcessOnly {
				cmdArgs = append(cmdArgs, "-i", tmpDir, "-p", filepath.Join(tmpDir, procOnly))
			}
			for _, p := range tc.Pairs {
				cmdArgs = append(cmdArgs, "-i", tmpDir, filepath.Join(tmpDir, p.In), filepath.Join(tmpDir, p.Out))
			}
			cmd.SetArgs(cmdArgs)

			if err := cmd.Execute(); err != nil {
				t.Fatalf("pycpp failed: %v\nstderr: %s", err, errOut.String())
			}

			for name, want := range tc.Expect {
				got, err := os.ReadFile(filepath.Join(tmpDir, name))
				if err != nil {
					t.Fatalf("reading output file %q: %v", name, err)
				}
				if string(got) != want {
					t.Errorf("file %q = %q, want %q", name, string(got), want)
				}
			}
		})
	}
}
