package cpp

import (
	"os"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEngineDefineAndExpand(t *testing.T) {
	e := NewEngine(EngineOptions{})
	out := e.ProcessCode("#define SIZE 10\nint arr[SIZE];\n", true, false, "")
	want := "int arr[10];\n"
	if out != want {
		t.Errorf("Output = %q, want %q", out, want)
	}
}

func TestEngineUndef(t *testing.T) {
	e := NewEngine(EngineOptions{})
	out := e.ProcessCode("#define FLAG 1\n#undef FLAG\nint x = FLAG;\n", true, false, "")
	want := "int x = FLAG;\n"
	if out != want {
		t.Errorf("Output = %q, want %q", out, want)
	}
}

func TestEngineConditionalSkipsInactiveBranch(t *testing.T) {
	e := NewEngine(EngineOptions{})
	code := "#if 0\nint skipped;\n#else\nint kept;\n#endif\n"
	out := e.ProcessCode(code, true, false, "")
	want := "int kept;\n"
	if out != want {
		t.Errorf("Output = %q, want %q", out, want)
	}
}

func TestEngineIfdefIfndef(t *testing.T) {
	e := NewEngine(EngineOptions{})
	code := "#define HAVE_FOO\n#ifdef HAVE_FOO\nint a;\n#endif\n#ifndef HAVE_BAR\nint b;\n#endif\n"
	out := e.ProcessCode(code, true, false, "")
	want := "int a;\nint b;\n"
	if out != want {
		t.Errorf("Output = %q, want %q", out, want)
	}
}

func TestEngineFunctionLikeMacroVariadic(t *testing.T) {
	e := NewEngine(EngineOptions{})
	code := "#define LOG(fmt, ...) printf(fmt, __VA_ARGS__)\nLOG(\"%d\", 1, 2);\n"
	out := e.ProcessCode(code, true, false, "")
	want := "printf(\"%d\", 1, 2);\n"
	if out != want {
		t.Errorf("Output = %q, want %q", out, want)
	}
}

func TestEngineLeadingBlankLinesDroppedCommentAttachesToCode(t *testing.T) {
	e := NewEngine(EngineOptions{})
	code := "\n\n// leading comment\nint x;\n"
	out := e.ProcessCode(code, true, false, "")
	want := "// leading comment\nint x;\n"
	if out != want {
		t.Errorf("Output = %q, want %q", out, want)
	}
}

func TestEngineCodeAllKeepsDirectivesAndExpandsCode(t *testing.T) {
	e := NewEngine(EngineOptions{})
	code := "#define X 1\nint y = X;\n"
	out := e.ProcessCode(code, true, true, "")
	want := "#define X 1\nint y = 1;\n"
	if out != want {
		t.Errorf("CodeAll = %q, want %q", out, want)
	}
}

func TestEngineResetOutputKeepsMacros(t *testing.T) {
	e := NewEngine(EngineOptions{})
	e.ProcessCode("#define X 7\n", true, false, "")
	e.ResetOutput()
	out := e.ProcessCode("int v = X;\n", true, false, "")
	want := "int v = 7;\n"
	if out != want {
		t.Errorf("Output = %q, want %q", out, want)
	}
}

func TestEngineResetClearsEverything(t *testing.T) {
	e := NewEngine(EngineOptions{})
	e.ProcessCode("#define X 7\n", true, false, "")
	e.Reset()
	out := e.ProcessCode("int v = X;\n", true, false, "")
	want := "int v = X;\n"
	if out != want {
		t.Errorf("Output = %q, want %q", out, want)
	}
}

// engineCaseFile mirrors the integration-test YAML fixture pattern used by
// the wider example pack, adapted to this engine's scenario shape.
type engineCaseFile struct {
	Cases []engineCase `yaml:"cases"`
}

type engineCase struct {
	Name   string `yaml:"name"`
	Input  string `yaml:"input"`
	Expect string `yaml:"expect"`
}

func TestEngineGoldenCases(t *testing.T) {
	data, err := os.ReadFile("testdata/engine_cases.yaml")
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	var file engineCaseFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	for _, tc := range file.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			e := NewEngine(EngineOptions{})
			got := e.ProcessCode(tc.Input, true, false, "")
			if got != tc.Expect {
				t.Errorf("ProcessCode(%q) = %q, want %q", tc.Input, got, tc.Expect)
			}
		})
	}
}
