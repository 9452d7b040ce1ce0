// engine.go implements the Engine Facade: the public entry point that ties
// the formatter, chunker, condition manager, macro table/expander,
// expression evaluator, file loader, directive dispatcher, and output
// assembler together into ProcessFile/ProcessCode.
package cpp

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaxIncludeDepth bounds nested #include recursion.
const MaxIncludeDepth = 200

// EngineOptions configures a new Engine: include directories and message
// verbosity.
type EngineOptions struct {
	IncludeDirs []string
	Verbosity   int
}

// Engine is the stateful facade that drives one preprocessing session. Two
// Engine values never share state.
type Engine struct {
	Macros *MacroTable
	Files  *FileLoader
	Log    *PreprocLogger

	cond         *ConditionManager
	output       *Output
	includeStack []string
}

// NewEngine returns a ready-to-use Engine configured per opts.
func NewEngine(opts EngineOptions) *Engine {
	logger := NewPreprocLogger()
	logger.Verbosity = opts.Verbosity
	e := &Engine{
		Macros: NewMacroTable(),
		Files:  NewFileLoader(logger.Logger),
		Log:    logger,
		cond:   NewConditionManager(),
		output: NewOutput(),
	}
	if len(opts.IncludeDirs) > 0 {
		e.Files.AddIncludeDir(opts.IncludeDirs...)
	}
	return e
}

// Output returns the trimmed ("Code") output stream accumulated so far.
func (e *Engine) Output() string {
	return e.output.Code
}

// OutputFull returns the verbatim ("CodeAll") output stream accumulated so
// far.
func (e *Engine) OutputFull() string {
	return e.output.CodeAll
}

// Reset clears macros, the condition manager, and the output streams, and
// cuts the include search list back to just the current directory
// (mirrors FileIO.reset/ConditionManager.reset/PreprocOutput.reset in the
// original).
func (e *Engine) Reset() {
	e.Macros.Reset()
	e.Files.Reset()
	e.cond.Reset()
	e.output.Reset()
	e.includeStack = nil
}

// ResetOutput clears only the output streams, leaving macros and the
// condition manager's state untouched — used between successive output
// file pairs on the command line so macro definitions persist.
func (e *Engine) ResetOutput() {
	e.output.Reset()
}

// AddIncludeDirs appends one or more directories to the include search
// list.
func (e *Engine) AddIncludeDirs(dirPaths ...string) {
	e.Files.AddIncludeDir(dirPaths...)
}

// ProcessFile reads filePath through the include search list and processes
// it as the top-level translation unit, returning the trimmed or verbatim
// output stream for this call. If the file cannot be located, the loader
// logs a warning and an empty input is processed.
func (e *Engine) ProcessFile(filePath string, globalOutput, fullLocalOutput bool) string {
	code := e.Files.Read(filePath)
	return e.ProcessCode(code, globalOutput, fullLocalOutput, filePath)
}

// ProcessCode processes one unit of source text: directives execute their
// side effects, code is macro-expanded while the current branch is active,
// and every segment is folded into the global output stream (when
// globalOutput is true) and into a fresh local stream whose Code or
// CodeAll (chosen by fullLocalOutput) is returned.
func (e *Engine) ProcessCode(code string, globalOutput, fullLocalOutput bool, procFileName string) string {
	e.Log.ProcFileName = procFileName
	e.Log.ProcFileLine = 0
	e.Log.Msg(fmt.Sprintf("Processing %s.", describeUnit(procFileName)), 1, 0)

	origDepth := e.cond.Depth()
	localOutput := NewOutput()

	segments := Chunk(code, e.Log.Logger)
	lineNo := 0
	for _, seg := range segments {
		e.Log.ProcFileLine = lineNo
		lineNo += strings.Count(seg.Text, "\n")

		if seg.Kind == SegmentDirective {
			joined := JoinLineContinuations(seg.Text, true)
			if !dispatchDirective(e, strings.TrimRight(joined, "\n")) {
				e.Log.Msg(fmt.Sprintf("    Ignoring unrecognized directive '%s'.", CodeSample(joined, 80)), 2, 0)
			}
			if globalOutput {
				e.output.AddSegment(seg)
			}
			localOutput.AddSegment(seg)
			continue
		}

		if !e.cond.BranchActive() {
			// Lines inside a skipped conditional branch are dropped from
			// Code entirely but still reflected verbatim in CodeAll.
			if globalOutput {
				e.output.AddCodeAllOnly(seg.Text)
			}
			localOutput.AddCodeAllOnly(seg.Text)
			continue
		}

		if seg.Kind == SegmentCode {
			seg.Text = ExpandMacros(seg.Text, e.Macros, e.Log.Logger)
		}
		if globalOutput {
			e.output.AddSegment(seg)
		}
		localOutput.AddSegment(seg)
	}

	if e.cond.Depth() != origDepth {
		e.Log.Err("Unterminated #if detected (%l).", SeverityCritical)
	}

	if fullLocalOutput {
		return localOutput.CodeAll
	}
	return localOutput.Code
}

func describeUnit(name string) string {
	if name == "" {
		return "input"
	}
	return fmt.Sprintf("file '%s'", name)
}

// ExpandMacros expands macro references in code using the engine's macro
// table, independent of any condition/output state.
func (e *Engine) ExpandMacros(code string) string {
	return ExpandMacros(code, e.Macros, e.Log.Logger)
}

// Evaluate evaluates a #if/#elif-style constant expression and returns its
// integer value plus whether evaluation succeeded.
func (e *Engine) Evaluate(exprCode string) (int64, bool) {
	return Evaluate(exprCode, e.Macros, e.Log.Logger)
}

// IsTrue reports whether exprCode evaluates to a non-zero value.
func (e *Engine) IsTrue(exprCode string) bool {
	return IsTrue(exprCode, e.Macros, e.Log.Logger)
}

func (e *Engine) handleIf(groups map[string]string) {
	e.cond.EnterIf(e.cond.BranchActive() && e.IsTrue(groups["expr"]))
}

func (e *Engine) handleIfdef(groups map[string]string) {
	e.cond.EnterIf(e.cond.BranchActive() && e.Macros.IsDefined(groups["ident"]))
}

func (e *Engine) handleIfndef(groups map[string]string) {
	e.cond.EnterIf(e.cond.BranchActive() && !e.Macros.IsDefined(groups["ident"]))
}

func (e *Engine) handleElif(groups map[string]string) {
	if e.cond.Depth() == 0 {
		e.Log.Err("Unexpected #elif detected (%l).", SeverityCritical)
		return
	}
	if !e.cond.BranchSearchActive() {
		// The enclosing branch is already Ignore, so this group can never
		// activate; don't evaluate (or log from) its expression.
		e.cond.EnterElif(false)
		return
	}
	e.cond.EnterElif(e.IsTrue(groups["expr"]))
}

func (e *Engine) handleElse(groups map[string]string) {
	if e.cond.Depth() == 0 {
		e.Log.Err("Unexpected #else detected (%l).", SeverityCritical)
		return
	}
	e.cond.EnterElse()
}

func (e *Engine) handleEndif(groups map[string]string) {
	if !e.cond.ExitIf() {
		e.Log.Err("Unexpected #endif detected (%l).", SeverityCritical)
	}
}

func (e *Engine) handleDefineFunc(groups map[string]string) {
	m := &Macro{Identifier: groups["ident"], Body: groups["body"]}
	m.Args = parseParamList(groups["params"])
	for _, a := range m.Args {
		if a == "..." {
			m.Variadic = true
		}
	}
	e.Macros.Define(m)
}

func (e *Engine) handleDefineObj(groups map[string]string) {
	e.Macros.Define(&Macro{Identifier: groups["ident"], Body: groups["body"]})
}

func parseParamList(params string) []string {
	params = strings.TrimSpace(params)
	if params == "" {
		return []string{}
	}
	parts := strings.Split(params, ",")
	args := make([]string, len(parts))
	for i, p := range parts {
		args[i] = strings.TrimSpace(p)
	}
	return args
}

func (e *Engine) handleUndef(groups map[string]string) {
	e.Macros.Undefine(groups["ident"])
}

func (e *Engine) handleInclude(groups map[string]string) {
	if !e.cond.BranchActive() {
		return
	}
	header := groups["header"]
	header = strings.Trim(header, "<>\"")
	if len(e.includeStack) >= MaxIncludeDepth {
		e.Log.Err(fmt.Sprintf("Include depth limit exceeded for '%s' (%%l).", header), SeverityCritical)
		return
	}
	code := e.Files.Read(header)
	e.includeStack = append(e.includeStack, header)

	savedName, savedLine := e.Log.ProcFileName, e.Log.ProcFileLine
	e.ProcessCode(code, false, false, filepath.Base(header))
	e.Log.ProcFileName, e.Log.ProcFileLine = savedName, savedLine

	e.includeStack = e.includeStack[:len(e.includeStack)-1]
}
