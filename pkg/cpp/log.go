// log.go implements the severity-tagged logging hook used throughout the
// engine: verbosity-gated informational messages and severity-gated error
// reports, both routed through overridable printer functions.
package cpp

import (
	"fmt"
	"os"
	"strings"
)

// Severity ranks the seriousness of a reported error, matching the original
// preprocessor's ErrSeverity levels.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityCritical
	SeveritySevere
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityCritical:
		return "CRITICAL"
	case SeveritySevere:
		return "SEVERE"
	default:
		return "UNKNOWN"
	}
}

// MsgPrinterFunc renders an informational message.
type MsgPrinterFunc func(text string)

// ErrPrinterFunc renders a severity-tagged error message.
type ErrPrinterFunc func(text string, severity Severity)

// Logger gates and renders informational and error messages. Verbosity
// controls which Msg calls are emitted; MinErrSeverity controls which Err
// calls are emitted. Both printer fields may be overridden by embedders
// (e.g. PreprocLogger) to add contextual location information.
type Logger struct {
	Verbosity      int
	MinErrSeverity Severity
	EnableDebugMsg bool

	MsgPrinter MsgPrinterFunc
	ErrPrinter ErrPrinterFunc
}

// NewLogger returns a Logger configured with verbosity 0 and a minimum
// error severity of Warning, matching the original's defaults.
func NewLogger() *Logger {
	l := &Logger{
		Verbosity:      0,
		MinErrSeverity: SeverityWarning,
	}
	l.MsgPrinter = l.defaultMsgPrinter
	l.ErrPrinter = l.defaultErrPrinter
	return l
}

// Config applies verbosity, minimum error severity, and debug-message
// enablement in one call.
func (l *Logger) Config(verbosity int, minErrSeverity Severity, enableDebugMsg bool) {
	l.Verbosity = verbosity
	l.MinErrSeverity = minErrSeverity
	l.EnableDebugMsg = enableDebugMsg
}

// SetPrinters overrides the message and error rendering functions.
func (l *Logger) SetPrinters(msgPrinter MsgPrinterFunc, errPrinter ErrPrinterFunc) {
	if msgPrinter != nil {
		l.MsgPrinter = msgPrinter
	}
	if errPrinter != nil {
		l.ErrPrinter = errPrinter
	}
}

// Dbg emits a debug message when EnableDebugMsg is set.
func (l *Logger) Dbg(text string) {
	if l.EnableDebugMsg {
		l.MsgPrinter(text)
	}
}

// Msg emits text when Verbosity falls within [msgVerbosity, maxVerbosity],
// where maxVerbosity is Verbosity itself (no upper bound) unless
// maxMsgVerbosity is given (> 0), in which case it is
// max(maxMsgVerbosity, msgVerbosity), matching the original's gating.
func (l *Logger) Msg(text string, msgVerbosity int, maxMsgVerbosity int) {
	maxVerbosity := l.Verbosity
	if maxMsgVerbosity > 0 {
		if maxMsgVerbosity > msgVerbosity {
			maxVerbosity = maxMsgVerbosity
		} else {
			maxVerbosity = msgVerbosity
		}
	}
	if msgVerbosity <= l.Verbosity && l.Verbosity <= maxVerbosity {
		l.MsgPrinter(text)
	}
}

// Err emits a severity-tagged error when severity meets or exceeds
// MinErrSeverity.
func (l *Logger) Err(text string, severity Severity) {
	if l.MinErrSeverity <= severity {
		l.ErrPrinter(text, severity)
	}
}

func (l *Logger) defaultMsgPrinter(text string) {
	fmt.Fprintln(os.Stdout, text)
}

func (l *Logger) defaultErrPrinter(text string, severity Severity) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", severity, text)
}

// CodeSample truncates code to sampleLen runes, appending "..." when it was
// cut short, for use in diagnostic messages that quote a fragment of source.
func CodeSample(code string, sampleLen int) string {
	if sampleLen <= 0 {
		sampleLen = 80
	}
	trimmed := strings.TrimSpace(code)
	r := []rune(trimmed)
	if len(r) <= sampleLen {
		return trimmed
	}
	return string(r[:sampleLen]) + "..."
}

// PreprocLogger extends Logger with the processed-file/line context used to
// fill the "%l" location tag that may appear anywhere in a message.
type PreprocLogger struct {
	*Logger
	ProcFileName string
	ProcFileLine int
}

// NewPreprocLogger returns a PreprocLogger whose printers substitute the
// "%l" location tag before delegating to Logger's defaults.
func NewPreprocLogger() *PreprocLogger {
	pl := &PreprocLogger{Logger: NewLogger()}
	pl.MsgPrinter = pl.locatedMsgPrinter
	pl.ErrPrinter = pl.locatedErrPrinter
	return pl
}

func (pl *PreprocLogger) fillLocationTag(text string) string {
	if !strings.Contains(text, "%l") {
		return text
	}
	var tag string
	if pl.ProcFileName != "" {
		tag = fmt.Sprintf("Processed file: %s, start line: %d", pl.ProcFileName, pl.ProcFileLine+1)
	} else {
		tag = fmt.Sprintf("Processed start line: %d", pl.ProcFileLine+1)
	}
	return strings.ReplaceAll(text, "%l", tag)
}

// SetPrinters overrides the message and error rendering functions; the
// given printers receive text with the "%l" location tag already filled.
func (pl *PreprocLogger) SetPrinters(msgPrinter MsgPrinterFunc, errPrinter ErrPrinterFunc) {
	if msgPrinter != nil {
		pl.MsgPrinter = func(text string) { msgPrinter(pl.fillLocationTag(text)) }
	}
	if errPrinter != nil {
		pl.ErrPrinter = func(text string, severity Severity) { errPrinter(pl.fillLocationTag(text), severity) }
	}
}

func (pl *PreprocLogger) locatedMsgPrinter(text string) {
	fmt.Fprintln(os.Stdout, pl.fillLocationTag(text))
}

func (pl *PreprocLogger) locatedErrPrinter(text string, severity Severity) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", severity, pl.fillLocationTag(text))
}
