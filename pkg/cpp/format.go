// format.go implements text-level formatting utilities shared by the rest of
// the preprocessor: tab expansion, line-continuation joining, comment
// stripping, numeric suffix stripping, and balanced-delimiter scanning.
package cpp

import (
	"regexp"
	"strings"
)

// CommentMode selects how StripComments replaces a matched comment.
type CommentMode int

const (
	// CommentRemove deletes the comment text entirely.
	CommentRemove CommentMode = iota
	// CommentSpaces replaces every non-newline rune with a space, preserving
	// column offsets.
	CommentSpaces
	// CommentNewlines keeps only the newlines inside the comment, preserving
	// line numbers.
	CommentNewlines
)

var (
	reMultiLineComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	reSingleLineComment = regexp.MustCompile(`//[^\n]*`)
	reLineContinuation = regexp.MustCompile(`[ \t]*\\[ \t]*\r?\n`)
	// The whole literal (digits plus any trailing suffix letters) is matched
	// as one token so the hex/binary alternatives, tried first, claim their
	// own trailing hex digits (0x0F's F included) before the generic decimal
	// alternative ever gets a chance to start partway through one.
	reNumericLiteral = regexp.MustCompile(`0[xX][0-9a-fA-F]+[uUlL]*|0[bB][01]+[uUlL]*|\d[\d.]*\d*[uUlLfF]*`)
)

// ExpandTabs replaces each tab with spaces advancing to the next multiple of
// tabSize, measured from the start of its line. Newlines reset the column.
func ExpandTabs(code string, tabSize int) string {
	if tabSize <= 0 {
		tabSize = 4
	}
	var out strings.Builder
	for _, line := range strings.Split(code, "\n") {
		col := 0
		for _, r := range line {
			if r == '\t' {
				pad := tabSize - (col % tabSize)
				out.WriteString(strings.Repeat(" ", pad))
				col += pad
			} else {
				out.WriteRune(r)
				col++
			}
		}
		out.WriteByte('\n')
	}
	s := out.String()
	// splitting on "\n" and re-joining with a trailing "\n" per line adds one
	// extra newline at the end; trim it to match the input's own ending.
	if strings.HasSuffix(s, "\n") {
		s = s[:len(s)-1]
	}
	return s
}

// JoinLineContinuations removes a backslash immediately followed by a line
// terminator (with optional surrounding horizontal whitespace). When
// keepNewlines is true the backslash-newline is replaced by a bare newline
// (preserving line count) instead of being removed.
func JoinLineContinuations(code string, keepNewlines bool) string {
	repl := ""
	if keepNewlines {
		repl = "\n"
	}
	return reLineContinuation.ReplaceAllString(code, repl)
}

// StripComments removes /*...*/ and //... comments according to mode.
func StripComments(code string, mode CommentMode) string {
	switch mode {
	case CommentSpaces:
		code = reMultiLineComment.ReplaceAllStringFunc(code, blankKeepNewlines)
		code = reSingleLineComment.ReplaceAllStringFunc(code, blankKeepNewlines)
	case CommentNewlines:
		code = reMultiLineComment.ReplaceAllStringFunc(code, newlinesOnly)
		code = reSingleLineComment.ReplaceAllStringFunc(code, newlinesOnly)
	default:
		code = reMultiLineComment.ReplaceAllString(code, "")
		code = reSingleLineComment.ReplaceAllString(code, "")
	}
	return code
}

func blankKeepNewlines(match string) string {
	var sb strings.Builder
	for _, r := range match {
		if r == '\n' {
			sb.WriteByte('\n')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func newlinesOnly(match string) string {
	return strings.Repeat("\n", strings.Count(match, "\n"))
}

// StripNumericSuffix strips trailing C integer/float type suffixes (u, U, l,
// L, f, F, any combination) from numeric literals. Hex (0x...) and binary
// (0b...) literals only ever carry u/U/l/L suffixes: f/F there is always a
// hex digit, never a float suffix, so it's left untouched.
func StripNumericSuffix(code string) string {
	return reNumericLiteral.ReplaceAllStringFunc(code, func(lit string) string {
		switch {
		case len(lit) >= 2 && lit[0] == '0' && (lit[1] == 'x' || lit[1] == 'X'):
			return strings.TrimRight(lit, "uUlL")
		case len(lit) >= 2 && lit[0] == '0' && (lit[1] == 'b' || lit[1] == 'B'):
			return strings.TrimRight(lit, "uUlL")
		default:
			return strings.TrimRight(lit, "uUlLfF")
		}
	})
}

// FindBalanced locates the next occurrence of open at or after from that is
// preceded only by whitespace since from, then finds the matching close such
// that the substring between them has equal counts of open and close.
// Returns (-1, -1) if no such pair exists.
func FindBalanced(code string, from int, open, close string) (int, int) {
	if from < 0 || from > len(code) {
		return -1, -1
	}
	sPos := strings.Index(code[from:], open)
	if sPos < 0 {
		return -1, -1
	}
	sPos += from
	// Everything between from and sPos must be whitespace; open must open
	// right after it, not somewhere further into the code.
	if strings.TrimSpace(code[from:sPos]) != "" {
		return -1, -1
	}
	searchFrom := sPos + 1
	ePos := strings.Index(code[searchFrom:], close)
	for ePos >= 0 {
		ePos += searchFrom
		segment := code[sPos : ePos+len(close)]
		if strings.Count(segment, open) == strings.Count(segment, close) {
			return sPos, ePos
		}
		searchFrom = ePos + 1
		if searchFrom > len(code) {
			break
		}
		next := strings.Index(code[searchFrom:], close)
		if next < 0 {
			ePos = -1
			break
		}
		ePos = next
	}
	return -1, -1
}

// IsInComment reports whether pos lies inside a /*...*/ block comment or an
// unterminated //... line comment.
func IsInComment(code string, pos int) bool {
	if pos < 0 || pos >= len(code) {
		return false
	}
	if idx := strings.LastIndex(code[:pos], "/*"); idx >= 0 {
		if !strings.Contains(code[idx:pos], "*/") {
			return true
		}
	}
	if idx := strings.LastIndex(code[:pos], "//"); idx >= 0 {
		if !strings.Contains(code[idx:pos], "\n") {
			return true
		}
	}
	return false
}

// IsInString reports whether pos lies inside an unterminated single- or
// double-quoted literal on its own source line. This is a line-local
// approximation that does not account for escaped quotes.
func IsInString(code string, pos int) bool {
	if pos < 0 || pos >= len(code) {
		return false
	}
	lineStart := strings.LastIndex(code[:pos], "\n") + 1
	segment := code[lineStart:pos]
	dq := strings.Count(segment, "\"")
	sq := strings.Count(segment, "'")
	return dq%2 == 1 || sq%2 == 1
}
