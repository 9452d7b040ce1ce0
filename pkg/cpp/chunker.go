// chunker.go implements the input chunker: it walks raw source text and
// yields runs of lines classified as directive, code, comment, or blank
// space, joining continuation lines and unterminated block comments into a
// single segment as it goes.
package cpp

import "strings"

// SegmentKind classifies a Segment yielded by Chunk.
type SegmentKind int

const (
	// SegmentCode is ordinary source code.
	SegmentCode SegmentKind = iota
	// SegmentDirective is a line beginning with '#' (after leading space).
	SegmentDirective
	// SegmentComment is a full-line comment (// or a standalone /* */ span).
	SegmentComment
	// SegmentSpace is one or more blank lines.
	SegmentSpace
)

// Segment is one classified chunk of source text, always ending at a line
// boundary except for the final segment of an input with no trailing
// newline.
type Segment struct {
	Text string
	Kind SegmentKind
}

// Chunk splits code into classified segments. A line ending in a backslash
// is merged with the next line before classification. A line opening an
// unterminated /* comment absorbs subsequent lines until the closing */ is
// found; if end-of-input is reached first, logger (if non-nil) receives a
// Critical report and the remainder is emitted as one code segment. A
// merged run is a comment segment only if it starts with /* and ends with
// */; otherwise it is a code segment.
func Chunk(code string, logger *Logger) []Segment {
	lines := splitKeepEmpty(code)
	trailingNL := strings.HasSuffix(code, "\n")
	var segments []Segment
	i := 0
	for i < len(lines) {
		line := lines[i]
		// Merge line continuations.
		for strings.HasSuffix(strings.TrimRight(line, " \t"), "\\") && i+1 < len(lines) {
			i++
			line = strings.TrimRight(strings.TrimRight(line, " \t"), "\\") + "\n" + lines[i]
		}

		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			text := line
			for i+1 < len(lines) && strings.TrimSpace(lines[i+1]) == "" {
				i++
				text += "\n" + lines[i]
			}
			segments = append(segments, Segment{Text: text + "\n", Kind: SegmentSpace})
		case strings.HasPrefix(trimmed, "#"):
			segments = append(segments, Segment{Text: line + "\n", Kind: SegmentDirective})
		case strings.HasPrefix(trimmed, "//"):
			segments = append(segments, Segment{Text: line + "\n", Kind: SegmentComment})
		case strings.HasPrefix(trimmed, "/*") || (strings.Contains(line, "/*") && !strings.Contains(line, "*/")):
			text := line
			for !strings.Contains(text, "*/") {
				if i+1 >= len(lines) {
					if logger != nil {
						logger.Err("Unterminated comment detected (%l).", SeverityCritical)
					}
					break
				}
				i++
				text += "\n" + lines[i]
			}
			if isCompleteBlockComment(strings.TrimSpace(text)) {
				segments = append(segments, Segment{Text: text + "\n", Kind: SegmentComment})
			} else {
				segments = append(segments, Segment{Text: text + "\n", Kind: SegmentCode})
			}
		default:
			segments = append(segments, Segment{Text: line + "\n", Kind: SegmentCode})
		}
		i++
	}
	if !trailingNL && len(segments) > 0 {
		last := &segments[len(segments)-1]
		last.Text = strings.TrimSuffix(last.Text, "\n")
	}
	return segments
}

func isCompleteBlockComment(trimmed string) bool {
	return strings.HasPrefix(trimmed, "/*") && strings.HasSuffix(trimmed, "*/")
}

// splitKeepEmpty splits code into lines without a trailing synthetic empty
// element when code ends in "\n", matching Python's str.splitlines().
func splitKeepEmpty(code string) []string {
	if code == "" {
		return nil
	}
	normalized := strings.ReplaceAll(code, "\r\n", "\n")
	trailingNL := strings.HasSuffix(normalized, "\n")
	lines := strings.Split(normalized, "\n")
	if trailingNL {
		lines = lines[:len(lines)-1]
	}
	return lines
}
