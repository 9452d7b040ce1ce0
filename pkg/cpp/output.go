// output.go implements the two output streams the engine assembles while
// processing source: a trimmed stream that drops directives and attaches
// pending whitespace/comments only to the code that follows them, and a
// verbatim stream that reflects every input line, directives and skipped
// branches included (code in active branches appears macro-expanded).
package cpp

// Output accumulates the trimmed ("Code") and verbatim ("CodeAll") streams
// produced while processing one source unit.
type Output struct {
	Code    string
	CodeAll string

	lastSpace   string
	lastComment string
	nonEmpty    bool
}

// NewOutput returns an empty Output.
func NewOutput() *Output {
	return &Output{}
}

// Reset clears both streams and any pending whitespace/comment state.
func (o *Output) Reset() {
	o.Code = ""
	o.CodeAll = ""
	o.lastSpace = ""
	o.lastComment = ""
	o.nonEmpty = false
}

// AddSegment folds one classified chunk of source into both streams. Space
// segments are held until code arrives, and dropped if nothing has been
// emitted yet (leading blank lines are not preserved in Code). Comment
// segments accumulate onto the pending comment buffer. Directive segments
// clear any pending whitespace/comment without emitting them to Code.
// Code segments flush pending space, then pending comment, then themselves.
// CodeAll always receives the segment verbatim, regardless of kind.
func (o *Output) AddSegment(seg Segment) {
	switch seg.Kind {
	case SegmentSpace:
		if o.nonEmpty {
			o.lastSpace = seg.Text
		}
		o.lastComment = ""
	case SegmentComment:
		o.lastComment += seg.Text
	case SegmentDirective:
		o.lastSpace = ""
		o.lastComment = ""
	case SegmentCode:
		o.Code += o.lastSpace + o.lastComment + seg.Text
		o.lastSpace = ""
		o.lastComment = ""
		o.nonEmpty = true
	}
	o.CodeAll += seg.Text
}

// AddCodeAllOnly appends text to the verbatim stream only, without folding
// it into the pending-whitespace/comment state used by Code. This is used
// for segments that fall inside an inactive conditional branch: they must
// still appear in CodeAll (every input line is reflected there) but must
// never reach Code, nor linger as whitespace/comment attached to code that
// follows once the branch reactivates.
func (o *Output) AddCodeAllOnly(text string) {
	o.CodeAll += text
}
