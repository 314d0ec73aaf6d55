package parser

import "strconv"

// SourceLine is one physical line of a source file.
type SourceLine struct {
	// Number is the 1-based line number.
	Number int
	// Text is the line content without its line break.
	Text string
}

// LogicalLine is one or more physical lines recombined so that a backtick
// literal spanning several lines can be matched as a unit.
type LogicalLine struct {
	// Number is the 1-based number of the first physical line.
	Number int
	// Text holds the joined physical lines, separated by "\n".
	Text string
	// Unterminated is set when the input ended while a backtick literal was still open.
	Unterminated bool
}

// Record is a translatable literal found at a source location.
type Record struct {
	// File is the slash-separated path relative to the project root.
	File string
	// Line is the 1-based line on which the call starts.
	Line int
	// Literal is the raw text between the quotes. It may contain newlines.
	Literal string
}

// Location returns "file:line", the reference written into templates.
func (r Record) Location() string {
	return r.File + ":" + strconv.Itoa(r.Line)
}

// Source is the content of one file handed to the extractor.
type Source struct {
	// Path is the absolute path of the file.
	Path string
	// Content is the raw UTF-8 file content.
	Content string
}

// FileError reports a file that was skipped.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}
