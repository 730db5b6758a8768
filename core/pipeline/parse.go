package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedRedirect is the error resulting if a redirection operator has
// no file name after it.
var ErrMalformedRedirect = errors.New("malformed redirection")

// Segment is one program invocation within a pipeline: the program name
// followed by its arguments. A segment with no tokens is kept as a
// placeholder so the pipe topology indices stay aligned with the text.
type Segment struct {
	Argv []string
}

// Empty reports whether the segment tokenized to zero words.
func (s Segment) Empty() bool {
	return len(s.Argv) == 0
}

// Pipeline is the parsed form of one command line: an ordered list of
// segments plus the optional redirection targets. InputFile belongs to
// segment 0 and OutputFile to the last segment.
type Pipeline struct {
	Segments   []Segment
	InputFile  string
	OutputFile string
}

// Parse splits a command line into pipeline segments and extracts the
// redirection targets. The line must already have its trailing background
// marker stripped by the caller.
//
// Tokenization is whitespace splitting only: no quoting, no escaping and no
// expansion. A "<" or ">" inside a segment that is neither first nor last is
// passed through as a literal token.
func Parse(line string) (*Pipeline, error) {
	parts := strings.Split(line, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	p := &Pipeline{}

	// Output redirection is stripped before input redirection so a single
	// segment like "sort < in.txt > out.txt" splits cleanly.
	last := len(parts) - 1
	if strings.Contains(parts[last], ">") {
		cmd, file, err := splitRedirect(parts[last], ">")
		if err != nil {
			return nil, err
		}
		parts[last] = cmd
		p.OutputFile = file
	}

	if strings.Contains(parts[0], "<") {
		cmd, file, err := splitRedirect(parts[0], "<")
		if err != nil {
			return nil, err
		}
		parts[0] = cmd
		p.InputFile = file
	}

	for _, part := range parts {
		p.Segments = append(p.Segments, Segment{Argv: strings.Fields(part)})
	}

	return p, nil
}

// splitRedirect splits a segment around the first occurrence of op. Only the
// first two parts are used, matching the original shell behavior; the file
// name is the trimmed text after the operator.
func splitRedirect(segment, op string) (cmd, file string, err error) {
	parts := strings.Split(segment, op)
	cmd = strings.TrimSpace(parts[0])
	file = strings.TrimSpace(parts[1])
	if file == "" {
		return "", "", fmt.Errorf("%w: %q has no file name", ErrMalformedRedirect, op)
	}
	return cmd, file, nil
}

// String renders a debug view of the parsed pipeline.
func (p *Pipeline) String() string {
	var sb strings.Builder
	for i, seg := range p.Segments {
		fmt.Fprintf(&sb, "segment %d: %q\n", i, seg.Argv)
	}
	if p.InputFile != "" {
		fmt.Fprintf(&sb, "input: %s\n", p.InputFile)
	}
	if p.OutputFile != "" {
		fmt.Fprintf(&sb, "output: %s\n", p.OutputFile)
	}
	return sb.String()
}
