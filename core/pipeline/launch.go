package pipeline

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

var (
	// ErrSpawn is the error resulting if the OS cannot start a resolved
	// program. It aborts the whole pipeline attempt since a partially
	// launched pipeline would hang.
	ErrSpawn = errors.New("spawn failed")

	// ErrInputFileOpen is the error resulting if the "<" target cannot be
	// opened for reading.
	ErrInputFileOpen = errors.New("cannot open input file")

	// ErrOutputFileCreate is the error resulting if the ">" target cannot be
	// created for writing.
	ErrOutputFileCreate = errors.New("cannot create output file")
)

// ErrNotFound is the error resulting if a path search failed to find an
// executable file.
var ErrNotFound = exec.ErrNotFound

// handle pairs a launched process with the argv it was launched with. A nil
// cmd marks a segment whose program could not be resolved; it keeps its
// position so outcomes are reported in pipeline order.
type handle struct {
	cmd  *exec.Cmd
	argv []string
}

// openRedirects opens the pipeline's redirection targets. The returned files
// are owned by the caller and must be closed after every child is launched.
func openRedirects(p *Pipeline) (input, output *os.File, err error) {
	if p.InputFile != "" {
		input, err = os.Open(p.InputFile)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInputFileOpen, err)
		}
	}
	if p.OutputFile != "" {
		output, err = os.Create(p.OutputFile)
		if err != nil {
			if input != nil {
				input.Close()
			}
			return nil, nil, fmt.Errorf("%w: %v", ErrOutputFileCreate, err)
		}
	}
	return input, output, nil
}

// command builds the exec.Cmd for segment i of the pipeline with its
// standard streams rewired to the correct pipe ends and redirection files.
//
// The wiring order mirrors the per-child rules: file input for segment 0,
// file output for the last segment, then the pipe read end for i > 0 and the
// pipe write end for i < n-1. Descriptors not named here are never inherited
// by the child, so no pipe end leaks past the parent's close pass.
func (r *Runner) command(path string, p *Pipeline, i int, channels []Channel, input, output *os.File) *exec.Cmd {
	n := len(p.Segments)
	cmd := &exec.Cmd{
		Path:   path,
		Args:   p.Segments[i].Argv,
		Stdin:  r.Stdin,
		Stdout: r.Stdout,
		Stderr: r.Stderr,
	}

	if i == 0 && input != nil {
		cmd.Stdin = input
	}
	if i == n-1 && output != nil {
		cmd.Stdout = output
	}
	if i > 0 {
		cmd.Stdin = channels[i-1].r
	}
	if i < n-1 {
		cmd.Stdout = channels[i].w
	}

	return cmd
}

// abort kills and reaps every already-started process of a pipeline attempt
// that failed mid-launch.
func abort(handles []handle) {
	for _, h := range handles {
		if h.cmd == nil || h.cmd.Process == nil {
			continue
		}
		h.cmd.Process.Kill()
		h.cmd.Wait()
	}
}
