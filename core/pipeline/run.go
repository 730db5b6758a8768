// Package pipeline turns one textual command line into a graph of connected
// OS processes and coordinates their completion.
//
// A line like
//
//	sort < in.txt | uniq | wc -l > out.txt
//
// becomes n segments joined by n-1 pipes. Every pipe descriptor is owned by
// the parent until all children are launched, then closed exactly once;
// children only ever see the descriptors wired onto their standard slots.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Runner executes command lines against the host OS. The zero value wires
// children to no input and discards their output; interactive callers set
// the three streams to their terminal.
type Runner struct {
	// Stdin is the default standard input for segment 0.
	Stdin io.Reader
	// Stdout is the default standard output for the last segment.
	Stdout io.Writer
	// Stderr is shared by every segment.
	Stderr io.Writer
}

// NewRunner returns a Runner whose children default to the given streams.
func NewRunner(stdin io.Reader, stdout, stderr io.Writer) *Runner {
	return &Runner{Stdin: stdin, Stdout: stdout, Stderr: stderr}
}

// Run parses and executes one command line. The line must already have its
// trailing background marker stripped by the caller.
//
// For a foreground run it blocks until every spawned process has been waited
// for, in spawn order, and returns one outcome per non-empty segment. For a
// background run it returns as soon as every process is started; the
// outcomes carry the PIDs and nothing tracks the children afterwards.
//
// Setup errors (parse, pipe allocation, redirection files, spawn) abort the
// attempt and return an error; no outcome is produced for an aborted line.
func (r *Runner) Run(line string, background bool) ([]Outcome, error) {
	p, err := Parse(line)
	if err != nil {
		return nil, err
	}

	channels, err := newChannelSet(len(p.Segments) - 1)
	if err != nil {
		return nil, err
	}
	// Release is idempotent; the defer only matters on error paths.
	defer releaseChannels(channels)

	input, output, err := openRedirects(p)
	if err != nil {
		return nil, err
	}
	defer closeFiles(input, output)

	handles, err := r.launch(p, channels, input, output)
	if err != nil {
		return nil, err
	}

	// Mandatory before any wait: a parent-side pipe end left open keeps the
	// downstream reader from ever seeing end-of-stream.
	releaseChannels(channels)
	closeFiles(input, output)

	if background {
		return startedOutcomes(handles), nil
	}
	return waitAll(handles), nil
}

// launch starts one process per non-empty segment. A segment whose program
// cannot be resolved is recorded with a nil cmd and does not stop its
// siblings; its pipe ends are closed by the parent's close pass so the
// neighbors still observe end-of-stream. Any other start failure aborts the
// attempt and reaps what was already running.
func (r *Runner) launch(p *Pipeline, channels []Channel, input, output *os.File) ([]handle, error) {
	var handles []handle
	for i, seg := range p.Segments {
		if seg.Empty() {
			continue
		}

		path, err := exec.LookPath(seg.Argv[0])
		if err != nil {
			handles = append(handles, handle{argv: seg.Argv})
			continue
		}

		cmd := r.command(path, p, i, channels, input, output)
		if err := cmd.Start(); err != nil {
			abort(handles)
			return nil, fmt.Errorf("%w: %s: %v", ErrSpawn, seg.Argv[0], err)
		}
		handles = append(handles, handle{cmd: cmd, argv: seg.Argv})
	}
	return handles, nil
}

// startedOutcomes reports the PIDs of a backgrounded pipeline. Each child is
// reaped by a detached wait so it does not linger as a zombie; nothing else
// tracks it.
func startedOutcomes(handles []handle) []Outcome {
	var outcomes []Outcome
	for _, h := range handles {
		if h.cmd == nil {
			outcomes = append(outcomes, Outcome{Argv: h.argv, State: StateNotFound, ExitStatus: 127})
			continue
		}
		outcomes = append(outcomes, Outcome{Pid: h.cmd.Process.Pid, Argv: h.argv, State: StateStarted})
		go h.cmd.Wait()
	}
	return outcomes
}

// waitAll reaps every handle in spawn order. The wait is per-handle, so the
// reported order is spawn order, not actual termination order. A wait
// failure is fatal to that handle's report only.
func waitAll(handles []handle) []Outcome {
	var outcomes []Outcome
	for _, h := range handles {
		if h.cmd == nil {
			outcomes = append(outcomes, Outcome{Argv: h.argv, State: StateNotFound, ExitStatus: 127})
			continue
		}
		err := h.cmd.Wait()
		outcomes = append(outcomes, classify(h.cmd.Process.Pid, h.argv, h.cmd.ProcessState, err))
	}
	return outcomes
}

func closeFiles(files ...*os.File) {
	for _, f := range files {
		if f != nil {
			f.Close()
		}
	}
}
