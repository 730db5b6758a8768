package pipeline

import (
	"fmt"
	"os"
	"syscall"
)

// State classifies how a pipeline segment's process ended up.
type State int

const (
	// StateExited means the process exited on its own with a status code.
	StateExited State = iota
	// StateSignaled means the process was terminated by a signal.
	StateSignaled
	// StateStopped means the process was stopped by a signal.
	StateStopped
	// StateContinued means a stopped process was resumed.
	StateContinued
	// StateStarted means the process was launched in the background and is
	// not tracked further.
	StateStarted
	// StateNotFound means the segment's program could not be resolved on the
	// search path; no process was spawned for it.
	StateNotFound
	// StateWaitFailed means the wait on the process handle itself failed.
	StateWaitFailed
)

// Outcome describes the fate of one pipeline segment. Foreground runs
// produce one outcome per non-empty segment, in spawn order.
type Outcome struct {
	Pid        int
	Argv       []string
	State      State
	ExitStatus int
	Signal     syscall.Signal
	CoreDump   bool
	Err        error
}

// Name returns the program name of the segment this outcome belongs to.
func (o Outcome) Name() string {
	if len(o.Argv) == 0 {
		return ""
	}
	return o.Argv[0]
}

// Success reports whether the segment ran and exited with status zero.
func (o Outcome) Success() bool {
	return o.State == StateExited && o.ExitStatus == 0
}

func (o Outcome) String() string {
	switch o.State {
	case StateExited:
		return fmt.Sprintf("Process %d exited with status %d", o.Pid, o.ExitStatus)
	case StateSignaled:
		return fmt.Sprintf("Process %d was killed by signal %v, core dumped: %t", o.Pid, o.Signal, o.CoreDump)
	case StateStopped:
		return fmt.Sprintf("Process %d stopped by signal %v", o.Pid, o.Signal)
	case StateContinued:
		return fmt.Sprintf("Process %d continued", o.Pid)
	case StateStarted:
		return fmt.Sprintf("Started background process with PID: %d", o.Pid)
	case StateNotFound:
		return fmt.Sprintf("%s: command not found", o.Name())
	case StateWaitFailed:
		return fmt.Sprintf("Process %d wait failed: %v", o.Pid, o.Err)
	}
	return fmt.Sprintf("Process %d in unknown state", o.Pid)
}

// classifyWait translates a raw wait status into an outcome classification.
func classifyWait(ws syscall.WaitStatus) (state State, status int, sig syscall.Signal, core bool) {
	switch {
	case ws.Exited():
		return StateExited, ws.ExitStatus(), 0, false
	case ws.Signaled():
		return StateSignaled, 128 + int(ws.Signal()), ws.Signal(), ws.CoreDump()
	case ws.Stopped():
		return StateStopped, 0, ws.StopSignal(), false
	case ws.Continued():
		return StateContinued, 0, 0, false
	}
	return StateExited, -1, 0, false
}

// classify builds the outcome for a reaped process. A wait failure is fatal
// for this handle's report only.
func classify(pid int, argv []string, ps *os.ProcessState, waitErr error) Outcome {
	out := Outcome{Pid: pid, Argv: argv}
	if ps == nil {
		out.State = StateWaitFailed
		out.Err = waitErr
		return out
	}

	ws, ok := ps.Sys().(syscall.WaitStatus)
	if !ok {
		out.State = StateWaitFailed
		out.Err = fmt.Errorf("unsupported wait status %v", ps.Sys())
		return out
	}

	out.State, out.ExitStatus, out.Signal, out.CoreDump = classifyWait(ws)
	return out
}
