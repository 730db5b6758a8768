package pipeline

import (
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyWait(t *testing.T) {
	// Raw statuses use the Linux wait encoding.
	cases := []struct {
		name   string
		ws     syscall.WaitStatus
		state  State
		status int
		signal syscall.Signal
		core   bool
	}{
		{"exit 0", syscall.WaitStatus(0x0000), StateExited, 0, 0, false},
		{"exit 1", syscall.WaitStatus(0x0100), StateExited, 1, 0, false},
		{"killed", syscall.WaitStatus(0x0009), StateSignaled, 137, syscall.SIGKILL, false},
		{"aborted with core", syscall.WaitStatus(0x0086), StateSignaled, 134, syscall.SIGABRT, true},
		{"stopped", syscall.WaitStatus(0x137f), StateStopped, 0, syscall.SIGSTOP, false},
		{"continued", syscall.WaitStatus(0xffff), StateContinued, 0, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state, status, signal, core := classifyWait(tc.ws)
			assert.Equal(t, tc.state, state)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.signal, signal)
			assert.Equal(t, tc.core, core)
		})
	}
}

func TestOutcomeString(t *testing.T) {
	cases := []struct {
		outcome Outcome
		want    string
	}{
		{
			Outcome{Pid: 42, State: StateExited, ExitStatus: 0},
			"Process 42 exited with status 0",
		},
		{
			Outcome{Pid: 42, State: StateExited, ExitStatus: 1},
			"Process 42 exited with status 1",
		},
		{
			Outcome{Pid: 42, State: StateSignaled, Signal: syscall.SIGINT},
			"Process 42 was killed by signal interrupt, core dumped: false",
		},
		{
			Outcome{Pid: 7, State: StateContinued},
			"Process 7 continued",
		},
		{
			Outcome{Pid: 9, State: StateStarted},
			"Started background process with PID: 9",
		},
		{
			Outcome{Argv: []string{"nope"}, State: StateNotFound, ExitStatus: 127},
			"nope: command not found",
		},
	}

	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.outcome.String())
		})
	}
}

func TestOutcomeSuccess(t *testing.T) {
	assert.True(t, Outcome{State: StateExited, ExitStatus: 0}.Success())
	assert.False(t, Outcome{State: StateExited, ExitStatus: 1}.Success())
	assert.False(t, Outcome{State: StateStarted}.Success())
	assert.False(t, Outcome{State: StateNotFound, ExitStatus: 127}.Success())
}
