package core

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/josephlewis42/vsh/core/config"
	"github.com/josephlewis42/vsh/core/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testShell builds a shell without a terminal, capturing both streams.
func testShell() (*Shell, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	shell := &Shell{
		Config: config.Default(),
		Runner: pipeline.NewRunner(strings.NewReader(""), &stdout, &stderr),
	}
	return shell, &stdout, &stderr
}

func TestStripBackground(t *testing.T) {
	cases := []struct {
		line       string
		want       string
		background bool
	}{
		{"sleep 10 &", "sleep 10", true},
		{"sleep 10&", "sleep 10", true},
		{"sleep 10 &&", "sleep 10", true},
		{"sleep 10", "sleep 10", false},
		{"&", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			line, background := stripBackground(tc.line)
			assert.Equal(t, tc.want, line)
			assert.Equal(t, tc.background, background)
		})
	}
}

func TestBuiltinsRegistered(t *testing.T) {
	for _, name := range []string{"cd", "exit", "pwd", "history", "help"} {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, AllBuiltins, name)
		})
	}
}

func TestBuiltinCd(t *testing.T) {
	shell, _, stderr := testShell()

	wd, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(wd)

	dir := t.TempDir()
	assert.Equal(t, 0, Cd(shell, []string{"cd", dir}))
	assert.Empty(t, stderr.String())

	got, err := os.Getwd()
	require.NoError(t, err)
	wantResolved, _ := filepath.EvalSymlinks(dir)
	gotResolved, _ := filepath.EvalSymlinks(got)
	assert.Equal(t, wantResolved, gotResolved)

	assert.Equal(t, 1, Cd(shell, []string{"cd", "/vsh-test/does/not/exist"}))
	assert.Contains(t, stderr.String(), "cd:")

	assert.Equal(t, 1, Cd(shell, []string{"cd", "a", "b"}))
	assert.Contains(t, stderr.String(), "too many arguments")
}

func TestBuiltinPwd(t *testing.T) {
	shell, stdout, _ := testShell()

	assert.Equal(t, 0, Pwd(shell, []string{"pwd"}))

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd+"\n", stdout.String())
}

func TestBuiltinHistory(t *testing.T) {
	shell, stdout, _ := testShell()
	shell.history = []string{"echo one", "echo two"}

	assert.Equal(t, 0, History(shell, []string{"history"}))
	assert.Contains(t, stdout.String(), "echo one")
	assert.Contains(t, stdout.String(), "echo two")

	assert.Equal(t, 0, History(shell, []string{"history", "-c"}))
	assert.Empty(t, shell.history)
}

func TestBuiltinExit(t *testing.T) {
	shell, _, _ := testShell()

	assert.Equal(t, 0, Exit(shell, []string{"exit"}))
	assert.True(t, shell.done)
}

func TestDispatchEmptyLine(t *testing.T) {
	shell, stdout, stderr := testShell()

	shell.Dispatch("")
	shell.Dispatch("   ")

	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
	assert.Empty(t, shell.history)
}

func TestDispatchBuiltin(t *testing.T) {
	shell, _, _ := testShell()

	shell.Dispatch("exit")
	assert.True(t, shell.done)
}

func TestDispatchPipeline(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip(`"true" not on PATH`)
	}
	shell, stdout, stderr := testShell()

	shell.Dispatch("true")

	assert.Empty(t, stderr.String())
	assert.Contains(t, stdout.String(), "exited with status 0")
}

func TestDispatchCommandNotFound(t *testing.T) {
	shell, _, stderr := testShell()

	shell.Dispatch("vsh-no-such-program-x5q")

	assert.Contains(t, stderr.String(), "command not found")
}

func TestDispatchMalformedRedirect(t *testing.T) {
	shell, _, stderr := testShell()

	shell.Dispatch("cat <")

	assert.Contains(t, stderr.String(), "malformed redirection")
}

func TestPromptExpandsEscapes(t *testing.T) {
	shell, _, _ := testShell()
	shell.Config.Prompt = `\u@\h:\w\$ `

	prompt := shell.Prompt()
	for _, escape := range []string{`\u`, `\h`, `\w`, `\$`} {
		assert.NotContains(t, prompt, escape)
	}
	assert.True(t, strings.HasSuffix(prompt, "$ ") || strings.HasSuffix(prompt, "# "))
}
