// Package core implements the interactive surface of vsh: the prompt loop,
// the shell builtins and the wiring into the pipeline engine.
package core

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/user"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/josephlewis42/vsh/core/config"
	"github.com/josephlewis42/vsh/core/pipeline"
)

// DefaultPrompt is used when the configured prompt template is empty.
const DefaultPrompt = `\w\$ `

var (
	ColorBoldGreen = color.New(color.FgGreen, color.Bold)
	ColorBoldRed   = color.New(color.FgRed, color.Bold)
)

// Shell is one interactive session. It owns the readline instance and a
// pipeline runner wired to the session's standard streams.
type Shell struct {
	Config   *config.Configuration
	Readline *readline.Instance
	Runner   *pipeline.Runner

	history []string
	done    bool
}

// NewShell builds a shell reading from the process's terminal.
func NewShell(cfg *config.Configuration) (*Shell, error) {
	switch cfg.Color {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}

	rl, err := readline.NewEx(&readline.Config{
		HistoryFile: cfg.HistoryPath(),
	})
	if err != nil {
		return nil, err
	}

	return &Shell{
		Config:   cfg,
		Readline: rl,
		Runner:   pipeline.NewRunner(os.Stdin, os.Stdout, os.Stderr),
	}, nil
}

// Prompt renders the configured prompt template against the current process
// state.
func (s *Shell) Prompt() string {
	prompt := s.Config.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}

	prompt = strings.ReplaceAll(prompt, `\u`, username())

	host, _ := os.Hostname()
	prompt = strings.ReplaceAll(prompt, `\h`, host)

	pwd, _ := os.Getwd()
	if home, err := os.UserHomeDir(); err == nil && home != "/" && strings.HasPrefix(pwd, home) {
		pwd = "~" + strings.TrimPrefix(pwd, home)
	}
	prompt = strings.ReplaceAll(prompt, `\w`, pwd)

	if os.Geteuid() == 0 {
		prompt = strings.ReplaceAll(prompt, `\$`, "#")
	} else {
		prompt = strings.ReplaceAll(prompt, `\$`, "$")
	}

	return prompt
}

// Run reads and interprets lines until exit or end of input. It always
// returns nil on a normal interactive termination.
func (s *Shell) Run() error {
	for {
		s.Readline.SetPrompt(s.Prompt())
		line, err := s.Readline.Readline()

		switch {
		case err == io.EOF:
			return nil // Input closed, quit.

		case err == readline.ErrInterrupt:
			continue

		case err != nil:
			log.Printf("Error readline: %v", err)
			continue
		}

		if s.Dispatch(line); s.done {
			return nil
		}
	}
}

// Dispatch interprets one command line: empty lines are a no-op, a trailing
// "&" requests background execution, the first token selects a builtin if
// one is registered, and everything else becomes a pipeline of external
// processes.
func (s *Shell) Dispatch(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	s.history = append(s.history, line)

	line, background := stripBackground(line)
	if line == "" {
		return
	}

	tokens := strings.Fields(line)
	if builtin, ok := AllBuiltins[tokens[0]]; ok {
		builtin.Main(s, tokens)
		return
	}

	outcomes, err := s.Runner.Run(line, background)
	if err != nil {
		fmt.Fprintf(s.Runner.Stderr, "vsh: %v\n", err)
		return
	}
	s.report(outcomes)
}

// report prints one line per outcome: command-not-found goes to stderr like
// a regular shell, failures are highlighted.
func (s *Shell) report(outcomes []pipeline.Outcome) {
	for _, o := range outcomes {
		switch {
		case o.State == pipeline.StateNotFound:
			fmt.Fprintln(s.Runner.Stderr, o)
		case o.State == pipeline.StateExited && o.ExitStatus != 0,
			o.State == pipeline.StateSignaled,
			o.State == pipeline.StateWaitFailed:
			fmt.Fprintln(s.Runner.Stdout, ColorBoldRed.Sprint(o))
		case o.State == pipeline.StateStarted:
			fmt.Fprintln(s.Runner.Stdout, ColorBoldGreen.Sprint(o))
		default:
			fmt.Fprintln(s.Runner.Stdout, o)
		}
	}
}

func (s *Shell) Close() error {
	if s.Readline != nil {
		return s.Readline.Close()
	}
	return nil
}

// stripBackground removes the trailing background marker, mirroring the
// builtin dispatch the prompt loop performs before execute().
func stripBackground(line string) (string, bool) {
	if strings.HasSuffix(line, "&") {
		return strings.TrimSpace(strings.TrimRight(line, "&")), true
	}
	return line, false
}

func username() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return "?"
}
