// Package e2etests drives a built mk binary end to end. The tests are
// skipped unless MK_CMD points at the binary.
package e2etests

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner executes mk commands against a sandbox directory.
type Runner struct {
	MkCmd string // path to mk binary
}

// RunResult holds the output of a command execution.
type RunResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// SetupSandbox initializes a fresh catalog in dir with the given init flags
// and returns the sandbox path.
func (r *Runner) SetupSandbox(dir string, initArgs ...string) (string, error) {
	res := r.Run(dir, append([]string{"init"}, initArgs...)...)
	if res.ExitCode != 0 {
		return "", fmt.Errorf("mk init failed (exit %d): %s", res.ExitCode, res.Stderr)
	}
	return dir, nil
}

// Run executes an mk command with the given arguments.
// It sets MK_DIR to the sandbox path so the command finds the right
// .menukeeper directory, and clears the other MK_ overrides.
func (r *Runner) Run(sandbox string, args ...string) RunResult {
	return r.RunStdin(sandbox, "", args...)
}

// RunStdin is Run with stdin fed from input. Stdin is a pipe, never a
// terminal, so confirmation prompts are skipped.
func (r *Runner) RunStdin(sandbox, input string, args ...string) RunResult {
	cmd := exec.Command(r.MkCmd, args...)
	cmd.Env = append(sandboxEnv(), "MK_DIR="+sandbox)
	cmd.Stdin = strings.NewReader(input)
	return run(cmd)
}

// RunJSON executes an mk command with the --json flag.
func (r *Runner) RunJSON(sandbox string, args ...string) RunResult {
	return r.Run(sandbox, append(args, "--json")...)
}

// RunRaw executes the mk binary with the given arguments directly,
// without a sandbox. Useful for --help and other global commands.
func (r *Runner) RunRaw(args ...string) RunResult {
	return run(exec.Command(r.MkCmd, args...))
}

func run(cmd *exec.Cmd) RunResult {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
	}

	return RunResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// sandboxEnv is the process environment minus menukeeper overrides.
func sandboxEnv() []string {
	var env []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "MK_") || strings.HasPrefix(kv, "MONGODB_URI=") {
			continue
		}
		env = append(env, kv)
	}
	return env
}
