package runner

import (
	"fmt"
	"os/exec"
	"strings"
)

// Result of one child process invocation.
type Result struct {
	Code   int
	Output string // combined stdout and stderr
}

// Runner executes external commands. The interface exists so pipeline stages
// can be tested without spawning real processes.
type Runner interface {
	Run(argv []string, dir string, env []string) (Result, error)
}

// ExecRunner runs commands with os/exec, blocking until the child exits and
// buffering its combined output. A non-zero child exit is a normal Result,
// not an error; the error return is reserved for commands that could not be
// started at all.
type ExecRunner struct{}

func (ExecRunner) Run(argv []string, dir string, env []string) (Result, error) {
	if len(argv) == 0 {
		return Result{}, fmt.Errorf("empty command")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = env

	out, err := cmd.CombinedOutput()
	res := Result{Output: string(out)}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			res.Code = exitErr.ExitCode()
			return res, nil
		}
		return res, fmt.Errorf("exec %s: %w", strings.Join(argv, " "), err)
	}
	return res, nil
}
