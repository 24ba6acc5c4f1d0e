// Package gitexec runs local git subcommands for tools that operate on a
// working tree rather than a remote API (git-bundle, repository clone).
package gitexec

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner executes a git subcommand in the given working directory and returns
// its combined output. A non-zero exit status is returned as an error carrying
// the command output verbatim.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

// Run executes `git -C dir args...`.
func (ExecRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", dir}, args...)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %v: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

// ValidateWorkDir checks that dir exists and is a directory.
func ValidateWorkDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("working directory is required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("working directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("working directory %q is not a directory", dir)
	}
	return nil
}
