package util

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// RunWithStdin executes name with args, feeding stdin from the given string,
// and returns combined output, wrapping failures with the command line and
// trimmed output for context.
func RunWithStdin(ctx context.Context, cwd string, stdin string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if cwd != "" {
		cmd.Dir = cwd
	}
	cmd.Stdin = strings.NewReader(stdin)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("command failed: %s %s: %w (%s)", name, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}

	return string(out), nil
}
