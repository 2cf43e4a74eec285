package arm

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNoSubscription is returned when no subscription can be resolved.
var ErrNoSubscription = errors.New("could not resolve a subscription")

// Runner executes an external command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// ResolveSubscription returns explicit when it is set, otherwise the active
// subscription reported by "az account show".
func ResolveSubscription(ctx context.Context, explicit string, run Runner) (string, error) {
	if s := strings.TrimSpace(explicit); s != "" {
		return s, nil
	}
	if run == nil {
		run = ExecRunner
	}
	out, err := run(ctx, "az", "account", "show", "--query", "id", "-o", "tsv")
	if err != nil {
		return "", fmt.Errorf("%w: az account show: %v", ErrNoSubscription, err)
	}
	id := strings.TrimSpace(string(out))
	if id == "" {
		return "", ErrNoSubscription
	}
	return id, nil
}
