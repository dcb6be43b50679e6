package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
	corev1 "k8s.io/api/core/v1"
)

// runFunc executes the external command and returns its stdout. Split out of
// CLIFetcher so tests can substitute canned output.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// CLIFetcher lists resources by invoking the oc binary with -o json output
// and decoding it into the typed API objects. It assumes an authenticated
// session (oc login) already exists; authentication is out of scope here.
type CLIFetcher struct {
	binary string
	run    runFunc
}

// NewCLIFetcher returns a fetcher that shells out to the given oc binary.
func NewCLIFetcher(binary string) *CLIFetcher {
	return &CLIFetcher{
		binary: binary,
		run:    runCommand,
	}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Prefer the context error so a timeout reads as such rather
		// than as "signal: killed".
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, &commandError{err: err, stderr: strings.TrimSpace(stderr.String())}
	}
	return stdout.Bytes(), nil
}

type commandError struct {
	err    error
	stderr string
}

func (e *commandError) Error() string { return e.err.Error() }
func (e *commandError) Unwrap() error { return e.err }

func (c *CLIFetcher) Namespaces(ctx context.Context) ([]corev1.Namespace, error) {
	var list corev1.NamespaceList
	if err := c.getInto(ctx, "list namespaces", &list, "get", "namespaces", "-o", "json"); err != nil {
		return nil, err
	}
	return list.Items, nil
}

func (c *CLIFetcher) ResourceQuotas(ctx context.Context) ([]corev1.ResourceQuota, error) {
	var list corev1.ResourceQuotaList
	if err := c.getInto(ctx, "list resource quotas", &list, "get", "resourcequota", "-A", "-o", "json"); err != nil {
		return nil, err
	}
	return list.Items, nil
}

func (c *CLIFetcher) Pods(ctx context.Context) ([]corev1.Pod, error) {
	var list corev1.PodList
	if err := c.getInto(ctx, "list pods", &list, "get", "pods", "-A", "-o", "json"); err != nil {
		return nil, err
	}
	return list.Items, nil
}

// getInto runs the oc command and decodes its JSON output into the given
// typed list. Any execution or decode failure is a FetchError carrying the
// command's stderr when available.
func (c *CLIFetcher) getInto(ctx context.Context, op string, into interface{}, args ...string) error {
	log.Printf("Running %s %s", c.binary, strings.Join(args, " "))

	out, err := c.run(ctx, c.binary, args...)
	if err != nil {
		var cmdErr *commandError
		if errors.As(err, &cmdErr) {
			return &FetchError{Op: op, Stderr: cmdErr.stderr, Cause: cmdErr.err}
		}
		return &FetchError{Op: op, Cause: err}
	}

	if len(bytes.TrimSpace(out)) == 0 {
		return &FetchError{Op: op, Cause: errors.New("empty output from command")}
	}

	if err := json.Unmarshal(out, into); err != nil {
		return &FetchError{Op: op, Cause: err}
	}
	return nil
}
