// Package fetcher retrieves the raw namespace, quota and pod listings from
// the cluster. The default backend shells out to the oc CLI and relies on a
// pre-existing authenticated session; an in-process client-go backend is
// available for runs inside the cluster.
package fetcher

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
)

// Fetcher lists cluster resources across all namespaces. Each call is a
// single point-in-time read; implementations never retry, since a partial
// or stale snapshot would silently mislead the report.
type Fetcher interface {
	Namespaces(ctx context.Context) ([]corev1.Namespace, error)
	ResourceQuotas(ctx context.Context) ([]corev1.ResourceQuota, error)
	Pods(ctx context.Context) ([]corev1.Pod, error)
}

// FetchError is a fatal failure to obtain or decode cluster data. It aborts
// the whole run.
type FetchError struct {
	Op     string // e.g. "list pods"
	Stderr string // trimmed stderr of the external command, if any
	Cause  error
}

func (e *FetchError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("fetch %s: %v: %s", e.Op, e.Cause, e.Stderr)
	}
	return fmt.Sprintf("fetch %s: %v", e.Op, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}
