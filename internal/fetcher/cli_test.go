package fetcher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const namespaceListJSON = `{
  "apiVersion": "v1",
  "kind": "List",
  "items": [
    {"apiVersion": "v1", "kind": "Namespace", "metadata": {"name": "team-a"}},
    {"apiVersion": "v1", "kind": "Namespace", "metadata": {"name": "team-b"}}
  ]
}`

const quotaListJSON = `{
  "apiVersion": "v1",
  "kind": "List",
  "items": [
    {
      "apiVersion": "v1",
      "kind": "ResourceQuota",
      "metadata": {"name": "compute", "namespace": "team-a"},
      "spec": {"hard": {"cpu": "4", "memory": "8Gi"}},
      "status": {"used": {"cpu": "2", "memory": "1Gi"}}
    }
  ]
}`

const podListJSON = `{
  "apiVersion": "v1",
  "kind": "List",
  "items": [
    {
      "apiVersion": "v1",
      "kind": "Pod",
      "metadata": {"name": "web-1", "namespace": "team-a"},
      "spec": {
        "containers": [
          {
            "name": "app",
            "resources": {
              "limits": {"cpu": "500m", "memory": "256Mi"},
              "requests": {"cpu": "100m", "memory": "64Mi"}
            }
          },
          {"name": "sidecar", "resources": {}}
        ]
      }
    }
  ]
}`

func fakeCLI(t *testing.T, output string, err error) *CLIFetcher {
	t.Helper()
	f := NewCLIFetcher("oc")
	f.run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		assert.Equal(t, "oc", name)
		if err != nil {
			return nil, err
		}
		return []byte(output), nil
	}
	return f
}

func TestCLIFetcherNamespaces(t *testing.T) {
	f := fakeCLI(t, namespaceListJSON, nil)

	namespaces, err := f.Namespaces(context.Background())
	require.NoError(t, err)
	require.Len(t, namespaces, 2)
	assert.Equal(t, "team-a", namespaces[0].Name)
	assert.Equal(t, "team-b", namespaces[1].Name)
}

func TestCLIFetcherResourceQuotas(t *testing.T) {
	f := fakeCLI(t, quotaListJSON, nil)

	quotas, err := f.ResourceQuotas(context.Background())
	require.NoError(t, err)
	require.Len(t, quotas, 1)

	rq := quotas[0]
	assert.Equal(t, "compute", rq.Name)
	assert.Equal(t, "team-a", rq.Namespace)
	cpu := rq.Spec.Hard["cpu"]
	assert.Equal(t, "4", cpu.String())
	used := rq.Status.Used["memory"]
	assert.Equal(t, "1Gi", used.String())
}

func TestCLIFetcherPods(t *testing.T) {
	f := fakeCLI(t, podListJSON, nil)

	pods, err := f.Pods(context.Background())
	require.NoError(t, err)
	require.Len(t, pods, 1)
	require.Len(t, pods[0].Spec.Containers, 2)

	app := pods[0].Spec.Containers[0]
	cpuLimit := app.Resources.Limits["cpu"]
	assert.Equal(t, "500m", cpuLimit.String())
	assert.Empty(t, pods[0].Spec.Containers[1].Resources.Limits)
}

func TestCLIFetcherCommandFailure(t *testing.T) {
	f := fakeCLI(t, "", &commandError{
		err:    errors.New("exit status 1"),
		stderr: "error: You must be logged in to the server (Unauthorized)",
	})

	_, err := f.Pods(context.Background())
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "list pods", fetchErr.Op)
	assert.Contains(t, fetchErr.Error(), "Unauthorized")
}

func TestCLIFetcherEmptyOutput(t *testing.T) {
	f := fakeCLI(t, "  \n", nil)

	_, err := f.Namespaces(context.Background())
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Error(), "empty output")
}

func TestCLIFetcherUnparsableOutput(t *testing.T) {
	f := fakeCLI(t, "NAME   STATUS   AGE", nil)

	_, err := f.Namespaces(context.Background())
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "list namespaces", fetchErr.Op)
}

func TestCLIFetcherContextTimeout(t *testing.T) {
	f := NewCLIFetcher("oc")
	f.run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		<-ctx.Done()
		return nil, &commandError{err: ctx.Err()}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Pods(ctx)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.ErrorIs(t, err, context.Canceled)
}
