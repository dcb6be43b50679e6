package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func namespace(name string) corev1.Namespace {
	return corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: name}}
}

func quota(name, ns string, hard corev1.ResourceList) corev1.ResourceQuota {
	return corev1.ResourceQuota{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: ns},
		Spec:       corev1.ResourceQuotaSpec{Hard: hard},
	}
}

func pod(name, ns string, containers ...corev1.Container) corev1.Pod {
	return corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: ns},
		Spec:       corev1.PodSpec{Containers: containers},
	}
}

func TestNormalizeAttachesQuotas(t *testing.T) {
	namespaces := []corev1.Namespace{namespace("team-a"), namespace("team-b"), namespace("team-c")}
	quotas := []corev1.ResourceQuota{
		quota("compute", "team-a", corev1.ResourceList{corev1.ResourceCPU: resource.MustParse("4")}),
		quota("compute", "team-b", corev1.ResourceList{corev1.ResourceMemory: resource.MustParse("8Gi")}),
	}

	ds := New(nil).Normalize(namespaces, quotas, nil)

	require.Len(t, ds.Namespaces, 3)
	assert.True(t, ds.Namespaces[0].HasQuota)
	assert.True(t, ds.Namespaces[1].HasQuota)
	assert.False(t, ds.Namespaces[2].HasQuota)
	assert.Equal(t, []string{"team-c"}, ds.NamespacesWithoutQuota())
}

func TestNormalizeZeroQuotaStillCounts(t *testing.T) {
	namespaces := []corev1.Namespace{namespace("team-a")}
	quotas := []corev1.ResourceQuota{
		quota("compute", "team-a", corev1.ResourceList{
			corev1.ResourceCPU:  resource.MustParse("0"),
			corev1.ResourcePods: resource.MustParse("0"),
		}),
	}

	ds := New(nil).Normalize(namespaces, quotas, nil)

	require.Len(t, ds.Namespaces, 1)
	assert.True(t, ds.Namespaces[0].HasQuota)
	assert.Empty(t, ds.NamespacesWithoutQuota())
}

func TestNormalizeQuotaUsage(t *testing.T) {
	rq := quota("compute", "team-a", corev1.ResourceList{corev1.ResourceCPU: resource.MustParse("4")})
	rq.Status.Used = corev1.ResourceList{corev1.ResourceCPU: resource.MustParse("2")}

	ds := New(nil).Normalize([]corev1.Namespace{namespace("team-a")}, []corev1.ResourceQuota{rq}, nil)

	require.Len(t, ds.Quotas, 1)
	pair := ds.Quotas[0].Resources["cpu"]
	assert.Equal(t, "4", pair.Hard)
	assert.Equal(t, "2", pair.Used)
}

func TestNormalizeContainerLimits(t *testing.T) {
	pods := []corev1.Pod{
		pod("web-1", "team-a",
			corev1.Container{
				Name: "app",
				Resources: corev1.ResourceRequirements{
					Limits: corev1.ResourceList{
						corev1.ResourceCPU:    resource.MustParse("500m"),
						corev1.ResourceMemory: resource.MustParse("256Mi"),
					},
					Requests: corev1.ResourceList{
						corev1.ResourceCPU: resource.MustParse("100m"),
					},
				},
			},
			corev1.Container{Name: "sidecar"},
		),
	}

	ds := New(nil).Normalize(nil, nil, pods)

	require.Len(t, ds.Containers, 2)

	app := ds.Containers[0]
	assert.Equal(t, "app", app.Container)
	assert.Equal(t, "500m", app.CPULimit)
	assert.Equal(t, "256Mi", app.MemoryLimit)
	assert.Equal(t, "100m", app.CPURequest)
	assert.Empty(t, app.MemoryRequest)
	assert.True(t, app.HasLimits())

	sidecar := ds.Containers[1]
	assert.False(t, sidecar.HasLimits())

	missing := ds.ContainersWithoutLimits()
	require.Len(t, missing, 1)
	assert.Equal(t, "sidecar", missing[0].Container)
}

func TestNormalizeSkipsMalformedRecords(t *testing.T) {
	namespaces := []corev1.Namespace{namespace("team-a"), namespace("")}
	quotas := []corev1.ResourceQuota{
		quota("empty", "team-a", nil), // no resource entries
		quota("", "", corev1.ResourceList{corev1.ResourceCPU: resource.MustParse("1")}),
	}
	pods := []corev1.Pod{
		pod("hollow", "team-a"), // no containers
		pod("", "", corev1.Container{Name: "app"}),
	}

	ds := New(nil).Normalize(namespaces, quotas, pods)

	assert.Len(t, ds.Namespaces, 1)
	assert.Empty(t, ds.Quotas)
	assert.Empty(t, ds.Containers)
	// The malformed quota was skipped, so team-a has no quota.
	assert.False(t, ds.Namespaces[0].HasQuota)
}

func TestNormalizeExcludesNamespaces(t *testing.T) {
	namespaces := []corev1.Namespace{namespace("team-a"), namespace("kube-system")}
	quotas := []corev1.ResourceQuota{
		quota("compute", "kube-system", corev1.ResourceList{corev1.ResourceCPU: resource.MustParse("1")}),
	}
	pods := []corev1.Pod{
		pod("dns", "kube-system", corev1.Container{Name: "coredns"}),
	}

	ds := New([]string{"kube-system"}).Normalize(namespaces, quotas, pods)

	require.Len(t, ds.Namespaces, 1)
	assert.Equal(t, "team-a", ds.Namespaces[0].Name)
	assert.Empty(t, ds.Quotas)
	assert.Empty(t, ds.Containers)
}
