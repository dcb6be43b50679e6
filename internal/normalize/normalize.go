// Package normalize turns the raw cluster listings into the canonical
// dataset. It is a pure transformation: malformed individual records are
// skipped with a warning instead of failing the run, so a single broken
// object cannot take the whole report down.
package normalize

import (
	log "github.com/sirupsen/logrus"
	corev1 "k8s.io/api/core/v1"

	"github.com/opsvista/ocp-resource-report/internal/model"
)

// Normalizer builds datasets, optionally dropping a fixed set of namespaces
// (and everything in them) from the report.
type Normalizer struct {
	excludeNS map[string]bool
}

func New(excludeNamespaces []string) *Normalizer {
	excludeMap := make(map[string]bool)
	for _, ns := range excludeNamespaces {
		excludeMap[ns] = true
	}
	return &Normalizer{excludeNS: excludeMap}
}

func (n *Normalizer) shouldExcludeNamespace(ns string) bool {
	return n.excludeNS[ns]
}

// Normalize produces the canonical dataset from the three raw listings.
func (n *Normalizer) Normalize(namespaces []corev1.Namespace, quotas []corev1.ResourceQuota, pods []corev1.Pod) *model.Dataset {
	ds := &model.Dataset{}

	quotaNamespaces := make(map[string]bool)
	for _, rq := range quotas {
		if n.shouldExcludeNamespace(rq.Namespace) {
			continue
		}
		if rq.Name == "" || rq.Namespace == "" {
			log.Printf("Warning: skipping resource quota with missing name or namespace")
			continue
		}
		if len(rq.Spec.Hard) == 0 {
			log.Printf("Warning: skipping resource quota %s/%s with no resource entries", rq.Namespace, rq.Name)
			continue
		}

		record := model.QuotaRecord{
			Name:      rq.Name,
			Namespace: rq.Namespace,
			Resources: make(map[string]model.ResourcePair, len(rq.Spec.Hard)),
		}
		for resource, hard := range rq.Spec.Hard {
			used := ""
			if u, ok := rq.Status.Used[resource]; ok {
				used = u.String()
			}
			record.Resources[string(resource)] = model.ResourcePair{Hard: hard.String(), Used: used}
		}

		ds.Quotas = append(ds.Quotas, record)
		quotaNamespaces[rq.Namespace] = true
	}

	for _, ns := range namespaces {
		if n.shouldExcludeNamespace(ns.Name) {
			continue
		}
		if ns.Name == "" {
			log.Printf("Warning: skipping namespace with empty name")
			continue
		}
		ds.Namespaces = append(ds.Namespaces, model.NamespaceRecord{
			Name:     ns.Name,
			HasQuota: quotaNamespaces[ns.Name],
		})
	}

	for _, pod := range pods {
		if n.shouldExcludeNamespace(pod.Namespace) {
			continue
		}
		if pod.Name == "" || pod.Namespace == "" {
			log.Printf("Warning: skipping pod with missing name or namespace")
			continue
		}
		if len(pod.Spec.Containers) == 0 {
			log.Printf("Warning: skipping pod %s/%s with no containers", pod.Namespace, pod.Name)
			continue
		}

		for _, container := range pod.Spec.Containers {
			ds.Containers = append(ds.Containers, model.ContainerRecord{
				Namespace:     pod.Namespace,
				Pod:           pod.Name,
				Container:     container.Name,
				CPURequest:    getResourceQuantity(container.Resources.Requests, corev1.ResourceCPU),
				MemoryRequest: getResourceQuantity(container.Resources.Requests, corev1.ResourceMemory),
				CPULimit:      getResourceQuantity(container.Resources.Limits, corev1.ResourceCPU),
				MemoryLimit:   getResourceQuantity(container.Resources.Limits, corev1.ResourceMemory),
			})
		}
	}

	log.Printf("Normalized %d namespaces, %d quotas, %d containers",
		len(ds.Namespaces), len(ds.Quotas), len(ds.Containers))
	return ds
}

// getResourceQuantity returns the declared quantity string, or "" when the
// resource is not declared at all. An explicit zero still counts as declared.
func getResourceQuantity(resources corev1.ResourceList, resourceName corev1.ResourceName) string {
	if qty, ok := resources[resourceName]; ok {
		return qty.String()
	}
	return ""
}
