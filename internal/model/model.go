// Package model holds the canonical records the report is built from.
// All quantities are kept as the quantity strings reported by the cluster
// (e.g. "500m", "2Gi"); the report never does arithmetic on them.
package model

import "sort"

// ResourcePair is the hard limit and the reported usage for one resource
// of a quota. Used is empty when the cluster has not reported usage.
type ResourcePair struct {
	Hard string
	Used string
}

// QuotaRecord is one ResourceQuota object, keyed by the resource names it caps.
type QuotaRecord struct {
	Name      string
	Namespace string
	Resources map[string]ResourcePair
}

// NamespaceRecord is a discovered namespace and whether any quota names it.
// Presence of a quota object decides HasQuota, not its magnitude: a quota
// with every value set to zero still counts.
type NamespaceRecord struct {
	Name     string
	HasQuota bool
}

// ContainerRecord is one container of one pod with its declared resources.
type ContainerRecord struct {
	Namespace     string
	Pod           string
	Container     string
	CPURequest    string
	MemoryRequest string
	CPULimit      string
	MemoryLimit   string
}

// HasLimits reports whether the container declares both a CPU and a memory
// limit. A container with only one of the two is treated as unlimited for
// reporting purposes and appears on the "Containers with No Limits" sheet.
func (c ContainerRecord) HasLimits() bool {
	return c.CPULimit != "" && c.MemoryLimit != ""
}

// Dataset is the normalized point-in-time view of the cluster.
type Dataset struct {
	Namespaces []NamespaceRecord
	Quotas     []QuotaRecord
	Containers []ContainerRecord
}

// ContainersWithoutLimits returns the containers failing HasLimits, in
// collection order.
func (d *Dataset) ContainersWithoutLimits() []ContainerRecord {
	var out []ContainerRecord
	for _, c := range d.Containers {
		if !c.HasLimits() {
			out = append(out, c)
		}
	}
	return out
}

// NamespacesWithoutQuota returns the sorted names of namespaces that have no
// quota object.
func (d *Dataset) NamespacesWithoutQuota() []string {
	var out []string
	for _, ns := range d.Namespaces {
		if !ns.HasQuota {
			out = append(out, ns.Name)
		}
	}
	sort.Strings(out)
	return out
}
