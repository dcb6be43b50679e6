// Package aggregate computes the summary counts behind the two ratio charts.
package aggregate

import "github.com/opsvista/ocp-resource-report/internal/model"

// Summary holds the with/without pairs for namespaces and containers. Each
// pair always sums to the respective total of the dataset it was computed
// from.
type Summary struct {
	NamespacesWithQuota     int
	NamespacesWithoutQuota  int
	ContainersWithLimits    int
	ContainersWithoutLimits int
}

func (s Summary) TotalNamespaces() int {
	return s.NamespacesWithQuota + s.NamespacesWithoutQuota
}

func (s Summary) TotalContainers() int {
	return s.ContainersWithLimits + s.ContainersWithoutLimits
}

// Summarize counts category membership in a single pass. Empty collections
// yield zero counts; there are no failure modes.
func Summarize(ds *model.Dataset) Summary {
	var s Summary
	for _, ns := range ds.Namespaces {
		if ns.HasQuota {
			s.NamespacesWithQuota++
		} else {
			s.NamespacesWithoutQuota++
		}
	}
	for _, c := range ds.Containers {
		if c.HasLimits() {
			s.ContainersWithLimits++
		} else {
			s.ContainersWithoutLimits++
		}
	}
	return s
}
