package storage

import "time"

// Run is one recorded report generation.
type Run struct {
	ID                      int64
	ClusterName             string
	GeneratedAt             time.Time
	WorkbookPath            string
	NamespacesWithQuota     int
	NamespacesWithoutQuota  int
	ContainersWithLimits    int
	ContainersWithoutLimits int
}
