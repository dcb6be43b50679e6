// Package pipeline runs one end-to-end report generation: fetch, normalize,
// aggregate, render. Strictly sequential, single pass, no retries.
package pipeline

import (
	"context"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/opsvista/ocp-resource-report/internal/aggregate"
	"github.com/opsvista/ocp-resource-report/internal/fetcher"
	"github.com/opsvista/ocp-resource-report/internal/normalize"
	"github.com/opsvista/ocp-resource-report/internal/pdfgen"
	"github.com/opsvista/ocp-resource-report/internal/report"
	"github.com/opsvista/ocp-resource-report/internal/storage"
)

type Pipeline struct {
	fetcher     fetcher.Fetcher
	normalizer  *normalize.Normalizer
	builder     *report.Builder
	history     *storage.Storage // nil when history is disabled
	clusterName string
	timeout     time.Duration
	pdfSummary  bool
}

func New(f fetcher.Fetcher, n *normalize.Normalizer, b *report.Builder, history *storage.Storage, clusterName string, timeout time.Duration, pdfSummary bool) *Pipeline {
	return &Pipeline{
		fetcher:     f,
		normalizer:  n,
		builder:     b,
		history:     history,
		clusterName: clusterName,
		timeout:     timeout,
		pdfSummary:  pdfSummary,
	}
}

// Run generates one report and returns the workbook path. Fetch and write
// failures are fatal and propagate; no workbook exists when an error is
// returned from the fetch stage.
func (p *Pipeline) Run(ctx context.Context) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	log.Println("Collecting namespace data...")
	namespaces, err := p.fetcher.Namespaces(ctx)
	if err != nil {
		return "", err
	}

	log.Println("Collecting namespace quota data...")
	quotas, err := p.fetcher.ResourceQuotas(ctx)
	if err != nil {
		return "", err
	}

	log.Println("Collecting pod resource limits and requests data...")
	pods, err := p.fetcher.Pods(ctx)
	if err != nil {
		return "", err
	}

	ds := p.normalizer.Normalize(namespaces, quotas, pods)
	sum := aggregate.Summarize(ds)

	log.Printf("Quota ratio: %d with / %d without", sum.NamespacesWithQuota, sum.NamespacesWithoutQuota)
	log.Printf("Limits ratio: %d with / %d without", sum.ContainersWithLimits, sum.ContainersWithoutLimits)

	generated := time.Now()
	path, err := p.builder.Build(ds, sum, generated)
	if err != nil {
		return "", err
	}

	if p.pdfSummary {
		pdfPath := strings.TrimSuffix(path, ".xlsx") + ".pdf"
		if err := pdfgen.GenerateSummaryPDF(p.clusterName, sum, generated, pdfPath); err != nil {
			return "", &report.WriteError{Path: pdfPath, Cause: err}
		}
		log.Printf("PDF summary saved as %s", pdfPath)
	}

	if p.history != nil {
		_, err := p.history.RecordRun(&storage.Run{
			ClusterName:             p.clusterName,
			GeneratedAt:             generated,
			WorkbookPath:            path,
			NamespacesWithQuota:     sum.NamespacesWithQuota,
			NamespacesWithoutQuota:  sum.NamespacesWithoutQuota,
			ContainersWithLimits:    sum.ContainersWithLimits,
			ContainersWithoutLimits: sum.ContainersWithoutLimits,
		})
		if err != nil {
			log.Printf("Warning: failed to record run history: %v", err)
		}
	}

	return path, nil
}
