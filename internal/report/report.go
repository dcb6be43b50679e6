// Package report renders the normalized dataset into the Excel workbook
// artifact: two pie-chart sheets followed by four data sheets.
package report

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/opsvista/ocp-resource-report/internal/aggregate"
	"github.com/opsvista/ocp-resource-report/internal/model"
)

// Sheet names in workbook order.
const (
	SheetQuotaChart  = "Quota Ratio Chart"
	SheetLimitsChart = "Limits Ratio Chart"
	SheetQuotas      = "Namespace Quotas"
	SheetPodLimits   = "Pod Limits and Requests"
	SheetNoLimits    = "Containers with No Limits"
	SheetNoQuota     = "Namespaces with No Quota"
)

// SheetNames is the fixed sheet order of every generated workbook.
var SheetNames = []string{
	SheetQuotaChart,
	SheetLimitsChart,
	SheetQuotas,
	SheetPodLimits,
	SheetNoLimits,
	SheetNoQuota,
}

// Green for the positive category, red for the negative one.
const (
	colorWith    = "4CAF50"
	colorWithout = "FF0000"
)

// Leading resource columns of the quota sheet; any further resources follow
// alphabetically.
var preferredResourceOrder = []string{
	"cpu", "memory",
	"limits.cpu", "limits.memory",
	"requests.cpu", "requests.memory",
	"pods",
}

// WriteError is a fatal failure to persist the workbook.
type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write report %s: %v", e.Path, e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// Filename returns the timestamped workbook name for a generation time.
// Collisions are only possible within the same second.
func Filename(t time.Time) string {
	return fmt.Sprintf("ocp_resource_report_%s.xlsx", t.Format("20060102_150405"))
}

// Builder writes workbooks into a fixed output directory.
type Builder struct {
	outputDir string
}

func NewBuilder(outputDir string) *Builder {
	return &Builder{outputDir: outputDir}
}

// Build renders the workbook and persists it, returning the written path.
// The six sheets are always present, even when some of them are empty.
func (b *Builder) Build(ds *model.Dataset, sum aggregate.Summary, generated time.Time) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes the first chart sheet so creation order
	// matches the required sheet order.
	if err := f.SetSheetName("Sheet1", SheetQuotaChart); err != nil {
		return "", fmt.Errorf("failed to create sheet %s: %w", SheetQuotaChart, err)
	}
	for _, name := range SheetNames[1:] {
		if _, err := f.NewSheet(name); err != nil {
			return "", fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	if err := b.addRatioChart(f, SheetQuotaChart, "Ratio of Namespaces with/without Quota",
		"Namespaces with Quota", "Namespaces without Quota",
		sum.NamespacesWithQuota, sum.NamespacesWithoutQuota); err != nil {
		return "", err
	}
	if err := b.addRatioChart(f, SheetLimitsChart, "Ratio of Containers with/without Limits",
		"Containers with Limits", "Containers without Limits",
		sum.ContainersWithLimits, sum.ContainersWithoutLimits); err != nil {
		return "", err
	}

	if err := b.writeQuotaSheet(f, ds.Quotas); err != nil {
		return "", err
	}
	if err := b.writeContainerSheet(f, SheetPodLimits, ds.Containers, true); err != nil {
		return "", err
	}
	if err := b.writeContainerSheet(f, SheetNoLimits, ds.ContainersWithoutLimits(), false); err != nil {
		return "", err
	}
	if err := b.writeNoQuotaSheet(f, ds.NamespacesWithoutQuota()); err != nil {
		return "", err
	}

	path := filepath.Join(b.outputDir, Filename(generated))
	if err := f.SaveAs(path); err != nil {
		return "", &WriteError{Path: path, Cause: err}
	}

	log.Printf("Report generation complete. File saved as %s", path)
	return path, nil
}

// addRatioChart writes the two category rows (green/red) and attaches a pie
// chart over them. A chart with no data at all is skipped, matching the
// behavior of an empty cluster scope.
func (b *Builder) addRatioChart(f *excelize.File, sheet, title, withLabel, withoutLabel string, with, without int) error {
	if err := f.SetCellValue(sheet, "A1", withLabel); err != nil {
		return fmt.Errorf("failed to write chart data on %s: %w", sheet, err)
	}
	f.SetCellValue(sheet, "B1", with)
	f.SetCellValue(sheet, "A2", withoutLabel)
	f.SetCellValue(sheet, "B2", without)
	f.SetColWidth(sheet, "A", "A", 28)

	if err := b.styleCategoryRow(f, sheet, 1, colorWith); err != nil {
		return err
	}
	if err := b.styleCategoryRow(f, sheet, 2, colorWithout); err != nil {
		return err
	}

	if with+without == 0 {
		log.Printf("Not enough data to create chart: %s", title)
		f.SetCellValue(sheet, "A4", "No data collected")
		return nil
	}

	varyColors := true
	chart := &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$A$1", sheet),
			Categories: fmt.Sprintf("'%s'!$A$1:$A$2", sheet),
			Values:     fmt.Sprintf("'%s'!$B$1:$B$2", sheet),
		}},
		Title:      []excelize.RichTextRun{{Text: title}},
		VaryColors: &varyColors,
		Legend:     excelize.ChartLegend{Position: "bottom"},
		PlotArea: excelize.ChartPlotArea{
			ShowPercent: true,
			ShowVal:     true,
		},
		Dimension: excelize.ChartDimension{Width: 600, Height: 450},
	}
	if err := f.AddChart(sheet, "D2", chart); err != nil {
		return fmt.Errorf("failed to add chart on %s: %w", sheet, err)
	}
	return nil
}

func (b *Builder) styleCategoryRow(f *excelize.File, sheet string, row int, color string) error {
	styleID, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		Font: &excelize.Font{Color: "FFFFFF", Bold: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create style on %s: %w", sheet, err)
	}
	return f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), styleID)
}

// quotaColumns returns the union of resource names across all quotas, with
// the well-known resources first.
func quotaColumns(quotas []model.QuotaRecord) []string {
	seen := make(map[string]bool)
	for _, q := range quotas {
		for resource := range q.Resources {
			seen[resource] = true
		}
	}

	var columns []string
	for _, resource := range preferredResourceOrder {
		if seen[resource] {
			columns = append(columns, resource)
			delete(seen, resource)
		}
	}
	var rest []string
	for resource := range seen {
		rest = append(rest, resource)
	}
	sort.Strings(rest)
	return append(columns, rest...)
}

func (b *Builder) writeQuotaSheet(f *excelize.File, quotas []model.QuotaRecord) error {
	resources := quotaColumns(quotas)
	header := append([]string{"Name", "Namespace"}, resources...)
	if err := writeHeader(f, SheetQuotas, header); err != nil {
		return err
	}

	for i, q := range quotas {
		row := i + 2
		setCell(f, SheetQuotas, 1, row, q.Name)
		setCell(f, SheetQuotas, 2, row, q.Namespace)
		for j, resource := range resources {
			pair, ok := q.Resources[resource]
			if !ok {
				continue
			}
			value := pair.Hard
			if pair.Used != "" {
				value = pair.Used + "/" + pair.Hard
			}
			setCell(f, SheetQuotas, j+3, row, value)
		}
	}

	log.Printf("Wrote %d quotas to '%s' sheet", len(quotas), SheetQuotas)
	return nil
}

// writeContainerSheet writes one row per container. The no-limits sheet
// omits the limit columns since they are empty by definition.
func (b *Builder) writeContainerSheet(f *excelize.File, sheet string, containers []model.ContainerRecord, withLimits bool) error {
	header := []string{"Pod Name", "Namespace", "Container Name"}
	if withLimits {
		header = append(header, "CPU Limit", "Memory Limit")
	}
	header = append(header, "CPU Request", "Memory Request")
	if err := writeHeader(f, sheet, header); err != nil {
		return err
	}

	for i, c := range containers {
		row := i + 2
		setCell(f, sheet, 1, row, c.Pod)
		setCell(f, sheet, 2, row, c.Namespace)
		setCell(f, sheet, 3, row, c.Container)
		col := 4
		if withLimits {
			setCell(f, sheet, col, row, c.CPULimit)
			setCell(f, sheet, col+1, row, c.MemoryLimit)
			col += 2
		}
		setCell(f, sheet, col, row, c.CPURequest)
		setCell(f, sheet, col+1, row, c.MemoryRequest)
	}

	log.Printf("Wrote %d containers to '%s' sheet", len(containers), sheet)
	return nil
}

func (b *Builder) writeNoQuotaSheet(f *excelize.File, namespaces []string) error {
	if err := writeHeader(f, SheetNoQuota, []string{"Namespace"}); err != nil {
		return err
	}
	for i, ns := range namespaces {
		setCell(f, SheetNoQuota, 1, i+2, ns)
	}

	log.Printf("Wrote %d namespaces to '%s' sheet", len(namespaces), SheetNoQuota)
	return nil
}

func writeHeader(f *excelize.File, sheet string, columns []string) error {
	styleID, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style on %s: %w", sheet, err)
	}
	for i, column := range columns {
		setCell(f, sheet, i+1, 1, column)
	}
	last, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(sheet, "A1", last, styleID); err != nil {
		return fmt.Errorf("failed to style header on %s: %w", sheet, err)
	}
	f.SetColWidth(sheet, "A", "B", 30)
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		log.Printf("Warning: invalid cell coordinates (%d,%d) on %s: %v", col, row, sheet, err)
		return
	}
	f.SetCellValue(sheet, cell, value)
}
