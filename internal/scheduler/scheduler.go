// Package scheduler drives the optional continuous mode: a weekly report on
// the configured day and time, plus a nightly history cleanup when the run
// ledger is enabled.
package scheduler

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/opsvista/ocp-resource-report/internal/pipeline"
	"github.com/opsvista/ocp-resource-report/internal/storage"
)

type Scheduler struct {
	cron     *cron.Cron
	pipeline *pipeline.Pipeline
	history  *storage.Storage
	config   Config
}

type Config struct {
	ReportDay      string
	ReportTime     string
	RetentionWeeks int
}

func New(pipe *pipeline.Pipeline, history *storage.Storage, cfg Config) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		pipeline: pipe,
		history:  history,
		config:   cfg,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	reportCron, err := s.buildReportCronExpression()
	if err != nil {
		return fmt.Errorf("failed to build report cron expression: %w", err)
	}

	_, err = s.cron.AddFunc(reportCron, func() {
		if err := s.runReport(ctx); err != nil {
			log.Printf("Error running scheduled report: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule report job: %w", err)
	}

	if s.history != nil {
		cleanupCron := "0 2 * * *"
		_, err = s.cron.AddFunc(cleanupCron, func() {
			if err := s.runCleanup(); err != nil {
				log.Printf("Error running cleanup: %v", err)
			}
		})
		if err != nil {
			return fmt.Errorf("failed to schedule cleanup job: %w", err)
		}
		log.Printf("History cleanup: %s", cleanupCron)
	}

	log.Println("Starting scheduler...")
	log.Printf("Weekly report: %s", reportCron)

	s.cron.Start()

	if err := s.runReport(ctx); err != nil {
		log.Printf("Error running initial report: %v", err)
	}

	return nil
}

func (s *Scheduler) Stop() {
	log.Println("Stopping scheduler...")
	s.cron.Stop()
}

func (s *Scheduler) runReport(ctx context.Context) error {
	log.Println("Running scheduled report generation...")
	path, err := s.pipeline.Run(ctx)
	if err != nil {
		return fmt.Errorf("report generation failed: %w", err)
	}
	log.Printf("Scheduled report written to %s", path)
	return nil
}

func (s *Scheduler) runCleanup() error {
	log.Println("Running scheduled history cleanup...")
	if err := s.history.CleanupOldRuns(s.config.RetentionWeeks); err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}
	log.Println("Cleanup completed")
	return nil
}

func (s *Scheduler) buildReportCronExpression() (string, error) {
	timeParts := strings.Split(s.config.ReportTime, ":")
	if len(timeParts) != 2 {
		return "", fmt.Errorf("invalid report time format: %s", s.config.ReportTime)
	}

	hour := timeParts[0]
	minute := timeParts[1]

	dayMap := map[string]string{
		"sunday":    "0",
		"monday":    "1",
		"tuesday":   "2",
		"wednesday": "3",
		"thursday":  "4",
		"friday":    "5",
		"saturday":  "6",
	}

	day, ok := dayMap[strings.ToLower(s.config.ReportDay)]
	if !ok {
		return "", fmt.Errorf("invalid report day: %s", s.config.ReportDay)
	}

	return fmt.Sprintf("%s %s * * %s", minute, hour, day), nil
}
