// Package jobs runs the background maintenance loop: periodic pruning
// of the TTL-bound stores so expired report payloads and prompt
// fingerprints don't accumulate on disk.
package jobs

import (
	"errors"
	"log/slog"
)

// ReportPruner removes expired cached report payloads.
type ReportPruner interface {
	Cleanup() (int64, error)
}

// PromptPruner removes expired prompt fingerprints.
type PromptPruner interface {
	Cleanup() (int, error)
}

// CleanupJob prunes both TTL stores in one pass. The stores log their
// own removal counts; the job only aggregates failures.
type CleanupJob struct {
	reports ReportPruner
	prompts PromptPruner
	logger  *slog.Logger
}

func NewCleanupJob(reports ReportPruner, prompts PromptPruner, logger *slog.Logger) *CleanupJob {
	return &CleanupJob{
		reports: reports,
		prompts: prompts,
		logger:  logger,
	}
}

// Run prunes each store. One store failing does not stop the other.
func (j *CleanupJob) Run() error {
	var errs []error

	if _, err := j.reports.Cleanup(); err != nil {
		j.logger.Error("Failed to prune cached reports", slog.Any("error", err))
		errs = append(errs, err)
	}

	if _, err := j.prompts.Cleanup(); err != nil {
		j.logger.Error("Failed to prune prompt fingerprints", slog.Any("error", err))
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
