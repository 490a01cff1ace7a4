package jobs

import (
	"context"
	"log/slog"

	"workorders/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultReconcileSchedule runs the check every five minutes.
const DefaultReconcileSchedule = "0 */5 * * * *"

// ReconciliationJob periodically checks the inventory ledger and logs every
// discrepancy it finds. It never repairs the ledger.
type ReconciliationJob struct {
	handler  queries.ReconcileInventoryQueryHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewReconciliationJob creates the job; schedule is a cron spec with a
// seconds field.
func NewReconciliationJob(
	handler queries.ReconcileInventoryQueryHandler,
	schedule string,
	logger *slog.Logger,
) *ReconciliationJob {
	if schedule == "" {
		schedule = DefaultReconcileSchedule
	}
	return &ReconciliationJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "reconciliation_job"),
	}
}

// Start schedules Run. It fails when the schedule does not parse.
func (j *ReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reconciliation job started", "schedule", j.schedule)
	return nil
}

// Run performs one reconciliation pass and reports whether the ledger was
// consistent.
func (j *ReconciliationJob) Run(ctx context.Context) bool {
	report, err := j.handler.Handle(ctx, queries.NewReconcileInventoryQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Inventory reconciliation failed", "error", err)
		return false
	}

	for _, d := range report.Discrepancies {
		j.logger.WarnContext(ctx, "Inventory ledger discrepancy",
			"kind", string(d.Kind),
			"row", d.Key.String(),
			"expected", d.Expected,
			"actual", d.Actual,
			"detail", d.Detail,
		)
	}
	j.logger.DebugContext(ctx, "Inventory reconciliation finished",
		"rows", report.RowsChecked,
		"reservations", report.ReservationsChecked,
		"discrepancies", len(report.Discrepancies),
	)
	return report.Consistent()
}

// Stop waits for a running pass to finish, then stops the scheduler.
func (j *ReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Reconciliation job stopped")
}
