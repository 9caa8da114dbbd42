package replenishment

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/kitchen-stock/internal/inventory/usecase/query"
	"github.com/tair/kitchen-stock/internal/order/usecase/command"
	"github.com/tair/kitchen-stock/pkg/clock"
	"github.com/tair/kitchen-stock/pkg/logger"
)

// JobName identifies the job to the scheduler and the manual trigger.
const JobName = "replenishment"

// Job drafts the weekly supplier orders. It never touches stock.
type Job struct {
	history   *query.ChangeHistoryHandler
	aggregate *query.AggregateStockHandler
	create    *command.CreateOrderHandler
	clock     clock.Clock
	generated prometheus.Counter
}

func NewJob(reg prometheus.Registerer, history *query.ChangeHistoryHandler, aggregate *query.AggregateStockHandler, create *command.CreateOrderHandler, clk clock.Clock) *Job {
	generated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kitchen_orders_generated_total",
		Help: "Orders drafted by the replenishment job",
	})
	reg.MustRegister(generated)

	return &Job{
		history:   history,
		aggregate: aggregate,
		create:    create,
		clock:     clk,
		generated: generated,
	}
}

func (j *Job) Name() string {
	return JobName
}

// Run computes averages, plans and creates the orders. Orders created before
// a failure stay in place.
func (j *Job) Run(ctx context.Context) error {
	now := j.clock.Now()

	entries, err := j.history.Handle(ctx, query.ChangeHistoryQuery{Weeks: HistoryWeeks})
	if err != nil {
		return err
	}
	aggregates, err := j.aggregate.Handle(ctx)
	if err != nil {
		return err
	}

	averages := ComputeAverages(entries)
	planned := PlanOrders(aggregates, averages, now)

	for _, cmd := range planned {
		order, err := j.create.Handle(ctx, cmd)
		if err != nil {
			return fmt.Errorf("failed to create order for supplier %s: %w", cmd.SupplierID, err)
		}
		j.generated.Inc()
		logger.Debug(ctx).
			Str("order_id", order.ID).
			Str("supplier_id", cmd.SupplierID).
			Int("items", len(cmd.Items)).
			Msg("Replenishment order drafted")
	}

	logger.Info(ctx).
		Int("history_entries", len(entries)).
		Int("suppliers", len(aggregates)).
		Int("orders", len(planned)).
		Msg("Replenishment run finished")
	return nil
}
