package verification

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/kitchen-stock/internal/alert"
	"github.com/tair/kitchen-stock/internal/inventory/usecase/command"
	"github.com/tair/kitchen-stock/internal/order/domain"
	"github.com/tair/kitchen-stock/pkg/clock"
	"github.com/tair/kitchen-stock/pkg/logger"
)

// Verifier runs after an order is marked delivered.
type Verifier struct {
	checker Checker
	stock   *command.AddStockHandler
	alerts  alert.Publisher
	clock   clock.Clock
	results *prometheus.CounterVec
}

func NewVerifier(reg prometheus.Registerer, checker Checker, stock *command.AddStockHandler, alerts alert.Publisher, clk clock.Clock) *Verifier {
	results := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kitchen_delivery_verifications_total",
			Help: "Post-delivery checks by outcome",
		},
		[]string{"result"},
	)
	reg.MustRegister(results)

	return &Verifier{
		checker: checker,
		stock:   stock,
		alerts:  alerts,
		clock:   clk,
		results: results,
	}
}

// Verify announces the delivery, runs the check and, on a pass, adds the
// order's items to stock on behalf of its driver. The outcome never changes
// the order itself.
func (v *Verifier) Verify(ctx context.Context, order domain.Order) (bool, error) {
	if err := v.alerts.Publish(ctx, alert.OrderDelivered(order.ID, v.clock.Now())); err != nil {
		return false, err
	}

	passed := v.checker.Check(ctx, order)
	v.results.WithLabelValues(outcome(passed)).Inc()

	logger.Info(ctx).
		Str("order_id", order.ID).
		Str("driver_id", order.DriverID).
		Bool("passed", passed).
		Msg("Delivery checked")

	if err := v.alerts.Publish(ctx, alert.CheckResult(order.ID, passed, v.clock.Now())); err != nil {
		return passed, err
	}
	if !passed {
		return false, nil
	}

	_, err := v.stock.Handle(ctx, command.AddStockCommand{
		Items:   order.Deltas(),
		ActorID: order.DriverID,
	})
	if err != nil {
		return true, fmt.Errorf("failed to stock delivered order %s: %w", order.ID, err)
	}
	return true, nil
}

func outcome(passed bool) string {
	if passed {
		return "passed"
	}
	return "failed"
}
