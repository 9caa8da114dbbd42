// Package expiry warns the head chef about stock that is about to go off.
package expiry

import (
	"context"
	"time"

	"github.com/tair/kitchen-stock/internal/alert"
	inventory "github.com/tair/kitchen-stock/internal/inventory/domain"
	"github.com/tair/kitchen-stock/internal/inventory/usecase/query"
	"github.com/tair/kitchen-stock/pkg/clock"
	"github.com/tair/kitchen-stock/pkg/logger"
)

const (
	// JobName identifies the job to the scheduler and the manual trigger.
	JobName = "expiry-watch"
	// Horizon is how far ahead the watchdog looks.
	Horizon = 3 * 24 * time.Hour
)

// Watchdog raises a single alert when any lot expires soon.
type Watchdog struct {
	stock  *query.ListStockHandler
	alerts alert.Publisher
	clock  clock.Clock
}

func NewWatchdog(stock *query.ListStockHandler, alerts alert.Publisher, clk clock.Clock) *Watchdog {
	return &Watchdog{stock: stock, alerts: alerts, clock: clk}
}

func (w *Watchdog) Name() string {
	return JobName
}

// Run scans all stock and publishes at most one alert per run.
func (w *Watchdog) Run(ctx context.Context) error {
	records, err := w.stock.Handle(ctx, query.ListStockQuery{})
	if err != nil {
		return err
	}

	now := w.clock.Now()
	expiring := ExpiringSoon(records, now)

	logger.Info(ctx).
		Int("lots", len(records)).
		Int("expiring", expiring).
		Msg("Expiry scan finished")

	if expiring == 0 {
		return nil
	}
	return w.alerts.Publish(ctx, alert.ItemsToExpire(now))
}

// ExpiringSoon counts lots expiring strictly between now and now plus the
// horizon.
func ExpiringSoon(records []inventory.StockRecord, now time.Time) int {
	limit := now.Add(Horizon)

	n := 0
	for _, r := range records {
		if r.ExpiryDate.After(now) && r.ExpiryDate.Before(limit) {
			n++
		}
	}
	return n
}
