// Package verification runs the post-delivery check and, when it passes,
// books the delivered goods into stock.
package verification

import (
	"context"
	"math/rand/v2"

	"github.com/tair/kitchen-stock/internal/order/domain"
)

// DefaultPassRate is the probability a delivery passes the check.
const DefaultPassRate = 0.9

// Checker decides whether a delivered order passes inspection.
type Checker interface {
	Check(ctx context.Context, order domain.Order) bool
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context, order domain.Order) bool

func (f CheckerFunc) Check(ctx context.Context, order domain.Order) bool {
	return f(ctx, order)
}

// RandomChecker passes an order with a fixed probability, independent of
// the order's content.
type RandomChecker struct {
	passRate float64
	draw     func() float64
}

func NewRandomChecker(passRate float64) *RandomChecker {
	if passRate < 0 || passRate > 1 {
		passRate = DefaultPassRate
	}
	return &RandomChecker{passRate: passRate, draw: rand.Float64}
}

func (c *RandomChecker) Check(context.Context, domain.Order) bool {
	return c.draw() < c.passRate
}
