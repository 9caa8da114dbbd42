package verification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tair/kitchen-stock/internal/order/domain"
)

func TestRandomChecker_Threshold(t *testing.T) {
	c := NewRandomChecker(0.9)

	c.draw = func() float64 { return 0.8999 }
	assert.True(t, c.Check(context.Background(), domain.Order{}))

	c.draw = func() float64 { return 0.9 }
	assert.False(t, c.Check(context.Background(), domain.Order{}))
}

func TestRandomChecker_PassRateIsRoughlyHonoured(t *testing.T) {
	c := NewRandomChecker(DefaultPassRate)

	passed := 0
	const runs = 20000
	for i := 0; i < runs; i++ {
		if c.Check(context.Background(), domain.Order{}) {
			passed++
		}
	}
	assert.InDelta(t, DefaultPassRate, float64(passed)/runs, 0.02)
}

func TestNewRandomChecker_OutOfRangeFallsBack(t *testing.T) {
	assert.Equal(t, DefaultPassRate, NewRandomChecker(1.5).passRate)
	assert.Equal(t, 0.0, NewRandomChecker(0).passRate)
}
