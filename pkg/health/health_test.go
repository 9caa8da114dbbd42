package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ok(name string) Probe {
	return Probe{Name: name, Check: func(context.Context) error { return nil }}
}

func failing(name string) Probe {
	return Probe{Name: name, Check: func(context.Context) error { return errors.New("connection refused") }}
}

func TestChecker_AllHealthy(t *testing.T) {
	report := NewChecker("kitchen", ok("database"), ok("redis")).Check(context.Background())

	assert.True(t, report.Healthy())
	assert.Equal(t, "kitchen", report.Service)
	assert.Len(t, report.Components, 2)
}

func TestChecker_Degraded(t *testing.T) {
	report := NewChecker("kitchen", ok("database"), failing("alert_queue")).Check(context.Background())

	assert.Equal(t, StatusDegraded, report.Status)
	assert.Equal(t, StatusUnhealthy, report.Components["alert_queue"].Status)
	assert.Equal(t, "connection refused", report.Components["alert_queue"].Error)
}

func TestChecker_Unhealthy(t *testing.T) {
	report := NewChecker("kitchen", failing("database")).Check(context.Background())
	assert.Equal(t, StatusUnhealthy, report.Status)
}

func TestChecker_NoProbes(t *testing.T) {
	assert.True(t, NewChecker("kitchen").Check(context.Background()).Healthy())
}
