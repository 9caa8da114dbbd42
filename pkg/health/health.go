package health

import (
	"context"
	"sync"
	"time"

	"github.com/tair/kitchen-stock/pkg/logger"
)

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// Probe checks one dependency. A nil error means healthy.
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

// ComponentHealth is the result of one probe
type ComponentHealth struct {
	Status  string        `json:"status"`
	Latency time.Duration `json:"latency_ms"`
	Error   string        `json:"error,omitempty"`
}

// Report is the overall service health
type Report struct {
	Service    string                     `json:"service"`
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components"`
	Uptime     time.Duration              `json:"uptime_seconds"`
	Timestamp  time.Time                  `json:"timestamp"`
}

// Healthy reports whether every component passed.
func (r Report) Healthy() bool {
	return r.Status == StatusHealthy
}

// Checker runs all probes of a service
type Checker struct {
	service   string
	probes    []Probe
	timeout   time.Duration
	startTime time.Time
}

// NewChecker creates a checker. Each probe gets at most five seconds.
func NewChecker(service string, probes ...Probe) *Checker {
	return &Checker{
		service:   service,
		probes:    probes,
		timeout:   5 * time.Second,
		startTime: time.Now(),
	}
}

// Check runs every probe concurrently
func (c *Checker) Check(ctx context.Context) Report {
	components := make(map[string]ComponentHealth, len(c.probes))
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, p := range c.probes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result := c.run(ctx, p)

			mu.Lock()
			components[p.Name] = result
			mu.Unlock()

			if result.Status != StatusHealthy {
				logger.Warn(ctx).
					Str("component", p.Name).
					Str("error", result.Error).
					Msg("Health check failed")
			}
		}()
	}
	wg.Wait()

	return Report{
		Service:    c.service,
		Status:     overallStatus(components),
		Components: components,
		Uptime:     time.Since(c.startTime),
		Timestamp:  time.Now(),
	}
}

func (c *Checker) run(ctx context.Context, p Probe) ComponentHealth {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	err := p.Check(ctx)
	result := ComponentHealth{Status: StatusHealthy, Latency: time.Since(start)}
	if err != nil {
		result.Status = StatusUnhealthy
		result.Error = err.Error()
	}
	return result
}

func overallStatus(components map[string]ComponentHealth) string {
	healthy := 0
	for _, c := range components {
		if c.Status == StatusHealthy {
			healthy++
		}
	}

	switch {
	case healthy == len(components):
		return StatusHealthy
	case healthy > 0:
		return StatusDegraded
	default:
		return StatusUnhealthy
	}
}
