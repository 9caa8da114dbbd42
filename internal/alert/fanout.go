package alert

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/kitchen-stock/pkg/logger"
)

// Channel is a named publisher inside a Fanout.
type Channel struct {
	Name      string
	Publisher Publisher
}

// Fanout publishes every alert to all channels. Every channel is attempted;
// the joined error reports the ones that failed.
type Fanout struct {
	channels  []Channel
	published *prometheus.CounterVec
}

func NewFanout(reg prometheus.Registerer, channels ...Channel) *Fanout {
	published := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kitchen_alerts_published_total",
			Help: "Alerts handed to a channel, by channel, code and result",
		},
		[]string{"channel", "code", "result"},
	)
	reg.MustRegister(published)

	return &Fanout{channels: channels, published: published}
}

func (f *Fanout) Publish(ctx context.Context, a Alert) error {
	var errs []error
	for _, ch := range f.channels {
		if err := ch.Publisher.Publish(ctx, a); err != nil {
			f.published.WithLabelValues(ch.Name, string(a.Code), "error").Inc()
			logger.Error(ctx).
				Err(err).
				Str("channel", ch.Name).
				Str("code", string(a.Code)).
				Msg("Failed to publish alert")
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name, err))
			continue
		}
		f.published.WithLabelValues(ch.Name, string(a.Code), "success").Inc()
	}

	if len(errs) > 0 {
		return fmt.Errorf("failed to publish alert: %w", errors.Join(errs...))
	}

	logger.Info(ctx).
		Str("code", string(a.Code)).
		Str("title", a.Title).
		Msg("Alert published")
	return nil
}
