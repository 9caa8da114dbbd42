// Command alert-tail follows the kitchen alert topic and logs every alert.
package main

import (
	"context"
	"flag"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tair/kitchen-stock/internal/config"
	"github.com/tair/kitchen-stock/kafka"
	"github.com/tair/kitchen-stock/pkg/logger"
)

func main() {
	cfg := config.Load()

	brokers := flag.String("brokers", strings.Join(cfg.Kafka.Brokers, ","), "comma separated Kafka brokers")
	topic := flag.String("topic", cfg.Kafka.AlertTopic, "alert topic")
	group := flag.String("group", cfg.Kafka.GroupID, "consumer group")
	flag.Parse()

	logger.Init("alert-tail", cfg.Service.IsDevelopment())
	logger.SetLevel(cfg.Service.LogLevel)

	if *brokers == "" {
		logger.Logger.Fatal().Msg("No Kafka brokers configured, set KAFKA_BROKERS or -brokers")
	}

	consumer, err := kafka.NewConsumer(strings.Split(*brokers, ","), *group, []string{*topic})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create consumer")
	}
	defer consumer.Close()

	consumer.RegisterHandler(kafka.EventTypeAlertRaised, func(ctx context.Context, event kafka.AlertEvent) error {
		logger.Info(ctx).
			Str("event_id", event.EventID).
			Str("code", event.Code).
			Str("title", event.Title).
			Time("timestamp", event.Timestamp).
			Msg(event.Message)
		return nil
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Run(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Consumer stopped")
	}
}
