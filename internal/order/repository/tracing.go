package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/kitchen-stock/internal/order/domain"
)

var tracer = otel.Tracer("order-repository")

// OrderRepositoryWithTracing wraps an order repository with spans
type OrderRepositoryWithTracing struct {
	next domain.OrderRepository
}

func NewOrderRepositoryWithTracing(next domain.OrderRepository) *OrderRepositoryWithTracing {
	return &OrderRepositoryWithTracing{next: next}
}

func recordErr(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

func (r *OrderRepositoryWithTracing) Create(ctx context.Context, order *domain.Order) error {
	ctx, span := tracer.Start(ctx, "repository.Order.Create",
		trace.WithAttributes(
			attribute.String("order.supplier_id", order.SupplierID),
			attribute.String("order.status", string(order.Status)),
			attribute.Int("order.items", len(order.Items)),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, order)
	recordErr(span, err)
	span.SetAttributes(attribute.String("order.id", order.ID))
	return err
}

func (r *OrderRepositoryWithTracing) Update(ctx context.Context, order *domain.Order) error {
	ctx, span := tracer.Start(ctx, "repository.Order.Update",
		trace.WithAttributes(
			attribute.String("order.id", order.ID),
			attribute.String("order.status", string(order.Status)),
		),
	)
	defer span.End()

	err := r.next.Update(ctx, order)
	recordErr(span, err)
	return err
}

func (r *OrderRepositoryWithTracing) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "repository.Order.Delete",
		trace.WithAttributes(attribute.String("order.id", id)),
	)
	defer span.End()

	err := r.next.Delete(ctx, id)
	recordErr(span, err)
	return err
}

func (r *OrderRepositoryWithTracing) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	ctx, span := tracer.Start(ctx, "repository.Order.FindByID",
		trace.WithAttributes(attribute.String("order.id", id)),
	)
	defer span.End()

	order, err := r.next.FindByID(ctx, id)
	if err != nil {
		recordErr(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.String("order.status", string(order.Status)))
	return order, nil
}

func (r *OrderRepositoryWithTracing) FindAll(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	attrs := []attribute.KeyValue{attribute.String("filter.driver_id", filter.DriverID)}
	if filter.Status != nil {
		attrs = append(attrs, attribute.String("filter.status", string(*filter.Status)))
	}
	ctx, span := tracer.Start(ctx, "repository.Order.FindAll", trace.WithAttributes(attrs...))
	defer span.End()

	orders, err := r.next.FindAll(ctx, filter)
	recordErr(span, err)
	span.SetAttributes(attribute.Int("result.count", len(orders)))
	return orders, err
}
