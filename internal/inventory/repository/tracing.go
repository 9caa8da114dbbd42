package repository

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/kitchen-stock/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// StockRepositoryWithTracing opens a span around every call to the wrapped repository
type StockRepositoryWithTracing struct {
	next domain.StockRepository
}

func NewStockRepositoryWithTracing(next domain.StockRepository) *StockRepositoryWithTracing {
	return &StockRepositoryWithTracing{next: next}
}

func (r *StockRepositoryWithTracing) Create(ctx context.Context, record *domain.StockRecord) (err error) {
	ctx, span := tracer.Start(ctx, "repository.Stock.Create",
		trace.WithAttributes(
			attribute.String("stock.item_id", record.ItemID),
			attribute.Int("stock.quantity", record.Quantity),
		),
	)
	defer func() { finish(span, err) }()

	err = r.next.Create(ctx, record)
	span.SetAttributes(attribute.String("stock.id", record.ID))
	return err
}

func (r *StockRepositoryWithTracing) Update(ctx context.Context, record *domain.StockRecord) (err error) {
	ctx, span := tracer.Start(ctx, "repository.Stock.Update",
		trace.WithAttributes(
			attribute.String("stock.id", record.ID),
			attribute.Int("stock.quantity", record.Quantity),
		),
	)
	defer func() { finish(span, err) }()

	return r.next.Update(ctx, record)
}

func (r *StockRepositoryWithTracing) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracer.Start(ctx, "repository.Stock.Delete",
		trace.WithAttributes(attribute.String("stock.id", id)),
	)
	defer func() { finish(span, err) }()

	return r.next.Delete(ctx, id)
}

func (r *StockRepositoryWithTracing) FindByID(ctx context.Context, id string) (_ *domain.StockRecord, err error) {
	ctx, span := tracer.Start(ctx, "repository.Stock.FindByID",
		trace.WithAttributes(attribute.String("stock.id", id)),
	)
	defer func() { finish(span, err) }()

	return r.next.FindByID(ctx, id)
}

func (r *StockRepositoryWithTracing) FindByLot(ctx context.Context, lot domain.LotKey) (_ *domain.StockRecord, err error) {
	ctx, span := tracer.Start(ctx, "repository.Stock.FindByLot",
		trace.WithAttributes(attribute.String("stock.lot", lot.String())),
	)
	defer func() { finish(span, err) }()

	return r.next.FindByLot(ctx, lot)
}

func (r *StockRepositoryWithTracing) FindAll(ctx context.Context, filter domain.StockFilter) (_ []domain.StockRecord, err error) {
	ctx, span := tracer.Start(ctx, "repository.Stock.FindAll",
		trace.WithAttributes(
			attribute.String("filter.name_prefix", filter.NamePrefix),
			attribute.Int("filter.min_quantity", filter.MinQuantity),
			attribute.Int("filter.max_quantity", filter.MaxQuantity),
		),
	)
	defer func() { finish(span, err) }()

	records, err := r.next.FindAll(ctx, filter)
	span.SetAttributes(attribute.Int("result.count", len(records)))
	return records, err
}

func (r *StockRepositoryWithTracing) FindExpired(ctx context.Context, now time.Time) (_ []domain.StockRecord, err error) {
	ctx, span := tracer.Start(ctx, "repository.Stock.FindExpired")
	defer func() { finish(span, err) }()

	records, err := r.next.FindExpired(ctx, now)
	span.SetAttributes(attribute.Int("result.count", len(records)))
	return records, err
}

func (r *StockRepositoryWithTracing) DeleteExpired(ctx context.Context, now time.Time) (_ int64, err error) {
	ctx, span := tracer.Start(ctx, "repository.Stock.DeleteExpired")
	defer func() { finish(span, err) }()

	n, err := r.next.DeleteExpired(ctx, now)
	span.SetAttributes(attribute.Int64("result.deleted", n))
	return n, err
}

func (r *StockRepositoryWithTracing) AggregateBySupplierAndItem(ctx context.Context) (_ []domain.SupplierAggregate, err error) {
	ctx, span := tracer.Start(ctx, "repository.Stock.AggregateBySupplierAndItem")
	defer func() { finish(span, err) }()

	aggs, err := r.next.AggregateBySupplierAndItem(ctx)
	span.SetAttributes(attribute.Int("result.suppliers", len(aggs)))
	return aggs, err
}

// ChangeRepositoryWithTracing opens a span around every change-log call
type ChangeRepositoryWithTracing struct {
	next domain.ChangeRepository
}

func NewChangeRepositoryWithTracing(next domain.ChangeRepository) *ChangeRepositoryWithTracing {
	return &ChangeRepositoryWithTracing{next: next}
}

func (r *ChangeRepositoryWithTracing) Append(ctx context.Context, entry *domain.ChangeEntry) (err error) {
	ctx, span := tracer.Start(ctx, "repository.Change.Append",
		trace.WithAttributes(
			attribute.String("change.operation", string(entry.Operation)),
			attribute.String("change.user_id", entry.UserID),
			attribute.Int("change.items", len(entry.Items)),
		),
	)
	defer func() { finish(span, err) }()

	err = r.next.Append(ctx, entry)
	span.SetAttributes(attribute.String("change.id", entry.ID))
	return err
}

func (r *ChangeRepositoryWithTracing) FindByID(ctx context.Context, id string) (_ *domain.ChangeEntry, err error) {
	ctx, span := tracer.Start(ctx, "repository.Change.FindByID",
		trace.WithAttributes(attribute.String("change.id", id)),
	)
	defer func() { finish(span, err) }()

	return r.next.FindByID(ctx, id)
}

func (r *ChangeRepositoryWithTracing) FindSince(ctx context.Context, since time.Time) (_ []domain.ChangeEntry, err error) {
	ctx, span := tracer.Start(ctx, "repository.Change.FindSince",
		trace.WithAttributes(attribute.String("filter.since", since.Format(time.RFC3339))),
	)
	defer func() { finish(span, err) }()

	entries, err := r.next.FindSince(ctx, since)
	span.SetAttributes(attribute.Int("result.count", len(entries)))
	return entries, err
}
