package store

import (
	"context"
	"time"

	"github.com/christmas3d/shop-api/internal/ident"
	"github.com/christmas3d/shop-api/pkg/metrics"
)

type instrumented struct {
	next Gateway
}

// Instrument wraps gw so every call is counted and timed in Prometheus.
func Instrument(gw Gateway) Gateway {
	if gw == nil {
		return nil
	}
	return &instrumented{next: gw}
}

func observe(collection, op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.StoreOperations.WithLabelValues(collection, op, outcome).Inc()
	metrics.StoreLatency.WithLabelValues(collection, op).Observe(time.Since(start).Seconds())
}

func (i *instrumented) Insert(ctx context.Context, collection string, doc Document) (ident.ID, error) {
	start := time.Now()
	id, err := i.next.Insert(ctx, collection, doc)
	observe(collection, "insert", start, err)
	return id, err
}

func (i *instrumented) FindOne(ctx context.Context, collection string, id ident.ID) (Document, error) {
	start := time.Now()
	d, err := i.next.FindOne(ctx, collection, id)
	observe(collection, "find_one", start, err)
	return d, err
}

func (i *instrumented) FindSorted(ctx context.Context, collection, field string, descending bool) ([]Document, error) {
	start := time.Now()
	docs, err := i.next.FindSorted(ctx, collection, field, descending)
	observe(collection, "find_sorted", start, err)
	return docs, err
}

func (i *instrumented) UpdateOne(ctx context.Context, collection string, id ident.ID, set Document) (int64, error) {
	start := time.Now()
	n, err := i.next.UpdateOne(ctx, collection, id, set)
	observe(collection, "update_one", start, err)
	return n, err
}

func (i *instrumented) DeleteOne(ctx context.Context, collection string, id ident.ID) (int64, error) {
	start := time.Now()
	n, err := i.next.DeleteOne(ctx, collection, id)
	observe(collection, "delete_one", start, err)
	return n, err
}

func (i *instrumented) Name() string { return i.next.Name() }

func (i *instrumented) Collections(ctx context.Context) ([]string, error) {
	return i.next.Collections(ctx)
}
