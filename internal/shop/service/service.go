// Package service implements the lead and product operations: schema
// checks, identifier parsing, store calls and failure classification.
package service

import (
	"context"
	"time"

	"github.com/gin-gonic/gin/binding"

	"github.com/christmas3d/shop-api/internal/cache"
	"github.com/christmas3d/shop-api/internal/ident"
	"github.com/christmas3d/shop-api/internal/models"
	"github.com/christmas3d/shop-api/internal/serializer"
	"github.com/christmas3d/shop-api/internal/store"
	"github.com/christmas3d/shop-api/pkg/logger"
	"github.com/christmas3d/shop-api/pkg/metrics"
)

// Service holds no per-request state; it is safe for concurrent use.
type Service struct {
	store *store.Handle
	cache cache.ListCache
	now   func() time.Time
}

type Option func(*Service)

// WithCache serves product listings from c between writes.
func WithCache(c cache.ListCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(h *store.Handle, opts ...Option) *Service {
	s := &Service{store: h, now: func() time.Time { return time.Now().UTC() }}
	for _, o := range opts {
		o(s)
	}
	return s
}

// CreateLead stores a new lead and returns its identifier. Any failure,
// including an unavailable store, is reported as a validation failure.
func (s *Service) CreateLead(ctx context.Context, in models.LeadInput) (string, error) {
	if err := binding.Validator.ValidateStruct(in); err != nil {
		return "", ValidationError(err)
	}
	return s.insert(ctx, models.LeadCollection, in.Lead().Fields())
}

// CreateProduct applies schema defaults and stores a new product.
func (s *Service) CreateProduct(ctx context.Context, in models.ProductInput) (string, error) {
	if err := binding.Validator.ValidateStruct(in); err != nil {
		return "", ValidationError(err)
	}
	id, err := s.insert(ctx, models.ProductCollection, in.Product().Fields())
	if err != nil {
		return "", err
	}
	s.invalidate(ctx)
	return id, nil
}

func (s *Service) insert(ctx context.Context, collection string, fields map[string]any) (string, error) {
	gw, err := s.store.Gateway()
	if err != nil {
		return "", ValidationError(err)
	}
	id, err := gw.Insert(ctx, collection, serializer.ToStoreWrite(fields, false, s.now()))
	if err != nil {
		logger.Errorw("insert failed", "collection", collection, "error", err)
		return "", ValidationError(err)
	}
	return id.String(), nil
}

// ListProducts returns client views, newest first. Listing is best effort:
// with no store attached it returns an empty list instead of failing.
func (s *Service) ListProducts(ctx context.Context) ([]map[string]any, error) {
	gw, err := s.store.Gateway()
	if err != nil {
		return []map[string]any{}, nil
	}
	if items, ok := s.cachedList(ctx); ok {
		return items, nil
	}
	gen, cacheable := s.cacheGeneration(ctx)
	docs, err := gw.FindSorted(ctx, models.ProductCollection, store.CreatedAtField, true)
	if err != nil {
		logger.Errorw("list products failed", "error", err)
		return nil, storeFailure(ClassServerError, err)
	}
	out := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		out = append(out, serializer.ToClientView(d))
	}
	if cacheable {
		s.fillCache(ctx, gen, out)
	}
	return out, nil
}

// UpdateProduct applies a sparse update and returns the product as stored
// afterwards. The re-read is not atomic with the write: a delete in
// between surfaces as ErrNotFound.
func (s *Service) UpdateProduct(ctx context.Context, rawID string, in models.ProductUpdate) (map[string]any, error) {
	gw, err := s.store.Gateway()
	if err != nil {
		return nil, unavailable()
	}
	id, err := ident.Parse(rawID)
	if err != nil {
		return nil, invalidIdentifier(err)
	}
	if err := binding.Validator.ValidateStruct(in); err != nil {
		return nil, ValidationError(err)
	}
	fields := in.Fields()
	if len(fields) == 0 {
		return nil, noFields()
	}

	matched, err := gw.UpdateOne(ctx, models.ProductCollection, id, serializer.ToStoreWrite(fields, true, s.now()))
	if err != nil {
		logger.Errorw("update product failed", "id", rawID, "error", err)
		return nil, storeFailure(ClassBadRequest, err)
	}
	if matched == 0 {
		return nil, notFound()
	}
	s.invalidate(ctx)

	doc, err := gw.FindOne(ctx, models.ProductCollection, id)
	if err != nil {
		return nil, storeFailure(ClassBadRequest, err)
	}
	view := serializer.ToClientView(doc)
	if len(view) == 0 {
		return nil, notFound()
	}
	return view, nil
}

// DeleteProduct removes a product. Deleting an already deleted product
// reports ErrNotFound.
func (s *Service) DeleteProduct(ctx context.Context, rawID string) error {
	gw, err := s.store.Gateway()
	if err != nil {
		return unavailable()
	}
	id, err := ident.Parse(rawID)
	if err != nil {
		return invalidIdentifier(err)
	}
	deleted, err := gw.DeleteOne(ctx, models.ProductCollection, id)
	if err != nil {
		logger.Errorw("delete product failed", "id", rawID, "error", err)
		return storeFailure(ClassBadRequest, err)
	}
	if deleted == 0 {
		return notFound()
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) cachedList(ctx context.Context) ([]map[string]any, bool) {
	if s.cache == nil {
		return nil, false
	}
	items, ok, err := s.cache.Get(ctx)
	switch {
	case err != nil:
		metrics.ListCacheLookups.WithLabelValues("error").Inc()
		logger.Warnw("product list cache read failed", "error", err)
		return nil, false
	case !ok:
		metrics.ListCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.ListCacheLookups.WithLabelValues("hit").Inc()
	return items, true
}

// cacheGeneration must be read before the store so that a write racing
// the listing leaves the cache empty.
func (s *Service) cacheGeneration(ctx context.Context) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	gen, err := s.cache.Generation(ctx)
	if err != nil {
		logger.Warnw("product list cache generation read failed", "error", err)
		return 0, false
	}
	return gen, true
}

func (s *Service) fillCache(ctx context.Context, gen int64, items []map[string]any) {
	stored, err := s.cache.SetIfCurrent(ctx, gen, items)
	if err != nil {
		logger.Warnw("product list cache write failed", "error", err)
		return
	}
	if !stored {
		logger.Debugw("product list changed while listing; cache not filled", "generation", gen)
	}
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.Warnw("product list cache invalidation failed", "error", err)
	}
}
