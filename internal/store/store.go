// Package store is the document store gateway: a thin accessor over named
// collections of schemaless documents. It owns no business logic.
package store

import (
	"context"
	"errors"

	"github.com/christmas3d/shop-api/internal/ident"
)

// Field names the store reserves or that callers sort on.
const (
	IDField        = "_id"
	CreatedAtField = "created_at"
	UpdatedAtField = "updated_at"
)

var (
	// ErrUnavailable means no gateway is attached (unconfigured or not yet connected).
	ErrUnavailable = errors.New("Database not configured")
	// ErrHasID is returned by Insert when the document already carries an identifier.
	ErrHasID = errors.New("document for insert must not carry an identifier")
)

// Document is the generic stored representation. Documents read from the
// store carry exactly one IDField; documents passed to Insert carry none.
type Document map[string]any

// Gateway is the set of document operations the service depends on.
// Implementations must be safe for concurrent use.
type Gateway interface {
	Insert(ctx context.Context, collection string, doc Document) (ident.ID, error)
	// FindOne returns a nil Document and no error when nothing matches.
	FindOne(ctx context.Context, collection string, id ident.ID) (Document, error)
	FindSorted(ctx context.Context, collection, field string, descending bool) ([]Document, error)
	// UpdateOne merges set into the matching document and reports how many matched.
	UpdateOne(ctx context.Context, collection string, id ident.ID, set Document) (int64, error)
	DeleteOne(ctx context.Context, collection string, id ident.ID) (int64, error)

	Name() string
	Collections(ctx context.Context) ([]string, error)
}
