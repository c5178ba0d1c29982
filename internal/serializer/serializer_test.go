package serializer

import (
	"testing"
	"time"

	"github.com/christmas3d/shop-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToClientViewRenamesIdentifier(t *testing.T) {
	oid := primitive.NewObjectID()
	created := time.Date(2026, 12, 24, 18, 0, 0, 0, time.UTC)
	doc := store.Document{
		store.IDField:        oid,
		"title":              "Tree",
		store.CreatedAtField: primitive.NewDateTimeFromTime(created),
	}

	view := ToClientView(doc)
	require.Equal(t, oid.Hex(), view["id"])
	_, leaked := view[store.IDField]
	assert.False(t, leaked)
	assert.Equal(t, "Tree", view["title"])
	assert.Equal(t, created, view[store.CreatedAtField])

	// input is left untouched
	assert.Equal(t, oid, doc[store.IDField])
}

func TestToClientViewPassesThroughEmpty(t *testing.T) {
	assert.Nil(t, ToClientView(nil))
	empty := store.Document{}
	assert.Empty(t, ToClientView(empty))
}

func TestToClientViewNormalizesNested(t *testing.T) {
	inner := primitive.NewObjectID()
	view := ToClientView(store.Document{
		store.IDField: primitive.NewObjectID(),
		"meta":        primitive.M{"ref": inner},
		"tags":        primitive.A{"a", inner},
	})
	assert.Equal(t, map[string]any{"ref": inner.Hex()}, view["meta"])
	assert.Equal(t, []any{"a", inner.Hex()}, view["tags"])
}

func TestToStoreWriteInsertStampsBothTimestamps(t *testing.T) {
	now := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	doc := ToStoreWrite(map[string]any{
		"id":                 "client-supplied",
		store.IDField:        "x",
		store.CreatedAtField: "yesterday",
		"title":              "Tree",
	}, false, now)

	assert.Equal(t, store.Document{
		"title":              "Tree",
		store.CreatedAtField: now,
		store.UpdatedAtField: now,
	}, doc)
}

func TestToStoreWriteUpdateStampsOnlyUpdatedAt(t *testing.T) {
	now := time.Now().UTC()
	doc := ToStoreWrite(map[string]any{"price": 39.9, store.UpdatedAtField: "stale"}, true, now)
	assert.Equal(t, store.Document{"price": 39.9, store.UpdatedAtField: now}, doc)
}

func TestRoundTripPreservesBusinessFields(t *testing.T) {
	x := store.Document{
		store.IDField:        primitive.NewObjectID(),
		"title":              "Ornament",
		"description":        nil,
		"price":              12.5,
		"category":           "Geral",
		"in_stock":           true,
		store.CreatedAtField: time.Now().UTC(),
		store.UpdatedAtField: time.Now().UTC(),
	}
	first := ToClientView(x)
	again := ToClientView(ToStoreWrite(first, false, time.Now().UTC()))

	for _, k := range []string{"title", "description", "price", "category", "in_stock"} {
		assert.Equal(t, first[k], again[k], k)
	}
	// the rewritten document has no store identifier yet
	_, hasID := again["id"]
	assert.False(t, hasID)
}
