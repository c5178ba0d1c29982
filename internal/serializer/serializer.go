// Package serializer translates between stored documents and the
// client-facing shape, where the identifier is a plain string under "id".
package serializer

import (
	"time"

	"github.com/christmas3d/shop-api/internal/ident"
	"github.com/christmas3d/shop-api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClientIDField is the identifier key in the client view.
const ClientIDField = "id"

// ToClientView renames the store identifier to "id" in string form and
// normalizes driver value types. An empty document is returned as is, so
// callers can treat an empty result as "not found".
func ToClientView(doc store.Document) map[string]any {
	if len(doc) == 0 {
		return doc
	}
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		if k == store.IDField {
			continue
		}
		out[k] = normalize(v)
	}
	if id, ok := doc[store.IDField]; ok {
		out[ClientIDField] = idString(id)
	}
	return out
}

// ToStoreWrite builds the document sent to the store from caller fields.
// Identifier and timestamp fields are server-controlled and always
// replaced: inserts get created_at and updated_at, updates get updated_at.
func ToStoreWrite(fields map[string]any, isUpdate bool, now time.Time) store.Document {
	out := make(store.Document, len(fields)+2)
	for k, v := range fields {
		switch k {
		case store.IDField, ClientIDField, store.CreatedAtField, store.UpdatedAtField:
			continue
		}
		out[k] = v
	}
	if !isUpdate {
		out[store.CreatedAtField] = now
	}
	out[store.UpdatedAtField] = now
	return out
}

func idString(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case ident.ID:
		return id.String()
	case string:
		return id
	}
	return ""
}

func normalize(v any) any {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.M:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = normalize(vv)
		}
		return m
	case primitive.A:
		a := make([]any, len(t))
		for i, vv := range t {
			a[i] = normalize(vv)
		}
		return a
	}
	return v
}
