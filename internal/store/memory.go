package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/christmas3d/shop-api/internal/ident"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryGateway is an in-process gateway used for local runs and tests.
// Documents are copied on the way in and out so callers never share maps
// with the store.
type MemoryGateway struct {
	mu          sync.RWMutex
	name        string
	collections map[string]map[ident.ID]Document
}

func NewMemoryGateway(name string) *MemoryGateway {
	if name == "" {
		name = "memory"
	}
	return &MemoryGateway{name: name, collections: make(map[string]map[ident.ID]Document)}
}

func (m *MemoryGateway) Insert(_ context.Context, collection string, doc Document) (ident.ID, error) {
	if _, ok := doc[IDField]; ok {
		return ident.Nil, ErrHasID
	}
	id := ident.New()
	stored := clone(doc)
	stored[IDField] = id.ObjectID()

	m.mu.Lock()
	defer m.mu.Unlock()
	col, ok := m.collections[collection]
	if !ok {
		col = make(map[ident.ID]Document)
		m.collections[collection] = col
	}
	col[id] = stored
	return id, nil
}

func (m *MemoryGateway) FindOne(_ context.Context, collection string, id ident.ID) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.collections[collection][id]
	if !ok {
		return nil, nil
	}
	return clone(d), nil
}

func (m *MemoryGateway) FindSorted(_ context.Context, collection, field string, descending bool) ([]Document, error) {
	m.mu.RLock()
	out := make([]Document, 0, len(m.collections[collection]))
	for _, d := range m.collections[collection] {
		out = append(out, clone(d))
	}
	m.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		c := compareValues(out[i][field], out[j][field])
		if c == 0 {
			// ObjectIDs grow with insertion order
			c = compareValues(out[i][IDField], out[j][IDField])
		}
		if descending {
			return c > 0
		}
		return c < 0
	})
	return out, nil
}

func (m *MemoryGateway) UpdateOne(_ context.Context, collection string, id ident.ID, set Document) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.collections[collection][id]
	if !ok {
		return 0, nil
	}
	for k, v := range set {
		if k == IDField {
			continue
		}
		d[k] = v
	}
	return 1, nil
}

func (m *MemoryGateway) DeleteOne(_ context.Context, collection string, id ident.ID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	col := m.collections[collection]
	if _, ok := col[id]; !ok {
		return 0, nil
	}
	delete(col, id)
	return 1, nil
}

func (m *MemoryGateway) Name() string { return m.name }

func (m *MemoryGateway) Collections(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.collections))
	for name := range m.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func clone(d Document) Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// compareValues orders the value kinds the service sorts on. Missing values
// sort lowest, as they do in MongoDB.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if ta, ok := asTime(a); ok {
		if tb, ok := asTime(b); ok {
			return ta.Compare(tb)
		}
	}
	if fa, ok := asFloat(a); ok {
		if fb, ok := asFloat(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	if oa, ok := a.(primitive.ObjectID); ok {
		if ob, ok := b.(primitive.ObjectID); ok {
			return compareStrings(oa.Hex(), ob.Hex())
		}
	}
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return compareStrings(sa, sb)
		}
	}
	return 0
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case primitive.DateTime:
		return t.Time(), true
	}
	return time.Time{}, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
