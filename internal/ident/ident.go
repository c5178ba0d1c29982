package ident

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalid is returned by Parse when the raw value is not a well-formed identifier.
var ErrInvalid = errors.New("Invalid objectid")

// ID is the opaque identifier assigned by the document store.
// Only the store package converts it to the driver representation.
type ID [12]byte

// Nil is the zero identifier; the store never assigns it.
var Nil ID

// Parse validates a client-supplied identifier (24 hex characters) and
// converts it. It never touches the store.
func Parse(raw string) (ID, error) {
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return Nil, fmt.Errorf("%w: %q", ErrInvalid, raw)
	}
	return ID(oid), nil
}

// IsValid reports whether raw would be accepted by Parse.
func IsValid(raw string) bool {
	_, err := Parse(raw)
	return err == nil
}

// New returns a fresh identifier using the store's generation scheme.
func New() ID {
	return ID(primitive.NewObjectID())
}

// FromObjectID wraps a driver identifier.
func FromObjectID(oid primitive.ObjectID) ID {
	return ID(oid)
}

// ObjectID returns the driver representation.
func (id ID) ObjectID() primitive.ObjectID {
	return primitive.ObjectID(id)
}

// String renders the fixed-format hex form accepted by Parse.
func (id ID) String() string {
	return primitive.ObjectID(id).Hex()
}

// IsZero reports whether id is the Nil identifier.
func (id ID) IsZero() bool {
	return id == Nil
}
