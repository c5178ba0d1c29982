package service

import (
	"errors"
	"net/http"

	"github.com/christmas3d/shop-api/internal/ident"
	"github.com/christmas3d/shop-api/internal/store"
)

// Failure kinds. Match with errors.Is against an error returned by Service.
var (
	ErrInvalidIdentifier = ident.ErrInvalid
	ErrValidation        = errors.New("validation failed")
	ErrNoFieldsToUpdate  = errors.New("No fields to update")
	ErrNotFound          = errors.New("Product not found")
	ErrStoreUnavailable  = store.ErrUnavailable
	ErrStoreFailure      = errors.New("store operation failed")
)

// Class is the coarse, client-visible classification of a failure.
type Class int

const (
	ClassBadRequest Class = iota
	ClassNotFound
	ClassServerError
)

func (c Class) String() string {
	switch c {
	case ClassNotFound:
		return "not_found"
	case ClassServerError:
		return "server_error"
	}
	return "bad_request"
}

func (c Class) HTTPStatus() int {
	switch c {
	case ClassNotFound:
		return http.StatusNotFound
	case ClassServerError:
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// Error is the only error type Service returns. Detail is safe to show to
// clients; Err keeps the underlying cause for logs.
type Error struct {
	Kind   error
	Class  Class
	Detail string
	Err    error
}

func (e *Error) Error() string { return e.Detail }

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindName is a stable label for metrics and logs.
func (e *Error) KindName() string {
	switch e.Kind {
	case ErrInvalidIdentifier:
		return "invalid_identifier"
	case ErrValidation:
		return "validation_failure"
	case ErrNoFieldsToUpdate:
		return "no_fields_to_update"
	case ErrNotFound:
		return "not_found"
	case ErrStoreUnavailable:
		return "store_unavailable"
	}
	return "store_failure"
}

// ValidationError classifies a schema violation or a failed create.
func ValidationError(err error) *Error {
	return &Error{Kind: ErrValidation, Class: ClassBadRequest, Detail: err.Error(), Err: err}
}

func invalidIdentifier(err error) *Error {
	return &Error{Kind: ErrInvalidIdentifier, Class: ClassBadRequest, Detail: ErrInvalidIdentifier.Error(), Err: err}
}

func noFields() *Error {
	return &Error{Kind: ErrNoFieldsToUpdate, Class: ClassBadRequest, Detail: ErrNoFieldsToUpdate.Error()}
}

func notFound() *Error {
	return &Error{Kind: ErrNotFound, Class: ClassNotFound, Detail: ErrNotFound.Error()}
}

func unavailable() *Error {
	return &Error{Kind: ErrStoreUnavailable, Class: ClassServerError, Detail: ErrStoreUnavailable.Error()}
}

func storeFailure(class Class, err error) *Error {
	return &Error{Kind: ErrStoreFailure, Class: class, Detail: err.Error(), Err: err}
}
