package store

import "sync/atomic"

type attached struct{ gw Gateway }

// Handle is the process-wide reference to the current gateway. It is
// checked on every call, so a gateway attached after startup is picked up
// without restarting.
type Handle struct {
	cur atomic.Pointer[attached]
}

// NewHandle returns a handle; gw may be nil to start unavailable.
func NewHandle(gw Gateway) *Handle {
	h := &Handle{}
	h.Set(gw)
	return h
}

// Set attaches gw (or detaches when nil).
func (h *Handle) Set(gw Gateway) {
	if gw == nil {
		h.cur.Store(nil)
		return
	}
	h.cur.Store(&attached{gw: gw})
}

// Gateway returns the attached gateway or ErrUnavailable.
func (h *Handle) Gateway() (Gateway, error) {
	if h == nil {
		return nil, ErrUnavailable
	}
	a := h.cur.Load()
	if a == nil {
		return nil, ErrUnavailable
	}
	return a.gw, nil
}

// Available reports whether a gateway is attached.
func (h *Handle) Available() bool {
	_, err := h.Gateway()
	return err == nil
}
