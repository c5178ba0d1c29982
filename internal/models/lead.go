package models

import "time"

// LeadCollection holds contact requests captured from the storefront.
const LeadCollection = "lead"

// LeadInput is the accepted payload for a new lead. Email must be present
// and non-null; an empty string is accepted.
type LeadInput struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" binding:"required"`
	Phone   *string `json:"phone"`
	Message *string `json:"message"`
}

// Lead is the stored shape of a lead. Leads are written once and never changed.
type Lead struct {
	Name      *string   `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     *string   `bson:"phone" json:"phone"`
	Message   *string   `bson:"message" json:"message"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Lead converts a validated input into the stored shape.
func (in LeadInput) Lead() Lead {
	l := Lead{Name: in.Name, Phone: in.Phone, Message: in.Message}
	if in.Email != nil {
		l.Email = *in.Email
	}
	return l
}

// Fields returns the business fields; timestamps are stamped by the serializer.
func (l Lead) Fields() map[string]any {
	return map[string]any{
		"name":    optional(l.Name),
		"email":   l.Email,
		"phone":   optional(l.Phone),
		"message": optional(l.Message),
	}
}

func optional[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
