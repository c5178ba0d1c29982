package models

import "time"

const (
	ProductCollection = "product"
	DefaultCategory   = "Geral"
)

// ProductInput is the accepted payload for a new product. Title and Price
// are pointers: required rejects a missing or null value but accepts "" and 0.
type ProductInput struct {
	Title       *string  `json:"title" binding:"required"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Category    *string  `json:"category"`
	InStock     *bool    `json:"in_stock"`
}

// ProductUpdate is a sparse update: nil fields, whether absent or sent as
// null, are left untouched.
type ProductUpdate struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Category    *string  `json:"category"`
	InStock     *bool    `json:"in_stock"`
}

// Product is the stored shape of a product.
type Product struct {
	Title       string    `bson:"title" json:"title"`
	Description *string   `bson:"description" json:"description"`
	Price       float64   `bson:"price" json:"price"`
	Category    string    `bson:"category" json:"category"`
	InStock     bool      `bson:"in_stock" json:"in_stock"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// Product applies the schema defaults. Callers validate first, so Title and Price are set.
func (in ProductInput) Product() Product {
	p := Product{
		Description: in.Description,
		Category:    DefaultCategory,
		InStock:     true,
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
	return p
}

// Fields returns the business fields with defaults applied.
func (p Product) Fields() map[string]any {
	return map[string]any{
		"title":       p.Title,
		"description": optional(p.Description),
		"price":       p.Price,
		"category":    p.Category,
		"in_stock":    p.InStock,
	}
}

// Fields returns only the fields the caller supplied with a non-null value.
func (u ProductUpdate) Fields() map[string]any {
	out := map[string]any{}
	if u.Title != nil {
		out["title"] = *u.Title
	}
	if u.Description != nil {
		out["description"] = *u.Description
	}
	if u.Price != nil {
		out["price"] = *u.Price
	}
	if u.Category != nil {
		out["category"] = *u.Category
	}
	if u.InStock != nil {
		out["in_stock"] = *u.InStock
	}
	return out
}
