package models

import (
	"encoding/json"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode[T any](t *testing.T, body string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(body), &v))
	return v
}

func TestProductInputDefaults(t *testing.T) {
	in := decode[ProductInput](t, `{"title":"Tree","price":49.9}`)
	require.NoError(t, binding.Validator.ValidateStruct(in))

	p := in.Product()
	assert.Equal(t, "Tree", p.Title)
	assert.Equal(t, 49.9, p.Price)
	assert.Equal(t, DefaultCategory, p.Category)
	assert.True(t, p.InStock)
	assert.Nil(t, p.Description)

	f := p.Fields()
	assert.Equal(t, "Geral", f["category"])
	assert.Equal(t, true, f["in_stock"])
	assert.Nil(t, f["description"])
	assert.Contains(t, f, "description")
}

func TestProductInputExplicitValues(t *testing.T) {
	in := decode[ProductInput](t, `{"title":"Star","price":0,"category":"Topo","in_stock":false,"description":"gold"}`)
	require.NoError(t, binding.Validator.ValidateStruct(in))

	p := in.Product()
	assert.Equal(t, 0.0, p.Price)
	assert.Equal(t, "Topo", p.Category)
	assert.False(t, p.InStock)
	assert.Equal(t, "gold", p.Fields()["description"])
}

func TestProductInputValidation(t *testing.T) {
	for name, body := range map[string]string{
		"missing title":  `{"price":1}`,
		"null title":     `{"title":null,"price":1}`,
		"missing price":  `{"title":"x"}`,
		"negative price": `{"title":"x","price":-0.01}`,
	} {
		in := decode[ProductInput](t, body)
		assert.Error(t, binding.Validator.ValidateStruct(in), name)
	}
}

func TestProductUpdateFieldsAreSparse(t *testing.T) {
	u := decode[ProductUpdate](t, `{"price":39.9}`)
	require.NoError(t, binding.Validator.ValidateStruct(u))
	assert.Equal(t, map[string]any{"price": 39.9}, u.Fields())

	empty := decode[ProductUpdate](t, `{}`)
	assert.Empty(t, empty.Fields())
}

func TestProductUpdateIgnoresNulls(t *testing.T) {
	u := decode[ProductUpdate](t, `{"title":null,"description":null,"in_stock":false}`)
	assert.Equal(t, map[string]any{"in_stock": false}, u.Fields())
}

func TestProductUpdateRejectsNegativePrice(t *testing.T) {
	u := decode[ProductUpdate](t, `{"price":-5}`)
	assert.Error(t, binding.Validator.ValidateStruct(u))
}

func TestLeadInput(t *testing.T) {
	in := decode[LeadInput](t, `{"email":"santa@north.pole","name":"Noel"}`)
	require.NoError(t, binding.Validator.ValidateStruct(in))
	f := in.Lead().Fields()
	assert.Equal(t, "santa@north.pole", f["email"])
	assert.Equal(t, "Noel", f["name"])
	assert.Nil(t, f["phone"])
	assert.Nil(t, f["message"])

	missing := decode[LeadInput](t, `{"name":"Noel"}`)
	assert.Error(t, binding.Validator.ValidateStruct(missing))

	null := decode[LeadInput](t, `{"email":null}`)
	assert.Error(t, binding.Validator.ValidateStruct(null))
}

func TestEmptyStringsArePresent(t *testing.T) {
	lead := decode[LeadInput](t, `{"email":""}`)
	require.NoError(t, binding.Validator.ValidateStruct(lead))
	assert.Equal(t, "", lead.Lead().Fields()["email"])

	product := decode[ProductInput](t, `{"title":"","price":1}`)
	require.NoError(t, binding.Validator.ValidateStruct(product))
	assert.Equal(t, "", product.Product().Title)
}
