package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the shop API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>` + AppTitle + ` - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "` + AppTitle + `", "version": "` + AppVersion + `" },
  "components": {
    "schemas": {
      "Error": { "type": "object", "properties": { "error": { "type": "string", "enum": ["bad_request", "not_found", "server_error"] }, "detail": { "type": "string" } } },
      "Created": { "type": "object", "properties": { "status": { "type": "string" }, "id": { "type": "string" } } },
      "LeadIn": { "type": "object", "required": ["email"], "properties": { "name": { "type": "string" }, "email": { "type": "string" }, "phone": { "type": "string" }, "message": { "type": "string" } } },
      "ProductIn": { "type": "object", "required": ["title", "price"], "properties": { "title": { "type": "string" }, "description": { "type": "string" }, "price": { "type": "number", "minimum": 0 }, "category": { "type": "string", "default": "Geral" }, "in_stock": { "type": "boolean", "default": true } } },
      "ProductUpdate": { "type": "object", "properties": { "title": { "type": "string" }, "description": { "type": "string" }, "price": { "type": "number", "minimum": 0 }, "category": { "type": "string" }, "in_stock": { "type": "boolean" } } },
      "Product": { "type": "object", "properties": { "id": { "type": "string" }, "title": { "type": "string" }, "description": { "type": "string" }, "price": { "type": "number" }, "category": { "type": "string" }, "in_stock": { "type": "boolean" }, "created_at": { "type": "string", "format": "date-time" }, "updated_at": { "type": "string", "format": "date-time" } } }
    }
  },
  "paths": {
    "/": { "get": { "summary": "Service banner", "responses": { "200": { "description": "message" } } } },
    "/api/hello": { "get": { "summary": "Hello message", "responses": { "200": { "description": "message" } } } },
    "/test": { "get": { "summary": "Store diagnostics", "responses": { "200": { "description": "diagnostic map" } } } },
    "/api/leads": {
      "post": {
        "summary": "Capture a contact lead",
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/LeadIn" } } } },
        "responses": { "200": { "description": "created", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Created" } } } }, "400": { "description": "validation or store error" } }
      }
    },
    "/api/products": {
      "get": {
        "summary": "List products, newest first",
        "responses": { "200": { "description": "products", "content": { "application/json": { "schema": { "type": "array", "items": { "$ref": "#/components/schemas/Product" } } } } }, "500": { "description": "store error" } }
      },
      "post": {
        "summary": "Create a product",
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/ProductIn" } } } },
        "responses": { "200": { "description": "created", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Created" } } } }, "400": { "description": "validation or store error" } }
      }
    },
    "/api/products/{id}": {
      "put": {
        "summary": "Partially update a product",
        "parameters": [ { "name": "id", "in": "path", "required": true, "schema": { "type": "string" } } ],
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/ProductUpdate" } } } },
        "responses": { "200": { "description": "updated product" }, "400": { "description": "invalid id or no fields to update" }, "404": { "description": "not found" }, "500": { "description": "store not configured" } }
      },
      "delete": {
        "summary": "Delete a product",
        "parameters": [ { "name": "id", "in": "path", "required": true, "schema": { "type": "string" } } ],
        "responses": { "200": { "description": "deleted" }, "400": { "description": "invalid id" }, "404": { "description": "not found" }, "500": { "description": "store not configured" } }
      }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "exposition" } } } }
  }
}`
