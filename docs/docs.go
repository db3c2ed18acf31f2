// Package docs is generated by swaggo/swag from the handler annotations.
// Regenerate with: swag init -g cmd/server/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/scan/{username}": {
            "get": {
                "description": "Classifies the card behind a scanned username and tells the client where to go next.",
                "produces": ["application/json"],
                "tags": ["scan"],
                "summary": "Resolve a scanned card",
                "parameters": [
                    {"type": "string", "description": "Card username", "name": "username", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Decision"}}}
            }
        },
        "/cards/activate": {
            "post": {
                "description": "Binds a card id to a redirect URL. Signed-out callers get needs_auth.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "Activate a card",
                "parameters": [
                    {"description": "Activation data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.ActivateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ActionResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/service.ActionResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/service.ActionResult"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/service.ActionResult"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/service.ActionResult"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/service.ActionResult"}}
                }
            }
        },
        "/cards/redirect": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "Update a card's redirect URL",
                "parameters": [
                    {"description": "New redirect", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.UpdateRedirectRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ActionResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/service.ActionResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/service.ActionResult"}}
                }
            }
        },
        "/cards/mine": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "List the caller's cards",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CardsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Get the sign-in link",
                "parameters": [
                    {"type": "string", "description": "Path to come back to after sign-in", "name": "return_to", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.LoginResponse"}}}
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Revokes the bearer token locally until it expires.",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign out",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/checkout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Open a checkout",
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.CheckoutResponse"}}}
            }
        },
        "/checkout/{id}/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Price a checkout",
                "parameters": [
                    {"type": "string", "description": "Checkout ID", "name": "id", "in": "path", "required": true},
                    {"enum": ["within-region", "outside-region"], "type": "string", "description": "Delivery zone", "name": "zone", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pricing.Summary"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/checkout/{id}/discount": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Apply a discount code",
                "parameters": [
                    {"type": "string", "description": "Checkout ID", "name": "id", "in": "path", "required": true},
                    {"description": "Discount code", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.DiscountRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.DiscountOutcome"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["checkout"],
                "summary": "Remove the applied discount",
                "parameters": [
                    {"type": "string", "description": "Checkout ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/checkout/{id}/orders": {
            "post": {
                "description": "Paid orders return a payment_url; fully discounted orders return free=true and a return_path.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Place an order",
                "parameters": [
                    {"type": "string", "description": "Checkout ID", "name": "id", "in": "path", "required": true},
                    {"description": "Customer details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.OrderRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.OrderOutcome"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/service.OrderOutcome"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/service.OrderOutcome"}}
                }
            }
        }
    },
    "definitions": {
        "errors.ErrorResponse": {"type": "object", "properties": {"code": {"type": "string"}, "error": {"type": "string"}}},
        "handler.ActivateRequest": {"type": "object", "properties": {"card_id": {"type": "string"}, "redirect_url": {"type": "string"}}},
        "handler.UpdateRedirectRequest": {"type": "object", "properties": {"redirect_url": {"type": "string"}}},
        "handler.CardsResponse": {"type": "object", "properties": {"cards": {"type": "array", "items": {"$ref": "#/definitions/model.Card"}}}},
        "handler.LoginResponse": {"type": "object", "properties": {"login_url": {"type": "string"}}},
        "handler.CheckoutResponse": {"type": "object", "properties": {"id": {"type": "string"}, "summary": {"$ref": "#/definitions/pricing.Summary"}}},
        "handler.DiscountRequest": {"type": "object", "required": ["zone"], "properties": {"code": {"type": "string"}, "zone": {"type": "string", "enum": ["within-region", "outside-region"]}}},
        "model.Card": {"type": "object", "properties": {"card_id": {"type": "string"}, "username": {"type": "string"}, "isActivated": {"type": "boolean"}, "redirect_url": {"type": "string"}, "taps_count": {"type": "integer"}, "valid_redirects_count": {"type": "integer"}}},
        "pricing.Summary": {"type": "object", "properties": {"base_price": {"type": "string"}, "delivery_fee": {"type": "string"}, "discount_amount": {"type": "string"}, "total": {"type": "string"}, "currency": {"type": "string"}}},
        "service.ActionResult": {"type": "object", "properties": {"success": {"type": "boolean"}, "code": {"type": "string"}, "message": {"type": "string"}, "field": {"type": "string"}, "needs_auth": {"type": "boolean"}, "retryable": {"type": "boolean"}, "redirect_to": {"type": "string"}, "redirect_after_ms": {"type": "integer"}}},
        "service.Decision": {"type": "object", "properties": {"state": {"type": "string"}, "card": {"$ref": "#/definitions/model.Card"}, "card_not_found": {"type": "boolean"}, "needs_auth": {"type": "boolean"}, "login_url": {"type": "string"}, "next": {"type": "string"}, "retryable": {"type": "boolean"}, "message": {"type": "string"}}},
        "service.DiscountOutcome": {"type": "object", "properties": {"accepted": {"type": "boolean"}, "amount": {"type": "string"}, "message": {"type": "string"}, "retryable": {"type": "boolean"}, "summary": {"$ref": "#/definitions/pricing.Summary"}}},
        "service.OrderRequest": {"type": "object", "required": ["name", "username", "email", "phone", "address", "city", "state", "deliveryOption"], "properties": {"name": {"type": "string"}, "username": {"type": "string"}, "email": {"type": "string"}, "phone": {"type": "string"}, "address": {"type": "string"}, "city": {"type": "string"}, "state": {"type": "string"}, "deliveryOption": {"type": "string", "enum": ["within-region", "outside-region"]}}},
        "service.OrderOutcome": {"type": "object", "properties": {"success": {"type": "boolean"}, "code": {"type": "string"}, "message": {"type": "string"}, "free": {"type": "boolean"}, "payment_url": {"type": "string"}, "return_path": {"type": "string"}, "retryable": {"type": "boolean"}, "summary": {"$ref": "#/definitions/pricing.Summary"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Tapcard API",
	Description:      "Scan resolution, card activation, redirect management and checkout for NFC/QR profile cards.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
