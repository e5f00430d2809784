// Package docs registers the Swagger document served under /swagger/.
// Refresh it with go generate ./cmd/nursery after changing handler annotations.
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
        "/discounts/bulk": {
            "get": {
                "produces": ["application/json"],
                "summary": "Bulk discount",
                "parameters": [
                    {"type": "number", "description": "Total amount", "name": "total", "in": "query", "required": true},
                    {"type": "number", "description": "Threshold", "name": "threshold", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.amountResponse"}}}
            }
        },
        "/discounts/loyalty": {
            "get": {
                "produces": ["application/json"],
                "summary": "Loyalty discount",
                "parameters": [
                    {"type": "integer", "description": "Purchase count", "name": "count", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.amountResponse"}}}
            }
        },
        "/login": {
            "post": {
                "description": "Authenticates user and sets session cookie",
                "consumes": ["application/json"],
                "summary": "Login",
                "parameters": [
                    {"description": "Credentials", "name": "creds", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.loginRequest"}}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/monocots": {
            "get": {
                "produces": ["application/json"],
                "summary": "Monocot with price",
                "parameters": [
                    {"type": "number", "description": "Price", "name": "price", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.existsResponse"}}}
            }
        },
        "/plants": {
            "get": {
                "produces": ["application/json"],
                "summary": "List plants",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/nursery.Plant"}}}}
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Add plant",
                "parameters": [
                    {"description": "Plant", "name": "plant", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.plantRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/nursery.Plant"}}}
            }
        },
        "/plants/cheapest": {
            "get": {
                "produces": ["application/json"],
                "summary": "Cheapest plant",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/nursery.Plant"}}}
            }
        },
        "/plants/search": {
            "get": {
                "produces": ["application/json"],
                "summary": "Find plant by name",
                "parameters": [
                    {"type": "string", "description": "Plant name", "name": "name", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/nursery.Plant"}}}
            }
        },
        "/plants/{id}": {
            "get": {
                "produces": ["application/json"],
                "summary": "Get plant",
                "parameters": [
                    {"type": "string", "description": "Plant ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/nursery.Plant"}}}
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "summary": "Remove plant",
                "parameters": [
                    {"type": "string", "description": "Plant ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/purchases": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "summary": "Record purchase",
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/api.countResponse"}}}
            }
        },
        "/purchases/count": {
            "get": {
                "produces": ["application/json"],
                "summary": "Total purchases",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.countResponse"}}}
            }
        },
        "/species/{species}/count": {
            "get": {
                "produces": ["application/json"],
                "summary": "Count plants by species",
                "parameters": [
                    {"type": "string", "description": "Species", "name": "species", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.countResponse"}}}
            }
        },
        "/stats": {
            "get": {
                "produces": ["application/json"],
                "summary": "Statistics",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/nursery.Statistics"}}}
            }
        }
    },
    "definitions": {
        "api.amountResponse": {
            "type": "object",
            "properties": {"amount": {"type": "number"}}
        },
        "api.countResponse": {
            "type": "object",
            "properties": {"count": {"type": "integer"}}
        },
        "api.existsResponse": {
            "type": "object",
            "properties": {"exists": {"type": "boolean"}}
        },
        "api.loginRequest": {
            "type": "object",
            "properties": {"password": {"type": "string"}, "username": {"type": "string"}}
        },
        "api.plantRequest": {
            "type": "object",
            "properties": {
                "age": {"type": "integer"},
                "flowering": {"type": "boolean"},
                "height": {"type": "number"},
                "is_monocot": {"type": "boolean"},
                "name": {"type": "string"},
                "price": {"type": "number"},
                "species": {"type": "string"}
            }
        },
        "nursery.Flowering": {
            "type": "object",
            "properties": {"is_monocot": {"type": "boolean"}}
        },
        "nursery.Plant": {
            "type": "object",
            "properties": {
                "age": {"type": "integer"},
                "flowering": {"$ref": "#/definitions/nursery.Flowering"},
                "height": {"type": "number"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "number"},
                "species": {"type": "string"}
            }
        },
        "nursery.Statistics": {
            "type": "object",
            "properties": {
                "average_age": {"type": "number"},
                "average_non_flowering_price": {"type": "number"},
                "bulk_discount": {"type": "number"},
                "cheapest_plant": {"type": "string"},
                "flowering_count": {"type": "integer"},
                "has_monocot_with_price": {"type": "boolean"},
                "loyalty_discount": {"type": "number"},
                "monocot_price": {"type": "number"},
                "species": {"type": "string"},
                "species_count": {"type": "integer"},
                "total_purchases": {"type": "integer"},
                "total_revenue": {"type": "number"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "Cookie", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Nursery API",
	Description:      "API for managing a plant nursery's stock and purchases",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
