// Package docs is generated by swaggo/swag from the godoc annotations in
// internal/controller. Regenerate with `swag init -g cmd/main.go`.
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
        "/api/health": {
            "get": {
                "description": "Report service status and the number of open converter sessions",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controller.HealthResponse"}}
                }
            }
        },
        "/api/cryptos": {
            "get": {
                "description": "Get the top cryptocurrency list offered by the conversion service",
                "produces": ["application/json"],
                "tags": ["currencies"],
                "summary": "List top cryptocurrencies",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/convert.Currency"}}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/controller.APIError"}}
                }
            }
        },
        "/api/currencies": {
            "get": {
                "description": "Get the currency codes a conversion can target, fiat first",
                "produces": ["application/json"],
                "tags": ["currencies"],
                "summary": "List target currencies",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/currencies.Catalog"}}
                }
            }
        },
        "/api/convert": {
            "post": {
                "description": "Convert an amount of a cryptocurrency into a target currency",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["conversions"],
                "summary": "Convert an amount",
                "parameters": [
                    {"description": "Conversion request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controller.ConvertRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controller.ConvertResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/controller.APIError"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/controller.APIError"}}
                }
            }
        },
        "/api/conversions": {
            "get": {
                "description": "Get the most recent conversions, newest first",
                "produces": ["application/json"],
                "tags": ["conversions"],
                "summary": "List journaled conversions",
                "parameters": [
                    {"type": "integer", "description": "Limit (default 50, max 500)", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Source (widget, api, cli)", "name": "source", "in": "query"},
                    {"type": "string", "description": "Crypto symbol", "name": "symbol", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Conversion"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/controller.APIError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/controller.APIError"}}
                }
            }
        },
        "/api/conversions/stats": {
            "get": {
                "description": "Get totals of journaled conversions by source",
                "produces": ["application/json"],
                "tags": ["conversions"],
                "summary": "Conversion statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ConversionStats"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/controller.APIError"}}
                }
            }
        },
        "/api/conversions/{id}": {
            "get": {
                "description": "Get a single journaled conversion by its ID",
                "produces": ["application/json"],
                "tags": ["conversions"],
                "summary": "Get a journaled conversion",
                "parameters": [
                    {"type": "integer", "description": "Conversion ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Conversion"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/controller.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/controller.APIError"}}
                }
            }
        },
        "/api/converter/ws": {
            "get": {
                "description": "WebSocket endpoint driving one converter widget. Client frames\nare {\"field\":\"amount|symbol|convert\",\"value\":\"...\"}; server\nframes are widget snapshots.",
                "tags": ["converter"],
                "summary": "Live converter session",
                "responses": {
                    "101": {"description": "Switching Protocols", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "controller.APIError": {
            "type": "object",
            "properties": {
                "details": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "controller.ConvertRequest": {
            "type": "object",
            "required": ["amount", "symbol"],
            "properties": {
                "amount": {"type": "string"},
                "convert": {"type": "string"},
                "symbol": {"type": "string"}
            }
        },
        "controller.ConvertResponse": {
            "type": "object",
            "properties": {
                "amount": {"type": "string"},
                "convert": {"type": "string"},
                "convertedAmount": {"type": "string"},
                "symbol": {"type": "string"}
            }
        },
        "controller.HealthResponse": {
            "type": "object",
            "properties": {
                "catalogAgeSeconds": {"type": "number"},
                "sessions": {"type": "integer"},
                "status": {"type": "string"}
            }
        },
        "convert.Currency": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "symbol": {"type": "string"}
            }
        },
        "currencies.Catalog": {
            "type": "object",
            "properties": {
                "crypto": {"type": "array", "items": {"type": "string"}},
                "fiat": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.Conversion": {
            "type": "object",
            "properties": {
                "amount": {"type": "string"},
                "convert": {"type": "string"},
                "converted_amount": {"type": "string"},
                "created_at": {"type": "string"},
                "error": {"type": "string"},
                "id": {"type": "integer"},
                "source": {"type": "string"},
                "symbol": {"type": "string"}
            }
        },
        "models.ConversionStats": {
            "type": "object",
            "properties": {
                "by_source": {"type": "object", "additionalProperties": {"type": "integer", "format": "int64"}},
                "failed": {"type": "integer"},
                "total": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "curconv API",
	Description:      "Debounced crypto to fiat converter",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
