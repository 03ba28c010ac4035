// Package docs registers the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in with email and password",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.APIResponse"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Exchange a refresh token for a new token pair",
                "parameters": [
                    {"description": "Refresh token", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RefreshRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.APIResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current session identity",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.APIResponse"}}
                }
            }
        },
        "/reports": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Newest first, filtered by store and month. Pages past the end are empty.",
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "List completed cleaning reports",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "1-based page number", "name": "page", "in": "query"},
                    {"type": "string", "description": "Exact store name", "name": "store", "in": "query"},
                    {"type": "string", "description": "Month (YYYY-MM)", "name": "month", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.APIResponse"}}
                }
            }
        },
        "/reports/stores": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Sorted unique store names of completed reports.",
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Distinct store names",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.APIResponse"}}
                }
            }
        },
        "/reports/export/csv": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Streams every report matching the filters as UTF-8 CSV with a BOM.",
                "produces": ["text/csv"],
                "tags": ["reports"],
                "summary": "Export reports as CSV",
                "parameters": [
                    {"type": "string", "description": "Exact store name", "name": "store", "in": "query"},
                    {"type": "string", "description": "Month (YYYY-MM)", "name": "month", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.APIResponse"}}
                }
            }
        },
        "/reports/export/xlsx": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Builds an Excel workbook of every report matching the filters.",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["reports"],
                "summary": "Export reports as XLSX",
                "parameters": [
                    {"type": "string", "description": "Exact store name", "name": "store", "in": "query"},
                    {"type": "string", "description": "Month (YYYY-MM)", "name": "month", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/handler.APIError"},
                "meta": {"$ref": "#/definitions/handler.PagMeta"},
                "success": {"type": "boolean"}
            }
        },
        "handler.PagMeta": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "offset": {"type": "integer"},
                "page": {"type": "integer"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "handler.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "example": "admin@sakurai-cleaning.jp"},
                "password": {"type": "string", "example": "securepassword123"}
            }
        },
        "handler.RefreshRequest": {
            "type": "object",
            "required": ["refresh_token"],
            "properties": {
                "refresh_token": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Sakurai Cleaning Reports API",
	Description:      "Read-only access to completed cleaning reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
