// Package docs holds the OpenAPI document served under /swagger.
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
        "/status": {
            "get": {
                "description": "Check if the server is up and running",
                "produces": ["application/json"],
                "tags": ["api"],
                "summary": "Server Status",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/form": {
            "get": {
                "description": "Locale, phone placeholder, today's date and default meeting place for the pass form",
                "produces": ["application/json"],
                "tags": ["pass"],
                "summary": "Form Prefill",
                "parameters": [
                    {"type": "string", "description": "Preferred languages", "name": "Accept-Language", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.responseForm"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/main.responseError"}}
                }
            }
        },
        "/locale": {
            "post": {
                "description": "Store the preferred UI language in the NEXT_LOCALE cookie",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["api"],
                "summary": "Set Locale",
                "parameters": [
                    {"description": "Locale code", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.requestSetLocale"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.responseSetLocale"}},
                    "400": {"description": "Unsupported locale", "schema": {"$ref": "#/definitions/main.responseError"}}
                }
            }
        },
        "/pass": {
            "post": {
                "description": "Record a visitor and return a signed Apple Wallet pass",
                "consumes": ["application/json", "application/x-www-form-urlencoded", "multipart/form-data"],
                "produces": ["application/vnd.apple.pkpass", "application/json"],
                "tags": ["pass"],
                "summary": "Issue Pass",
                "parameters": [
                    {"type": "string", "description": "Preferred languages", "name": "Accept-Language", "in": "header"},
                    {"description": "Visitor data", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.requestIssuePass"}}
                ],
                "responses": {
                    "200": {"description": "Signed pass", "schema": {"type": "file"}},
                    "400": {"description": "Missing fields, invalid phone or date", "schema": {"$ref": "#/definitions/main.responseError"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/main.responseError"}}
                }
            }
        },
        "/set-default": {
            "post": {
                "description": "Set the default meeting place for a date",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Set Default Place",
                "parameters": [
                    {"description": "Admin password, date and place", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.requestSetDefault"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.responseSetDefault"}},
                    "400": {"description": "Missing fields", "schema": {"$ref": "#/definitions/main.responseError"}},
                    "401": {"description": "Invalid password", "schema": {"$ref": "#/definitions/main.responseError"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/main.responseError"}}
                }
            }
        }
    },
    "definitions": {
        "main.requestIssuePass": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "홍길동"},
                "phone": {"type": "string", "example": "010-1234-5678"},
                "meetingPlace": {"type": "string", "example": "서울역"},
                "meetingDate": {"type": "string", "example": "2025-06-01"}
            }
        },
        "main.requestSetDefault": {
            "type": "object",
            "properties": {
                "password": {"type": "string"},
                "eventDate": {"type": "string", "example": "2025-06-01"},
                "place": {"type": "string", "example": "Coex"}
            }
        },
        "main.requestSetLocale": {
            "type": "object",
            "properties": {
                "locale": {"type": "string", "example": "ko"}
            }
        },
        "main.responseError": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "main.responseSetDefault": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"}
            }
        },
        "main.responseSetLocale": {
            "type": "object",
            "properties": {
                "locale": {"type": "string"}
            }
        },
        "main.responseForm": {
            "type": "object",
            "properties": {
                "locale": {"type": "string"},
                "region": {"type": "string"},
                "phonePlaceholder": {"type": "string"},
                "meetingDate": {"type": "string"},
                "defaultPlace": {"type": "string"},
                "labels": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
